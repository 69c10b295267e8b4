package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/credentials"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/model"
)

type superAdminRequest struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// GetSuperAdmin is a pure existence check for the admin identity.
func (h *Handler) GetSuperAdmin(c *gin.Context) {
	if h.users.ContainsAdmin() {
		c.Status(http.StatusNoContent)
		return
	}
	c.Status(http.StatusNotFound)
}

// PostSuperAdmin creates the singleton admin identity. The plaintext
// password is validated against the policy and hashed on receipt; the
// record is flushed to disk before the success response.
func (h *Handler) PostSuperAdmin(c *gin.Context) {
	var req superAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if err := h.policy.Validate(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.users.ContainsAdmin() {
		c.JSON(http.StatusConflict, gin.H{"error": "super admin already exists"})
		return
	}

	password, err := credentials.New(req.Password, h.hashAlg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	prev := h.users.SetAdmin(model.User{
		Name:     req.Name,
		FullName: req.FullName,
		Password: password,
	})
	if prev != nil {
		// Lost the race against a concurrent creation; put the winner back.
		h.users.SetAdmin(*prev)
		c.JSON(http.StatusConflict, gin.H{"error": "super admin already exists"})
		return
	}

	if err := h.users.Save(); err != nil {
		logger.Error("failed to persist users", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}

// GetUser returns the public projection of a single user.
func (h *Handler) GetUser(c *gin.Context) {
	raw := c.Param("uid")
	uid, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uid"})
		return
	}

	user, found := h.users.GetByUid(model.Uid(uid))
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
