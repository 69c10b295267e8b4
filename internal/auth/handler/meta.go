package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Issuer returns the URI carried in every token's iss claim.
func (h *Handler) Issuer(c *gin.Context) {
	c.JSON(http.StatusOK, h.signer.URL())
}

// Jwk publishes the verification key so relying parties can validate
// token signatures without coupling to this process.
func (h *Handler) Jwk(c *gin.Context) {
	c.JSON(http.StatusOK, h.signer.VerificationKey())
}
