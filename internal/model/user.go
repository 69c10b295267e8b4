package model

import (
	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/auth/credentials"
)

// Uid identifies a user. The admin identity always has uid 0.
type Uid uint16

const AdminUid Uid = 0

type User struct {
	Uid      Uid                    `json:"uid"`
	Name     string                 `json:"name"`
	FullName string                 `json:"full_name"`
	Password credentials.Credential `json:"password"`
}

// Public is the wire projection of a user. It never carries the credential.
type Public struct {
	Uid      Uid    `json:"uid"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

func (u User) Public() Public {
	return Public{
		Uid:      u.Uid,
		Name:     u.Name,
		FullName: u.FullName,
	}
}
