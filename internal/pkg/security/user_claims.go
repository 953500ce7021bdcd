package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims business payload of an admin access token
type UserClaims struct {
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}
