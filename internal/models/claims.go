package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles
const (
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// APIClaims are the JWT claims carried by API tokens.
type APIClaims struct {
	Subject string `json:"sub_name,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token grants admin access.
func (c *APIClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
