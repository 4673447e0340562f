package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	Region string `json:"region,omitempty"`
}

// Principal is the authenticated caller, resolved once per request from
// the session claims.
type Principal struct {
	UserID       uuid.UUID
	Role         Role
	Region       string
	Capabilities Capabilities
}

// NewPrincipal resolves the role's capability set.
func NewPrincipal(userID uuid.UUID, role Role, region string) Principal {
	return Principal{
		UserID:       userID,
		Role:         role,
		Region:       region,
		Capabilities: role.Capabilities(),
	}
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
