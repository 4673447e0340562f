package auth

import (
	"errors"
	"fmt"
	"time"

	"kycdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue signs a token for user valid for the configured window.
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    t.issuer,
			Subject:   user.ID.String(),
		},
		UserID: user.ID.String(),
		Role:   user.Role,
		Region: user.Region,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates tokenStr and resolves it into a principal.
func (t *TokenIssuer) Parse(tokenStr string) (models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return models.Principal{}, err
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return models.Principal{}, errors.New("invalid token claims")
	}
	if !claims.Role.Valid() {
		return models.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return models.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}
	return models.NewPrincipal(userID, claims.Role, claims.Region), nil
}
