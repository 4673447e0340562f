package auth

import (
	"testing"
	"time"

	"kycdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleRegionalAdmin, Region: models.RegionEU}
	issuer := NewTokenIssuer("test-secret", "kycdesk-api", 2*time.Hour)

	t.Run("round trip resolves the principal", func(t *testing.T) {
		token, err := issuer.Issue(user)
		require.NoError(t, err)

		p, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		assert.Equal(t, models.RoleRegionalAdmin, p.Role)
		assert.Equal(t, models.RegionEU, p.Region)
		assert.True(t, p.Capabilities.ManageCases)
	})

	t.Run("token carries userId role and region claims", func(t *testing.T) {
		token, err := issuer.Issue(user)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims["userId"])
		assert.Equal(t, "regional_admin", claims["role"])
		assert.Equal(t, "EU", claims["region"])
	})

	t.Run("expires after two hours", func(t *testing.T) {
		token, err := issuer.Issue(user)
		require.NoError(t, err)

		late := NewTokenIssuer("test-secret", "kycdesk-api", 2*time.Hour)
		late.now = func() time.Time { return time.Now().Add(2*time.Hour + time.Minute) }
		_, err = late.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := NewTokenIssuer("other-secret", "kycdesk-api", time.Hour).Issue(user)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		token, err := issuer.Issue(&models.User{ID: uuid.New(), Role: "admin"})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.Error(t, err)
	})
}
