package scope

import (
	"testing"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func principal(role models.Role, region string) models.Principal {
	return models.NewPrincipal(uuid.New(), role, region)
}

func TestEffective(t *testing.T) {
	tests := []struct {
		name      string
		principal models.Principal
		region    string
		status    string
		want      models.Filters
	}{
		{
			name:      "global admin keeps requested region",
			principal: principal(models.RoleGlobalAdmin, models.RegionGlobal),
			region:    models.RegionNA,
			status:    "pending",
			want:      models.Filters{Region: models.RegionNA, Status: "pending"},
		},
		{
			name:      "global admin may ask for all",
			principal: principal(models.RoleGlobalAdmin, models.RegionGlobal),
			region:    models.FilterAll,
			status:    models.FilterAll,
			want:      models.Filters{Region: models.FilterAll, Status: models.FilterAll},
		},
		{
			name:      "regional admin is pinned to own region",
			principal: principal(models.RoleRegionalAdmin, models.RegionEU),
			region:    models.RegionNA,
			status:    "pending",
			want:      models.Filters{Region: models.RegionEU, Status: "pending", RegionPinned: true},
		},
		{
			name:      "partner asking for all is pinned",
			principal: principal(models.RoleSendingPartner, models.RegionMENA),
			region:    models.FilterAll,
			want:      models.Filters{Region: models.RegionMENA, RegionPinned: true},
		},
		{
			name:      "partner without region sees nothing rather than everything",
			principal: principal(models.RoleReceivingPartner, ""),
			region:    models.FilterAll,
			want:      models.Filters{Region: "", RegionPinned: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effective(tt.principal, tt.region, tt.status)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuditLogs(t *testing.T) {
	t.Run("partners are rejected", func(t *testing.T) {
		for _, r := range []models.Role{models.RoleSendingPartner, models.RoleReceivingPartner} {
			_, err := AuditLogs(principal(r, models.RegionEU), models.FilterAll)
			assert.ErrorIs(t, err, apperrors.ErrInsufficientRole)
		}
	})

	t.Run("regional admin sees own region", func(t *testing.T) {
		f, err := AuditLogs(principal(models.RoleRegionalAdmin, models.RegionEU), "failure")
		assert.NoError(t, err)
		assert.Equal(t, map[string]any{"region": models.RegionEU, "status": "failure"}, f.Equality())
	})

	t.Run("global admin sees every region", func(t *testing.T) {
		f, err := AuditLogs(principal(models.RoleGlobalAdmin, models.RegionGlobal), models.FilterAll)
		assert.NoError(t, err)
		assert.Empty(t, f.Equality())
	})
}
