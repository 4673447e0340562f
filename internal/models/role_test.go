package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRole_Capabilities(t *testing.T) {
	t.Run("only the global admin views every region", func(t *testing.T) {
		for _, r := range Roles {
			assert.Equal(t, r == RoleGlobalAdmin, r.Capabilities().ViewAllRegions, r)
		}
	})

	t.Run("admins manage cases and read audit logs", func(t *testing.T) {
		for _, r := range []Role{RoleGlobalAdmin, RoleRegionalAdmin} {
			caps := r.Capabilities()
			assert.True(t, caps.ManageCases)
			assert.True(t, caps.ViewAuditLogs)
		}
	})

	t.Run("partners hold no capability", func(t *testing.T) {
		assert.Equal(t, Capabilities{}, RoleSendingPartner.Capabilities())
		assert.Equal(t, Capabilities{}, RoleReceivingPartner.Capabilities())
	})

	t.Run("unknown role is invalid and powerless", func(t *testing.T) {
		r, ok := ParseRole("admin")
		assert.False(t, ok)
		assert.Equal(t, Capabilities{}, r.Capabilities())
	})
}

func TestPrincipal(t *testing.T) {
	p := NewPrincipal(uuid.New(), RoleRegionalAdmin, RegionEU)

	assert.True(t, p.Capabilities.ManageCases)
	assert.False(t, p.Capabilities.ViewAllRegions)
	assert.True(t, p.HasRole(RoleGlobalAdmin, RoleRegionalAdmin))
	assert.False(t, p.HasRole(RoleSendingPartner))
}
