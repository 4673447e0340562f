package models

// Role is one of the four fixed back-office roles.
type Role string

const (
	RoleGlobalAdmin      Role = "global_admin"
	RoleRegionalAdmin    Role = "regional_admin"
	RoleSendingPartner   Role = "sending_partner"
	RoleReceivingPartner Role = "receiving_partner"
)

// Roles lists every known role.
var Roles = []Role{RoleGlobalAdmin, RoleRegionalAdmin, RoleSendingPartner, RoleReceivingPartner}

// Capabilities is the permission record attached to a role.
type Capabilities struct {
	ViewAllRegions      bool `json:"canViewAllRegions"`
	ManageCases         bool `json:"canManageCases"`
	ViewAuditLogs       bool `json:"canViewAuditLogs"`
	ManageUsers         bool `json:"canManageUsers"`
	ModifySettings      bool `json:"canModifySettings"`
	ApproveTransactions bool `json:"canApproveTransactions"`
}

var roleCapabilities = map[Role]Capabilities{
	RoleGlobalAdmin: {
		ViewAllRegions:      true,
		ManageCases:         true,
		ViewAuditLogs:       true,
		ManageUsers:         true,
		ModifySettings:      true,
		ApproveTransactions: true,
	},
	RoleRegionalAdmin: {
		ManageCases:         true,
		ViewAuditLogs:       true,
		ManageUsers:         true,
		ModifySettings:      true,
		ApproveTransactions: true,
	},
	RoleSendingPartner:   {},
	RoleReceivingPartner: {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Capabilities returns the capability set of r. Unknown roles get none.
func (r Role) Capabilities() Capabilities {
	return roleCapabilities[r]
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
