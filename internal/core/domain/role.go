package domain

// Role is the permission level carried by an authenticated user.
type Role string

const (
	RoleAdmin      Role = "ADMIN"      // manages the chart of accounts
	RoleManager    Role = "MANAGER"    // approves and rejects journal entries
	RoleAccountant Role = "ACCOUNTANT" // prepares journal entries
)

// ParseRole resolves a role claim; unknown values map to RoleAccountant.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleAccountant:
		return r
	}
	return RoleAccountant
}

// CanApprove reports whether the role may decide pending journal entries.
func (r Role) CanApprove() bool {
	return r == RoleManager || r == RoleAdmin
}

// CanManageAccounts reports whether the role may edit the chart of accounts.
func (r Role) CanManageAccounts() bool {
	return r == RoleAdmin
}
