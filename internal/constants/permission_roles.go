package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Checked once by middleware.AuthorizePermission before dispatch.
var PermissionRoles = map[string][]string{
	ViewPrices:       {RoleUser, RoleAdmin, RoleAnalyst, RoleModerator},
	TradeCoins:       {RoleUser},
	ViewPortfolio:    {RoleUser},
	ManageCoins:      {RoleAdmin},
	ManageUsers:      {RoleAdmin},
	ViewAdminStats:   {RoleAdmin},
	ViewMarketStats:  {RoleAnalyst, RoleAdmin},
	ViewActivityFeed: {RoleModerator, RoleAdmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
