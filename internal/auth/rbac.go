// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package auth

// Role is an access tier. Roles are strictly ordered: every permission a
// lower tier holds is held by the tiers above it.
type Role string

const (
	// RoleViewer can read dashboards and region assessments.
	RoleViewer Role = "viewer"
	// RoleAnalyst adds security reports, predictions, and anomaly detail.
	RoleAnalyst Role = "analyst"
	// RoleAdmin adds user management and feed administration.
	RoleAdmin Role = "admin"
)

// Permission names a guarded capability.
type Permission string

const (
	PermDashboardRead Permission = "dashboard:read"
	PermSecurityRead  Permission = "security:read"
	PermFeedManage    Permission = "feed:manage"
	PermUserManage    Permission = "user:manage"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleViewer: {
		PermDashboardRead: true,
	},
	RoleAnalyst: {
		PermDashboardRead: true,
		PermSecurityRead:  true,
	},
	RoleAdmin: {
		PermDashboardRead: true,
		PermSecurityRead:  true,
		PermFeedManage:    true,
		PermUserManage:    true,
	},
}

// Valid reports whether the role is one Borderwatch recognises.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role holds the permission. Unknown roles hold
// nothing.
func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}
