// Package rbac maps storefront roles to dashboard capabilities.
package rbac

import (
	"strings"
)

// Role represents an access tier for the storefront dashboards.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleMarketing  Role = "marketing"
	RoleOperations Role = "operations"
	RoleKitchen    Role = "kitchen"
	RoleCourier    Role = "courier"
	RoleBuyer      Role = "buyer"
)

// Capability represents a discrete feature toggle checked in handlers and templates.
type Capability string

const (
	CapDashboardOverview Capability = "dashboard.view"
	CapOrdersAll         Capability = "orders.all"
	CapOrdersIncoming    Capability = "orders.incoming"
	CapOrdersOwn         Capability = "orders.own"
	CapKitchenQueue      Capability = "kitchen.queue"
	CapDeliveries        Capability = "courier.deliveries"
	CapMarginAdd         Capability = "marketing.margin"
	CapMarginRecap       Capability = "marketing.recap"
	CapCashbackView      Capability = "cashback.view"
)

// capabilityRoles maps each capability to the roles permitted to use it.
var capabilityRoles = map[Capability]Roles{
	CapDashboardOverview: {RoleAdmin, RoleMarketing, RoleOperations, RoleKitchen, RoleCourier, RoleBuyer},
	CapOrdersAll:         {RoleAdmin},
	CapOrdersIncoming:    {RoleAdmin, RoleOperations},
	CapOrdersOwn:         {RoleAdmin, RoleBuyer, RoleMarketing},
	CapKitchenQueue:      {RoleAdmin, RoleOperations, RoleKitchen},
	CapDeliveries:        {RoleAdmin, RoleOperations, RoleCourier},
	CapMarginAdd:         {RoleAdmin, RoleMarketing},
	CapMarginRecap:       {RoleAdmin, RoleMarketing},
	CapCashbackView:      {RoleAdmin, RoleBuyer},
}

// Roles captures a list of roles and exposes intersection checks.
type Roles []Role

// Has returns true if the provided role exists in the set.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects returns true if any role in the candidate slice is also present in the set.
func (rs Roles) Intersects(candidate Roles) bool {
	for _, role := range candidate {
		if rs.Has(role) {
			return true
		}
	}
	return false
}

// Normalise converts raw role strings into canonical, de-duplicated Role values.
func Normalise(raw []string) Roles {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Role]struct{}, len(raw))
	roles := make(Roles, 0, len(raw))
	for _, val := range raw {
		role := Role(strings.ToLower(strings.TrimSpace(val)))
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// RolesForCapability returns the configured roles able to use the capability.
func RolesForCapability(capability Capability) Roles {
	return capabilityRoles[capability]
}

// HasCapability reports whether the provided roles grant the capability.
// Admin users implicitly possess every capability.
func HasCapability(userRoles []string, capability Capability) bool {
	if capability == "" {
		return true
	}
	allowed := RolesForCapability(capability)
	if len(allowed) == 0 {
		return false
	}
	roles := Normalise(userRoles)
	if roles.Has(RoleAdmin) {
		return true
	}
	return allowed.Intersects(roles)
}

// CapabilitiesForRoles enumerates the capabilities accessible to the user roles.
func CapabilitiesForRoles(userRoles []string) map[Capability]bool {
	roles := Normalise(userRoles)
	caps := make(map[Capability]bool, len(capabilityRoles))
	if roles.Has(RoleAdmin) {
		for capability := range capabilityRoles {
			caps[capability] = true
		}
		return caps
	}
	for capability, allowed := range capabilityRoles {
		if allowed.Intersects(roles) {
			caps[capability] = true
		}
	}
	return caps
}
