package models

import (
	"time"

	"gorm.io/gorm"
)

// KnownResources are the clinic surfaces a permission can target; the
// route middleware checks against resource/action pairs, so a permission
// outside this vocabulary would never match a route.
var KnownResources = []string{"doctors", "patients", "appointments", "availability", "inventory", "roles", "permissions"}

// KnownActions are the verbs the route middleware understands.
var KnownActions = []string{"create", "read", "update", "delete"}

// ValidResource reports whether r is a known clinic resource.
func ValidResource(r string) bool {
	for _, known := range KnownResources {
		if r == known {
			return true
		}
	}
	return false
}

// ValidAction reports whether a is a known permission action.
func ValidAction(a string) bool {
	for _, known := range KnownActions {
		if a == known {
			return true
		}
	}
	return false
}

type Permission struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	Resource    string         `json:"resource"` // e.g., "appointments", "users", etc.
	Action      string         `json:"action"`   // e.g., "create", "read", "update", "delete"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Roles       []Role         `json:"roles,omitempty" gorm:"many2many:role_permissions;foreignKey:ID;joinForeignKey:PermissionID;references:ID;joinReferences:RoleID"`
}
