package models

// Permission is an enumerated capability token granted through a Role
type Permission string

const (
	PermManageSettings Permission = "MANAGE_SETTINGS"
	PermManageUsers    Permission = "MANAGE_USERS"
	PermCreateOrder    Permission = "CREATE_ORDER"
	PermEditOrder      Permission = "EDIT_ORDER"
	PermViewAllOrders  Permission = "VIEW_ALL_ORDERS"

	// Transition-specific permissions, one per pipeline edge
	PermMoveToRegistered  Permission = "MOVE_TO_REGISTERED"
	PermMoveToInCreation  Permission = "MOVE_TO_IN_CREATION"
	PermMoveToPrepared    Permission = "MOVE_TO_PREPARED"
	PermMoveToTransferred Permission = "MOVE_TO_TRANSFERRED"
	PermMoveToDelivered   Permission = "MOVE_TO_DELIVERED"
)

// AllPermissions lists every capability token the system knows about
var AllPermissions = []Permission{
	PermManageSettings,
	PermManageUsers,
	PermCreateOrder,
	PermEditOrder,
	PermViewAllOrders,
	PermMoveToRegistered,
	PermMoveToInCreation,
	PermMoveToPrepared,
	PermMoveToTransferred,
	PermMoveToDelivered,
}

// IsValid returns true if the token is a known permission
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}
