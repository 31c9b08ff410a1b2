package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSeller  = "seller"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, seller
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
