package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleAttendant    = "attendant"
	RoleStockManager = "stock_manager"
	RoleDelivery     = "delivery"
)

// User representa un usuario del sistema (personal de la distribuidora).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	Active       bool
	CreatedAt    time.Time
}
