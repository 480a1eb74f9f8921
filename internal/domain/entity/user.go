package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// User representa un usuario del sistema. Los pedidos pertenecen directamente
// al usuario; no existe un perfil de cliente separado.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano en dominio después de persistir
	Role         string // admin, manager, customer
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
