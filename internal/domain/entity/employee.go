package entity

import "time"

// Employee es el perfil laboral asociado a un User con rol manager.
// Las compras a proveedores se registran contra este perfil.
type Employee struct {
	ID        string
	UserID    string
	FirstName string
	LastName  string
	Position  string
	Email     string
	Phone     string
	HireDate  time.Time
}
