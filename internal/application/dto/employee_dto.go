package dto

import "time"

// CreateEmployeeRequest alta de empleado: crea la cuenta de usuario con rol
// manager y su perfil laboral en un solo paso.
type CreateEmployeeRequest struct {
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=8"`
	FirstName string    `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string    `json:"last_name" validate:"required,min=1,max=100"`
	Position  string    `json:"position" validate:"required"`
	Phone     string    `json:"phone"`
	HireDate  time.Time `json:"hire_date"`
}

// UpdateEmployeeRequest actualización del perfil laboral.
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Position  *string `json:"position"`
	Phone     *string `json:"phone"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  string    `json:"position"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	HireDate  time.Time `json:"hire_date"`
}
