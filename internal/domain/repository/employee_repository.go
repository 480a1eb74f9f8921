package repository

import "github.com/tu-usuario/discoteca-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByUserID(userID string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	List() ([]*entity.Employee, error)
}
