package usecase

import (
	"context"

	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// EmployeeTxRunner unidad de trabajo del alta de empleados: la cuenta de
// usuario y el perfil laboral se insertan en la misma transacción; un error
// hace rollback de ambos.
type EmployeeTxRunner interface {
	RunEmployee(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		employeeRepo repository.EmployeeRepository,
	) error) error
}
