package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeUseCase alta y gestión de empleados. Un empleado es una cuenta de
// usuario con rol manager más un perfil laboral contra el que se registran
// las compras a proveedores.
type EmployeeUseCase struct {
	txRunner     EmployeeTxRunner
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso de empleados.
func NewEmployeeUseCase(txRunner EmployeeTxRunner, userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{txRunner: txRunner, userRepo: userRepo, employeeRepo: employeeRepo}
}

// Create crea la cuenta de usuario (rol manager) y el perfil laboral en una
// sola transacción: si el perfil falla, la cuenta tampoco queda persistida.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.Position == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleManager,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	hireDate := in.HireDate
	if hireDate.IsZero() {
		hireDate = now
	}
	employee := &entity.Employee{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Position:  in.Position,
		Email:     in.Email,
		Phone:     in.Phone,
		HireDate:  hireDate,
	}
	err = uc.txRunner.RunEmployee(ctx, func(
		userRepo repository.UserRepository,
		employeeRepo repository.EmployeeRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return employeeRepo.Create(employee)
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado.
func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return toEmployeeResponse(employee), nil
}

// List todos los empleados.
func (uc *EmployeeUseCase) List() ([]dto.EmployeeResponse, error) {
	employees, err := uc.employeeRepo.List()
	if err != nil {
		return nil, err
	}
	result := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, *toEmployeeResponse(e))
	}
	return result, nil
}

// Update actualiza el perfil laboral de un empleado.
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if in.FirstName != nil {
		employee.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		employee.LastName = *in.LastName
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if err := uc.employeeRepo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Position:  e.Position,
		Email:     e.Email,
		Phone:     e.Phone,
		HireDate:  e.HireDate,
	}
}
