package usecase

import (
	"time"

	"github.com/tu-usuario/discoteca-api/internal/application/auth"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

// CustomerUseCase consultas y gestión de clientes desde el back-office.
// Los clientes son usuarios con rol customer; no hay entidad aparte.
type CustomerUseCase struct {
	userRepo repository.UserRepository
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(userRepo repository.UserRepository) *CustomerUseCase {
	return &CustomerUseCase{userRepo: userRepo}
}

// List listado paginado de clientes.
func (uc *CustomerUseCase) List(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListByRole(entity.RoleCustomer, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID obtiene un cliente. Un usuario que no sea customer responde
// ErrUserNotFound para no filtrar cuentas de staff por este endpoint.
func (uc *CustomerUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleCustomer {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update actualiza datos de contacto de un cliente, incluido IsActive para
// desactivar la cuenta.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleCustomer {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}
