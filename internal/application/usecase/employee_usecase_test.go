package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/application/usecase"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ListByRole(string, int, int) ([]*entity.User, error) { return nil, nil }

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
	// failCreate fuerza el fallo del insert del perfil para probar el rollback.
	failCreate error
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) GetByUserID(userID string) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) Update(e *entity.Employee) error {
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) List() ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.employees {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// fakeEmployeeTxRunner toma snapshot antes de fn y restaura si fn falla, como
// el rollback de la transacción real.
type fakeEmployeeTxRunner struct {
	users     *fakeUserRepo
	employees *fakeEmployeeRepo
}

func (r *fakeEmployeeTxRunner) RunEmployee(_ context.Context, fn func(
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
) error) error {
	usersBackup := make(map[string]*entity.User, len(r.users.users))
	for k, v := range r.users.users {
		cp := *v
		usersBackup[k] = &cp
	}
	employeesBackup := make(map[string]*entity.Employee, len(r.employees.employees))
	for k, v := range r.employees.employees {
		cp := *v
		employeesBackup[k] = &cp
	}

	if err := fn(r.users, r.employees); err != nil {
		r.users.users = usersBackup
		r.employees.employees = employeesBackup
		return err
	}
	return nil
}

func newEmployeeFixture() (*usecase.EmployeeUseCase, *fakeUserRepo, *fakeEmployeeRepo) {
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	employees := &fakeEmployeeRepo{employees: map[string]*entity.Employee{}}
	runner := &fakeEmployeeTxRunner{users: users, employees: employees}
	return usecase.NewEmployeeUseCase(runner, users, employees), users, employees
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de empleado
// ──────────────────────────────────────────────────────────────────────────────

// El alta crea cuenta manager activa y perfil laboral, ambos ligados.
func TestCreateEmployee_CuentaYPerfil(t *testing.T) {
	uc, users, employees := newEmployeeFixture()

	out, err := uc.Create(context.Background(), dto.CreateEmployeeRequest{
		Email:     "carlos@discoteca.co",
		Password:  "clave-segura-123",
		FirstName: "Carlos",
		LastName:  "Gómez",
		Position:  "Vendedor",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vendedor", out.Position)
	assert.False(t, out.HireDate.IsZero(), "hire_date por defecto es hoy")

	stored := users.users[out.UserID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleManager, stored.Role)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash)
	require.NotNil(t, employees.employees[out.ID])
	assert.Equal(t, out.UserID, employees.employees[out.ID].UserID)
}

// Si el insert del perfil falla, la cuenta de usuario tampoco queda persistida.
func TestCreateEmployee_PerfilFalla_SinCuentaHuerfana(t *testing.T) {
	uc, users, employees := newEmployeeFixture()
	employees.failCreate = errors.New("insert employees: violación de restricción")

	_, err := uc.Create(context.Background(), dto.CreateEmployeeRequest{
		Email:     "carlos@discoteca.co",
		Password:  "clave-segura-123",
		FirstName: "Carlos",
		LastName:  "Gómez",
		Position:  "Vendedor",
	})
	require.Error(t, err)

	assert.Empty(t, users.users,
		"la cuenta de usuario no debe persistir si el perfil de empleado falló")
	assert.Empty(t, employees.employees)
}

func TestCreateEmployee_EmailDuplicado(t *testing.T) {
	uc, _, _ := newEmployeeFixture()

	_, err := uc.Create(context.Background(), dto.CreateEmployeeRequest{
		Email: "carlos@discoteca.co", Password: "clave-segura-123",
		FirstName: "Carlos", LastName: "Gómez", Position: "Vendedor",
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateEmployeeRequest{
		Email: "carlos@discoteca.co", Password: "otra-clave-456",
		FirstName: "Otro", LastName: "Gómez", Position: "Cajero",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateEmployee_CamposObligatorios(t *testing.T) {
	uc, _, _ := newEmployeeFixture()

	_, err := uc.Create(context.Background(), dto.CreateEmployeeRequest{
		Email: "x@y.co", Password: "clave-segura-123", FirstName: "X", LastName: "Y",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "position es obligatorio")
}
