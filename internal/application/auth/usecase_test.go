package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/discoteca-api/internal/application/auth"
	"github.com/tu-usuario/discoteca-api/internal/application/dto"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
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

var testCfg = auth.JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 30, Issuer: "discoteca-api"}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

// El registro público siempre crea un customer; el hash nunca sale en la respuesta.
func TestRegister_SiempreEsCustomer(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testCfg)

	out, err := uc.Register(dto.RegisterRequest{
		Email:     "ana@correo.co",
		Password:  "clave-segura-123",
		FirstName: "Ana",
		LastName:  "Ruiz",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.Role)
	assert.True(t, out.IsActive)

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash, "el password se guarda hasheado")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testCfg)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@correo.co", Password: "x1234567"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@correo.co", Password: "otra1234"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK_TokenLlevaIDYRol(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testCfg)

	reg, err := uc.Register(dto.RegisterRequest{Email: "ana@correo.co", Password: "clave-segura-123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@correo.co", Password: "clave-segura-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, reg.ID, out.User.ID)

	userID, role, err := jwt.Parse(testCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleCustomer, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testCfg)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@correo.co", Password: "clave-segura-123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@correo.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testCfg)
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@correo.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testCfg)

	reg, err := uc.Register(dto.RegisterRequest{Email: "ana@correo.co", Password: "clave-segura-123"})
	require.NoError(t, err)
	repo.users[reg.ID].IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "ana@correo.co", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_SoloCamposEnviados(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testCfg)

	reg, err := uc.Register(dto.RegisterRequest{
		Email: "ana@correo.co", Password: "clave-segura-123",
		FirstName: "Ana", LastName: "Ruiz", Phone: "3001234567",
	})
	require.NoError(t, err)

	phone := "3017654321"
	out, err := uc.UpdateProfile(reg.ID, dto.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "3017654321", out.Phone)
	assert.Equal(t, "Ana", out.FirstName, "los campos no enviados se conservan")
	assert.Equal(t, "Ruiz", out.LastName)
}

func TestProfile_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testCfg)
	_, err := uc.Profile("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
