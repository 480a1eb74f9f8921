package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/discoteca-api/internal/application/usecase"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	apphttp "github.com/tu-usuario/discoteca-api/internal/interfaces/http"
)

type stubEmployeeRepo struct{}

func (stubEmployeeRepo) Create(*entity.Employee) error                  { return nil }
func (stubEmployeeRepo) GetByID(string) (*entity.Employee, error)       { return nil, nil }
func (stubEmployeeRepo) GetByUserID(string) (*entity.Employee, error)   { return nil, nil }
func (stubEmployeeRepo) Update(*entity.Employee) error                  { return nil }
func (stubEmployeeRepo) List() ([]*entity.Employee, error)              { return []*entity.Employee{}, nil }

func buildRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		EmployeeUC: usecase.NewEmployeeUseCase(nil, nil, stubEmployeeRepo{}),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func getEmployees(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/manager/employees", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// Las rutas de empleados están bajo el back-office: manager y admin entran,
// customer no.
func TestRouter_EmpleadosAccesiblesParaManagerYAdmin(t *testing.T) {
	app := buildRouterApp(t)

	resp := getEmployees(t, app, tokenForRole(t, "manager"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = getEmployees(t, app, tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouter_EmpleadosBloqueadosParaCustomer(t *testing.T) {
	app := buildRouterApp(t)

	resp := getEmployees(t, app, tokenForRole(t, "customer"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = getEmployees(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
