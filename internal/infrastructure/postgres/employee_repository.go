package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/discoteca-api/internal/domain"
	"github.com/tu-usuario/discoteca-api/internal/domain/entity"
	"github.com/tu-usuario/discoteca-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// La columna se llama job_title porque "position" es palabra reservada en SQL.
const employeeColumns = `id, user_id, first_name, last_name, job_title, email, phone, hire_date`

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.UserID, employee.FirstName, employee.LastName,
		employee.Position, employee.Email, employee.Phone, employee.HireDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) scanOne(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Position, &e.Email, &e.Phone, &e.HireDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}

// GetByID obtiene un empleado por ID. Devuelve nil sin error si no existe.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return r.scanOne(row)
}

// GetByUserID resuelve el perfil de empleado del usuario autenticado.
func (r *EmployeeRepo) GetByUserID(userID string) (*entity.Employee, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+employeeColumns+` FROM employees WHERE user_id = $1`, userID)
	return r.scanOne(row)
}

// Update actualiza los datos de contacto y cargo del empleado.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, job_title = $4, phone = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.FirstName, employee.LastName, employee.Position, employee.Phone,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// List lista todos los empleados ordenados por apellido.
func (r *EmployeeRepo) List() ([]*entity.Employee, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Position,
			&e.Email, &e.Phone, &e.HireDate); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
