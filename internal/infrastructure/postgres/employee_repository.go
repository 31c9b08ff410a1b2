package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, first_name, last_name, phone, role, salary, active, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.FirstName, e.LastName, nullIfEmpty(e.Phone), e.Role, e.Salary, e.Active,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	e, err := pgx.CollectOneRow(rows, scanEmployee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employees
		SET first_name = $2, last_name = $3, phone = $4, role = $5, salary = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		e.ID, e.FirstName, e.LastName, nullIfEmpty(e.Phone), e.Role, e.Salary, e.Active, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por nombre y, con Status "active"/"inactive", por estado.
func (r *EmployeeRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Employee, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	switch f.Status {
	case "active":
		w.add("active = $%d", true)
	case "inactive":
		w.add("active = $%d", false)
	}
	query := `SELECT ` + employeeColumns + ` FROM employees` + w.sql() + " ORDER BY first_name, last_name"
	query += w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return list, nil
}

func scanEmployee(row pgx.CollectableRow) (*entity.Employee, error) {
	var e entity.Employee
	var phone *string
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &phone, &e.Role, &e.Salary, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	e.Phone = derefStr(phone)
	return &e, err
}
