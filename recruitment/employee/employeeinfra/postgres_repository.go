package employeeinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/employee"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const employeeColumns = `id, name, email, role, department, join_date, created_by, created_at, updated_at`

type PostgresEmployeeRepository struct {
	db *sqlx.DB
}

func NewPostgresEmployeeRepository(db *sqlx.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

var _ employee.Repository = (*PostgresEmployeeRepository)(nil)

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (:id, :name, :email, :role, :department, :join_date, :created_by, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, e); err != nil {
		return mapWriteError(err, e, "insert")
	}
	return nil
}

func (r *PostgresEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees SET
			name = :name,
			email = :email,
			role = :role,
			department = :department,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, e)
	if err != nil {
		return mapWriteError(err, e, "update")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return employee.ErrEmployeeNotFound().WithDetail("employee_id", e.ID.String())
	}
	return nil
}

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id kernel.EmployeeID) (*employee.Employee, error) {
	var e employee.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	if err := r.db.GetContext(ctx, &e, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound().WithDetail("employee_id", id.String())
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id kernel.EmployeeID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return employee.ErrEmployeeNotFound().WithDetail("employee_id", id.String())
	}
	return nil
}

func (r *PostgresEmployeeRepository) List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (kernel.Paginated[employee.Employee], error) {
	pagination = pagination.Normalize()

	where := ""
	args := []any{}
	if role != nil {
		where = " WHERE role = $1"
		args = append(args, role.String())
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM employees`+where, args...); err != nil {
		return kernel.Paginated[employee.Employee]{}, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employees%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		employeeColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	employees := []employee.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return kernel.Paginated[employee.Employee]{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return kernel.NewPaginated(employees, pagination, total), nil
}

func mapWriteError(err error, e *employee.Employee, op string) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
		return employee.ErrEmployeeAlreadyExists().WithDetail("email", e.Email)
	}
	return fmt.Errorf("failed to %s employee: %w", op, err)
}
