package userinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Abraxas-365/hiretrack/iam/user"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `id, name, email, password_hash, role, department, created_by, created_at, updated_at`

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var _ user.Repository = (*PostgresUserRepository)(nil)

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :name, :email, :password_hash, :role, :department, :created_by, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String(), "user_id")
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.String(), "email")
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query, arg, detail string) (*user.User, error) {
	var u user.User
	if err := r.db.GetContext(ctx, &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound().WithDetail(detail, arg)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (kernel.Paginated[user.User], error) {
	pagination = pagination.Normalize()

	where := ""
	args := []any{}
	if role != nil {
		where = " WHERE role = $1"
		args = append(args, role.String())
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return kernel.Paginated[user.User]{}, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	users := []user.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return kernel.Paginated[user.User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	return kernel.NewPaginated(users, pagination, total), nil
}

func (r *PostgresUserRepository) ExistsWithRole(ctx context.Context, role auth.Role) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`, role.String()); err != nil {
		return false, fmt.Errorf("failed to check users by role: %w", err)
	}
	return exists, nil
}
