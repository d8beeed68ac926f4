package leadinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/lead"
	"github.com/jmoiron/sqlx"
)

const leadColumns = `id, name, email, phone, source, position, notes, status, resume_id, created_by, created_at, updated_at`

type PostgresLeadRepository struct {
	db *sqlx.DB
}

func NewPostgresLeadRepository(db *sqlx.DB) *PostgresLeadRepository {
	return &PostgresLeadRepository{db: db}
}

var _ lead.Repository = (*PostgresLeadRepository)(nil)

func (r *PostgresLeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES (
			:id, :name, :email, :phone, :source, :position, :notes,
			:status, :resume_id, :created_by, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, l); err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (r *PostgresLeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	query := `
		UPDATE leads SET
			name = :name,
			email = :email,
			phone = :phone,
			source = :source,
			position = :position,
			notes = :notes,
			status = :status,
			resume_id = :resume_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, l)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return lead.ErrLeadNotFound().WithDetail("lead_id", l.ID.String())
	}
	return nil
}

func (r *PostgresLeadRepository) GetByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	var l lead.Lead
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	if err := r.db.GetContext(ctx, &l, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &l, nil
}

func (r *PostgresLeadRepository) Delete(ctx context.Context, id kernel.LeadID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}
	return nil
}

func (r *PostgresLeadRepository) List(ctx context.Context, filter lead.ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[lead.Lead], error) {
	pagination = pagination.Normalize()
	where, args := buildWhere(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM leads`+where, args...); err != nil {
		return kernel.Paginated[lead.Lead]{}, fmt.Errorf("failed to count leads: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM leads%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	leads := []lead.Lead{}
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return kernel.Paginated[lead.Lead]{}, fmt.Errorf("failed to list leads: %w", err)
	}

	return kernel.NewPaginated(leads, pagination, total), nil
}

func buildWhere(filter lead.ListFilter) (string, []any) {
	var conditions []string
	var args []any
	argPos := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status.String())
		argPos++
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR position ILIKE $%d OR source ILIKE $%d)",
			argPos, argPos, argPos, argPos, argPos))
		args = append(args, "%"+q+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
