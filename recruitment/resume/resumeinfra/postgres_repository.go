package resumeinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresResumeRepository struct {
	db *sqlx.DB
}

func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

// ============================================================================
// CRUD Operations
// ============================================================================

// Create inserts the resume and its initial history in one transaction
func (r *PostgresResumeRepository) Create(ctx context.Context, model *resume.Resume) error {
	row, err := fromDomain(model)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO resumes (` + resumeColumns + `
		) VALUES (
			:id, :candidate_name, :email, :phone, :position, :experience_years,
			:status, :employee_feedback, :hr_feedback, :latest_feedback, :hr_owner_name,
			:resume_file_name, :file_key, :created_by, :interview,
			:created_at, :updated_at
		)`

	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return resume.ErrInvalidResumeData().
				WithDetail("resume_id", model.ID).
				WithDetail("reason", "duplicate id")
		}
		return fmt.Errorf("failed to insert resume: %w", err)
	}

	if err := insertPendingHistory(ctx, tx, model); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resume: %w", err)
	}
	return nil
}

// Update locks the row, applies fn and writes the result together with the
// history appended by fn
func (r *PostgresResumeRepository) Update(ctx context.Context, id kernel.ResumeID, fn resume.MutateFunc) (*resume.Resume, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row resumeRow
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, fmt.Errorf("failed to lock resume: %w", err)
	}

	model, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	if model.History, err = loadHistory(ctx, tx, id); err != nil {
		return nil, err
	}

	if err := fn(model); err != nil {
		return nil, err
	}

	updated, err := fromDomain(model)
	if err != nil {
		return nil, err
	}

	update := `
		UPDATE resumes SET
			candidate_name = :candidate_name,
			email = :email,
			phone = :phone,
			position = :position,
			experience_years = :experience_years,
			status = :status,
			employee_feedback = :employee_feedback,
			hr_feedback = :hr_feedback,
			latest_feedback = :latest_feedback,
			hr_owner_name = :hr_owner_name,
			interview = :interview,
			updated_at = :updated_at
		WHERE id = :id`

	if _, err := tx.NamedExecContext(ctx, update, updated); err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}

	if err := insertPendingHistory(ctx, tx, model); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit resume update: %w", err)
	}
	return model, nil
}

// GetByID retrieves a resume with its history
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	var row resumeRow
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	model, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	if model.History, err = loadHistory(ctx, r.db, id); err != nil {
		return nil, err
	}
	return model, nil
}

// Delete removes a resume. History rows go with it by cascade.
func (r *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	var row resumeRow
	query := `DELETE FROM resumes WHERE id = $1 RETURNING ` + resumeColumns
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
		}
		return nil, fmt.Errorf("failed to delete resume: %w", err)
	}
	return row.ToDomain()
}

func (r *PostgresResumeRepository) Exists(ctx context.Context, id kernel.ResumeID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM resumes WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id.String()); err != nil {
		return false, fmt.Errorf("failed to check resume existence: %w", err)
	}
	return exists, nil
}

// ============================================================================
// Listing
// ============================================================================

// List retrieves a page of resumes, newest first, with their history
func (r *PostgresResumeRepository) List(ctx context.Context, filter resume.ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[resume.Resume], error) {
	pagination = pagination.Normalize()
	where, args := buildWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM resumes` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return kernel.Paginated[resume.Resume]{}, fmt.Errorf("failed to count resumes: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM resumes%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		resumeColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, pagination.Offset())

	rows := []resumeRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return kernel.Paginated[resume.Resume]{}, fmt.Errorf("failed to list resumes: %w", err)
	}

	resumes, err := toDomainList(rows)
	if err != nil {
		return kernel.Paginated[resume.Resume]{}, err
	}
	if err := r.attachHistory(ctx, resumes); err != nil {
		return kernel.Paginated[resume.Resume]{}, err
	}

	return kernel.NewPaginated(resumes, pagination, total), nil
}

// ListAll returns every matching resume without history
func (r *PostgresResumeRepository) ListAll(ctx context.Context, filter resume.ListFilter) ([]resume.Resume, error) {
	where, args := buildWhere(filter)
	query := `SELECT ` + resumeColumns + ` FROM resumes` + where + ` ORDER BY created_at DESC`

	rows := []resumeRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list resumes for export: %w", err)
	}
	return toDomainList(rows)
}

func buildWhere(filter resume.ListFilter) (string, []any) {
	var conditions []string
	var args []any
	argPos := 1

	if filter.CreatedBy != nil {
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", argPos))
		args = append(args, filter.CreatedBy.String())
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status.String())
		argPos++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(candidate_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR position ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+q+"%")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func toDomainList(rows []resumeRow) ([]resume.Resume, error) {
	resumes := make([]resume.Resume, 0, len(rows))
	for i := range rows {
		model, err := rows[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map resume %s: %w", rows[i].ID, err)
		}
		resumes = append(resumes, *model)
	}
	return resumes, nil
}

// ============================================================================
// History
// ============================================================================

func loadHistory(ctx context.Context, q sqlx.QueryerContext, id kernel.ResumeID) ([]resume.HistoryEntry, error) {
	rows := []historyRow{}
	query := `SELECT seq, resume_id, status, note, actor_id, at FROM resume_history WHERE resume_id = $1 ORDER BY seq`
	if err := sqlx.SelectContext(ctx, q, &rows, query, id.String()); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]resume.HistoryEntry, 0, len(rows))
	for _, h := range rows {
		history = append(history, h.ToDomain())
	}
	return history, nil
}

// attachHistory loads the history of a page in a single query
func (r *PostgresResumeRepository) attachHistory(ctx context.Context, resumes []resume.Resume) error {
	if len(resumes) == 0 {
		return nil
	}

	ids := make([]string, len(resumes))
	index := make(map[string]int, len(resumes))
	for i, m := range resumes {
		ids[i] = m.ID.String()
		index[m.ID.String()] = i
		resumes[i].History = []resume.HistoryEntry{}
	}

	rows := []historyRow{}
	query := `SELECT seq, resume_id, status, note, actor_id, at FROM resume_history WHERE resume_id = ANY($1) ORDER BY seq`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	for _, h := range rows {
		if i, ok := index[h.ResumeID]; ok {
			resumes[i].History = append(resumes[i].History, h.ToDomain())
		}
	}
	return nil
}

// insertPendingHistory writes entries without a seq and stores the seq
// assigned by the database back on the model
func insertPendingHistory(ctx context.Context, tx *sqlx.Tx, model *resume.Resume) error {
	query := `
		INSERT INTO resume_history (resume_id, status, note, actor_id, at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq`

	for i := range model.History {
		h := &model.History[i]
		if h.IsPersisted() {
			continue
		}
		if err := tx.QueryRowxContext(ctx, query,
			model.ID.String(), string(h.Status), h.Note, h.ActorID.String(), h.At,
		).Scan(&h.Seq); err != nil {
			return fmt.Errorf("failed to insert history: %w", err)
		}
	}
	return nil
}
