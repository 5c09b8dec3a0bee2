package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"jobly/api-service/internal/apperr"
	"jobly/api-service/internal/sqlgen"
)

const pgForeignKeyViolation = "23503"

// PostgresRepository implements Repository against a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// equity is selected as text and parsed, keeping NUMERIC exact end to end.
const jobColumns = `id, title, salary, equity::text, company_handle`

func scanJob(row pgx.Row) (*Job, error) {
	var (
		j      Job
		equity *string
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	if equity != nil {
		d, err := decimal.NewFromString(*equity)
		if err != nil {
			return nil, fmt.Errorf("parse equity: %w", err)
		}
		j.Equity = &d
	}
	return &j, nil
}

// Create inserts a job after checking the referenced company exists. The
// foreign key remains the authoritative backstop: a 23503 from the insert
// maps to the same bad-reference error as the pre-check.
func (r *PostgresRepository) Create(ctx context.Context, in CreateInput) (*Job, error) {
	var one int
	err := r.pool.QueryRow(ctx,
		`SELECT 1 FROM companies WHERE handle = $1`, in.CompanyHandle,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.BadReference("no company: %s", in.CompanyHandle)
	}
	if err != nil {
		return nil, apperr.Internal("company existence check", err)
	}

	// Equity travels as text so the exact decimal string reaches NUMERIC
	// unchanged.
	var equity *string
	if in.Equity != nil {
		s := in.Equity.String()
		equity = &s
	}

	created, err := scanJob(r.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobColumns,
		in.Title, in.Salary, equity, in.CompanyHandle,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, apperr.BadReference("no company: %s", in.CompanyHandle)
		}
		return nil, apperr.Internal("insert job", err)
	}
	return created, nil
}

// FindAll fetches every job in id order, then filters in memory.
func (r *PostgresRepository) FindAll(ctx context.Context, f Filter) ([]Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY id`)
	if err != nil {
		return nil, apperr.Internal("query jobs", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, apperr.Internal("scan job", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("iterate jobs", err)
	}

	return f.Apply(jobs), nil
}

// Get returns the job with the given id.
func (r *PostgresRepository) Get(ctx context.Context, id int) (*Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no job: %d", id)
		}
		return nil, apperr.Internal("query job", err)
	}
	return j, nil
}

// Update applies the partial update and returns the resulting record.
func (r *PostgresRepository) Update(ctx context.Context, id int, u Update) (*Job, error) {
	set, args, err := sqlgen.ForUpdate(u.Fields(), nil)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		set, len(args)+1, jobColumns)
	args = append(args, id)

	updated, err := scanJob(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no job: %d", id)
		}
		return nil, apperr.Internal("update job", err)
	}
	return updated, nil
}

// Remove deletes the job with the given id.
func (r *PostgresRepository) Remove(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal("delete job", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("no job: %d", id)
	}
	return nil
}
