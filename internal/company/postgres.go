package company

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

// Postgres error codes used to classify constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresRepository implements Repository against a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const companyColumns = `handle, name, description, num_employees, logo_url`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a company. The duplicate pre-check gives the friendly error
// path; the unique constraint remains the authoritative backstop under
// concurrent creates, so a 23505 from the insert maps to the same conflict.
func (r *PostgresRepository) Create(ctx context.Context, c Company) (*Company, error) {
	var existing string
	err := r.pool.QueryRow(ctx,
		`SELECT handle FROM companies WHERE handle = $1`, c.Handle,
	).Scan(&existing)
	if err == nil {
		return nil, apperr.Conflict("duplicate company: %s", c.Handle)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Internal("company duplicate check", err)
	}

	created, err := scanCompany(r.pool.QueryRow(ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+companyColumns,
		c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperr.Conflict("duplicate company: %s", c.Handle)
		}
		return nil, apperr.Internal("insert company", err)
	}
	return created, nil
}

// FindAll fetches every company ordered by name, then filters in memory.
// The ordering is a property of the unfiltered fetch and survives filtering.
func (r *PostgresRepository) FindAll(ctx context.Context, f Filter) ([]Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, apperr.Internal("query companies", err)
	}
	defer rows.Close()

	companies := make([]Company, 0)
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
			return nil, apperr.Internal("scan company", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("iterate companies", err)
	}

	return f.Apply(companies), nil
}

// Get returns the company plus its jobs sub-collection.
func (r *PostgresRepository) Get(ctx context.Context, handle string) (*Detail, error) {
	c, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no company: %s", handle)
		}
		return nil, apperr.Internal("query company", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, salary, equity::text
		 FROM jobs
		 WHERE company_handle = $1
		 ORDER BY id`, handle)
	if err != nil {
		return nil, apperr.Internal("query company jobs", err)
	}
	defer rows.Close()

	jobs := make([]JobSummary, 0)
	for rows.Next() {
		var (
			j      JobSummary
			equity *string
		)
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &equity); err != nil {
			return nil, apperr.Internal("scan company job", err)
		}
		if equity != nil {
			d, err := decimal.NewFromString(*equity)
			if err != nil {
				return nil, apperr.Internal("parse job equity", err)
			}
			j.Equity = &d
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("iterate company jobs", err)
	}

	return &Detail{Company: *c, Jobs: jobs}, nil
}

// Update applies the partial update and returns the resulting record.
func (r *PostgresRepository) Update(ctx context.Context, handle string, u Update) (*Company, error) {
	set, args, err := sqlgen.ForUpdate(u.Fields(), updateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`,
		set, len(args)+1, companyColumns)
	args = append(args, handle)

	updated, err := scanCompany(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no company: %s", handle)
		}
		return nil, apperr.Internal("update company", err)
	}
	return updated, nil
}

// Remove deletes the company; associated jobs cascade at the schema level.
func (r *PostgresRepository) Remove(ctx context.Context, handle string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return apperr.Internal("delete company", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("no company: %s", handle)
	}
	return nil
}
