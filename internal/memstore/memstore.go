// Package memstore is an in-memory implementation of the company and job
// repositories. It backs the handler and repository tests so the core stays
// testable without a live database, while honoring the same contract:
// identical error kinds, name-ordered company listings, cascading deletes.
package memstore

import (
	"context"
	"sort"
	"sync"

	"jobly/api-service/internal/apperr"
	"jobly/api-service/internal/company"
	"jobly/api-service/internal/job"
)

// Store holds both entity sets behind one lock so referential checks and
// cascades stay consistent.
type Store struct {
	mu        sync.Mutex
	companies map[string]company.Company
	jobs      map[int]job.Job
	nextJobID int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		companies: make(map[string]company.Company),
		jobs:      make(map[int]job.Job),
		nextJobID: 1,
	}
}

// Companies returns the company.Repository view of the store.
func (s *Store) Companies() company.Repository { return &companyRepo{s} }

// Jobs returns the job.Repository view of the store.
func (s *Store) Jobs() job.Repository { return &jobRepo{s} }

// sortedCompanies returns all companies ordered by name.
func (s *Store) sortedCompanies() []company.Company {
	out := make([]company.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// sortedJobs returns all jobs in id order.
func (s *Store) sortedJobs() []job.Job {
	out := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ─── company.Repository ─────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(_ context.Context, c company.Company) (*company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[c.Handle]; ok {
		return nil, apperr.Conflict("duplicate company: %s", c.Handle)
	}
	r.s.companies[c.Handle] = c
	out := c
	return &out, nil
}

func (r *companyRepo) FindAll(_ context.Context, f company.Filter) ([]company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return f.Apply(r.s.sortedCompanies()), nil
}

func (r *companyRepo) Get(_ context.Context, handle string) (*company.Detail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[handle]
	if !ok {
		return nil, apperr.NotFound("no company: %s", handle)
	}

	jobs := make([]company.JobSummary, 0)
	for _, j := range r.s.sortedJobs() {
		if j.CompanyHandle == handle {
			jobs = append(jobs, company.JobSummary{
				ID:     j.ID,
				Title:  j.Title,
				Salary: j.Salary,
				Equity: j.Equity,
			})
		}
	}
	return &company.Detail{Company: c, Jobs: jobs}, nil
}

func (r *companyRepo) Update(_ context.Context, handle string, u company.Update) (*company.Company, error) {
	if len(u.Fields()) == 0 {
		return nil, apperr.BadRequest("no data supplied")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[handle]
	if !ok {
		return nil, apperr.NotFound("no company: %s", handle)
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.NumEmployees != nil {
		c.NumEmployees = u.NumEmployees
	}
	if u.LogoURL != nil {
		c.LogoURL = u.LogoURL
	}
	r.s.companies[handle] = c
	out := c
	return &out, nil
}

func (r *companyRepo) Remove(_ context.Context, handle string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[handle]; !ok {
		return apperr.NotFound("no company: %s", handle)
	}
	delete(r.s.companies, handle)
	for id, j := range r.s.jobs {
		if j.CompanyHandle == handle {
			delete(r.s.jobs, id)
		}
	}
	return nil
}

// ─── job.Repository ─────────────────────────────────────────────────────────

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(_ context.Context, in job.CreateInput) (*job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[in.CompanyHandle]; !ok {
		return nil, apperr.BadReference("no company: %s", in.CompanyHandle)
	}

	j := job.Job{
		ID:            r.s.nextJobID,
		Title:         in.Title,
		Salary:        in.Salary,
		Equity:        in.Equity,
		CompanyHandle: in.CompanyHandle,
	}
	r.s.nextJobID++
	r.s.jobs[j.ID] = j
	out := j
	return &out, nil
}

func (r *jobRepo) FindAll(_ context.Context, f job.Filter) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return f.Apply(r.s.sortedJobs()), nil
}

func (r *jobRepo) Get(_ context.Context, id int) (*job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return nil, apperr.NotFound("no job: %d", id)
	}
	out := j
	return &out, nil
}

func (r *jobRepo) Update(_ context.Context, id int, u job.Update) (*job.Job, error) {
	if len(u.Fields()) == 0 {
		return nil, apperr.BadRequest("no data supplied")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return nil, apperr.NotFound("no job: %d", id)
	}
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Salary != nil {
		j.Salary = u.Salary
	}
	if u.Equity != nil {
		j.Equity = u.Equity
	}
	r.s.jobs[id] = j
	out := j
	return &out, nil
}

func (r *jobRepo) Remove(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return apperr.NotFound("no job: %d", id)
	}
	delete(r.s.jobs, id)
	return nil
}
