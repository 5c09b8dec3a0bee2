// Package job holds the job model, filtering and repositories.
package job

import (
	"strings"

	"github.com/shopspring/decimal"

	"jobly/api-service/internal/sqlgen"
)

// Job is the canonical record shape returned across the API boundary.
// Equity is an exact-precision decimal (serialized as a string) so values
// like 0.075 never drift.
type Job struct {
	ID            int              `json:"id"`
	Title         string           `json:"title"`
	Salary        *int             `json:"salary"`
	Equity        *decimal.Decimal `json:"equity"`
	CompanyHandle string           `json:"companyHandle"`
}

// CreateInput is the payload for creating a job. The id is assigned by
// storage.
type CreateInput struct {
	Title         string
	Salary        *int
	Equity        *decimal.Decimal
	CompanyHandle string
}

// Update names the fields a partial update may change. The id and the
// company handle are immutable and have no slot here.
type Update struct {
	Title  *string
	Salary *int
	Equity *decimal.Decimal
}

// Fields flattens the provided (non-nil) members into ordered sqlgen fields.
// Job field names already match their storage columns, so no translation
// table is needed.
func (u Update) Fields() []sqlgen.Field {
	var fields []sqlgen.Field
	if u.Title != nil {
		fields = append(fields, sqlgen.Field{Name: "title", Value: *u.Title})
	}
	if u.Salary != nil {
		fields = append(fields, sqlgen.Field{Name: "salary", Value: *u.Salary})
	}
	if u.Equity != nil {
		// Sent as text so the exact decimal string reaches NUMERIC unchanged.
		fields = append(fields, sqlgen.Field{Name: "equity", Value: u.Equity.String()})
	}
	return fields
}

// Filter is the optional search criteria for FindAll. Nil members do not
// filter. HasEquity is asymmetric: only a provided true activates the
// predicate; false and absent both mean "don't filter on equity".
type Filter struct {
	Title     *string
	MinSalary *int
	HasEquity *bool
}

// Apply keeps the jobs matching every provided criterion, preserving input
// order. A null salary fails any provided MinSalary bound; HasEquity keeps
// only jobs whose equity is present and strictly positive.
func (f Filter) Apply(jobs []Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Title != nil && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(*f.Title)) {
			continue
		}
		if f.MinSalary != nil && (j.Salary == nil || *j.Salary < *f.MinSalary) {
			continue
		}
		if f.HasEquity != nil && *f.HasEquity {
			if j.Equity == nil || !j.Equity.IsPositive() {
				continue
			}
		}
		out = append(out, j)
	}
	return out
}
