// Package company holds the company model, filtering and repositories.
package company

import (
	"strings"

	"github.com/shopspring/decimal"

	"jobly/api-service/internal/sqlgen"
)

// Company is the canonical record shape returned across the API boundary.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// JobSummary is a job as listed under its company. The company handle is
// implied by the parent record and omitted.
type JobSummary struct {
	ID     int              `json:"id"`
	Title  string           `json:"title"`
	Salary *int             `json:"salary"`
	Equity *decimal.Decimal `json:"equity"`
}

// Detail is a company together with its posted jobs. A company with no jobs
// carries an empty (never nil) slice.
type Detail struct {
	Company
	Jobs []JobSummary `json:"jobs"`
}

// Update names the fields a partial update may change. Nil means "leave
// untouched". The handle is immutable and deliberately has no slot here.
type Update struct {
	Name         *string
	Description  *string
	NumEmployees *int
	LogoURL      *string
}

// updateColumns translates update field names to their storage columns.
// The handle is never listed: it cannot be smuggled into a SET clause.
var updateColumns = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// Fields flattens the provided (non-nil) members into ordered sqlgen fields.
func (u Update) Fields() []sqlgen.Field {
	var fields []sqlgen.Field
	if u.Name != nil {
		fields = append(fields, sqlgen.Field{Name: "name", Value: *u.Name})
	}
	if u.Description != nil {
		fields = append(fields, sqlgen.Field{Name: "description", Value: *u.Description})
	}
	if u.NumEmployees != nil {
		fields = append(fields, sqlgen.Field{Name: "numEmployees", Value: *u.NumEmployees})
	}
	if u.LogoURL != nil {
		fields = append(fields, sqlgen.Field{Name: "logoUrl", Value: *u.LogoURL})
	}
	return fields
}

// Filter is the optional search criteria for FindAll. Nil members do not
// filter; a provided zero is an active criterion.
type Filter struct {
	MinEmployees *int
	MaxEmployees *int
	Name         *string
}

// Apply keeps the companies matching every provided criterion, preserving
// input order. Companies with an unknown employee count fail any provided
// min/max bound.
func (f Filter) Apply(companies []Company) []Company {
	out := make([]Company, 0, len(companies))
	for _, c := range companies {
		if f.MinEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees < *f.MinEmployees) {
			continue
		}
		if f.MaxEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees > *f.MaxEmployees) {
			continue
		}
		if f.Name != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*f.Name)) {
			continue
		}
		out = append(out, c)
	}
	return out
}
