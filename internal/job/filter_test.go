package job_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"jobly/api-service/internal/job"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleJobs() []job.Job {
	return []job.Job{
		{ID: 1, Title: "Backend Engineer", Salary: intPtr(100000), Equity: decPtr("0.05"), CompanyHandle: "acme"},
		{ID: 2, Title: "Frontend Engineer", Salary: intPtr(90000), Equity: decPtr("0"), CompanyHandle: "acme"},
		{ID: 3, Title: "Designer", Salary: nil, Equity: nil, CompanyHandle: "globex"},
		{ID: 4, Title: "Engineering Manager", Salary: intPtr(150000), Equity: decPtr("0.1"), CompanyHandle: "globex"},
	}
}

func ids(jobs []job.Job) []int {
	out := make([]int, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestFilterApply(t *testing.T) {
	cases := []struct {
		name   string
		filter job.Filter
		want   []int
	}{
		{
			name: "no criteria keeps everything",
			want: []int{1, 2, 3, 4},
		},
		{
			name:   "title substring is case-insensitive",
			filter: job.Filter{Title: strPtr("engineer")},
			want:   []int{1, 2, 4},
		},
		{
			name:   "minSalary excludes lower and null salaries",
			filter: job.Filter{MinSalary: intPtr(95000)},
			want:   []int{1, 4},
		},
		{
			name:   "zero minSalary still excludes null salaries",
			filter: job.Filter{MinSalary: intPtr(0)},
			want:   []int{1, 2, 4},
		},
		{
			name:   "hasEquity true excludes null and zero equity",
			filter: job.Filter{HasEquity: boolPtr(true)},
			want:   []int{1, 4},
		},
		{
			name:   "hasEquity false does not filter",
			filter: job.Filter{HasEquity: boolPtr(false)},
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "criteria combine with AND",
			filter: job.Filter{Title: strPtr("engineer"), HasEquity: boolPtr(true), MinSalary: intPtr(120000)},
			want:   []int{4},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ids(c.filter.Apply(sampleJobs()))
			if len(got) != len(c.want) {
				t.Fatalf("Apply kept %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("Apply kept %v, want %v (order must be stable)", got, c.want)
					break
				}
			}
		})
	}
}

func TestUpdateFields_OrderAndOmission(t *testing.T) {
	u := job.Update{
		Salary: intPtr(120000),
		Equity: decPtr("0.2"),
	}

	fields := u.Fields()
	if len(fields) != 2 {
		t.Fatalf("Fields returned %d entries, want 2", len(fields))
	}
	if fields[0].Name != "salary" || fields[1].Name != "equity" {
		t.Errorf("Fields order = [%s, %s], want [salary, equity]", fields[0].Name, fields[1].Name)
	}
}

func TestUpdateFields_Empty(t *testing.T) {
	if fields := (job.Update{}).Fields(); len(fields) != 0 {
		t.Errorf("empty Update produced %d fields, want 0", len(fields))
	}
}
