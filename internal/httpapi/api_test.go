package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"jobly/api-service/internal/company"
	"jobly/api-service/internal/httpapi"
	"jobly/api-service/internal/job"
	"jobly/api-service/internal/memstore"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, isAdmin bool) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "testuser",
		"isAdmin": isAdmin,
	})
	s, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

type testAPI struct {
	store  *memstore.Store
	router *gin.Engine
	admin  string
	user   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memstore.New()
	h := httpapi.NewHandler(store.Companies(), store.Jobs(), nil)
	return &testAPI{
		store:  store,
		router: httpapi.NewRouter(h, testSecret),
		admin:  signToken(t, true),
		user:   signToken(t, false),
	}
}

// do issues a request; token may be empty for anonymous calls.
func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) seedCompany(t *testing.T, handle, name string, numEmployees int) {
	t.Helper()
	n := numEmployees
	_, err := a.store.Companies().Create(context.Background(), company.Company{
		Handle: handle, Name: name, NumEmployees: &n,
	})
	if err != nil {
		t.Fatalf("seed company %s: %v", handle, err)
	}
}

func (a *testAPI) seedJob(t *testing.T, title, handle string) *job.Job {
	t.Helper()
	j, err := a.store.Jobs().Create(context.Background(), job.CreateInput{
		Title: title, CompanyHandle: handle,
	})
	if err != nil {
		t.Fatalf("seed job %s: %v", title, err)
	}
	return j
}

func itoa(n int) string { return strconv.Itoa(n) }

func mustDec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return &d
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

// ─── Health ────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", w.Code)
	}
}

// ─── Auth ──────────────────────────────────────────────────────────────────

func TestMutationsRequireAdmin(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	body := `{"handle":"new","name":"New Co"}`

	if w := a.do(http.MethodPost, "/companies", "", body); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous POST /companies = %d, want 401", w.Code)
	}
	if w := a.do(http.MethodPost, "/companies", "garbage-token", body); w.Code != http.StatusUnauthorized {
		t.Errorf("bad-token POST /companies = %d, want 401", w.Code)
	}
	if w := a.do(http.MethodPost, "/companies", a.user, body); w.Code != http.StatusForbidden {
		t.Errorf("non-admin POST /companies = %d, want 403", w.Code)
	}
	if w := a.do(http.MethodDelete, "/companies/acme", a.user, ""); w.Code != http.StatusForbidden {
		t.Errorf("non-admin DELETE = %d, want 403", w.Code)
	}
}

func TestReadsAreOpen(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	if w := a.do(http.MethodGet, "/companies", "", ""); w.Code != http.StatusOK {
		t.Errorf("anonymous GET /companies = %d, want 200", w.Code)
	}
	if w := a.do(http.MethodGet, "/companies/acme", "", ""); w.Code != http.StatusOK {
		t.Errorf("anonymous GET /companies/acme = %d, want 200", w.Code)
	}
	if w := a.do(http.MethodGet, "/jobs", "", ""); w.Code != http.StatusOK {
		t.Errorf("anonymous GET /jobs = %d, want 200", w.Code)
	}
}

// ─── Companies ─────────────────────────────────────────────────────────────

func TestCreateCompany(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/companies", a.admin,
		`{"handle":"acme","name":"Acme Corp","description":"Anvils","numEmployees":250,"logoUrl":"https://acme.example/logo.png"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /companies = %d, body %s", w.Code, w.Body.String())
	}

	var got struct {
		Company company.Company `json:"company"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Company.Handle != "acme" || got.Company.Name != "Acme Corp" || *got.Company.NumEmployees != 250 {
		t.Errorf("created company = %+v", got.Company)
	}
}

func TestCreateCompanyValidation(t *testing.T) {
	a := newTestAPI(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"handle":"acme"}`},
		{"negative employees", `{"handle":"acme","name":"Acme","numEmployees":-1}`},
		{"bad logo url", `{"handle":"acme","name":"Acme","logoUrl":"not-a-url"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := a.do(http.MethodPost, "/companies", a.admin, c.body); w.Code != http.StatusBadRequest {
				t.Errorf("POST /companies = %d, want 400", w.Code)
			}
		})
	}
}

func TestCreateCompanyDuplicate(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	w := a.do(http.MethodPost, "/companies", a.admin, `{"handle":"acme","name":"Acme Again"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate POST /companies = %d, want 409", w.Code)
	}
}

func TestListCompaniesFiltering(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "c1", "C1", 1)
	a.seedCompany(t, "c2", "C2", 2)
	a.seedCompany(t, "c3", "C3", 3)

	w := a.do(http.MethodGet, "/companies?minEmployees=2&maxEmployees=3", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /companies = %d, body %s", w.Code, w.Body.String())
	}
	var got struct {
		Companies []company.Company `json:"companies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Companies) != 2 || got.Companies[0].Handle != "c2" || got.Companies[1].Handle != "c3" {
		t.Errorf("filtered companies = %+v, want [c2 c3]", got.Companies)
	}
}

func TestListCompaniesBadFilters(t *testing.T) {
	a := newTestAPI(t)

	if w := a.do(http.MethodGet, "/companies?minEmployees=500&maxEmployees=300", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("min>max GET /companies = %d, want 400", w.Code)
	}
	if w := a.do(http.MethodGet, "/companies?minEmployees=abc", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric minEmployees = %d, want 400", w.Code)
	}
}

func TestGetCompanyWithJobs(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)
	a.seedJob(t, "Engineer", "acme")

	w := a.do(http.MethodGet, "/companies/acme", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /companies/acme = %d", w.Code)
	}
	var got struct {
		Company struct {
			Handle string                       `json:"handle"`
			Jobs   []map[string]json.RawMessage `json:"jobs"`
		} `json:"company"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Company.Jobs) != 1 {
		t.Fatalf("company jobs = %+v, want 1 entry", got.Company.Jobs)
	}
	if _, present := got.Company.Jobs[0]["companyHandle"]; present {
		t.Error("job under company detail must not carry companyHandle")
	}

	if w := a.do(http.MethodGet, "/companies/ghost", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /companies/ghost = %d, want 404", w.Code)
	}
}

func TestUpdateCompany(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	w := a.do(http.MethodPatch, "/companies/acme", a.admin, `{"name":"Acme Holdings"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH /companies/acme = %d, body %s", w.Code, w.Body.String())
	}
	var got struct {
		Company company.Company `json:"company"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Company.Name != "Acme Holdings" || got.Company.Handle != "acme" {
		t.Errorf("updated company = %+v", got.Company)
	}
}

func TestUpdateCompanyErrors(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"empty payload", "/companies/acme", `{}`, http.StatusBadRequest},
		{"handle smuggled in", "/companies/acme", `{"handle":"oops","name":"X"}`, http.StatusBadRequest},
		{"unknown company", "/companies/ghost", `{"name":"X"}`, http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := a.do(http.MethodPatch, c.path, a.admin, c.body); w.Code != c.want {
				t.Errorf("PATCH %s = %d, want %d", c.path, w.Code, c.want)
			}
		})
	}
}

func TestDeleteCompany(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	w := a.do(http.MethodDelete, "/companies/acme", a.admin, "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /companies/acme = %d", w.Code)
	}
	body := decodeBody(t, w)
	if string(body["deleted"]) != `"acme"` {
		t.Errorf(`deleted = %s, want "acme"`, body["deleted"])
	}

	if w := a.do(http.MethodGet, "/companies/acme", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", w.Code)
	}
	if w := a.do(http.MethodDelete, "/companies/acme", a.admin, ""); w.Code != http.StatusNotFound {
		t.Errorf("second DELETE = %d, want 404", w.Code)
	}
}

// ─── Jobs ──────────────────────────────────────────────────────────────────

func TestCreateJob(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	w := a.do(http.MethodPost, "/jobs", a.admin,
		`{"title":"Engineer","salary":100000,"equity":"0.05","companyHandle":"acme"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /jobs = %d, body %s", w.Code, w.Body.String())
	}
	var got struct {
		Job job.Job `json:"job"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Job.ID == 0 || got.Job.Title != "Engineer" || got.Job.CompanyHandle != "acme" {
		t.Errorf("created job = %+v", got.Job)
	}
	if got.Job.Equity == nil || got.Job.Equity.String() != "0.05" {
		t.Errorf("created job equity = %v, want 0.05", got.Job.Equity)
	}
}

func TestCreateJobErrors(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing title", `{"companyHandle":"acme"}`, http.StatusBadRequest},
		{"negative salary", `{"title":"X","salary":-1,"companyHandle":"acme"}`, http.StatusBadRequest},
		{"equity above one", `{"title":"X","equity":"1.5","companyHandle":"acme"}`, http.StatusBadRequest},
		{"unknown company", `{"title":"X","companyHandle":"ghost"}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := a.do(http.MethodPost, "/jobs", a.admin, c.body); w.Code != c.want {
				t.Errorf("POST /jobs = %d, want %d (body %s)", w.Code, c.want, c.body)
			}
		})
	}
}

func TestListJobsFiltering(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)
	a.seedJob(t, "Engineer", "acme")

	eq := "0.1"
	sal := 150000
	_, err := a.store.Jobs().Create(context.Background(), job.CreateInput{
		Title: "Manager", Salary: &sal, Equity: mustDec(t, eq), CompanyHandle: "acme",
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}

	w := a.do(http.MethodGet, "/jobs?hasEquity=true", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /jobs = %d", w.Code)
	}
	var got struct {
		Jobs []job.Job `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].Title != "Manager" {
		t.Errorf("hasEquity=true jobs = %+v, want only Manager", got.Jobs)
	}

	if w := a.do(http.MethodGet, "/jobs?hasEquity=maybe", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("GET /jobs?hasEquity=maybe = %d, want 400", w.Code)
	}
	if w := a.do(http.MethodGet, "/jobs?minSalary=lots", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("GET /jobs?minSalary=lots = %d, want 400", w.Code)
	}
}

func TestGetJob(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)
	j := a.seedJob(t, "Engineer", "acme")

	w := a.do(http.MethodGet, "/jobs/"+itoa(j.ID), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /jobs/%d = %d", j.ID, w.Code)
	}

	if w := a.do(http.MethodGet, "/jobs/9999", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /jobs/9999 = %d, want 404", w.Code)
	}
	if w := a.do(http.MethodGet, "/jobs/abc", "", ""); w.Code != http.StatusBadRequest {
		t.Errorf("GET /jobs/abc = %d, want 400", w.Code)
	}
}

func TestUpdateAndDeleteJob(t *testing.T) {
	a := newTestAPI(t)
	a.seedCompany(t, "acme", "Acme Corp", 10)
	j := a.seedJob(t, "Engineer", "acme")

	w := a.do(http.MethodPatch, "/jobs/"+itoa(j.ID), a.admin, `{"salary":120000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH /jobs = %d, body %s", w.Code, w.Body.String())
	}
	var got struct {
		Job job.Job `json:"job"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Job.Salary == nil || *got.Job.Salary != 120000 {
		t.Errorf("updated salary = %v, want 120000", got.Job.Salary)
	}

	if w := a.do(http.MethodPatch, "/jobs/"+itoa(j.ID), a.admin, `{"companyHandle":"other"}`); w.Code != http.StatusBadRequest {
		t.Errorf("PATCH with companyHandle = %d, want 400 (immutable)", w.Code)
	}
	if w := a.do(http.MethodPatch, "/jobs/"+itoa(j.ID), a.admin, `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("PATCH with empty payload = %d, want 400", w.Code)
	}

	if w := a.do(http.MethodDelete, "/jobs/"+itoa(j.ID), a.admin, ""); w.Code != http.StatusOK {
		t.Errorf("DELETE /jobs = %d, want 200", w.Code)
	}
	if w := a.do(http.MethodGet, "/jobs/"+itoa(j.ID), "", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", w.Code)
	}
}
