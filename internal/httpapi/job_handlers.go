package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jobly/api-service/internal/job"
)

var decimalOne = decimal.NewFromInt(1)

// equityInRange checks the [0, 1] bound on an optional equity value.
func equityInRange(eq *decimal.Decimal) bool {
	return eq == nil || (!eq.IsNegative() && !eq.GreaterThan(decimalOne))
}

func jobID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

type jobNewRequest struct {
	Title         string           `json:"title" binding:"required"`
	Salary        *int             `json:"salary" binding:"omitempty,min=0"`
	Equity        *decimal.Decimal `json:"equity"`
	CompanyHandle string           `json:"companyHandle" binding:"required"`
}

// POST /jobs → 201 {job}
func (h *Handler) createJob(c *gin.Context) {
	var req jobNewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !equityInRange(req.Equity) {
		badRequest(c, "equity must be between 0 and 1")
		return
	}

	created, err := h.jobs.Create(c.Request.Context(), job.CreateInput{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidateCompany(c.Request.Context(), created.CompanyHandle)
	c.JSON(http.StatusCreated, gin.H{"job": created})
}

// GET /jobs?title=&minSalary=&hasEquity= → {jobs}
func (h *Handler) listJobs(c *gin.Context) {
	minSalary, ok := optionalIntQuery(c, "minSalary")
	if !ok {
		badRequest(c, "minSalary must be an integer")
		return
	}

	f := job.Filter{MinSalary: minSalary}
	if title, ok := c.GetQuery("title"); ok && title != "" {
		f.Title = &title
	}
	if raw, ok := c.GetQuery("hasEquity"); ok && raw != "" {
		hasEquity, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "hasEquity must be a boolean")
			return
		}
		f.HasEquity = &hasEquity
	}

	jobs, err := h.jobs.FindAll(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GET /jobs/:id → {job}
func (h *Handler) getJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		badRequest(c, "job id must be an integer")
		return
	}

	j, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": j})
}

type jobUpdateRequest struct {
	Title  *string          `json:"title"`
	Salary *int             `json:"salary"`
	Equity *decimal.Decimal `json:"equity"`
}

// PATCH /jobs/:id → {job}
//
// Unknown fields are disallowed so neither the id nor the company handle can
// ride along in the payload.
func (h *Handler) updateJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		badRequest(c, "job id must be an integer")
		return
	}

	var req jobUpdateRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(c, "invalid update payload: "+err.Error())
		return
	}
	if req.Salary != nil && *req.Salary < 0 {
		badRequest(c, "salary must be non-negative")
		return
	}
	if !equityInRange(req.Equity) {
		badRequest(c, "equity must be between 0 and 1")
		return
	}

	updated, err := h.jobs.Update(c.Request.Context(), id, job.Update{
		Title:  req.Title,
		Salary: req.Salary,
		Equity: req.Equity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidateCompany(c.Request.Context(), updated.CompanyHandle)
	c.JSON(http.StatusOK, gin.H{"job": updated})
}

// DELETE /jobs/:id → {deleted}
func (h *Handler) deleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		badRequest(c, "job id must be an integer")
		return
	}

	// Look the job up first so the parent company's cached detail can be
	// dropped after the delete.
	var handle string
	if h.invalidate != nil {
		if j, err := h.jobs.Get(c.Request.Context(), id); err == nil {
			handle = j.CompanyHandle
		}
	}

	if err := h.jobs.Remove(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	if handle != "" {
		h.invalidateCompany(c.Request.Context(), handle)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
