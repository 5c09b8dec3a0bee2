package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobly/api-service/internal/company"
)

// optionalIntQuery returns the named query parameter as an int, nil when the
// parameter is absent. An empty value counts as absent; a non-numeric value
// is a client error.
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

type companyNewRequest struct {
	Handle       string  `json:"handle" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// POST /companies → 201 {company}
func (h *Handler) createCompany(c *gin.Context) {
	var req companyNewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.companies.Create(c.Request.Context(), company.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": created})
}

// GET /companies?minEmployees=&maxEmployees=&name= → {companies}
//
// minEmployees > maxEmployees is rejected here, before the repository runs:
// the filter engine itself does not validate the combination.
func (h *Handler) listCompanies(c *gin.Context) {
	min, ok := optionalIntQuery(c, "minEmployees")
	if !ok {
		badRequest(c, "minEmployees must be an integer")
		return
	}
	max, ok := optionalIntQuery(c, "maxEmployees")
	if !ok {
		badRequest(c, "maxEmployees must be an integer")
		return
	}
	if min != nil && max != nil && *min > *max {
		badRequest(c, "minEmployees cannot be greater than maxEmployees")
		return
	}

	f := company.Filter{MinEmployees: min, MaxEmployees: max}
	if name, ok := c.GetQuery("name"); ok && name != "" {
		f.Name = &name
	}

	companies, err := h.companies.FindAll(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// GET /companies/:handle → {company} with its jobs attached
func (h *Handler) getCompany(c *gin.Context) {
	detail, err := h.companies.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": detail})
}

type companyUpdateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// PATCH /companies/:handle → {company}
//
// The payload is decoded with unknown fields disallowed so the immutable
// handle cannot be smuggled into the update.
func (h *Handler) updateCompany(c *gin.Context) {
	var req companyUpdateRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(c, "invalid update payload: "+err.Error())
		return
	}
	if req.NumEmployees != nil && *req.NumEmployees < 0 {
		badRequest(c, "numEmployees must be non-negative")
		return
	}

	updated, err := h.companies.Update(c.Request.Context(), c.Param("handle"), company.Update{
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": updated})
}

// DELETE /companies/:handle → {deleted}
func (h *Handler) deleteCompany(c *gin.Context) {
	handle := c.Param("handle")
	if err := h.companies.Remove(c.Request.Context(), handle); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": handle})
}
