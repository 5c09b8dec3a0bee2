package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobly/api-service/internal/company"
	"jobly/api-service/internal/job"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// CompanyInvalidator drops a cached company detail. Job mutations use it so
// the cached sub-collection never outlives a job write.
type CompanyInvalidator interface {
	Invalidate(ctx context.Context, handle string)
}

// Handler holds shared dependencies for all routes.
type Handler struct {
	companies  company.Repository
	jobs       job.Repository
	invalidate CompanyInvalidator // may be nil when caching is disabled
}

// NewHandler returns a configured Handler. invalidate may be nil.
func NewHandler(companies company.Repository, jobs job.Repository, invalidate CompanyInvalidator) *Handler {
	return &Handler{companies: companies, jobs: jobs, invalidate: invalidate}
}

// NewRouter builds the Gin engine: CORS, health check, open read routes and
// admin-gated mutation routes.
func NewRouter(h *Handler, jwtSecret []byte) *gin.Engine {
	e := gin.New()
	e.Use(gin.Logger(), gin.Recovery())
	e.Use(cors.Default())

	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "jobly-api",
			"version": Version,
		})
	})

	companies := e.Group("/companies")
	companies.GET("", h.listCompanies)
	companies.GET("/:handle", h.getCompany)

	jobs := e.Group("/jobs")
	jobs.GET("", h.listJobs)
	jobs.GET("/:id", h.getJob)

	admin := RequireAdmin(jwtSecret)
	companies.POST("", admin, h.createCompany)
	companies.PATCH("/:handle", admin, h.updateCompany)
	companies.DELETE("/:handle", admin, h.deleteCompany)
	jobs.POST("", admin, h.createJob)
	jobs.PATCH("/:id", admin, h.updateJob)
	jobs.DELETE("/:id", admin, h.deleteJob)

	return e
}

// invalidateCompany is a nil-safe helper around the optional cache.
func (h *Handler) invalidateCompany(ctx context.Context, handle string) {
	if h.invalidate != nil {
		h.invalidate.Invalidate(ctx, handle)
	}
}
