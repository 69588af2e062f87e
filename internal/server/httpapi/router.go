// Package httpapi is the REST boundary of the server, built on gin.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/carebook/internal/logging"
	"github.com/dmitrijs2005/carebook/internal/server/metrics"
	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/dmitrijs2005/carebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

type IdentityService interface {
	RegisterIdentity(ctx context.Context, in services.RegisterInput, role models.Role) (*models.Identity, error)
	Authenticate(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetIdentity(ctx context.Context, id string) (*models.Identity, error)
	ListProfesionals(ctx context.Context) ([]*models.Identity, error)
	GetProfesional(ctx context.Context, id string) (*models.Identity, error)
}

type AppointmentService interface {
	Book(ctx context.Context, userID string, in services.BookInput) (*models.Appointment, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Appointment, error)
}

type ReportService interface {
	File(ctx context.Context, profesionalID string, in services.FileReportInput) (*models.Report, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Report, error)
	RenderPDF(ctx context.Context, userID string) ([]byte, error)
}

type ExerciseService interface {
	Create(ctx context.Context, userID string, in services.CreateExerciseInput) (*models.Exercise, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Exercise, error)
}

// TokenParser turns a bearer token into the identity id it was issued for.
type TokenParser interface {
	Parse(token string) (string, error)
}

type Deps struct {
	Identities   IdentityService
	Appointments AppointmentService
	Reports      ReportService
	Exercises    ExerciseService
	Tokens       TokenParser
	Metrics      *metrics.Metrics
	Log          logging.Logger
	CORSOrigin   string
}

type handler struct {
	identities   IdentityService
	appointments AppointmentService
	reports      ReportService
	exercises    ExerciseService
	log          logging.Logger
}

// NewRouter builds the gin engine with every route and middleware mounted.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log.With("module", "http")
	h := &handler{
		identities:   d.Identities,
		appointments: d.Appointments,
		reports:      d.Reports,
		exercises:    d.Exercises,
		log:          log,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(log, d.Metrics), corsPolicy(d.CORSOrigin))

	router.GET("/", sitemap(router))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	router.GET("/user", h.hello)
	router.POST("/sign-up", h.signUp(models.RoleUser))
	router.POST("/sign-up-profesional", h.signUp(models.RoleProfesional))
	router.POST("/log-in", h.logIn)
	router.GET("/me", requireAuth(d.Tokens), h.me)

	router.GET("/profesionals", h.listProfesionals)
	router.GET("/profesionals/:id", h.getProfesional)

	router.GET("/:id/dates", h.listDates)
	router.POST("/:id/dates", h.bookDate)
	router.GET("/:id/reports", h.listReports)
	router.POST("/:id/reports", h.fileReport)
	router.GET("/:id/reports/pdf", h.reportsPDF)
	router.GET("/:id/exercises", h.listExercises)
	router.POST("/:id/exercises", h.createExercise)

	return router
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// sitemap lists every mounted route.
func sitemap(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := router.Routes()
		out := make([]routeInfo, 0, len(routes))
		for _, r := range routes {
			out = append(out, routeInfo{Method: r.Method, Path: r.Path})
		}
		c.JSON(http.StatusOK, gin.H{"routes": out})
	}
}
