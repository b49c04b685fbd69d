package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RouterDeps struct {
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	Auth      *middleware.Auth
	Accounts  AuthService
	Patients  PatientService
	Hospitals HospitalService
	Resources ResourceService
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(d.Config.Tracing.ServiceName),
		middleware.Logger(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.CORS(d.Config.CORS),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": d.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))

	global := middleware.NewIPRateLimiter(rate.Limit(d.Config.RateLimit.RequestsPerSecond), d.Config.RateLimit.BurstSize)
	api := r.Group("/api", global.Middleware())

	authH := NewAuthHandler(d.Accounts, d.Config.Cookie)
	authRoutes := api.Group("/auth", middleware.PerMinute(d.Config.RateLimit.AuthRequestsPerMinute).Middleware())
	{
		authRoutes.POST("/signup", authH.Signup)
		authRoutes.POST("/login", authH.Login)
		authRoutes.POST("/logout", d.Auth.OptionalSession(), authH.Logout)
		authRoutes.GET("/check", d.Auth.RequireSession(), authH.Check)
	}

	patientH := NewPatientHandler(d.Patients)
	patients := api.Group("/patient")
	{
		patients.POST("/register", d.Auth.OptionalSession(), patientH.Register)
		patients.GET("/fetch", d.Auth.RequireSession(), patientH.Fetch)
		patients.GET("/stats", d.Auth.RequireSession(), patientH.Stats)
	}

	registryH := NewRegistryHandler(d.Hospitals, d.Resources)
	hospitals := api.Group("/hospital", d.Auth.RequireSession())
	{
		hospitals.POST("/register", middleware.RequireRole(domain.RoleHospital), registryH.RegisterHospital)
		hospitals.GET("/fetch", registryH.FetchHospitals)
	}

	resources := api.Group("/resource", d.Auth.RequireSession())
	{
		resources.POST("/register", registryH.RegisterResource)
		resources.GET("/fetch", registryH.FetchResources)
	}

	return r
}
