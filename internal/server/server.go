package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/langanalytics/internal/config"
	"anoa.com/langanalytics/internal/middleware"
	"anoa.com/langanalytics/pkg/storage"
	"anoa.com/langanalytics/pkg/token"

	adminHttp "anoa.com/langanalytics/internal/modules/admin/delivery/http"
	adminRepo "anoa.com/langanalytics/internal/modules/admin/repository"
	adminService "anoa.com/langanalytics/internal/modules/admin/service"

	analyticsHttp "anoa.com/langanalytics/internal/modules/analytics/delivery/http"
	analyticsRepo "anoa.com/langanalytics/internal/modules/analytics/repository"
	analyticsService "anoa.com/langanalytics/internal/modules/analytics/service"

	authHttp "anoa.com/langanalytics/internal/modules/auth/delivery/http"
	authRepo "anoa.com/langanalytics/internal/modules/auth/repository"
	authService "anoa.com/langanalytics/internal/modules/auth/service"

	credentialRepo "anoa.com/langanalytics/internal/modules/credential/repository"

	organizationHttp "anoa.com/langanalytics/internal/modules/organization/delivery/http"
	organizationRepo "anoa.com/langanalytics/internal/modules/organization/repository"
	organizationService "anoa.com/langanalytics/internal/modules/organization/service"

	searchService "anoa.com/langanalytics/internal/modules/search/service"

	studentHttp "anoa.com/langanalytics/internal/modules/student/delivery/http"
	studentRepo "anoa.com/langanalytics/internal/modules/student/repository"
	studentService "anoa.com/langanalytics/internal/modules/student/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the shared clients built in main. Redis, Search and Images may be nil.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Search searchService.DirectoryIndex
	Images storage.ImageStorage
	Log    *zap.Logger
}

type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := token.NewJWTService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	credentials := credentialRepo.NewCredentialRepository(deps.DB)

	orgRepo := organizationRepo.NewOrganizationRepository(deps.DB)
	orgSvc := organizationService.NewOrganizationService(orgRepo, credentials, deps.Search, deps.Images, deps.Log)
	orgHandler := organizationHttp.NewOrganizationHandler(orgSvc)

	adminSvc := adminService.NewAdminService(adminRepo.NewAdminRepository(deps.DB), orgRepo, credentials, deps.Search, deps.Log)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	students := studentRepo.NewStudentRepository(deps.DB)
	studentSvc := studentService.NewStudentService(students)
	studentHandler := studentHttp.NewStudentHandler(studentSvc)

	analyticsSvc := analyticsService.NewAnalyticsService(analyticsRepo.NewAnalyticsRepository(deps.DB), students, analyticsService.Options{
		CountVerified:         cfg.Analytics.CountVerified,
		StudentGroupBy:        cfg.Analytics.StudentTimelineGroup,
		OrganizationGroupings: cfg.Analytics.OrganizationGroupings,
	}, deps.Log)
	analyticsHandler := analyticsHttp.NewAnalyticsHandler(analyticsSvc)

	throttle := authService.NewRedisThrottle(deps.Redis, cfg.LoginMaxAttempts, cfg.LoginThrottleWindow)
	authSvc := authService.NewAuthService(authRepo.NewSuperAdminRepository(deps.DB), tokens, throttle, deps.Log)
	authHandler := authHttp.NewAuthHandler(authSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Log, "/health"))

	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Language Analytics API"})
	})
	router.GET("/health", healthHandler(deps.DB))
	authHandler.RegisterRoutes(&router.RouterGroup)

	protected := router.Group("")
	if cfg.AuthRequired {
		protected.Use(middleware.NewAuthMiddleware(tokens).RequireAuth())
	} else {
		deps.Log.Warn("AUTH_REQUIRED is false, every route is public")
	}
	orgHandler.RegisterRoutes(protected)
	adminHandler.RegisterRoutes(protected)
	studentHandler.RegisterRoutes(protected)
	analyticsHandler.RegisterRoutes(protected)

	return &Server{
		engine: router,
		http: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: deps.Log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func setupCORS(router *gin.Engine, origins []string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))
}
