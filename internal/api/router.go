package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bizreel/directory-api/docs"
	"github.com/bizreel/directory-api/internal/api/handler"
	"github.com/bizreel/directory-api/internal/api/middleware"
	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
	"github.com/bizreel/directory-api/internal/core/service"
	"github.com/bizreel/directory-api/internal/infrastructure/config"
	mongorepo "github.com/bizreel/directory-api/internal/infrastructure/db/mongo"
	redisguard "github.com/bizreel/directory-api/internal/infrastructure/db/redis"
	"github.com/bizreel/directory-api/internal/infrastructure/http/handlers"
	"github.com/bizreel/directory-api/internal/infrastructure/storage"
)

// bodyLimit covers the largest upload plus multipart overhead.
const bodyLimit = "110M"

// Dependencies are the connections and settings the router wires together.
type Dependencies struct {
	Config *config.Config
	DB     *mongo.Database
	Redis  *redis.Client
	Files  ports.FileStore
	Logger zerolog.Logger
}

type rootResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The default category catalog is seeded before it returns.
func NewRouter(ctx context.Context, deps Dependencies) *echo.Echo {
	cfg, log := deps.Config, deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "directory",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	users := mongorepo.NewUserRepository(deps.DB)
	videos := mongorepo.NewVideoRepository(deps.DB)
	categories := mongorepo.NewCategoryRepository(deps.DB)

	categoryService := service.NewCategoryService(categories, log)
	if err := categoryService.EnsureDefaults(ctx); err != nil {
		log.Warn().Err(err).Msg("default categories not seeded; will retry on first use")
	}
	authService := service.NewAuthService(users, videos, categoryService, deps.Files, redisguard.NewSetupGuard(deps.Redis), service.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Admin: service.AdminBootstrap{
			SetupToken: cfg.Admin.SetupToken,
			Name:       cfg.Admin.Name,
			Email:      cfg.Admin.Email,
			Password:   cfg.Admin.Password,
		},
	}, log)
	contentService := service.NewContentService(videos, users, categoryService, deps.Files, log)
	listingService := service.NewListingService(videos, users, log)
	profileService := service.NewProfileService(users, videos, categoryService, log)

	authHandler := handler.NewAuthHandler(authService, deps.Files, log)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	videoHandler := handler.NewVideoHandler(contentService, listingService, deps.Files, log)
	dashboardHandler := handler.NewDashboardHandler(profileService)

	authn := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(map[string]handlers.Check{
		"mongo": handlers.MongoCheck(deps.DB),
		"redis": handlers.RedisCheck(deps.Redis),
	})

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, rootResponse{Success: true, Message: "API running", Version: "v1", Health: "/api/v1/health"})
	})
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if local, ok := deps.Files.(*storage.LocalStore); ok {
		e.Static(strings.TrimSuffix(cfg.Storage.PublicPrefix, "/"), local.Root())
	}

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Liveness)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/create-admin", authHandler.CreateAdmin)
	auth.GET("/users", authHandler.ListUsers, authn, adminOnly)
	auth.DELETE("/users/:id", authHandler.DeleteUser, authn, adminOnly)
	auth.GET("/user-stats", authHandler.UserStats, authn, adminOnly)

	// --- Category routes ---
	cats := v1.Group("/categories")
	cats.GET("", categoryHandler.List)
	cats.GET("/admin", categoryHandler.AdminList, authn, adminOnly)
	cats.POST("/admin", categoryHandler.Create, authn, adminOnly)
	cats.PUT("/admin/:id", categoryHandler.Update, authn, adminOnly)
	cats.DELETE("/admin/:id", categoryHandler.Delete, authn, adminOnly)

	// --- Video routes ---
	vids := v1.Group("/videos")
	vids.GET("", videoHandler.List)
	vids.GET("/stats", videoHandler.Stats)
	vids.GET("/my", videoHandler.Mine, authn)
	vids.GET("/:id", videoHandler.Get)
	vids.POST("/upload", videoHandler.Upload, authn)
	vids.PUT("/:id", videoHandler.Update, authn)
	vids.DELETE("/:id", videoHandler.Delete, authn)
	vids.GET("/user/categories", videoHandler.MyCategories, authn)
	vids.GET("/category/:category", videoHandler.ByCategory, authn)
	vids.GET("/user/by-category", videoHandler.Grouped, authn)

	// --- Dashboard routes ---
	dash := v1.Group("/dashboard", authn)
	dash.GET("", dashboardHandler.Dashboard)
	dash.GET("/profile", dashboardHandler.Profile)
	dash.PUT("/profile", dashboardHandler.UpdateProfile)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
