package server

import (
	"net/http"

	authhandler "github.com/nitwit45/todo-demo/internal/auth/handler"
	authrepository "github.com/nitwit45/todo-demo/internal/auth/repository"
	authusecase "github.com/nitwit45/todo-demo/internal/auth/usecase"
	authMiddleware "github.com/nitwit45/todo-demo/internal/middleware"
	taskhandler "github.com/nitwit45/todo-demo/internal/tasks/handler"
	taskrepository "github.com/nitwit45/todo-demo/internal/tasks/repository"
	taskusecase "github.com/nitwit45/todo-demo/internal/tasks/usecase"
	userhandler "github.com/nitwit45/todo-demo/internal/users/handler"
	userrepository "github.com/nitwit45/todo-demo/internal/users/repository"
	userusecase "github.com/nitwit45/todo-demo/internal/users/usecase"
	"github.com/nitwit45/todo-demo/pkg/logger"
	appvalidator "github.com/nitwit45/todo-demo/pkg/validator"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	appvalidator.RegisterValidations(v)
	return &CustomValidator{validator: v}
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Validator = NewCustomValidator()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("request", v.Error, "method", v.Method, "uri", v.URI, "status", v.Status)
			} else {
				logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XFrameOptions:         "DENY",
		ContentTypeNosniff:    "nosniff",
		XSSProtection:         "1; mode=block",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:; connect-src 'self' https:;",
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(100),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
		},
	}))
	e.Use(middleware.BodyLimit("4MB"))

	e.GET("/health", s.healthHandler)

	requireAuth := authMiddleware.BearerAuthMiddleware(s.tokens)
	apiGroup := e.Group("/api")

	s.setupAuthRoutes(apiGroup, requireAuth)
	s.setupTaskRoutes(apiGroup, requireAuth)
	s.setupUserRoutes(apiGroup, requireAuth)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.Health())
}

func (s *Server) setupAuthRoutes(apiGroup *echo.Group, requireAuth echo.MiddlewareFunc) {
	userStore := authrepository.NewUserStore(s.db)
	authUsecase := authusecase.NewAuthService(userStore, s.tokens, s.secrets, s.mailer)
	authHandler := authhandler.NewAuthHandler(authUsecase)

	authGroup := apiGroup.Group("/auth")
	authHandler.Bind(authGroup, requireAuth)
}

func (s *Server) setupTaskRoutes(apiGroup *echo.Group, requireAuth echo.MiddlewareFunc) {
	taskStore := taskrepository.NewTaskStore(s.db)
	taskUsecase := taskusecase.NewTaskService(taskStore)
	taskHandler := taskhandler.NewTaskHandler(taskUsecase)

	taskGroup := apiGroup.Group("/todos", requireAuth)
	taskHandler.Bind(taskGroup)
}

func (s *Server) setupUserRoutes(apiGroup *echo.Group, requireAuth echo.MiddlewareFunc) {
	userStore := userrepository.NewUserStore(s.db)

	var uploader userusecase.AvatarUploader
	if s.uploader != nil {
		uploader = s.uploader
	}
	userUsecase := userusecase.NewUserService(userStore, uploader)
	userHandler := userhandler.NewUserHandler(userUsecase)

	userGroup := apiGroup.Group("/users", requireAuth)
	userHandler.Bind(userGroup)
}
