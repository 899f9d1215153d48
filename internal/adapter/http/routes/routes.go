package routes

import (
	"todoweb/internal/adapter/http/handler"
	"todoweb/internal/adapter/http/middleware"
	"todoweb/internal/adapter/http/view"
	"todoweb/internal/adapter/session"
	"todoweb/internal/core/port"
	. "todoweb/pkg/config"
	"todoweb/pkg/middlewares"
	. "todoweb/pkg/tracing"

	"github.com/gin-gonic/gin"
)

const serviceName = "todoweb"

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler

	Sessions *session.Manager
	Users    port.UserService
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) (*gin.Engine, error) {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middlewares.SetupGinMiddlewareWithConfig(router, serviceName, metrics, logger, config, handler.TooManyRequests)

	router.Use(gin.Recovery())

	if err := setupRoutes(router, handlers, config); err != nil {
		return nil, err
	}

	return router, nil
}

// SetupRouterForTests skips telemetry, request logging and rate limiting.
func SetupRouterForTests(handlers HandlersConfig, config *AppConfig) (*gin.Engine, error) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())

	if err := setupRoutes(router, handlers, config); err != nil {
		return nil, err
	}

	return router, nil
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig, config *AppConfig) error {
	templates, err := view.Templates()

	if err != nil {
		return err
	}

	router.SetHTMLTemplate(templates)

	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.CSRF(middleware.CSRFConfig{AllowedOrigins: config.AllowedOrigins}))
	router.Use(middleware.SessionMiddleware(handlers.Sessions, handlers.Users, config.AuthEnabled))

	router.NoRoute(handler.NotFound)
	router.GET("/about", handler.About)

	if config.AuthEnabled {
		setupPublicRoutes(router, handlers.AuthHandler)
		setupProtectedRoutes(router, handlers.AuthHandler, handlers.TodoHandler)
		return nil
	}

	setupSingleTenantRoutes(router, handlers.TodoHandler)

	return nil
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.GET("/signup", authHandler.SignupForm)
		public.POST("/signup", authHandler.Signup)
		public.GET("/login", authHandler.LoginForm)
		public.POST("/login", authHandler.Login)
	}
}

func setupProtectedRoutes(router *gin.Engine, authHandler *handler.AuthHandler, todoHandler *handler.TodoHandler) {
	protected := router.Group("/")
	protected.Use(middleware.RequireLogin())
	{
		protected.GET("/logout", authHandler.Logout)
		setupTodoRoutes(protected, todoHandler)
	}
}

func setupSingleTenantRoutes(router *gin.Engine, todoHandler *handler.TodoHandler) {
	group := router.Group("/")
	{
		setupTodoRoutes(group, todoHandler)
		group.GET("/show", todoHandler.Show)
	}
}

func setupTodoRoutes(group *gin.RouterGroup, todoHandler *handler.TodoHandler) {
	group.GET("/", todoHandler.Index)
	group.POST("/", todoHandler.Create)
	group.GET("/update/:id", todoHandler.Edit)
	group.POST("/update/:id", todoHandler.Update)
	group.GET("/delete/:id", todoHandler.Delete)
}
