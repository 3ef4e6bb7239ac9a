package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/faculty-hub/api/internal/auth"
	"github.com/octobees/faculty-hub/api/internal/config"
	"github.com/octobees/faculty-hub/api/internal/handler"
	middlewarepkg "github.com/octobees/faculty-hub/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	Faculty *handler.FacultyHandler
	Scrape  *handler.ScrapeHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Request-ID"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/faculty", handlers.Faculty.List)
	api.GET("/faculty/:id", handlers.Faculty.Get)
	api.GET("/search", handlers.Faculty.Search)

	api.POST("/admin/login", handlers.Auth.Login)

	admin := api.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(auth.RoleAdmin))
	admin.POST("/scrape", handlers.Scrape.Preview)
	admin.POST("/faculty", handlers.Faculty.Create)
	admin.POST("/faculty/import", handlers.Faculty.Import)
	admin.PUT("/faculty/:id", handlers.Faculty.Update)
	admin.DELETE("/faculty/:id", handlers.Faculty.Delete)
	admin.POST("/faculty/:id/refresh", handlers.Faculty.Refresh)
}
