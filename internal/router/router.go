package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/handler"
	"github.com/dondesalimos/donde-salimos/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the Prometheus scrape
// endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", middleware.MetricsHandler())
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware. Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts either
	// a refresh_token body or a bearer header and revokes accordingly.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("COMUN", "COMERCIO", "ADMIN"))
	auth.GET("/me", a.Me)

	// Alias outside the protected group so a refresh token alone suffices.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints. The provided
// PublicHandler exposes handlers returning sanitized venue, review and
// advertising data for guests. The payment return redirect also lives here
// because the checkout provider calls it without credentials.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, ads *handler.OwnerPublicidadHandler) {
	// Approved venue listing with optional tipo/q/lat/lng filters.
	e.GET("/v1/comercios", p.GetPublicComercios)
	// Venue details by id; only approved venues are visible.
	e.GET("/v1/comercios/:id", p.GetPublicComercio)
	// Active reviews of a venue.
	e.GET("/v1/comercios/:id/resenias", p.GetPublicResenias)
	// The advertising carousel; serving it counts views.
	e.GET("/v1/publicidades/activas", p.GetPublicidadesActivas)
	// Checkout provider return redirect.
	e.GET("/v1/pagos/retorno", ads.Retorno)
}
