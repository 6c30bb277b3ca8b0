package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/handler"
	"github.com/dondesalimos/donde-salimos/internal/middleware"
)

// RegisterCustomer registers COMUN-scoped endpoints under /v1. All routes
// require a valid JWT and the COMUN role. Customers create reservations at
// approved venues, browse and cancel their own, and write reviews.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, r *handler.ReseniaHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("COMUN"),
	)

	// ---- Reservas ----
	g.POST("/reservas", h.CreateReserva)
	g.GET("/mis-reservas", h.ListMisReservas)
	g.GET("/reservas/:id", h.GetReserva)
	g.POST("/reservas/:id/cancelar", h.CancelarReserva)

	// ---- Resenias ----
	g.POST("/resenias", r.CreateResenia)
	g.GET("/mis-resenias", r.ListMisResenias)
}
