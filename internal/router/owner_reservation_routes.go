package router

// This file registers owner-specific routes for managing incoming
// reservations. They are separate from the generic owner routes to keep
// concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/handler"
	"github.com/dondesalimos/donde-salimos/internal/middleware"
)

// RegisterOwnerReservations registers routes that allow venue owners to list
// and decide reservations received at their venues. All routes are mounted
// under /v1 and require a JWT token as well as the COMERCIO role.
func RegisterOwnerReservations(e *echo.Echo, h *handler.OwnerReservaHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("COMERCIO"),
	)
	// Reservations across the owner's venues, with the shared filters.
	g.GET("/comercio/reservas", h.ListRecibidas)
	// Decisions on a pending reservation.
	g.POST("/comercio/reservas/:id/aprobar", h.Aprobar)
	g.POST("/comercio/reservas/:id/rechazar", h.Rechazar)
}
