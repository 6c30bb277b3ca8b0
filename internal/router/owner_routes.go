package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/handler"
	"github.com/dondesalimos/donde-salimos/internal/middleware"
)

// RegisterOwner registers COMERCIO-scoped endpoints under /v1.
// All routes require a valid JWT and the COMERCIO role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerComercioHandler, ads *handler.OwnerPublicidadHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("COMERCIO"),
	)

	// ---- Comercios ----
	// Public venue browsing lives on the public router; owner-scoped routes
	// use the /comercio prefix to avoid conflicting with /v1/comercios.
	g.POST("/comercio/comercios", o.CreateComercio)
	g.GET("/comercio/comercios", o.ListMisComercios)
	g.GET("/comercio/comercios/:id", o.GetMiComercio)
	g.PUT("/comercio/comercios/:id", o.UpdateComercio)
	g.PATCH("/comercio/comercios/:id", o.UpdateComercio)
	g.DELETE("/comercio/comercios/:id", o.DeleteComercio)

	// ---- Publicidades ----
	g.POST("/comercio/publicidades", ads.CreatePublicidad)
	g.GET("/comercio/publicidades", ads.ListMisPublicidades)
	g.POST("/comercio/publicidades/:id/pagar", ads.Pagar)
}
