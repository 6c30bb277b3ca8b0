package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/handler"
	"github.com/dondesalimos/donde-salimos/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin. All routes
// require a valid JWT and the ADMIN role. Admins moderate venues and ads,
// administer accounts, take down reviews and read the stats aggregate.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Comercios ----
	g.GET("/comercios", a.ListComercios)
	g.POST("/comercios/:id/aprobar", a.AprobarComercio)
	g.POST("/comercios/:id/rechazar", a.RechazarComercio)

	// ---- Publicidades ----
	g.GET("/publicidades", a.ListPublicidades)
	g.POST("/publicidades/:id/aprobar", a.AprobarPublicidad)
	g.POST("/publicidades/:id/rechazar", a.RechazarPublicidad)

	// ---- Usuarios ----
	g.GET("/usuarios", a.ListUsuarios)
	g.PATCH("/usuarios/:id/activo", a.SetUsuarioActivo)
	g.PATCH("/usuarios/:id/rol", a.SetUsuarioRol)

	// ---- Resenias ----
	g.GET("/resenias", a.ListResenias)
	g.DELETE("/resenias/:id", a.DeleteResenia)

	// ---- Estadisticas ----
	g.GET("/estadisticas", a.Estadisticas)
}
