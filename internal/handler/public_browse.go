// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse approved venues, their reviews and the
// advertising carousel. Sensitive fields (owner IDs, rejection reasons) are
// filtered from responses.

package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/geo"
	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
	ComercioRepo   *repository.ComercioRepo
	ReseniaRepo    *repository.ReseniaRepo
	PublicidadRepo *repository.PublicidadRepo
}

// PublicComercio represents a venue exposed via the public API. It contains
// only safe fields; DistanciaMetros is set when the caller supplies its
// coordinates.
type PublicComercio struct {
	ID              uint64   `json:"id"`
	Nombre          string   `json:"nombre"`
	Direccion       string   `json:"direccion"`
	Latitud         float64  `json:"latitud"`
	Longitud        float64  `json:"longitud"`
	Telefono        string   `json:"telefono"`
	Horario         string   `json:"horario"`
	Descripcion     string   `json:"descripcion"`
	Foto            *string  `json:"foto,omitempty"`
	Tipo            string   `json:"tipo"`
	Capacidad       uint32   `json:"capacidad,omitempty"`
	DistanciaMetros *float64 `json:"distancia_metros,omitempty"`
}

// PublicResenia is a review with its author's display name.
type PublicResenia struct {
	ID         uint64    `json:"id"`
	Autor      string    `json:"autor"`
	Puntuacion uint8     `json:"puntuacion"`
	Comentario string    `json:"comentario"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublicPublicidad is an active advertisement shown in the carousel.
type PublicPublicidad struct {
	ID          uint64  `json:"id"`
	ComercioID  uint64  `json:"comercio_id"`
	Descripcion string  `json:"descripcion"`
	Imagen      *string `json:"imagen,omitempty"`
	Vence       string  `json:"vence"`
}

func sanitizeComercio(com *model.Comercio) PublicComercio {
	return PublicComercio{
		ID:          com.ID,
		Nombre:      com.Nombre,
		Direccion:   com.Direccion,
		Latitud:     com.Latitud,
		Longitud:    com.Longitud,
		Telefono:    com.Telefono,
		Horario:     com.Horario,
		Descripcion: com.Descripcion,
		Foto:        com.Foto,
		Tipo:        com.Tipo,
		Capacidad:   com.Capacidad,
	}
}

// GetPublicComercios lists approved venues. Optional query params: `tipo`
// restricts to a category, `q` matches name or description, and `lat`/`lng`
// annotate each venue with its distance and sort nearest first.
func (h *PublicHandler) GetPublicComercios(c echo.Context) error {
	ctx := c.Request().Context()

	tipo := strings.ToUpper(strings.TrimSpace(c.QueryParam("tipo")))
	if tipo != "" && !model.TipoComercioValido(tipo) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tipo"})
	}

	comercios, err := h.ComercioRepo.ListAprobados(ctx, tipo)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	out := make([]PublicComercio, 0, len(comercios))
	for _, com := range comercios {
		if q != "" &&
			!strings.Contains(strings.ToLower(com.Nombre), q) &&
			!strings.Contains(strings.ToLower(com.Descripcion), q) {
			continue
		}
		out = append(out, sanitizeComercio(com))
	}

	latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lat/lng"})
		}
		origin := geo.Point{Lat: lat, Lng: lng}
		for i := range out {
			d := geo.DistanceMeters(origin, geo.Point{Lat: out[i].Latitud, Lng: out[i].Longitud})
			out[i].DistanciaMetros = &d
		}
		sort.SliceStable(out, func(i, j int) bool {
			return *out[i].DistanciaMetros < *out[j].DistanciaMetros
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicComercio returns details of a single approved venue. Unapproved
// venues are indistinguishable from missing ones.
func (h *PublicHandler) GetPublicComercio(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	com, err := h.ComercioRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrComercioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !com.Aprobado {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
	}
	return c.JSON(http.StatusOK, sanitizeComercio(com))
}

// GetPublicResenias lists the active reviews of an approved venue.
func (h *PublicHandler) GetPublicResenias(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	com, err := h.ComercioRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrComercioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !com.Aprobado {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
	}

	resenias, err := h.ReseniaRepo.ListByComercio(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicResenia, 0, len(resenias))
	for _, r := range resenias {
		out = append(out, PublicResenia{
			ID:         r.Resenia.ID,
			Autor:      r.NombreUsuario,
			Puntuacion: r.Resenia.Puntuacion,
			Comentario: r.Resenia.Comentario,
			CreatedAt:  r.Resenia.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicidadesActivas returns the carousel: approved, paid ads whose window
// has not yet elapsed. Serving the carousel counts one view per ad returned.
func (h *PublicHandler) GetPublicidadesActivas(c echo.Context) error {
	ctx := c.Request().Context()
	ads, err := h.PublicidadRepo.ListAprobadasPagadas(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	now := time.Now()
	out := make([]PublicPublicidad, 0, len(ads))
	ids := make([]uint64, 0, len(ads))
	for _, p := range ads {
		if !lifecycle.PublicidadVisible(p, now) {
			continue
		}
		out = append(out, PublicPublicidad{
			ID:          p.ID,
			ComercioID:  p.ComercioID,
			Descripcion: p.Descripcion,
			Imagen:      p.Imagen,
			Vence:       p.Vence().Format(time.RFC3339),
		})
		ids = append(ids, p.ID)
	}

	if len(ids) > 0 {
		// Best effort; a failed counter bump never breaks the carousel.
		if err := h.PublicidadRepo.SumarVisualizaciones(ctx, ids); err != nil {
			c.Logger().Warnf("sumar visualizaciones: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
