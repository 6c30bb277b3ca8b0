package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/queue"
	"github.com/dondesalimos/donde-salimos/internal/repository"
	queue_publisher "github.com/dondesalimos/donde-salimos/internal/service"
)

// CustomerHandler bundles dependencies for COMUN users managing their own
// reservations.
type CustomerHandler struct {
	ReservaRepo  *repository.ReservaRepo
	ComercioRepo *repository.ComercioRepo
	Loc          *time.Location // zone for calendar-day window filters
}

func NewCustomerHandler(rr *repository.ReservaRepo, cr *repository.ComercioRepo, loc *time.Location) *CustomerHandler {
	if rr == nil || cr == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	if loc == nil {
		loc = time.Local
	}
	return &CustomerHandler{ReservaRepo: rr, ComercioRepo: cr, Loc: loc}
}

// ----- DTOs -----

type createReservaReq struct {
	ComercioID       uint64 `json:"comercio_id"`
	FechaReserva     string `json:"fecha_reserva"` // RFC3339
	CantidadPersonas uint32 `json:"cantidad_personas"`
	Comentarios      string `json:"comentarios"`
}

type cancelarReq struct {
	Motivo string `json:"motivo"`
}

type reservaResp struct {
	ID               uint64    `json:"id"`
	ComercioID       uint64    `json:"comercio_id"`
	NombreComercio   string    `json:"nombre_comercio,omitempty"`
	NombreUsuario    string    `json:"nombre_usuario,omitempty"`
	FechaReserva     time.Time `json:"fecha_reserva"`
	CantidadPersonas uint32    `json:"cantidad_personas"`
	Comentarios      string    `json:"comentarios,omitempty"`
	Estado           string    `json:"estado"`
	Motivo           string    `json:"motivo,omitempty"`
}

func vistaToResp(v lifecycle.ReservaVista, now time.Time) reservaResp {
	return reservaResp{
		ID:               v.Reserva.ID,
		ComercioID:       v.Reserva.ComercioID,
		NombreComercio:   v.NombreComercio,
		NombreUsuario:    v.NombreUsuario,
		FechaReserva:     v.Reserva.FechaReserva,
		CantidadPersonas: v.Reserva.CantidadPersonas,
		Comentarios:      v.Reserva.Comentarios,
		Estado:           v.Reserva.EstadoVisible(now),
		Motivo:           v.Reserva.MotivoRechazo,
	}
}

// lifecycleStatus maps a transition guard error to an HTTP status code.
func lifecycleStatus(err error) int {
	switch err {
	case lifecycle.ErrNoAutorizado:
		return http.StatusForbidden
	case lifecycle.ErrTransicionInvalida:
		return http.StatusConflict
	case lifecycle.ErrComercioNoVisible:
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}

// CreateReserva creates a reservation in PENDIENTE at an approved venue.
// All the guards run before anything is written.
func (h *CustomerHandler) CreateReserva(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fecha, err := time.Parse(time.RFC3339, strings.TrimSpace(req.FechaReserva))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fecha_reserva, want RFC3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	com, err := h.ComercioRepo.GetByID(ctx, req.ComercioID)
	if err != nil {
		if err == repository.ErrComercioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := lifecycle.ValidarNuevaReserva(fecha, req.CantidadPersonas, req.Comentarios, com, time.Now()); err != nil {
		return c.JSON(lifecycleStatus(err), echo.Map{"error": err.Error()})
	}

	res := &model.Reserva{
		UsuarioID:        uid,
		ComercioID:       req.ComercioID,
		FechaReserva:     fecha,
		CantidadPersonas: req.CantidadPersonas,
		Comentarios:      strings.TrimSpace(req.Comentarios),
	}
	if err := h.ReservaRepo.Create(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reserva failed"})
	}

	return c.JSON(http.StatusCreated, reservaResp{
		ID:               res.ID,
		ComercioID:       res.ComercioID,
		NombreComercio:   com.Nombre,
		FechaReserva:     res.FechaReserva,
		CantidadPersonas: res.CantidadPersonas,
		Comentarios:      res.Comentarios,
		Estado:           res.Estado,
	})
}

// reservaFiltros builds the filter chain shared by the customer and owner
// listings from the request's query parameters.
func reservaFiltros(c echo.Context, now time.Time, loc *time.Location) []lifecycle.Filtro {
	var filtros []lifecycle.Filtro
	if estado := strings.TrimSpace(c.QueryParam("estado")); estado != "" {
		filtros = append(filtros, lifecycle.ConEstado(estado, now))
	}
	switch strings.ToLower(strings.TrimSpace(c.QueryParam("ventana"))) {
	case "hoy":
		filtros = append(filtros, lifecycle.Hoy(now, loc))
	case "proximos":
		filtros = append(filtros, lifecycle.ProximosSieteDias(now))
	case "pasadas":
		filtros = append(filtros, lifecycle.Pasadas(now))
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		filtros = append(filtros, lifecycle.Busqueda(q))
	}
	return filtros
}

// ListMisReservas returns the caller's reservations, newest slot first.
// Supports `estado`, `ventana` (hoy|proximos|pasadas) and `q` query filters.
func (h *CustomerHandler) ListMisReservas(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vistas, err := h.ReservaRepo.ListByUsuario(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	now := time.Now()
	vistas = lifecycle.Aplicar(vistas, reservaFiltros(c, now, h.Loc)...)

	out := make([]reservaResp, 0, len(vistas))
	for _, v := range vistas {
		out = append(out, vistaToResp(v, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetReserva returns one of the caller's reservations. Reservations of other
// users are indistinguishable from missing ones.
func (h *CustomerHandler) GetReserva(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.ReservaRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.UsuarioID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found"})
	}

	now := time.Now()
	return c.JSON(http.StatusOK, reservaResp{
		ID:               res.ID,
		ComercioID:       res.ComercioID,
		FechaReserva:     res.FechaReserva,
		CantidadPersonas: res.CantidadPersonas,
		Comentarios:      res.Comentarios,
		Estado:           res.EstadoVisible(now),
		Motivo:           res.MotivoRechazo,
	})
}

// CancelarReserva moves one of the caller's pending or approved reservations
// to CANCELADA. The persisted update carries the pre-transition status so a
// decision raced by another session loses cleanly.
func (h *CustomerHandler) CancelarReserva(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cancelarReq
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.ReservaRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.UsuarioID != actor.UsuarioID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found"})
	}

	desde := res.Estado
	if err := lifecycle.CancelarReserva(res, actor, strings.TrimSpace(req.Motivo), time.Now()); err != nil {
		return c.JSON(lifecycleStatus(err), echo.Map{"error": err.Error()})
	}
	if err := h.ReservaRepo.SetEstado(ctx, res.ID, desde, res.Estado, res.MotivoRechazo); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reserva already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	com, _ := h.ComercioRepo.GetByID(ctx, res.ComercioID)
	nombre := ""
	if com != nil {
		nombre = com.Nombre
	}
	_ = queue_publisher.PublishReservaDecidida(ctx, queue.ReservaDecididaEvent{
		ReservaID:      res.ID,
		UsuarioID:      res.UsuarioID,
		ComercioID:     res.ComercioID,
		NombreComercio: nombre,
		Estado:         res.Estado,
		Motivo:         res.MotivoRechazo,
		Fecha:          res.FechaReserva.Format(time.RFC3339),
		Cantidad:       res.CantidadPersonas,
	})

	return c.JSON(http.StatusOK, echo.Map{"id": res.ID, "estado": res.Estado})
}
