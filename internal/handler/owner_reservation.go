package handler

// This file defines HTTP handlers for owners to manage reservations received
// at their venues: listing with the shared filters, approving and rejecting.
// Decisions re-check the stored status on write so two sessions deciding the
// same reservation cannot both win.

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/queue"
	"github.com/dondesalimos/donde-salimos/internal/repository"
	queue_publisher "github.com/dondesalimos/donde-salimos/internal/service"
)

// OwnerReservaHandler bundles dependencies for COMERCIO users managing
// incoming reservations.
type OwnerReservaHandler struct {
	ReservaRepo  *repository.ReservaRepo
	ComercioRepo *repository.ComercioRepo
	Loc          *time.Location
}

func NewOwnerReservaHandler(rr *repository.ReservaRepo, cr *repository.ComercioRepo, loc *time.Location) *OwnerReservaHandler {
	if rr == nil || cr == nil {
		panic("nil repository passed to NewOwnerReservaHandler")
	}
	if loc == nil {
		loc = time.Local
	}
	return &OwnerReservaHandler{ReservaRepo: rr, ComercioRepo: cr, Loc: loc}
}

type rechazarReq struct {
	Motivo string `json:"motivo"`
}

// ListRecibidas returns reservations received across all of the caller's
// venues, newest slot first. Supports the same `estado`, `ventana` and `q`
// filters as the customer listing, plus `comercio_id` to narrow to one venue.
func (h *OwnerReservaHandler) ListRecibidas(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vistas, err := h.ReservaRepo.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	now := time.Now()
	filtros := reservaFiltros(c, now, h.Loc)
	if comercioIDStr := strings.TrimSpace(c.QueryParam("comercio_id")); comercioIDStr != "" {
		comercioID, err := strconv.ParseUint(comercioIDStr, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comercio_id"})
		}
		filtros = append(filtros, lifecycle.DeComercios([]uint64{comercioID}))
	}
	vistas = lifecycle.Aplicar(vistas, filtros...)

	out := make([]reservaResp, 0, len(vistas))
	for _, v := range vistas {
		out = append(out, vistaToResp(v, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Aprobar moves a pending reservation at one of the caller's venues to
// APROBADA.
func (h *OwnerReservaHandler) Aprobar(c echo.Context) error {
	return h.decidir(c, func(res *reservaDecision) error {
		return lifecycle.AprobarReserva(res.reserva, res.actor, res.duenioID, res.now)
	})
}

// Rechazar moves a pending reservation at one of the caller's venues to
// RECHAZADA. A reason is mandatory.
func (h *OwnerReservaHandler) Rechazar(c echo.Context) error {
	var req rechazarReq
	_ = c.Bind(&req)
	motivo := strings.TrimSpace(req.Motivo)
	return h.decidir(c, func(res *reservaDecision) error {
		return lifecycle.RechazarReserva(res.reserva, res.actor, res.duenioID, motivo, res.now)
	})
}

// reservaDecision carries the loaded state a decision guard needs.
type reservaDecision struct {
	reserva  *model.Reserva
	actor    lifecycle.Actor
	duenioID uint64
	now      time.Time
}

// decidir loads the reservation and its venue, runs the guard, persists with
// the pre-transition status as the expected one and publishes the decision
// event. Reservations at venues the caller does not own come back 404.
func (h *OwnerReservaHandler) decidir(c echo.Context, guard func(*reservaDecision) error) error {
	actor, err := getActor(c)
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
	com, err := h.ComercioRepo.GetByID(ctx, res.ComercioID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	desde := res.Estado
	dec := &reservaDecision{reserva: res, actor: actor, duenioID: com.UsuarioID, now: time.Now()}
	if err := guard(dec); err != nil {
		if err == lifecycle.ErrNoAutorizado {
			// Do not reveal reservations at venues the caller does not own.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found"})
		}
		return c.JSON(lifecycleStatus(err), echo.Map{"error": err.Error()})
	}
	if err := h.ReservaRepo.SetEstado(ctx, res.ID, desde, res.Estado, res.MotivoRechazo); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reserva already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	_ = queue_publisher.PublishReservaDecidida(ctx, queue.ReservaDecididaEvent{
		ReservaID:      res.ID,
		UsuarioID:      res.UsuarioID,
		ComercioID:     res.ComercioID,
		NombreComercio: com.Nombre,
		Estado:         res.Estado,
		Motivo:         res.MotivoRechazo,
		Fecha:          res.FechaReserva.Format(time.RFC3339),
		Cantidad:       res.CantidadPersonas,
	})

	return c.JSON(http.StatusOK, echo.Map{"id": res.ID, "estado": res.Estado, "motivo": res.MotivoRechazo})
}
