package handler

// Handlers for COMERCIO users managing their own venue listings. Every
// create starts unapproved and every edit re-enters moderation, so owners
// always see the moderation state alongside their data.

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/cuit"
	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/repository"
)

// OwnerComercioHandler bundles dependencies for venue CRUD.
type OwnerComercioHandler struct {
	ComercioRepo *repository.ComercioRepo
}

func NewOwnerComercioHandler(cr *repository.ComercioRepo) *OwnerComercioHandler {
	if cr == nil {
		panic("nil repository passed to NewOwnerComercioHandler")
	}
	return &OwnerComercioHandler{ComercioRepo: cr}
}

type comercioReq struct {
	Nombre      string  `json:"nombre"`
	Direccion   string  `json:"direccion"`
	Latitud     float64 `json:"latitud"`
	Longitud    float64 `json:"longitud"`
	CUIT        string  `json:"cuit"`
	Telefono    string  `json:"telefono"`
	Horario     string  `json:"horario"`
	Descripcion string  `json:"descripcion"`
	Foto        *string `json:"foto"`
	Tipo        string  `json:"tipo"`
	Capacidad   uint32  `json:"capacidad"`
}

// comercioResp is the owner-facing view: full data plus moderation state.
type comercioResp struct {
	ID               uint64  `json:"id"`
	Nombre           string  `json:"nombre"`
	Direccion        string  `json:"direccion"`
	Latitud          float64 `json:"latitud"`
	Longitud         float64 `json:"longitud"`
	CUIT             string  `json:"cuit"`
	Telefono         string  `json:"telefono"`
	Horario          string  `json:"horario"`
	Descripcion      string  `json:"descripcion"`
	Foto             *string `json:"foto,omitempty"`
	Tipo             string  `json:"tipo"`
	Capacidad        uint32  `json:"capacidad,omitempty"`
	EstadoModeracion string  `json:"estado_moderacion"`
	MotivoRechazo    string  `json:"motivo_rechazo,omitempty"`
}

func comercioToResp(c *model.Comercio) comercioResp {
	return comercioResp{
		ID:               c.ID,
		Nombre:           c.Nombre,
		Direccion:        c.Direccion,
		Latitud:          c.Latitud,
		Longitud:         c.Longitud,
		CUIT:             c.CUIT,
		Telefono:         c.Telefono,
		Horario:          c.Horario,
		Descripcion:      c.Descripcion,
		Foto:             c.Foto,
		Tipo:             c.Tipo,
		Capacidad:        c.Capacidad,
		EstadoModeracion: lifecycle.EstadoModeracion(c.Aprobado, c.MotivoRechazo),
		MotivoRechazo:    c.MotivoRechazo,
	}
}

// validate normalizes the request in place and returns a client-facing error
// message, or "" when everything checks out.
func (req *comercioReq) validate() string {
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Direccion = strings.TrimSpace(req.Direccion)
	req.Tipo = strings.ToUpper(strings.TrimSpace(req.Tipo))
	req.CUIT = cuit.Normalize(req.CUIT)
	if req.Nombre == "" || req.Direccion == "" {
		return "nombre and direccion required"
	}
	if !model.TipoComercioValido(req.Tipo) {
		return "invalid tipo"
	}
	if !cuit.Valid(req.CUIT) {
		return "invalid cuit"
	}
	if req.Latitud < -90 || req.Latitud > 90 || req.Longitud < -180 || req.Longitud > 180 {
		return "invalid coordinates"
	}
	return ""
}

// CreateComercio registers a new venue for the caller. It lands in the
// moderation queue regardless of who creates it.
func (h *OwnerComercioHandler) CreateComercio(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req comercioReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	com := &model.Comercio{
		UsuarioID:   uid,
		Nombre:      req.Nombre,
		Direccion:   req.Direccion,
		Latitud:     req.Latitud,
		Longitud:    req.Longitud,
		CUIT:        req.CUIT,
		Telefono:    req.Telefono,
		Horario:     req.Horario,
		Descripcion: req.Descripcion,
		Foto:        req.Foto,
		Tipo:        req.Tipo,
		Capacidad:   req.Capacidad,
	}
	if err := h.ComercioRepo.Create(ctx, com); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comercio failed"})
	}
	return c.JSON(http.StatusCreated, comercioToResp(com))
}

// ListMisComercios returns every venue the caller owns, whatever its
// moderation state.
func (h *OwnerComercioHandler) ListMisComercios(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comercios, err := h.ComercioRepo.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]comercioResp, 0, len(comercios))
	for _, com := range comercios {
		out = append(out, comercioToResp(com))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetMiComercio returns one of the caller's venues.
func (h *OwnerComercioHandler) GetMiComercio(c echo.Context) error {
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

	com, err := h.ComercioRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrComercioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if com.UsuarioID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
	}
	return c.JSON(http.StatusOK, comercioToResp(com))
}

// UpdateComercio rewrites a venue's editable fields. The venue drops back to
// pending moderation, losing any prior approval or rejection reason.
func (h *OwnerComercioHandler) UpdateComercio(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req comercioReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	com := &model.Comercio{
		ID:          id,
		Nombre:      req.Nombre,
		Direccion:   req.Direccion,
		Latitud:     req.Latitud,
		Longitud:    req.Longitud,
		CUIT:        req.CUIT,
		Telefono:    req.Telefono,
		Horario:     req.Horario,
		Descripcion: req.Descripcion,
		Foto:        req.Foto,
		Tipo:        req.Tipo,
		Capacidad:   req.Capacidad,
	}
	if err := h.ComercioRepo.Update(ctx, com, uid); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	got, err := h.ComercioRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, comercioToResp(got))
}

// DeleteComercio removes one of the caller's venues. Refused with 409 while
// pending future reservations exist against it.
func (h *OwnerComercioHandler) DeleteComercio(c echo.Context) error {
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

	if err := h.ComercioRepo.Delete(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "comercio has pending reservations"})
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
