package handler

// Handlers for the ADMIN surface: venue and advertisement moderation, user
// administration, review takedowns and the stats aggregate. Moderation
// decisions run through the lifecycle guards so an approval always clears
// the stored rejection reason and vice versa.

import (
	"context"
	"database/sql"
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

// AdminHandler bundles every repository the admin surface touches.
type AdminHandler struct {
	UsuarioRepo    *repository.UsuarioRepo
	ComercioRepo   *repository.ComercioRepo
	PublicidadRepo *repository.PublicidadRepo
	ReseniaRepo    *repository.ReseniaRepo
	ReservaRepo    *repository.ReservaRepo
}

func NewAdminHandler(ur *repository.UsuarioRepo, cr *repository.ComercioRepo, pr *repository.PublicidadRepo, sr *repository.ReseniaRepo, rr *repository.ReservaRepo) *AdminHandler {
	if ur == nil || cr == nil || pr == nil || sr == nil || rr == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		UsuarioRepo:    ur,
		ComercioRepo:   cr,
		PublicidadRepo: pr,
		ReseniaRepo:    sr,
		ReservaRepo:    rr,
	}
}

type motivoReq struct {
	Motivo string `json:"motivo"`
}

// ----- venue moderation -----

type adminComercioResp struct {
	comercioResp
	UsuarioID uint64    `json:"usuario_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListComercios returns every venue, optionally narrowed by moderation
// state (`estado` = PENDIENTE | APROBADO | RECHAZADO).
func (h *AdminHandler) ListComercios(c echo.Context) error {
	estado := strings.ToUpper(strings.TrimSpace(c.QueryParam("estado")))
	switch estado {
	case "", lifecycle.ModeracionPendiente, lifecycle.ModeracionAprobado, lifecycle.ModeracionRechazado:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid estado"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comercios, err := h.ComercioRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]adminComercioResp, 0, len(comercios))
	for _, com := range comercios {
		if estado != "" && lifecycle.EstadoModeracion(com.Aprobado, com.MotivoRechazo) != estado {
			continue
		}
		out = append(out, adminComercioResp{
			comercioResp: comercioToResp(com),
			UsuarioID:    com.UsuarioID,
			CreatedAt:    com.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// AprobarComercio approves a venue listing.
func (h *AdminHandler) AprobarComercio(c echo.Context) error {
	return h.moderarComercio(c, func(com *model.Comercio, a lifecycle.Actor) error {
		return lifecycle.AprobarComercio(com, a)
	})
}

// RechazarComercio rejects a venue listing with a mandatory reason.
func (h *AdminHandler) RechazarComercio(c echo.Context) error {
	var req motivoReq
	_ = c.Bind(&req)
	return h.moderarComercio(c, func(com *model.Comercio, a lifecycle.Actor) error {
		return lifecycle.RechazarComercio(com, a, req.Motivo)
	})
}

func (h *AdminHandler) moderarComercio(c echo.Context, guard func(*model.Comercio, lifecycle.Actor) error) error {
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

	com, err := h.ComercioRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrComercioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := guard(com, actor); err != nil {
		return c.JSON(lifecycleStatus(err), echo.Map{"error": err.Error()})
	}
	if err := h.ComercioRepo.SetModeracion(ctx, com.ID, com.Aprobado, com.MotivoRechazo); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	_ = queue_publisher.PublishComercioModerado(ctx, queue.ComercioModeradoEvent{
		ComercioID: com.ID,
		UsuarioID:  com.UsuarioID,
		Nombre:     com.Nombre,
		Aprobado:   com.Aprobado,
		Motivo:     com.MotivoRechazo,
	})

	return c.JSON(http.StatusOK, comercioToResp(com))
}

// ----- advertisement moderation -----

// ListPublicidades returns every ad, optionally narrowed by moderation state.
func (h *AdminHandler) ListPublicidades(c echo.Context) error {
	estado := strings.ToUpper(strings.TrimSpace(c.QueryParam("estado")))
	switch estado {
	case "", lifecycle.ModeracionPendiente, lifecycle.ModeracionAprobado, lifecycle.ModeracionRechazado:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid estado"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ads, err := h.PublicidadRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now()
	out := make([]publicidadResp, 0, len(ads))
	for _, p := range ads {
		if estado != "" && lifecycle.EstadoModeracion(p.Aprobado, p.MotivoRechazo) != estado {
			continue
		}
		out = append(out, publicidadToResp(p, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// AprobarPublicidad approves an ad. If the ad is already paid this is the
// moment it becomes visible, so the activation event fires here.
func (h *AdminHandler) AprobarPublicidad(c echo.Context) error {
	return h.moderarPublicidad(c, func(p *model.Publicidad, a lifecycle.Actor) error {
		return lifecycle.AprobarPublicidad(p, a)
	})
}

// RechazarPublicidad rejects an ad with a mandatory reason.
func (h *AdminHandler) RechazarPublicidad(c echo.Context) error {
	var req motivoReq
	_ = c.Bind(&req)
	return h.moderarPublicidad(c, func(p *model.Publicidad, a lifecycle.Actor) error {
		return lifecycle.RechazarPublicidad(p, a, req.Motivo)
	})
}

func (h *AdminHandler) moderarPublicidad(c echo.Context, guard func(*model.Publicidad, lifecycle.Actor) error) error {
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

	p, err := h.PublicidadRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPublicidadNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "publicidad not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := guard(p, actor); err != nil {
		return c.JSON(lifecycleStatus(err), echo.Map{"error": err.Error()})
	}
	if err := h.PublicidadRepo.SetModeracion(ctx, p.ID, p.Aprobado, p.MotivoRechazo); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if p.Aprobado && p.Pagado {
		_ = queue_publisher.PublishPublicidadActivada(ctx, queue.PublicidadActivadaEvent{
			PublicidadID: p.ID,
			ComercioID:   p.ComercioID,
			Titulo:       p.Descripcion,
			Dias:         p.Tiempo,
			Precio:       uint32(lifecycle.PrecioPublicidad(p.Tiempo)),
		})
	}

	return c.JSON(http.StatusOK, publicidadToResp(p, time.Now()))
}

// ----- user administration -----

type adminUsuarioResp struct {
	ID        uint64    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsuarios returns every account.
func (h *AdminHandler) ListUsuarios(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	usuarios, err := h.UsuarioRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]adminUsuarioResp, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, adminUsuarioResp{
			ID:        u.ID,
			Nombre:    u.Nombre,
			Email:     u.Email,
			Rol:       u.Rol,
			Activo:    u.Activo,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type setActivoReq struct {
	Activo bool `json:"activo"`
}

// SetUsuarioActivo activates or deactivates an account. Admins cannot
// deactivate themselves.
func (h *AdminHandler) SetUsuarioActivo(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setActivoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if id == uid && !req.Activo {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot deactivate yourself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.UsuarioRepo.SetActivo(ctx, id, req.Activo); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "activo": req.Activo})
}

type setRolReq struct {
	Rol string `json:"rol"`
}

// SetUsuarioRol changes an account's role.
func (h *AdminHandler) SetUsuarioRol(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setRolReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rol := strings.ToUpper(strings.TrimSpace(req.Rol))
	switch rol {
	case model.RolComun, model.RolComercio, model.RolAdmin:
	default:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid rol"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.UsuarioRepo.SetRol(ctx, id, rol); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "rol": rol})
}

// ----- review takedown -----

// ListResenias returns every review with its author, including removed ones.
func (h *AdminHandler) ListResenias(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resenias, err := h.ReseniaRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type adminResenia struct {
		reseniaResp
		Autor string `json:"autor"`
	}
	out := make([]adminResenia, 0, len(resenias))
	for _, r := range resenias {
		out = append(out, adminResenia{
			reseniaResp: reseniaResp{
				ID:         r.Resenia.ID,
				ComercioID: r.Resenia.ComercioID,
				Puntuacion: r.Resenia.Puntuacion,
				Comentario: r.Resenia.Comentario,
				Activa:     r.Resenia.Activa,
				CreatedAt:  r.Resenia.CreatedAt,
			},
			Autor: r.NombreUsuario,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// DeleteResenia soft-deletes a review; the row stays for the author.
func (h *AdminHandler) DeleteResenia(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.ReseniaRepo.SoftDelete(ctx, id); err != nil {
		if err == repository.ErrReseniaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resenia not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- stats -----

// Estadisticas aggregates counters across every table. Any failed source
// fails the whole response.
func (h *AdminHandler) Estadisticas(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	usuarios, err := h.UsuarioRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	comerciosTotal, comerciosAprobados, err := h.ComercioRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	reservas, err := h.ReservaRepo.CountByEstado(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	publicidadesTotal, publicidadesActivas, err := h.PublicidadRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"usuarios": echo.Map{"total": usuarios},
		"comercios": echo.Map{
			"total":     comerciosTotal,
			"aprobados": comerciosAprobados,
		},
		"reservas": reservas,
		"publicidades": echo.Map{
			"total":   publicidadesTotal,
			"activas": publicidadesActivas,
		},
	})
}
