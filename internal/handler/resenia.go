package handler

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/repository"
)

// ReseniaHandler bundles dependencies for COMUN users writing reviews.
type ReseniaHandler struct {
	ReseniaRepo  *repository.ReseniaRepo
	ComercioRepo *repository.ComercioRepo
}

func NewReseniaHandler(rr *repository.ReseniaRepo, cr *repository.ComercioRepo) *ReseniaHandler {
	if rr == nil || cr == nil {
		panic("nil repository passed to NewReseniaHandler")
	}
	return &ReseniaHandler{ReseniaRepo: rr, ComercioRepo: cr}
}

type createReseniaReq struct {
	ComercioID uint64 `json:"comercio_id"`
	Puntuacion uint8  `json:"puntuacion"`
	Comentario string `json:"comentario"`
}

type reseniaResp struct {
	ID         uint64    `json:"id"`
	ComercioID uint64    `json:"comercio_id"`
	Puntuacion uint8     `json:"puntuacion"`
	Comentario string    `json:"comentario"`
	Activa     bool      `json:"activa"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateResenia posts a review against an approved venue. Rating must be
// 1..5 and the comment between the configured length bounds.
func (h *ReseniaHandler) CreateResenia(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReseniaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Comentario = strings.TrimSpace(req.Comentario)
	if req.Puntuacion < 1 || req.Puntuacion > 5 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "puntuacion must be 1..5"})
	}
	if n := utf8.RuneCountInString(req.Comentario); n < model.MinComentarioResenia || n > model.MaxComentarioResenia {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "comentario must be 10..500 chars"})
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
	if !com.Aprobado {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
	}

	res := &model.Resenia{
		UsuarioID:  uid,
		ComercioID: req.ComercioID,
		Puntuacion: req.Puntuacion,
		Comentario: req.Comentario,
	}
	if err := h.ReseniaRepo.Create(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create resenia failed"})
	}
	return c.JSON(http.StatusCreated, reseniaResp{
		ID:         res.ID,
		ComercioID: res.ComercioID,
		Puntuacion: res.Puntuacion,
		Comentario: res.Comentario,
		Activa:     res.Activa,
		CreatedAt:  res.CreatedAt,
	})
}

// ListMisResenias returns every review the caller wrote, including ones a
// moderator removed.
func (h *ReseniaHandler) ListMisResenias(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resenias, err := h.ReseniaRepo.ListByUsuario(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]reseniaResp, 0, len(resenias))
	for _, r := range resenias {
		out = append(out, reseniaResp{
			ID:         r.Resenia.ID,
			ComercioID: r.Resenia.ComercioID,
			Puntuacion: r.Resenia.Puntuacion,
			Comentario: r.Resenia.Comentario,
			Activa:     r.Resenia.Activa,
			CreatedAt:  r.Resenia.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
