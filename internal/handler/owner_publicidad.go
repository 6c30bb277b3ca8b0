package handler

// Handlers for COMERCIO users buying advertising: creating an ad, listing
// owned ads with their composite state, starting a checkout and receiving
// the provider's return redirect. The return endpoint is public because the
// provider redirects the buyer's browser straight to it.

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dondesalimos/donde-salimos/internal/external"
	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/queue"
	"github.com/dondesalimos/donde-salimos/internal/repository"
	queue_publisher "github.com/dondesalimos/donde-salimos/internal/service"
)

// OwnerPublicidadHandler bundles dependencies for the advertising endpoints.
type OwnerPublicidadHandler struct {
	PublicidadRepo *repository.PublicidadRepo
	PagoRepo       *repository.PagoRepo
	ComercioRepo   *repository.ComercioRepo
	Pagos          *external.PagosClient
}

func NewOwnerPublicidadHandler(pr *repository.PublicidadRepo, gr *repository.PagoRepo, cr *repository.ComercioRepo, pagos *external.PagosClient) *OwnerPublicidadHandler {
	if pr == nil || gr == nil || cr == nil {
		panic("nil repository passed to NewOwnerPublicidadHandler")
	}
	return &OwnerPublicidadHandler{PublicidadRepo: pr, PagoRepo: gr, ComercioRepo: cr, Pagos: pagos}
}

type createPublicidadReq struct {
	ComercioID  uint64  `json:"comercio_id"`
	Descripcion string  `json:"descripcion"`
	Imagen      *string `json:"imagen"`
	Tiempo      uint32  `json:"tiempo"` // days
}

type publicidadResp struct {
	ID               uint64  `json:"id"`
	ComercioID       uint64  `json:"comercio_id"`
	Descripcion      string  `json:"descripcion"`
	Imagen           *string `json:"imagen,omitempty"`
	Tiempo           uint32  `json:"tiempo"`
	Precio           uint64  `json:"precio"`
	Visualizaciones  uint64  `json:"visualizaciones"`
	EstadoModeracion string  `json:"estado_moderacion"`
	Pagado           bool    `json:"pagado"`
	Visible          bool    `json:"visible"`
	Vence            string  `json:"vence"`
	MotivoRechazo    string  `json:"motivo_rechazo,omitempty"`
}

func publicidadToResp(p *model.Publicidad, now time.Time) publicidadResp {
	return publicidadResp{
		ID:               p.ID,
		ComercioID:       p.ComercioID,
		Descripcion:      p.Descripcion,
		Imagen:           p.Imagen,
		Tiempo:           p.Tiempo,
		Precio:           lifecycle.PrecioPublicidad(p.Tiempo),
		Visualizaciones:  p.Visualizaciones,
		EstadoModeracion: lifecycle.EstadoModeracion(p.Aprobado, p.MotivoRechazo),
		Pagado:           p.Pagado,
		Visible:          lifecycle.PublicidadVisible(p, now),
		Vence:            p.Vence().Format(time.RFC3339),
		MotivoRechazo:    p.MotivoRechazo,
	}
}

// comercioOwnedBy loads the venue and verifies ownership; a venue owned by
// someone else is reported as missing.
func (h *OwnerPublicidadHandler) comercioOwnedBy(ctx context.Context, comercioID, uid uint64) (*model.Comercio, error) {
	com, err := h.ComercioRepo.GetByID(ctx, comercioID)
	if err != nil {
		return nil, err
	}
	if com.UsuarioID != uid {
		return nil, repository.ErrComercioNotFound
	}
	return com, nil
}

// CreatePublicidad registers an ad for one of the caller's approved venues.
// The ad needs an admin approval and a confirmed payment before it shows.
func (h *OwnerPublicidadHandler) CreatePublicidad(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPublicidadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Descripcion = strings.TrimSpace(req.Descripcion)
	if req.Descripcion == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "descripcion required"})
	}
	if req.Tiempo < 1 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "tiempo must be at least 1 day"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	com, err := h.comercioOwnedBy(ctx, req.ComercioID, uid)
	if err != nil {
		if err == repository.ErrComercioNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comercio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !com.Aprobado {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "comercio not approved"})
	}

	p := &model.Publicidad{
		ComercioID:  req.ComercioID,
		Descripcion: req.Descripcion,
		Imagen:      req.Imagen,
		Tiempo:      req.Tiempo,
	}
	if err := h.PublicidadRepo.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create publicidad failed"})
	}
	return c.JSON(http.StatusCreated, publicidadToResp(p, time.Now()))
}

// ListMisPublicidades returns every ad across the caller's venues.
func (h *OwnerPublicidadHandler) ListMisPublicidades(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ads, err := h.PublicidadRepo.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now()
	out := make([]publicidadResp, 0, len(ads))
	for _, p := range ads {
		out = append(out, publicidadToResp(p, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Pagar starts a checkout for one of the caller's ads and returns the URL the
// buyer must visit. Rejected and already-paid ads are refused.
func (h *OwnerPublicidadHandler) Pagar(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if h.Pagos == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payments not configured"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p, err := h.PublicidadRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPublicidadNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "publicidad not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	com, err := h.comercioOwnedBy(ctx, p.ComercioID, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "publicidad not found"})
	}
	if p.Pagado {
		return c.JSON(http.StatusConflict, echo.Map{"error": "publicidad already paid"})
	}
	if lifecycle.EstadoModeracion(p.Aprobado, p.MotivoRechazo) == lifecycle.ModeracionRechazado {
		return c.JSON(http.StatusConflict, echo.Map{"error": "publicidad rejected"})
	}

	monto := lifecycle.PrecioPublicidad(p.Tiempo)
	pago := &model.Pago{
		PublicidadID: p.ID,
		Monto:        monto,
		Referencia:   uuid.NewString(),
	}
	if err := h.PagoRepo.Create(ctx, pago); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create pago failed"})
	}

	titulo := fmt.Sprintf("Publicidad %s (%d dias)", com.Nombre, p.Tiempo)
	pref, err := h.Pagos.CrearPreferencia(ctx, titulo, float64(monto), pago.Referencia)
	if err != nil {
		c.Logger().Errorf("crear preferencia: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment provider error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"referencia": pago.Referencia,
		"monto":      monto,
		"init_point": pref.InitPoint,
	})
}

// Retorno receives the provider's browser redirect after checkout. It matches
// the external reference back to the local payment, records the collection
// result, and on approval marks the ad paid. Re-delivering the same result is
// harmless.
func (h *OwnerPublicidadHandler) Retorno(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("collection_status")))
	providerID := strings.TrimSpace(c.QueryParam("payment_id"))
	referencia := strings.TrimSpace(c.QueryParam("external_reference"))
	if referencia == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "external_reference required"})
	}
	switch status {
	case model.PagoAprobado, model.PagoPendiente, model.PagoRechazado:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid collection_status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pago, err := h.PagoRepo.GetByReferencia(ctx, referencia)
	if err != nil {
		if err == repository.ErrPagoNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pago not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.PagoRepo.SetResultado(ctx, pago.ID, providerID, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update pago failed"})
	}

	if status != model.PagoAprobado {
		return c.JSON(http.StatusOK, echo.Map{"referencia": referencia, "estado": status})
	}

	if err := h.PublicidadRepo.MarcarPagada(ctx, pago.PublicidadID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update publicidad failed"})
	}

	// Announce activation when the approval half was already in place.
	if p, err := h.PublicidadRepo.GetByID(ctx, pago.PublicidadID); err == nil && p.Aprobado {
		_ = queue_publisher.PublishPublicidadActivada(ctx, queue.PublicidadActivadaEvent{
			PublicidadID: p.ID,
			ComercioID:   p.ComercioID,
			Titulo:       p.Descripcion,
			Dias:         p.Tiempo,
			Precio:       uint32(lifecycle.PrecioPublicidad(p.Tiempo)),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"referencia": referencia, "estado": status})
}
