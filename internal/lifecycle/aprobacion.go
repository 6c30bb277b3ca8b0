package lifecycle

import (
	"strings"
	"time"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// Moderation states derived from the (aprobado, motivo) pair shared by
// venues and advertisements.  The pair never holds both an approval and
// a rejection reason at once: approving clears the reason.
const (
	ModeracionPendiente = "PENDIENTE"
	ModeracionAprobado  = "APROBADO"
	ModeracionRechazado = "RECHAZADO"
)

// EstadoModeracion partitions the (aprobado, motivo) pair into the
// three moderation states.
func EstadoModeracion(aprobado bool, motivo string) string {
	switch {
	case aprobado:
		return ModeracionAprobado
	case motivo != "":
		return ModeracionRechazado
	default:
		return ModeracionPendiente
	}
}

// AprobarComercio marks a venue as approved, clearing any previous
// rejection reason.  Admin only.
func AprobarComercio(c *model.Comercio, a Actor) error {
	if a.Rol != model.RolAdmin {
		return ErrNoAutorizado
	}
	c.Aprobado = true
	c.MotivoRechazo = ""
	return nil
}

// RechazarComercio rejects a venue with a mandatory reason.  Admin only.
func RechazarComercio(c *model.Comercio, a Actor, motivo string) error {
	if a.Rol != model.RolAdmin {
		return ErrNoAutorizado
	}
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return ErrMotivoRequerido
	}
	c.Aprobado = false
	c.MotivoRechazo = motivo
	return nil
}

// AprobarPublicidad marks an ad as approved, clearing any previous
// rejection reason.  Payment is still required before it becomes
// visible.  Admin only.
func AprobarPublicidad(p *model.Publicidad, a Actor) error {
	if a.Rol != model.RolAdmin {
		return ErrNoAutorizado
	}
	p.Aprobado = true
	p.MotivoRechazo = ""
	return nil
}

// RechazarPublicidad rejects an ad with a mandatory reason.  Admin only.
func RechazarPublicidad(p *model.Publicidad, a Actor, motivo string) error {
	if a.Rol != model.RolAdmin {
		return ErrNoAutorizado
	}
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return ErrMotivoRequerido
	}
	p.Aprobado = false
	p.MotivoRechazo = motivo
	return nil
}

// PrecioPublicidad maps an ad duration in days to its price in pesos.
// The three standard durations have fixed prices; any other duration
// falls back to a per-day rate.
func PrecioPublicidad(dias uint32) uint64 {
	switch dias {
	case 7:
		return 1500
	case 15:
		return 2500
	case 30:
		return 4000
	}
	return uint64(dias) * 200
}

// PublicidadVisible reports whether an ad qualifies for the public
// carousel at the given instant: approved, paid, and still inside its
// paid window.  The window closes exactly Tiempo days after creation.
func PublicidadVisible(p *model.Publicidad, now time.Time) bool {
	return p.Aprobado && p.Pagado && p.Vence().After(now)
}
