// Package lifecycle implements the reservation state machine, the
// shared moderation workflow for venues and advertisements, and the
// pure filtering rules applied to fetched collections.  Nothing in this
// package touches the database: guards validate and mutate in-memory
// records, and callers persist only after the guard accepts.
package lifecycle

import (
	"errors"
	"strings"
	"time"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// Sentinel errors returned by transition guards.  Handlers translate
// these into HTTP responses (403 for ErrNoAutorizado, 409 for
// ErrTransicionInvalida, 400 for the rest).
var (
	ErrTransicionInvalida = errors.New("transicion invalida")
	ErrNoAutorizado       = errors.New("no autorizado")
	ErrMotivoRequerido    = errors.New("motivo requerido")
	ErrFechaPasada        = errors.New("fecha en el pasado")
	ErrCantidadInvalida   = errors.New("cantidad de personas invalida")
	ErrCapacidadExcedida  = errors.New("capacidad del comercio excedida")
	ErrComentarioInvalido = errors.New("comentario invalido")
	ErrComercioNoVisible  = errors.New("comercio no aprobado")
)

// Actor identifies who is attempting a transition.  Rol carries the
// same values stored in the JWT role claim.
type Actor struct {
	UsuarioID uint64
	Rol       string
}

// esDecisor reports whether the actor may decide (approve/reject) a
// reservation for a venue owned by duenioID: the venue owner or an
// administrator.
func esDecisor(a Actor, duenioID uint64) bool {
	return a.Rol == model.RolAdmin || (a.Rol == model.RolComercio && a.UsuarioID == duenioID)
}

// ValidarNuevaReserva checks a reservation request before anything is
// persisted.  The slot must be in the future, the party size at least
// one and within the venue capacity when the venue declares one, the
// comment bounded, and the venue approved.
func ValidarNuevaReserva(fecha time.Time, cantidad uint32, comentario string, com *model.Comercio, now time.Time) error {
	if com == nil || !com.Aprobado {
		return ErrComercioNoVisible
	}
	if !fecha.After(now) {
		return ErrFechaPasada
	}
	if cantidad < 1 {
		return ErrCantidadInvalida
	}
	if com.Capacidad > 0 && cantidad > com.Capacidad {
		return ErrCapacidadExcedida
	}
	if len(comentario) > model.MaxComentarioReserva {
		return ErrComentarioInvalido
	}
	return nil
}

// AprobarReserva moves a pending reservation to APROBADA.  Only the
// venue owner or an admin may approve, and only while the reservation
// is still pending and its slot has not passed.  The record is mutated
// in place on success; callers persist afterwards.
func AprobarReserva(r *model.Reserva, a Actor, duenioID uint64, now time.Time) error {
	if !esDecisor(a, duenioID) {
		return ErrNoAutorizado
	}
	if r.EstadoVisible(now) != model.ReservaPendiente {
		return ErrTransicionInvalida
	}
	r.Estado = model.ReservaAprobada
	return nil
}

// RechazarReserva moves a pending reservation to RECHAZADA with a
// mandatory reason.  The same actors as AprobarReserva apply.
func RechazarReserva(r *model.Reserva, a Actor, duenioID uint64, motivo string, now time.Time) error {
	if !esDecisor(a, duenioID) {
		return ErrNoAutorizado
	}
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return ErrMotivoRequerido
	}
	if r.EstadoVisible(now) != model.ReservaPendiente {
		return ErrTransicionInvalida
	}
	r.Estado = model.ReservaRechazada
	r.MotivoRechazo = motivo
	return nil
}

// CancelarReserva lets the requester cancel a pending or approved
// reservation.  The reason is optional.  An expired pending
// reservation is no longer actionable.
func CancelarReserva(r *model.Reserva, a Actor, motivo string, now time.Time) error {
	if a.UsuarioID != r.UsuarioID {
		return ErrNoAutorizado
	}
	switch r.EstadoVisible(now) {
	case model.ReservaPendiente, model.ReservaAprobada:
	default:
		return ErrTransicionInvalida
	}
	r.Estado = model.ReservaCancelada
	r.MotivoRechazo = strings.TrimSpace(motivo)
	return nil
}
