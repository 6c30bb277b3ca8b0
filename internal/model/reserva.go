package model

import "time"

// Reservation statuses stored in the `reservas.estado` column.  The
// status is an explicit enumeration: an owner rejection and a requester
// cancellation are distinct terminal states, each with its own optional
// reason.  VENCIDA is never stored; it is a display state derived for a
// PENDIENTE reservation whose slot has already passed.
const (
	ReservaPendiente = "PENDIENTE"
	ReservaAprobada  = "APROBADA"
	ReservaRechazada = "RECHAZADA"
	ReservaCancelada = "CANCELADA"
	ReservaVencida   = "VENCIDA" // derived, never persisted
)

// ToleranciaReserva is the fixed grace period granted past the
// reserved slot before a table is released.
const ToleranciaReserva = 15 * time.Minute

// MaxComentarioReserva bounds the optional free-text comment attached
// to a reservation.
const MaxComentarioReserva = 200

// Reserva ties a user to a venue and a time slot.  Created in
// PENDIENTE; the venue owner (or an admin) moves it to APROBADA or
// RECHAZADA, the requester may cancel a pending or approved reservation
// into CANCELADA.  Terminal statuses admit no further transitions.
//
// Fields:
//  ID               – primary key identifier.
//  UsuarioID        – requesting user.
//  ComercioID       – venue being reserved.
//  FechaReserva     – requested slot, must be in the future at creation.
//  CantidadPersonas – party size, >= 1 and bounded by venue capacity.
//  Comentarios      – optional free text, <= 200 chars.
//  Estado           – lifecycle status (see constants above).
//  MotivoRechazo    – reason attached on rejection or cancellation.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reserva struct {
	ID               uint64    // reservas.id
	UsuarioID        uint64    // reservas.usuario_id
	ComercioID       uint64    // reservas.comercio_id
	FechaReserva     time.Time // reservas.fecha_reserva
	CantidadPersonas uint32    // reservas.cantidad_personas
	Comentarios      string    // reservas.comentarios
	Estado           string    // reservas.estado
	MotivoRechazo    string    // reservas.motivo_rechazo ('' when none)
	CreatedAt        time.Time // reservas.created_at
	UpdatedAt        time.Time // reservas.updated_at
}

// EstadoVisible returns the status to display at the given instant:
// a still-pending reservation whose slot passed more than
// ToleranciaReserva ago is shown as VENCIDA and is no longer
// actionable.
func (r *Reserva) EstadoVisible(now time.Time) string {
	if r.Estado == ReservaPendiente && now.After(r.FechaReserva.Add(ToleranciaReserva)) {
		return ReservaVencida
	}
	return r.Estado
}
