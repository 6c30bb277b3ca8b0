// Package queue defines message payloads exchanged over the message broker.
package queue

import "encoding/json"

// Event type discriminators carried in the envelope.
const (
	TipoReservaDecidida    = "reserva.decidida"
	TipoComercioModerado   = "comercio.moderado"
	TipoPublicidadActivada = "publicidad.activada"
)

// Evento is the envelope published to the notificaciones queue. Datos holds
// the type-specific payload so the consumer can decode after switching on Tipo.
type Evento struct {
	Tipo      string          `json:"tipo"`
	EmitidoEn string          `json:"emitido_en"`
	Datos     json.RawMessage `json:"datos"`
}

// ReservaDecididaEvent is published when an owner or admin approves, rejects
// or the requester cancels a reservation. It carries enough information for
// downstream consumers to log or notify without querying the primary database.
type ReservaDecididaEvent struct {
	ReservaID      uint64 `json:"reserva_id"`
	UsuarioID      uint64 `json:"usuario_id"`
	ComercioID     uint64 `json:"comercio_id"`
	NombreComercio string `json:"nombre_comercio"`
	Estado         string `json:"estado"`
	Motivo         string `json:"motivo,omitempty"`
	Fecha          string `json:"fecha"`
	Cantidad       uint32 `json:"cantidad"`
}

// ComercioModeradoEvent is published when an admin approves or rejects a venue.
type ComercioModeradoEvent struct {
	ComercioID uint64 `json:"comercio_id"`
	UsuarioID  uint64 `json:"usuario_id"`
	Nombre     string `json:"nombre"`
	Aprobado   bool   `json:"aprobado"`
	Motivo     string `json:"motivo,omitempty"`
}

// PublicidadActivadaEvent is published when an advertisement becomes visible,
// that is when the payment confirmation lands on an already approved ad or
// the approval lands on an already paid one.
type PublicidadActivadaEvent struct {
	PublicidadID uint64 `json:"publicidad_id"`
	ComercioID   uint64 `json:"comercio_id"`
	Titulo       string `json:"titulo"`
	Dias         uint32 `json:"dias"`
	Precio       uint32 `json:"precio"`
}
