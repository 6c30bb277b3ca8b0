package model

import "time"

// Venue categories accepted by the `comercios.tipo` column.
const (
	TipoBar        = "BAR"
	TipoClub       = "CLUB"
	TipoRestaurant = "RESTAURANT"
	TipoCafe       = "CAFE"
	TipoDisco      = "DISCO"
	TipoPub        = "PUB"
	TipoOtro       = "OTRO"
)

// TipoComercioValido reports whether tipo is one of the accepted venue
// categories.
func TipoComercioValido(tipo string) bool {
	switch tipo {
	case TipoBar, TipoClub, TipoRestaurant, TipoCafe, TipoDisco, TipoPub, TipoOtro:
		return true
	}
	return false
}

// Comercio represents a venue listed in the marketplace.  A venue always
// starts unapproved regardless of who creates it; only an administrator
// flips Aprobado to true or attaches a rejection reason.  Approved
// venues are publicly visible, eligible to receive reservations and may
// host advertising.
//
// Fields:
//  ID            – primary key identifier.
//  UsuarioID     – owning COMERCIO user.
//  Nombre        – venue name.
//  Direccion     – street address.
//  Latitud       – latitude of the venue.
//  Longitud      – longitude of the venue.
//  CUIT          – Argentine tax id, check digit validated on write.
//  Telefono      – contact phone.
//  Horario       – free-text opening schedule.
//  Descripcion   – free-text description.
//  Foto          – optional photo, base64 encoded in transit (nullable).
//  Tipo          – venue category (BAR, CLUB, RESTAURANT, ...).
//  Capacidad     – seating capacity; 0 means unspecified.
//  Aprobado      – admin approval flag.
//  MotivoRechazo – rejection reason; empty unless rejected.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Comercio struct {
	ID            uint64    // comercios.id
	UsuarioID     uint64    // comercios.usuario_id
	Nombre        string    // comercios.nombre
	Direccion     string    // comercios.direccion
	Latitud       float64   // comercios.latitud
	Longitud      float64   // comercios.longitud
	CUIT          string    // comercios.cuit
	Telefono      string    // comercios.telefono
	Horario       string    // comercios.horario
	Descripcion   string    // comercios.descripcion
	Foto          *string   // comercios.foto (nullable)
	Tipo          string    // comercios.tipo
	Capacidad     uint32    // comercios.capacidad (0 = unspecified)
	Aprobado      bool      // comercios.aprobado
	MotivoRechazo string    // comercios.motivo_rechazo ('' unless rejected)
	CreatedAt     time.Time // comercios.created_at
	UpdatedAt     time.Time // comercios.updated_at
}
