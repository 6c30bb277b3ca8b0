package model

import "time"

// Publicidad is a paid, time-boxed advertisement slot for a venue.  Its
// composite lifecycle is: pending approval -> rejected (terminal) or
// approved-unpaid -> active once the payment callback confirms ->
// expired once Tiempo days have elapsed since creation.  Expiry is pure
// date arithmetic computed on read, never persisted.
//
// Fields:
//  ID              – primary key identifier.
//  ComercioID      – advertised venue.
//  Descripcion     – ad copy.
//  Imagen          – optional image, base64 encoded in transit (nullable).
//  Tiempo          – duration in days (7/15/30 have fixed prices).
//  Visualizaciones – carousel view counter.
//  Aprobado        – admin approval flag.
//  Pagado          – payment-completed flag.
//  MotivoRechazo   – rejection reason; empty unless rejected.
//  CreatedAt       – creation timestamp, start of the paid window.
//  UpdatedAt       – last update timestamp.
type Publicidad struct {
	ID              uint64    // publicidades.id
	ComercioID      uint64    // publicidades.comercio_id
	Descripcion     string    // publicidades.descripcion
	Imagen          *string   // publicidades.imagen (nullable)
	Tiempo          uint32    // publicidades.tiempo (days)
	Visualizaciones uint64    // publicidades.visualizaciones
	Aprobado        bool      // publicidades.aprobado
	Pagado          bool      // publicidades.pagado
	MotivoRechazo   string    // publicidades.motivo_rechazo ('' unless rejected)
	CreatedAt       time.Time // publicidades.created_at
	UpdatedAt       time.Time // publicidades.updated_at
}

// Vence returns the instant at which the paid window closes.
func (p *Publicidad) Vence() time.Time {
	return p.CreatedAt.Add(time.Duration(p.Tiempo) * 24 * time.Hour)
}

// Payment statuses mirrored from the checkout provider's return URL
// (`collection_status` query parameter).
const (
	PagoAprobado  = "approved"
	PagoPendiente = "pending"
	PagoRechazado = "rejected"
)

// Pago records a checkout attempt for an advertisement.  The external
// reference is generated locally and round-trips through the provider
// so the return callback can be matched to the ad.
//
// Fields:
//  ID           – primary key identifier.
//  PublicidadID – the advertisement being paid for.
//  Monto        – amount in pesos, derived from the ad duration.
//  Referencia   – locally generated external reference (uuid).
//  ProveedorID  – provider-side payment id from the return URL.
//  Estado       – provider collection status.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Pago struct {
	ID           uint64    // pagos.id
	PublicidadID uint64    // pagos.publicidad_id
	Monto        uint64    // pagos.monto
	Referencia   string    // pagos.referencia
	ProveedorID  string    // pagos.proveedor_id ('' until callback)
	Estado       string    // pagos.estado
	CreatedAt    time.Time // pagos.created_at
	UpdatedAt    time.Time // pagos.updated_at
}
