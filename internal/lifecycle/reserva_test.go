package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

var ahora = time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

func reservaPendiente() *model.Reserva {
	return &model.Reserva{
		ID:               1,
		UsuarioID:        10,
		ComercioID:       100,
		FechaReserva:     ahora.Add(48 * time.Hour),
		CantidadPersonas: 2,
		Estado:           model.ReservaPendiente,
	}
}

func TestAprobarReserva(t *testing.T) {
	r := reservaPendiente()
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}
	if err := AprobarReserva(r, duenio, 20, ahora); err != nil {
		t.Fatalf("owner approve failed: %v", err)
	}
	if r.Estado != model.ReservaAprobada {
		t.Errorf("estado = %s, want APROBADA", r.Estado)
	}
}

func TestAprobarReservaRequiereDuenio(t *testing.T) {
	r := reservaPendiente()
	otro := Actor{UsuarioID: 99, Rol: model.RolComercio}
	if err := AprobarReserva(r, otro, 20, ahora); !errors.Is(err, ErrNoAutorizado) {
		t.Errorf("foreign owner approve: err = %v, want ErrNoAutorizado", err)
	}
	comun := Actor{UsuarioID: 10, Rol: model.RolComun}
	if err := AprobarReserva(r, comun, 20, ahora); !errors.Is(err, ErrNoAutorizado) {
		t.Errorf("requester approve: err = %v, want ErrNoAutorizado", err)
	}
	admin := Actor{UsuarioID: 1, Rol: model.RolAdmin}
	if err := AprobarReserva(r, admin, 20, ahora); err != nil {
		t.Errorf("admin approve failed: %v", err)
	}
}

func TestRechazarDespuesDeAprobarEsInvalido(t *testing.T) {
	r := reservaPendiente()
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}
	if err := AprobarReserva(r, duenio, 20, ahora); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	err := RechazarReserva(r, duenio, 20, "completo", ahora)
	if !errors.Is(err, ErrTransicionInvalida) {
		t.Errorf("reject after approve: err = %v, want ErrTransicionInvalida", err)
	}
}

func TestRechazarRequiereMotivo(t *testing.T) {
	r := reservaPendiente()
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}
	if err := RechazarReserva(r, duenio, 20, "   ", ahora); !errors.Is(err, ErrMotivoRequerido) {
		t.Errorf("empty motivo: err = %v, want ErrMotivoRequerido", err)
	}
	if err := RechazarReserva(r, duenio, 20, "sin lugar", ahora); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if r.Estado != model.ReservaRechazada || r.MotivoRechazo != "sin lugar" {
		t.Errorf("estado=%s motivo=%q after reject", r.Estado, r.MotivoRechazo)
	}
}

func TestCancelarReserva(t *testing.T) {
	r := reservaPendiente()
	requester := Actor{UsuarioID: 10, Rol: model.RolComun}

	// motivo is optional for cancellation
	if err := CancelarReserva(r, requester, "", ahora); err != nil {
		t.Fatalf("cancel pending failed: %v", err)
	}
	if r.Estado != model.ReservaCancelada {
		t.Errorf("estado = %s, want CANCELADA", r.Estado)
	}

	// approved reservations are also cancellable by the requester
	r2 := reservaPendiente()
	r2.Estado = model.ReservaAprobada
	if err := CancelarReserva(r2, requester, "cambio de planes", ahora); err != nil {
		t.Fatalf("cancel approved failed: %v", err)
	}
	if r2.MotivoRechazo != "cambio de planes" {
		t.Errorf("motivo = %q", r2.MotivoRechazo)
	}

	// terminal states admit no further transitions
	if err := CancelarReserva(r2, requester, "", ahora); !errors.Is(err, ErrTransicionInvalida) {
		t.Errorf("cancel cancelled: err = %v, want ErrTransicionInvalida", err)
	}

	// only the requester may cancel
	r3 := reservaPendiente()
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}
	if err := CancelarReserva(r3, duenio, "", ahora); !errors.Is(err, ErrNoAutorizado) {
		t.Errorf("owner cancel: err = %v, want ErrNoAutorizado", err)
	}
}

func TestReservaVencidaNoEsAccionable(t *testing.T) {
	r := reservaPendiente()
	r.FechaReserva = ahora.Add(-time.Hour)
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}
	if err := AprobarReserva(r, duenio, 20, ahora); !errors.Is(err, ErrTransicionInvalida) {
		t.Errorf("approve expired: err = %v, want ErrTransicionInvalida", err)
	}
	if got := r.EstadoVisible(ahora); got != model.ReservaVencida {
		t.Errorf("EstadoVisible = %s, want VENCIDA", got)
	}
	// the stored status is untouched
	if r.Estado != model.ReservaPendiente {
		t.Errorf("stored estado = %s, want PENDIENTE", r.Estado)
	}
}

func TestReservaDentroDeToleranciaSigueAccionable(t *testing.T) {
	r := reservaPendiente()
	r.FechaReserva = ahora.Add(-5 * time.Minute)
	if got := r.EstadoVisible(ahora); got != model.ReservaPendiente {
		t.Fatalf("EstadoVisible = %s, want PENDIENTE", got)
	}
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}
	if err := AprobarReserva(r, duenio, 20, ahora); err != nil {
		t.Errorf("approve within tolerance: err = %v, want nil", err)
	}
}

func TestValidarNuevaReserva(t *testing.T) {
	com := &model.Comercio{ID: 100, Aprobado: true, Capacidad: 2}
	futuro := ahora.Add(24 * time.Hour)

	if err := ValidarNuevaReserva(futuro, 2, "mesa afuera", com, ahora); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	// party size above capacity must fail before anything is persisted
	if err := ValidarNuevaReserva(futuro, 4, "", com, ahora); !errors.Is(err, ErrCapacidadExcedida) {
		t.Errorf("over capacity: err = %v, want ErrCapacidadExcedida", err)
	}
	if err := ValidarNuevaReserva(ahora.Add(-time.Minute), 2, "", com, ahora); !errors.Is(err, ErrFechaPasada) {
		t.Errorf("past slot: err = %v, want ErrFechaPasada", err)
	}
	if err := ValidarNuevaReserva(futuro, 0, "", com, ahora); !errors.Is(err, ErrCantidadInvalida) {
		t.Errorf("zero party: err = %v, want ErrCantidadInvalida", err)
	}
	long := make([]byte, model.MaxComentarioReserva+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidarNuevaReserva(futuro, 2, string(long), com, ahora); !errors.Is(err, ErrComentarioInvalido) {
		t.Errorf("long comment: err = %v, want ErrComentarioInvalido", err)
	}
	pendiente := &model.Comercio{ID: 101, Aprobado: false}
	if err := ValidarNuevaReserva(futuro, 2, "", pendiente, ahora); !errors.Is(err, ErrComercioNoVisible) {
		t.Errorf("unapproved venue: err = %v, want ErrComercioNoVisible", err)
	}
	// capacity 0 means unspecified; any party size passes
	sinCap := &model.Comercio{ID: 102, Aprobado: true}
	if err := ValidarNuevaReserva(futuro, 40, "", sinCap, ahora); err != nil {
		t.Errorf("unspecified capacity rejected party of 40: %v", err)
	}
}
