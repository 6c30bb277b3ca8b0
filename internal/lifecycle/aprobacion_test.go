package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

func TestEstadoModeracion(t *testing.T) {
	if got := EstadoModeracion(false, ""); got != ModeracionPendiente {
		t.Errorf("pending partition = %s", got)
	}
	if got := EstadoModeracion(true, ""); got != ModeracionAprobado {
		t.Errorf("approved partition = %s", got)
	}
	if got := EstadoModeracion(false, "datos incompletos"); got != ModeracionRechazado {
		t.Errorf("rejected partition = %s", got)
	}
}

func TestModeracionComercio(t *testing.T) {
	admin := Actor{UsuarioID: 1, Rol: model.RolAdmin}
	duenio := Actor{UsuarioID: 20, Rol: model.RolComercio}

	c := &model.Comercio{ID: 100, Aprobado: false, MotivoRechazo: "sin CUIT"}
	if err := AprobarComercio(c, duenio); !errors.Is(err, ErrNoAutorizado) {
		t.Errorf("owner self-approve: err = %v, want ErrNoAutorizado", err)
	}
	if err := AprobarComercio(c, admin); err != nil {
		t.Fatalf("admin approve failed: %v", err)
	}
	// approving clears any previous rejection reason
	if !c.Aprobado || c.MotivoRechazo != "" {
		t.Errorf("after approve: aprobado=%v motivo=%q", c.Aprobado, c.MotivoRechazo)
	}

	if err := RechazarComercio(c, admin, ""); !errors.Is(err, ErrMotivoRequerido) {
		t.Errorf("reject without motivo: err = %v, want ErrMotivoRequerido", err)
	}
	if err := RechazarComercio(c, admin, "direccion inexistente"); err != nil {
		t.Fatalf("admin reject failed: %v", err)
	}
	if c.Aprobado || c.MotivoRechazo == "" {
		t.Errorf("after reject: aprobado=%v motivo=%q", c.Aprobado, c.MotivoRechazo)
	}
}

func TestPrecioPublicidad(t *testing.T) {
	cases := []struct {
		dias uint32
		want uint64
	}{
		{7, 1500},
		{15, 2500},
		{30, 4000},
		{10, 2000}, // fallback: dias * 200
		{1, 200},
	}
	for _, c := range cases {
		if got := PrecioPublicidad(c.dias); got != c.want {
			t.Errorf("PrecioPublicidad(%d) = %d, want %d", c.dias, got, c.want)
		}
	}
}

func TestPublicidadVisible(t *testing.T) {
	creada := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &model.Publicidad{
		ID:         1,
		Tiempo:     7,
		Aprobado:   true,
		Pagado:     true,
		CreatedAt:  creada,
		ComercioID: 100,
	}
	// visible through day 6, invisible from day 7 onward
	if !PublicidadVisible(p, creada.Add(6*24*time.Hour)) {
		t.Error("ad should be visible on day 6")
	}
	if PublicidadVisible(p, creada.Add(7*24*time.Hour)) {
		t.Error("ad should be invisible from day 7")
	}
	// all three conditions are required
	p.Pagado = false
	if PublicidadVisible(p, creada) {
		t.Error("unpaid ad should not be visible")
	}
	p.Pagado = true
	p.Aprobado = false
	if PublicidadVisible(p, creada) {
		t.Error("unapproved ad should not be visible")
	}
}

func TestModeracionPublicidad(t *testing.T) {
	admin := Actor{UsuarioID: 1, Rol: model.RolAdmin}
	comun := Actor{UsuarioID: 10, Rol: model.RolComun}

	p := &model.Publicidad{ID: 1}
	if err := AprobarPublicidad(p, comun); !errors.Is(err, ErrNoAutorizado) {
		t.Errorf("non-admin approve: err = %v, want ErrNoAutorizado", err)
	}
	if err := RechazarPublicidad(p, admin, "imagen inapropiada"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if err := AprobarPublicidad(p, admin); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if p.MotivoRechazo != "" {
		t.Errorf("approve left motivo = %q", p.MotivoRechazo)
	}
}
