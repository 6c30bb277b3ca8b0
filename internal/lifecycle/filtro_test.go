package lifecycle

import (
	"reflect"
	"testing"
	"time"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

func vistas(now time.Time) []ReservaVista {
	return []ReservaVista{
		{
			Reserva:        model.Reserva{ID: 1, UsuarioID: 10, ComercioID: 100, FechaReserva: now.Add(2 * time.Hour), Estado: model.ReservaPendiente},
			NombreUsuario:  "Maria Gomez",
			NombreComercio: "Bar Tolomeo",
		},
		{
			Reserva:        model.Reserva{ID: 2, UsuarioID: 10, ComercioID: 200, FechaReserva: now.Add(3 * 24 * time.Hour), Estado: model.ReservaAprobada},
			NombreUsuario:  "Maria Gomez",
			NombreComercio: "La Esquina",
		},
		{
			Reserva:        model.Reserva{ID: 3, UsuarioID: 11, ComercioID: 100, FechaReserva: now.Add(-24 * time.Hour), Estado: model.ReservaCancelada},
			NombreUsuario:  "Juan Perez",
			NombreComercio: "Bar Tolomeo",
		},
		{
			Reserva:        model.Reserva{ID: 4, UsuarioID: 12, ComercioID: 100, FechaReserva: now.Add(10 * 24 * time.Hour), Estado: model.ReservaPendiente},
			NombreUsuario:  "Ana Diaz",
			NombreComercio: "Bar Tolomeo",
		},
	}
}

func ids(items []ReservaVista) []uint64 {
	out := make([]uint64, 0, len(items))
	for _, v := range items {
		out = append(out, v.Reserva.ID)
	}
	return out
}

func TestFiltrosComponenPorConjuncion(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	in := vistas(now)

	got := Aplicar(in, DeComercios([]uint64{100}), ConEstado(model.ReservaPendiente, now))
	if !reflect.DeepEqual(ids(got), []uint64{1, 4}) {
		t.Errorf("compose ids = %v, want [1 4]", ids(got))
	}
}

func TestFiltroSiempreSubconjuntoEIdempotente(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	in := vistas(now)

	filtros := [][]Filtro{
		{},
		{DeUsuario(10)},
		{DeComercios([]uint64{100, 200})},
		{ConEstado("INACTIVA", now)},
		{Busqueda("tolomeo"), ProximosSieteDias(now)},
		{Pasadas(now), DeUsuario(11)},
	}
	for _, fs := range filtros {
		once := Aplicar(in, fs...)
		if len(once) > len(in) {
			t.Fatalf("filter result larger than input")
		}
		member := make(map[uint64]bool, len(in))
		for _, v := range in {
			member[v.Reserva.ID] = true
		}
		for _, v := range once {
			if !member[v.Reserva.ID] {
				t.Fatalf("filter produced id %d not in input", v.Reserva.ID)
			}
		}
		twice := Aplicar(once, fs...)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("filters not idempotent: %v vs %v", ids(once), ids(twice))
		}
	}
}

func TestFiltroVentanasDeFecha(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	in := vistas(now)

	hoy := Aplicar(in, Hoy(now, time.UTC))
	if !reflect.DeepEqual(ids(hoy), []uint64{1}) {
		t.Errorf("hoy ids = %v, want [1]", ids(hoy))
	}
	prox := Aplicar(in, ProximosSieteDias(now))
	if !reflect.DeepEqual(ids(prox), []uint64{1, 2}) {
		t.Errorf("proximos ids = %v, want [1 2]", ids(prox))
	}
	pasadas := Aplicar(in, Pasadas(now))
	if !reflect.DeepEqual(ids(pasadas), []uint64{3}) {
		t.Errorf("pasadas ids = %v, want [3]", ids(pasadas))
	}
}

func TestBusquedaInsensibleAMayusculas(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	in := vistas(now)

	porComercio := Aplicar(in, Busqueda("TOLOMEO"))
	if len(porComercio) != 3 {
		t.Errorf("venue search matched %d, want 3", len(porComercio))
	}
	porUsuario := Aplicar(in, Busqueda("juan"))
	if !reflect.DeepEqual(ids(porUsuario), []uint64{3}) {
		t.Errorf("requester search ids = %v, want [3]", ids(porUsuario))
	}
	vacio := Aplicar(in, Busqueda("zzzz"))
	if len(vacio) != 0 {
		t.Errorf("no-match search returned %d items", len(vacio))
	}
}

func TestOrdenarPorFechaDescendente(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	in := vistas(now)
	OrdenarPorFecha(in)
	if !reflect.DeepEqual(ids(in), []uint64{4, 2, 1, 3}) {
		t.Errorf("sorted ids = %v, want [4 2 1 3]", ids(in))
	}
}
