package lifecycle

import (
	"sort"
	"strings"
	"time"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// ReservaVista is a reservation joined with the display names the
// filter model matches free-text searches against.  Repositories
// produce these; filters never hit the database.
type ReservaVista struct {
	Reserva        model.Reserva
	NombreUsuario  string
	NombreComercio string
}

// Filtro is a predicate over a reservation view.  Filters compose by
// conjunction: a view survives only when every active filter accepts
// it.
type Filtro func(v *ReservaVista) bool

// DeUsuario keeps reservations requested by the given user.
func DeUsuario(usuarioID uint64) Filtro {
	return func(v *ReservaVista) bool { return v.Reserva.UsuarioID == usuarioID }
}

// DeComercios keeps reservations received by any of the given venues.
func DeComercios(comercioIDs []uint64) Filtro {
	set := make(map[uint64]struct{}, len(comercioIDs))
	for _, id := range comercioIDs {
		set[id] = struct{}{}
	}
	return func(v *ReservaVista) bool {
		_, ok := set[v.Reserva.ComercioID]
		return ok
	}
}

// ConEstado keeps reservations whose display state at now equals
// estado.  "INACTIVA" matches both terminal states.
func ConEstado(estado string, now time.Time) Filtro {
	estado = strings.ToUpper(strings.TrimSpace(estado))
	return func(v *ReservaVista) bool {
		visible := v.Reserva.EstadoVisible(now)
		if estado == "INACTIVA" {
			return visible == model.ReservaRechazada || visible == model.ReservaCancelada
		}
		return visible == estado
	}
}

// Hoy keeps reservations whose slot falls on the same calendar day as
// now in the given location.
func Hoy(now time.Time, loc *time.Location) Filtro {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	return func(v *ReservaVista) bool {
		ry, rm, rd := v.Reserva.FechaReserva.In(loc).Date()
		return ry == y && rm == m && rd == d
	}
}

// ProximosSieteDias keeps reservations with slots inside the next seven
// days from now, inclusive of now itself.
func ProximosSieteDias(now time.Time) Filtro {
	limit := now.Add(7 * 24 * time.Hour)
	return func(v *ReservaVista) bool {
		f := v.Reserva.FechaReserva
		return !f.Before(now) && f.Before(limit)
	}
}

// Pasadas keeps reservations whose slot has already elapsed.
func Pasadas(now time.Time) Filtro {
	return func(v *ReservaVista) bool { return v.Reserva.FechaReserva.Before(now) }
}

// Busqueda keeps reservations whose requester or venue name contains q,
// case-insensitively.  An empty query accepts everything.
func Busqueda(q string) Filtro {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(v *ReservaVista) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(v.NombreUsuario), q) ||
			strings.Contains(strings.ToLower(v.NombreComercio), q)
	}
}

// Aplicar returns the views accepted by every filter.  The result is a
// fresh slice and always a subset of the input; applying the same
// filters again yields the same result.
func Aplicar(items []ReservaVista, filtros ...Filtro) []ReservaVista {
	out := make([]ReservaVista, 0, len(items))
	for i := range items {
		ok := true
		for _, f := range filtros {
			if !f(&items[i]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, items[i])
		}
	}
	return out
}

// OrdenarPorFecha sorts views by reservation slot, most recent first.
// Lists are sorted once at fetch time, before any filter runs.
func OrdenarPorFecha(items []ReservaVista) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Reserva.FechaReserva.After(items[j].Reserva.FechaReserva)
	})
}
