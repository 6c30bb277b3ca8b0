package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dondesalimos/donde-salimos/internal/lifecycle"
	"github.com/dondesalimos/donde-salimos/internal/model"
)

// ErrReservaNotFound is returned when a reservation cannot be found.
var ErrReservaNotFound = errors.New("reserva not found")

// ReservaRepo provides persistence for reservations. Reservation rows
// carry an explicit status column; display-only states such as VENCIDA
// are derived in memory and never written back. List methods return
// lifecycle.ReservaVista values joined with requester and venue names
// so the pure filter model can run over them without further queries.
type ReservaRepo struct {
	db *sql.DB
}

// NewReservaRepo returns a new ReservaRepo bound to the given database.
func NewReservaRepo(db *sql.DB) *ReservaRepo { return &ReservaRepo{db: db} }

// Create inserts a new reservation in PENDIENTE and populates the
// generated ID and timestamps on the provided record. Validation of the
// slot, party size and venue state happens in the lifecycle package
// before this call.
func (r *ReservaRepo) Create(ctx context.Context, res *model.Reserva) error {
	const q = `INSERT INTO reservas
		(usuario_id, comercio_id, fecha_reserva, cantidad_personas, comentarios, estado, motivo_rechazo)
		VALUES (?,?,?,?,?,'PENDIENTE','')`
	result, err := r.db.ExecContext(ctx, q,
		res.UsuarioID, res.ComercioID, res.FechaReserva, res.CantidadPersonas, res.Comentarios)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT id, usuario_id, comercio_id, fecha_reserva, cantidad_personas,
		comentarios, estado, motivo_rechazo, created_at, updated_at
		FROM reservas WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.UsuarioID, &res.ComercioID, &res.FechaReserva, &res.CantidadPersonas,
		&res.Comentarios, &res.Estado, &res.MotivoRechazo, &res.CreatedAt, &res.UpdatedAt)
}

// GetByID fetches a reservation by id. Ownership checks are left to
// the caller, which also knows the venue's owner.
func (r *ReservaRepo) GetByID(ctx context.Context, id uint64) (*model.Reserva, error) {
	const q = `SELECT id, usuario_id, comercio_id, fecha_reserva, cantidad_personas,
		comentarios, estado, motivo_rechazo, created_at, updated_at
		FROM reservas WHERE id = ?`
	var res model.Reserva
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.UsuarioID, &res.ComercioID, &res.FechaReserva, &res.CantidadPersonas,
		&res.Comentarios, &res.Estado, &res.MotivoRechazo, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservaNotFound
		}
		return nil, err
	}
	return &res, nil
}

const vistaQuery = `SELECT r.id, r.usuario_id, r.comercio_id, r.fecha_reserva,
	r.cantidad_personas, r.comentarios, r.estado, r.motivo_rechazo,
	r.created_at, r.updated_at, u.nombre, c.nombre
	FROM reservas r
	JOIN usuarios u ON u.id = r.usuario_id
	JOIN comercios c ON c.id = r.comercio_id`

func (r *ReservaRepo) listVistas(ctx context.Context, q string, args ...any) ([]lifecycle.ReservaVista, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]lifecycle.ReservaVista, 0)
	for rows.Next() {
		var v lifecycle.ReservaVista
		res := &v.Reserva
		if err := rows.Scan(
			&res.ID, &res.UsuarioID, &res.ComercioID, &res.FechaReserva, &res.CantidadPersonas,
			&res.Comentarios, &res.Estado, &res.MotivoRechazo, &res.CreatedAt, &res.UpdatedAt,
			&v.NombreUsuario, &v.NombreComercio); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Most recent slot first, before any filter runs.
	lifecycle.OrdenarPorFecha(out)
	return out, nil
}

// ListByUsuario returns every reservation requested by the given user,
// sorted by slot descending.
func (r *ReservaRepo) ListByUsuario(ctx context.Context, usuarioID uint64) ([]lifecycle.ReservaVista, error) {
	return r.listVistas(ctx, vistaQuery+" WHERE r.usuario_id = ?", usuarioID)
}

// ListByOwner returns every reservation received across all venues
// owned by the given COMERCIO user, sorted by slot descending.
func (r *ReservaRepo) ListByOwner(ctx context.Context, usuarioID uint64) ([]lifecycle.ReservaVista, error) {
	return r.listVistas(ctx, vistaQuery+" WHERE c.usuario_id = ?", usuarioID)
}

// SetEstado persists a decided transition. The expected current status
// guards against two tabs deciding the same reservation concurrently:
// when the row no longer holds the status the guard saw, no row is
// affected and ErrConflict is returned.
func (r *ReservaRepo) SetEstado(ctx context.Context, id uint64, desde, hasta, motivo string) error {
	const q = `UPDATE reservas
		SET estado=?, motivo_rechazo=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=? AND estado=?`
	res, err := r.db.ExecContext(ctx, q, hasta, motivo, id, desde)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// CountByEstado returns how many reservations hold each stored status.
// Used by the admin stats aggregate.
func (r *ReservaRepo) CountByEstado(ctx context.Context) (map[string]uint64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT estado, COUNT(*) FROM reservas GROUP BY estado")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]uint64)
	for rows.Next() {
		var estado string
		var n uint64
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, err
		}
		out[estado] = n
	}
	return out, rows.Err()
}
