// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for venues (comercios). A venue is
// created unapproved, becomes publicly visible once an administrator
// approves it, and may be re-submitted for moderation after an edit.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// ErrComercioNotFound is returned when a venue cannot be found in the DB.
var ErrComercioNotFound = errors.New("comercio not found")

// ComercioRepo encapsulates all database queries related to venues.
type ComercioRepo struct {
	db *sql.DB
}

// NewComercioRepo constructs a ComercioRepo with the provided DB handle.
func NewComercioRepo(db *sql.DB) *ComercioRepo {
	return &ComercioRepo{db: db}
}

const comercioCols = `id, usuario_id, nombre, direccion, latitud, longitud, cuit,
	telefono, horario, descripcion, foto, tipo, capacidad, aprobado, motivo_rechazo,
	created_at, updated_at`

func scanComercio(scan func(dest ...any) error) (*model.Comercio, error) {
	var c model.Comercio
	var foto sql.NullString
	err := scan(&c.ID, &c.UsuarioID, &c.Nombre, &c.Direccion, &c.Latitud, &c.Longitud,
		&c.CUIT, &c.Telefono, &c.Horario, &c.Descripcion, &foto, &c.Tipo, &c.Capacidad,
		&c.Aprobado, &c.MotivoRechazo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if foto.Valid {
		f := foto.String
		c.Foto = &f
	}
	return &c, nil
}

// Create inserts a new venue. The approval flag is forced to false on
// insert regardless of what the caller set; moderation is admin-only.
// On success the ID and timestamp fields are populated via a follow-up
// SELECT so callers receive a fully populated record.
func (r *ComercioRepo) Create(ctx context.Context, c *model.Comercio) error {
	const qInsert = `INSERT INTO comercios
		(usuario_id, nombre, direccion, latitud, longitud, cuit, telefono, horario,
		 descripcion, foto, tipo, capacidad, aprobado, motivo_rechazo)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,0,'')`
	res, err := r.db.ExecContext(ctx, qInsert,
		c.UsuarioID, c.Nombre, c.Direccion, c.Latitud, c.Longitud, c.CUIT,
		c.Telefono, c.Horario, c.Descripcion, c.Foto, c.Tipo, c.Capacidad)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	got, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// GetByID fetches a venue by its ID regardless of owner or approval
// state. It returns ErrComercioNotFound if no row is found.
func (r *ComercioRepo) GetByID(ctx context.Context, id uint64) (*model.Comercio, error) {
	const q = "SELECT " + comercioCols + " FROM comercios WHERE id = ?"
	c, err := scanComercio(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComercioNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAprobados returns approved venues for public browsing, optionally
// restricted to one category. Distance annotation and sorting happen in
// the handler over the fetched slice.
func (r *ComercioRepo) ListAprobados(ctx context.Context, tipo string) ([]*model.Comercio, error) {
	q := "SELECT " + comercioCols + " FROM comercios WHERE aprobado = 1"
	args := []any{}
	if tipo != "" {
		q += " AND tipo = ?"
		args = append(args, tipo)
	}
	q += " ORDER BY nombre"
	return r.list(ctx, q, args...)
}

// ListByOwner returns all venues belonging to one COMERCIO user,
// whatever their moderation state.
func (r *ComercioRepo) ListByOwner(ctx context.Context, usuarioID uint64) ([]*model.Comercio, error) {
	const q = "SELECT " + comercioCols + " FROM comercios WHERE usuario_id = ? ORDER BY id"
	return r.list(ctx, q, usuarioID)
}

// ListAll returns every venue for the admin moderation screens. The
// pending/approved/rejected partition is derived in memory from the
// aprobado and motivo_rechazo columns.
func (r *ComercioRepo) ListAll(ctx context.Context) ([]*model.Comercio, error) {
	const q = "SELECT " + comercioCols + " FROM comercios ORDER BY created_at DESC"
	return r.list(ctx, q)
}

func (r *ComercioRepo) list(ctx context.Context, q string, args ...any) ([]*model.Comercio, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Comercio, 0)
	for rows.Next() {
		c, err := scanComercio(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a venue's editable fields if it belongs to the given
// owner, and sends the listing back to moderation: any edit clears the
// approval flag and the previous rejection reason. It returns
// sql.ErrNoRows when no row is affected (not found / not owned).
func (r *ComercioRepo) Update(ctx context.Context, c *model.Comercio, usuarioID uint64) error {
	const q = `UPDATE comercios
		SET nombre=?, direccion=?, latitud=?, longitud=?, cuit=?, telefono=?,
		    horario=?, descripcion=?, foto=?, tipo=?, capacidad=?,
		    aprobado=0, motivo_rechazo='', updated_at=CURRENT_TIMESTAMP
		WHERE id=? AND usuario_id=?`
	res, err := r.db.ExecContext(ctx, q,
		c.Nombre, c.Direccion, c.Latitud, c.Longitud, c.CUIT, c.Telefono,
		c.Horario, c.Descripcion, c.Foto, c.Tipo, c.Capacidad, c.ID, usuarioID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetModeracion persists an admin decision. Approving stores (1, '');
// rejecting stores (0, motivo). The invariant that aprobado and a
// rejection reason are never both set is enforced by the lifecycle
// guards before this method is called.
func (r *ComercioRepo) SetModeracion(ctx context.Context, id uint64, aprobado bool, motivo string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE comercios SET aprobado=?, motivo_rechazo=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		aprobado, motivo, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a venue owned by the user. It refuses with
// ErrConflict while pending reservations exist against the venue.
func (r *ComercioRepo) Delete(ctx context.Context, id, usuarioID uint64) error {
	var pendientes uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservas WHERE comercio_id=? AND estado='PENDIENTE' AND fecha_reserva > NOW()",
		id).Scan(&pendientes)
	if err != nil {
		return err
	}
	if pendientes > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM comercios WHERE id=? AND usuario_id=?", id, usuarioID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the number of venues, total and approved. Used by the
// admin stats aggregate.
func (r *ComercioRepo) Count(ctx context.Context) (total, aprobados uint64, err error) {
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(aprobado),0) FROM comercios").Scan(&total, &aprobados)
	return
}
