package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// ErrReseniaNotFound is returned when a review cannot be found.
var ErrReseniaNotFound = errors.New("resenia not found")

// ReseniaRepo persists venue reviews. Reviews are immutable after
// creation; moderation is a soft delete that clears the activa flag so
// the row survives for audit.
type ReseniaRepo struct {
	db *sql.DB
}

func NewReseniaRepo(db *sql.DB) *ReseniaRepo { return &ReseniaRepo{db: db} }

// Create inserts a review and populates its generated fields.
func (r *ReseniaRepo) Create(ctx context.Context, res *model.Resenia) error {
	const q = `INSERT INTO resenias (usuario_id, comercio_id, puntuacion, comentario)
		VALUES (?,?,?,?)`
	result, err := r.db.ExecContext(ctx, q, res.UsuarioID, res.ComercioID, res.Puntuacion, res.Comentario)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT id, usuario_id, comercio_id, puntuacion, comentario, activa, created_at
		FROM resenias WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.UsuarioID, &res.ComercioID, &res.Puntuacion, &res.Comentario, &res.Activa, &res.CreatedAt)
}

// ReseniaConAutor is a review joined with its author's display name for
// public listings.
type ReseniaConAutor struct {
	Resenia       model.Resenia
	NombreUsuario string
}

// ListByComercio returns the visible reviews of one venue, newest
// first. Soft-deleted reviews are excluded.
func (r *ReseniaRepo) ListByComercio(ctx context.Context, comercioID uint64) ([]ReseniaConAutor, error) {
	const q = `SELECT s.id, s.usuario_id, s.comercio_id, s.puntuacion, s.comentario, s.activa,
		s.created_at, u.nombre
		FROM resenias s JOIN usuarios u ON u.id = s.usuario_id
		WHERE s.comercio_id = ? AND s.activa = 1
		ORDER BY s.created_at DESC`
	return r.listConAutor(ctx, q, comercioID)
}

// ListByUsuario returns all reviews written by one user, including
// moderated ones so authors can see what was removed.
func (r *ReseniaRepo) ListByUsuario(ctx context.Context, usuarioID uint64) ([]ReseniaConAutor, error) {
	const q = `SELECT s.id, s.usuario_id, s.comercio_id, s.puntuacion, s.comentario, s.activa,
		s.created_at, u.nombre
		FROM resenias s JOIN usuarios u ON u.id = s.usuario_id
		WHERE s.usuario_id = ?
		ORDER BY s.created_at DESC`
	return r.listConAutor(ctx, q, usuarioID)
}

// ListAll returns every review for the admin moderation screen.
func (r *ReseniaRepo) ListAll(ctx context.Context) ([]ReseniaConAutor, error) {
	const q = `SELECT s.id, s.usuario_id, s.comercio_id, s.puntuacion, s.comentario, s.activa,
		s.created_at, u.nombre
		FROM resenias s JOIN usuarios u ON u.id = s.usuario_id
		ORDER BY s.created_at DESC`
	return r.listConAutor(ctx, q)
}

func (r *ReseniaRepo) listConAutor(ctx context.Context, q string, args ...any) ([]ReseniaConAutor, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReseniaConAutor, 0)
	for rows.Next() {
		var v ReseniaConAutor
		s := &v.Resenia
		if err := rows.Scan(&s.ID, &s.UsuarioID, &s.ComercioID, &s.Puntuacion, &s.Comentario,
			&s.Activa, &s.CreatedAt, &v.NombreUsuario); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SoftDelete hides a review from public listings. Admin only; the
// handler enforces the role.
func (r *ReseniaRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE resenias SET activa=0 WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
