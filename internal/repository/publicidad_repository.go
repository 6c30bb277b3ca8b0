package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// ErrPublicidadNotFound is returned when an ad cannot be found.
var ErrPublicidadNotFound = errors.New("publicidad not found")

// PublicidadRepo persists advertisements. Expiry is never stored;
// callers derive it from created_at and the duration at read time.
type PublicidadRepo struct {
	db *sql.DB
}

func NewPublicidadRepo(db *sql.DB) *PublicidadRepo { return &PublicidadRepo{db: db} }

const publicidadCols = `id, comercio_id, descripcion, imagen, tiempo, visualizaciones,
	aprobado, pagado, motivo_rechazo, created_at, updated_at`

func scanPublicidad(scan func(dest ...any) error) (*model.Publicidad, error) {
	var p model.Publicidad
	var imagen sql.NullString
	err := scan(&p.ID, &p.ComercioID, &p.Descripcion, &imagen, &p.Tiempo, &p.Visualizaciones,
		&p.Aprobado, &p.Pagado, &p.MotivoRechazo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if imagen.Valid {
		img := imagen.String
		p.Imagen = &img
	}
	return &p, nil
}

// Create inserts an ad in the pending-approval state, unpaid, and
// populates generated fields on the record.
func (r *PublicidadRepo) Create(ctx context.Context, p *model.Publicidad) error {
	const q = `INSERT INTO publicidades
		(comercio_id, descripcion, imagen, tiempo, visualizaciones, aprobado, pagado, motivo_rechazo)
		VALUES (?,?,?,?,0,0,0,'')`
	res, err := r.db.ExecContext(ctx, q, p.ComercioID, p.Descripcion, p.Imagen, p.Tiempo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	got, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *got
	return nil
}

// GetByID fetches an ad by id.
func (r *PublicidadRepo) GetByID(ctx context.Context, id uint64) (*model.Publicidad, error) {
	const q = "SELECT " + publicidadCols + " FROM publicidades WHERE id = ?"
	p, err := scanPublicidad(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPublicidadNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByOwner returns all ads across the venues of one COMERCIO user.
func (r *PublicidadRepo) ListByOwner(ctx context.Context, usuarioID uint64) ([]*model.Publicidad, error) {
	const q = `SELECT p.id, p.comercio_id, p.descripcion, p.imagen, p.tiempo, p.visualizaciones,
		p.aprobado, p.pagado, p.motivo_rechazo, p.created_at, p.updated_at
		FROM publicidades p JOIN comercios c ON c.id = p.comercio_id
		WHERE c.usuario_id = ? ORDER BY p.created_at DESC`
	return r.list(ctx, q, usuarioID)
}

// ListAll returns every ad for the admin moderation screens.
func (r *PublicidadRepo) ListAll(ctx context.Context) ([]*model.Publicidad, error) {
	const q = "SELECT " + publicidadCols + " FROM publicidades ORDER BY created_at DESC"
	return r.list(ctx, q)
}

// ListAprobadasPagadas returns ads that are approved and paid; the
// caller still drops the ones whose paid window has closed, since
// expiry is date arithmetic, not a column.
func (r *PublicidadRepo) ListAprobadasPagadas(ctx context.Context) ([]*model.Publicidad, error) {
	const q = "SELECT " + publicidadCols + " FROM publicidades WHERE aprobado = 1 AND pagado = 1 ORDER BY created_at DESC"
	return r.list(ctx, q)
}

func (r *PublicidadRepo) list(ctx context.Context, q string, args ...any) ([]*model.Publicidad, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Publicidad, 0)
	for rows.Next() {
		p, err := scanPublicidad(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetModeracion persists an admin decision on an ad.
func (r *PublicidadRepo) SetModeracion(ctx context.Context, id uint64, aprobado bool, motivo string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE publicidades SET aprobado=?, motivo_rechazo=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		aprobado, motivo, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarcarPagada flips the paid flag once the checkout callback confirms
// the payment. Idempotent: confirming twice leaves the row unchanged.
func (r *PublicidadRepo) MarcarPagada(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE publicidades SET pagado=1, updated_at=CURRENT_TIMESTAMP WHERE id=?", id)
	return err
}

// SumarVisualizaciones increments the view counter of each listed ad
// in a single statement. Called when the public carousel is served.
func (r *PublicidadRepo) SumarVisualizaciones(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	q := "UPDATE publicidades SET visualizaciones = visualizaciones + 1 WHERE id IN (?" +
		strings.Repeat(",?", len(ids)-1) + ")"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// Count returns the total number of ads and how many are currently
// approved and paid. Used by the admin stats aggregate.
func (r *PublicidadRepo) Count(ctx context.Context) (total, activas uint64, err error) {
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(aprobado AND pagado),0) FROM publicidades").Scan(&total, &activas)
	return
}
