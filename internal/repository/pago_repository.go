package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dondesalimos/donde-salimos/internal/model"
)

// ErrPagoNotFound is returned when a payment cannot be found.
var ErrPagoNotFound = errors.New("pago not found")

// PagoRepo persists checkout attempts for advertisements. Each row is
// keyed by the locally generated external reference that round-trips
// through the payment provider.
type PagoRepo struct {
	db *sql.DB
}

func NewPagoRepo(db *sql.DB) *PagoRepo { return &PagoRepo{db: db} }

// Create inserts a pending payment row for an ad checkout.
func (r *PagoRepo) Create(ctx context.Context, p *model.Pago) error {
	const q = `INSERT INTO pagos (publicidad_id, monto, referencia, proveedor_id, estado)
		VALUES (?,?,?,'','pending')`
	res, err := r.db.ExecContext(ctx, q, p.PublicidadID, p.Monto, p.Referencia)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT id, publicidad_id, monto, referencia, proveedor_id, estado, created_at, updated_at
		FROM pagos WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(
		&p.ID, &p.PublicidadID, &p.Monto, &p.Referencia, &p.ProveedorID, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt)
}

// GetByReferencia looks a payment up by its external reference, the
// only correlation key available in the provider's return URL.
func (r *PagoRepo) GetByReferencia(ctx context.Context, referencia string) (*model.Pago, error) {
	const q = `SELECT id, publicidad_id, monto, referencia, proveedor_id, estado, created_at, updated_at
		FROM pagos WHERE referencia = ? LIMIT 1`
	var p model.Pago
	err := r.db.QueryRowContext(ctx, q, referencia).Scan(
		&p.ID, &p.PublicidadID, &p.Monto, &p.Referencia, &p.ProveedorID, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SetResultado records the provider's verdict from the return URL.
func (r *PagoRepo) SetResultado(ctx context.Context, id uint64, proveedorID, estado string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE pagos SET proveedor_id=?, estado=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		proveedorID, estado, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
