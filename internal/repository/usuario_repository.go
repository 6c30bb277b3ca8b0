package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dondesalimos/donde-salimos/internal/model"
	"github.com/dondesalimos/donde-salimos/internal/utils"
)

// UsuarioRepo persists application users in the 'usuarios' table.
type UsuarioRepo struct{ DB *sql.DB }

func NewUsuarioRepo(db *sql.DB) *UsuarioRepo { return &UsuarioRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const usuarioCols = "id,nombre,email,password_hash,rol,activo,created_at,updated_at"

func scanUsuario(row *sql.Row) (model.Usuario, error) {
	var u model.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user and returns its ID. The password is hashed
// with bcrypt at the given cost; the email is normalized to lower case.
func (r *UsuarioRepo) Create(ctx context.Context, nombre, email, password, rol string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, email, password_hash, rol) VALUES (?,?,?,?)",
		nombre, email, hash, rol)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUsuario(r.DB.QueryRowContext(ctx,
		"SELECT "+usuarioCols+" FROM usuarios WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	return scanUsuario(r.DB.QueryRowContext(ctx,
		"SELECT "+usuarioCols+" FROM usuarios WHERE id=? LIMIT 1", id))
}

// ListAll returns every user ordered by creation, newest first.
// Used by the admin user management screen.
func (r *UsuarioRepo) ListAll(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+usuarioCols+" FROM usuarios ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Usuario, 0)
	for rows.Next() {
		var u model.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetActivo toggles the active flag. Deactivated users cannot log in.
func (r *UsuarioRepo) SetActivo(ctx context.Context, id uint64, activo bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET activo=? WHERE id=?", activo, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetRol changes a user's role. Only reachable from the admin edit
// endpoint; role is otherwise immutable after registration.
func (r *UsuarioRepo) SetRol(ctx context.Context, id uint64, rol string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE usuarios SET rol=? WHERE id=?", rol, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of users. Used by the admin stats
// aggregate.
func (r *UsuarioRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM usuarios").Scan(&n)
	return n, err
}
