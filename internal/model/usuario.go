package model

import "time"

// Role names stored in the `usuarios.rol` column and carried in the JWT
// "role" claim.  COMUN users create reservations and reviews, COMERCIO
// users own venues and manage incoming reservations and advertising,
// ADMIN moderates everything.  ADMIN is never self-assignable through
// registration.
const (
	RolComun    = "COMUN"
	RolComercio = "COMERCIO"
	RolAdmin    = "ADMIN"
)

// Usuario represents an application user as stored in the `usuarios`
// table.  The role is fixed at registration; only an administrator may
// change it afterwards.  Deactivated users keep their rows but cannot
// authenticate.
//
// Fields:
//  ID           – primary key identifier.
//  Nombre       – display name shown on reservations and reviews.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Rol          – role name (COMUN, COMERCIO or ADMIN).
//  Activo       – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Usuario struct {
	ID           uint64    // usuarios.id
	Nombre       string    // usuarios.nombre
	Email        string    // usuarios.email
	PasswordHash string    // usuarios.password_hash
	Rol          string    // usuarios.rol
	Activo       bool      // usuarios.activo
	CreatedAt    time.Time // usuarios.created_at
	UpdatedAt    time.Time // usuarios.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry and
// revocation.  The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UsuarioID uint64     // refresh_tokens.usuario_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
