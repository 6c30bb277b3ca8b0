package model

import "time"

// Review comment length bounds enforced at creation.
const (
	MinComentarioResenia = 10
	MaxComentarioResenia = 500
)

// Resenia is a user-submitted review of a venue.  Reviews are immutable
// once created; a moderator may soft-delete one by clearing Activa.
// Nothing prevents the same user from reviewing the same venue more
// than once.
//
// Fields:
//  ID          – primary key identifier.
//  UsuarioID   – author of the review.
//  ComercioID  – reviewed venue.
//  Puntuacion  – integer rating 1..5.
//  Comentario  – free text, 10..500 chars.
//  Activa      – moderation flag; false hides the review.
//  CreatedAt   – creation timestamp.
type Resenia struct {
	ID         uint64    // resenias.id
	UsuarioID  uint64    // resenias.usuario_id
	ComercioID uint64    // resenias.comercio_id
	Puntuacion uint8     // resenias.puntuacion (1..5)
	Comentario string    // resenias.comentario
	Activa     bool      // resenias.activa
	CreatedAt  time.Time // resenias.created_at
}
