package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User representa un usuario que opera el inventario.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, guest
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identifica explícitamente a quien invoca una operación del núcleo.
// La capa HTTP lo construye a partir del token; el núcleo nunca lee estado ambiental.
type Actor struct {
	UserID string
	Role   string
}
