package entity

import "time"

// Roles de usuario administrativo.
const (
	RolAdmin       = "admin"
	RolAlmacenista = "almacenista"
	RolVendedor    = "vendedor"
)

// Usuario usuario administrativo del back office.
type Usuario struct {
	ID           string
	Usuario      string
	PasswordHash string
	Rol          string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
