package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolDeposito = "deposito"
	RolVendedor = "vendedor"
)

// Usuario usuario de la aplicación. Solo existe como proveedor de identidad
// para los coordinadores (CreadoPor / RegistradoPor).
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
