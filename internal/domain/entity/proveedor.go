package entity

import "time"

// Proveedor proveedor de mercadería referenciado por los documentos.
type Proveedor struct {
	ID        string
	Nombre    string
	CUIT      string
	Activo    bool
	CreatedAt time.Time
}
