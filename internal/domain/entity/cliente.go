package entity

import "time"

// Cliente cliente de la distribuidora, referenciado por las comandas.
type Cliente struct {
	ID        string
	CodCli    string // código de cliente usado por el frontend y los repartos
	Nombre    string
	Domicilio string
	RepartoID string // reparto habitual (opcional)
	Activo    bool
	CreatedAt time.Time
}
