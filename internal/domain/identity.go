package domain

// Solicitante identidad del usuario que origina la operación.
// La puebla el middleware de autenticación ({_id, role} del token); los
// coordinadores la reciben como value object explícito para no depender
// del mecanismo de autenticación concreto.
type Solicitante struct {
	ID  string
	Rol string
}

// Valida indica si la identidad trae al menos el ID del usuario.
func (s Solicitante) Valida() bool { return s.ID != "" }
