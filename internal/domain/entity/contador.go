package entity

// NombreContadorComandas clave del contador singleton de numeración de comandas.
const NombreContadorComandas = "comandas"

// Contador contador monotónico de numeración (singleton por nombre).
// Solo se muta vía incremento atómico read-and-increment dentro de la
// transacción de creación; nunca se lee y escribe en dos pasos.
type Contador struct {
	Nombre  string
	Proximo int64
}
