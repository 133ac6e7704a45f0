package dto

import "github.com/shopspring/decimal"

// ItemComandaRequest línea del body de POST /comandas.
type ItemComandaRequest struct {
	Lista    string          `json:"lista"`
	CodProd  string          `json:"codprod"`
	Cantidad float64         `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

// CrearComandaRequest body de POST /comandas.
type CrearComandaRequest struct {
	CodCli  string               `json:"codcli"`
	Fecha   string               `json:"fecha"`
	Reparto string               `json:"reparto,omitempty"`
	Items   []ItemComandaRequest `json:"items"`
}

// ItemComandaResponse línea de comanda en respuestas.
type ItemComandaResponse struct {
	Lista    string          `json:"lista"`
	CodProd  string          `json:"codprod"`
	Producto string          `json:"producto"`
	Cantidad int64           `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

// ComandaResponse representación JSON de una comanda.
type ComandaResponse struct {
	ID        string                `json:"id"`
	Numero    int64                 `json:"numero"`
	CodCli    string                `json:"codcli"`
	Cliente   string                `json:"cliente,omitempty"`
	Reparto   string                `json:"reparto,omitempty"`
	Fecha     string                `json:"fecha"`
	Items     []ItemComandaResponse `json:"items"`
	CreadoPor string                `json:"creadoPor"`
	Activo    bool                  `json:"activo"`
}

// CrearComandaResponse respuesta 201 de POST /comandas.
type CrearComandaResponse struct {
	OK      bool            `json:"ok"`
	Comanda ComandaResponse `json:"comanda"`
}
