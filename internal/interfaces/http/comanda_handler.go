package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/distrisur/gestion-api/internal/application/comandas"
	"github.com/distrisur/gestion-api/internal/application/dto"
	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ComandaHandler maneja las peticiones HTTP de comandas (protegido).
type ComandaHandler struct {
	crearUC   *comandas.CrearComandaUseCase
	comandaUC *comandas.ComandaUseCase
}

// NewComandaHandler construye el handler.
func NewComandaHandler(crearUC *comandas.CrearComandaUseCase, comandaUC *comandas.ComandaUseCase) *ComandaHandler {
	return &ComandaHandler{crearUC: crearUC, comandaUC: comandaUC}
}

// Create godoc
// @Summary      Crear comanda
// @Tags         comandas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearComandaRequest  true  "codcli, fecha, items"
// @Success      201   {object}  dto.CrearComandaResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Router       /api/comandas [post]
func (h *ComandaHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearComandaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("cuerpo inválido"))
	}
	items := make([]comandas.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, comandas.ItemInput{
			Lista:    item.Lista,
			CodProd:  item.CodProd,
			Cantidad: item.Cantidad,
			Monto:    item.Monto,
		})
	}
	comanda, err := h.crearUC.CrearComanda(c.Context(), comandas.ComandaInput{
		CodCli:      in.CodCli,
		Fecha:       in.Fecha,
		RepartoID:   in.Reparto,
		Solicitante: GetSolicitante(c),
		Items:       items,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CrearComandaResponse{
		OK:      true,
		Comanda: toComandaResponse(comanda),
	})
}

// GetByID obtiene una comanda.
// GET /api/comandas/:id
func (h *ComandaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("id requerido"))
	}
	comanda, err := h.comandaUC.GetByID(c.Context(), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(toComandaResponse(comanda))
}

// List lista comandas paginadas.
// GET /api/comandas?limit=&offset=
func (h *ComandaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("paginación inválida"))
	}
	page.DefaultPage()
	list, err := h.comandaUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.ComandaResponse, 0, len(list))
	for _, cmd := range list {
		out = append(out, toComandaResponse(cmd))
	}
	return c.JSON(out)
}

// Deactivate baja lógica de la comanda. No repone stock.
// DELETE /api/comandas/:id
func (h *ComandaHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("id requerido"))
	}
	if err := h.comandaUC.Desactivar(c.Context(), id); err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func toComandaResponse(cmd *entity.Comanda) dto.ComandaResponse {
	items := make([]dto.ItemComandaResponse, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		items = append(items, dto.ItemComandaResponse{
			Lista:    it.Lista,
			CodProd:  it.CodProd,
			Producto: it.ProductoID,
			Cantidad: it.Cantidad,
			Monto:    it.Monto,
		})
	}
	return dto.ComandaResponse{
		ID:        cmd.ID,
		Numero:    cmd.Numero,
		CodCli:    cmd.CodCli,
		Reparto:   cmd.RepartoID,
		Fecha:     cmd.Fecha.Format("2006-01-02"),
		Items:     items,
		CreadoPor: cmd.CreadoPor,
		Activo:    cmd.Activo,
	}
}
