package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/distrisur/gestion-api/internal/application/documentos"
	"github.com/distrisur/gestion-api/internal/application/dto"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/numbering"
)

// DocumentoHandler maneja las peticiones HTTP de documentos (protegido).
type DocumentoHandler struct {
	crearUC    *documentos.CrearDocumentoUseCase
	docUC      *documentos.DocumentoUseCase
	reservarUC *documentos.ReservarNumeroUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(
	crearUC *documentos.CrearDocumentoUseCase,
	docUC *documentos.DocumentoUseCase,
	reservarUC *documentos.ReservarNumeroUseCase,
) *DocumentoHandler {
	return &DocumentoHandler{crearUC: crearUC, docUC: docUC, reservarUC: reservarUC}
}

// Create godoc
// @Summary      Crear documento de inventario
// @Tags         documentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearDocumentoRequest  true  "tipo, prefijo, proveedor, fechaRemito, items"
// @Success      201   {object}  dto.CrearDocumentoResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/documentos [post]
func (h *DocumentoHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("cuerpo inválido"))
	}

	items := make([]documentos.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, documentos.ItemInput{
			Cantidad:   item.Cantidad,
			ProductoID: item.Producto,
			CodProd:    item.CodProd,
		})
	}
	doc, updates, err := h.crearUC.CrearDocumento(c.Context(), documentos.DocumentoInput{
		Tipo:            in.Tipo,
		Prefijo:         in.Prefijo,
		ProveedorID:     in.Proveedor,
		FechaRemito:     in.FechaRemito,
		AjusteOperacion: in.AjusteOperacion,
		NumeroSugerido:  in.Sugerido(),
		Notas:           in.Notas,
		Solicitante:     GetSolicitante(c),
		Items:           items,
	})
	if err != nil {
		return responderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CrearDocumentoResponse{
		OK:        true,
		Documento: toDocumentoResponse(doc),
		Stock:     toStockUpdates(updates),
	})
}

// GetByID obtiene un documento.
// GET /api/documentos/:id
func (h *DocumentoHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("id requerido"))
	}
	doc, err := h.docUC.GetByID(c.Context(), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(toDocumentoResponse(doc))
}

// List lista documentos paginados.
// GET /api/documentos?limit=&offset=
func (h *DocumentoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("paginación inválida"))
	}
	page.DefaultPage()
	docs, err := h.docUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.DocumentoResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentoResponse(d))
	}
	return c.JSON(out)
}

// Update modifica campos ajenos a la numeración.
// PUT /api/documentos/:id
func (h *DocumentoHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("id requerido"))
	}
	var in dto.ActualizarDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("cuerpo inválido"))
	}
	items := make([]documentos.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, documentos.ItemInput{
			Cantidad:   item.Cantidad,
			ProductoID: item.Producto,
			CodProd:    item.CodProd,
		})
	}
	doc, err := h.docUC.Actualizar(c.Context(), id, documentos.ActualizacionDocumento{
		ProveedorID: in.Proveedor,
		FechaRemito: in.FechaRemito,
		Notas:       in.Notas,
		Items:       items,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(toDocumentoResponse(doc))
}

// Deactivate baja lógica del documento. La secuencia no se reutiliza.
// DELETE /api/documentos/:id
func (h *DocumentoHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("id requerido"))
	}
	if err := h.docUC.Desactivar(c.Context(), id); err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ReservarNumero reserva el próximo número con vencimiento.
// POST /api/documentos/reservar-numero
func (h *DocumentoHandler) ReservarNumero(c *fiber.Ctx) error {
	var in dto.ReservarNumeroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("cuerpo inválido"))
	}
	reserva, err := h.reservarUC.Reservar(c.Context(), in.Tipo, in.Prefijo, GetSolicitante(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReservaResponse{
		OK:        true,
		Tipo:      reserva.Tipo,
		Prefijo:   reserva.Prefijo,
		Secuencia: reserva.Secuencia,
		Numero:    numbering.NumeroDocumento(reserva.Prefijo, reserva.Tipo, reserva.Secuencia),
		ExpiresAt: reserva.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func toDocumentoResponse(doc *entity.Documento) dto.DocumentoResponse {
	items := make([]dto.ItemDocumentoResponse, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, dto.ItemDocumentoResponse{
			Cantidad: it.Cantidad,
			Producto: it.ProductoID,
			CodProd:  it.CodProd,
		})
	}
	return dto.DocumentoResponse{
		ID:             doc.ID,
		Tipo:           doc.Tipo,
		Prefijo:        doc.Prefijo,
		Secuencia:      doc.Secuencia,
		NroDeDocumento: doc.NroDeDocumento,
		Proveedor:      doc.ProveedorID,
		FechaRemito:    doc.FechaRemito.Format("2006-01-02"),
		FechaRegistro:  doc.FechaRegistro.Format("2006-01-02T15:04:05Z07:00"),
		CreadoPor:      doc.CreadoPor,
		Items:          items,
		Notas:          doc.Notas,
		Activo:         doc.Activo,
	}
}

func toStockUpdates(updates []documentos.StockUpdate) dto.StockUpdatesDTO {
	out := make([]dto.StockUpdateDTO, 0, len(updates))
	for _, u := range updates {
		upd := dto.StockUpdateDTO{
			Producto:  u.ProductoID,
			CodProd:   u.CodProd,
			Operacion: u.Operacion,
		}
		if u.Delta < 0 {
			upd.Decremento = -u.Delta
		} else {
			upd.Incremento = u.Delta
		}
		out = append(out, upd)
	}
	return dto.StockUpdatesDTO{Updates: out}
}
