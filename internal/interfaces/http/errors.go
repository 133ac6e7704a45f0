package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/distrisur/gestion-api/internal/application/comandas"
	"github.com/distrisur/gestion-api/internal/application/dto"
	"github.com/distrisur/gestion-api/internal/domain"
)

// responderError mapea errores de dominio al sobre {ok:false, err:{...}} con
// el status HTTP que corresponde. Los faltantes de stock viajan con la lista
// de productos; el resto solo con el mensaje.
func responderError(c *fiber.Ctx, err error) error {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(valErr.Message))
	}

	var stockErr *domain.StockInsuficienteError
	if errors.As(err, &stockErr) {
		productos := make([]dto.FaltanteDTO, 0, len(stockErr.Productos))
		for _, p := range stockErr.Productos {
			productos = append(productos, dto.FaltanteDTO{
				CodProd:     p.CodProd,
				Descripcion: p.Descripcion,
				StkActual:   p.StkActual,
				Solicitado:  p.Solicitado,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorConProductos(comandas.MsgStockInsuficiente, productos))
	}

	var confErr *domain.ConflictError
	if errors.As(err, &confErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.NewError(confErr.Message))
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("recurso no encontrado"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("no autorizado"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError("acceso denegado"))
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.NewError(err.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("entrada inválida"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError(err.Error()))
}
