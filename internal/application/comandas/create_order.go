package comandas

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// MsgStockInsuficiente mensaje del rechazo total por faltantes.
const MsgStockInsuficiente = "Stock insuficiente para completar la comanda"

// CrearComandaUseCase coordina el alta transaccional de una comanda:
// pre-chequeo de stock línea por línea (junta TODOS los faltantes),
// incremento atómico del contador, persistencia de la comanda, descuento
// condicional de stock por ítem y una fila de ledger por ítem, todo en una
// transacción. Una venta nunca deja el stock negativo: el descuento
// revalida la existencia dentro de la misma transacción que la muta.
type CrearComandaUseCase struct {
	txRunner     TxRunner
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
}

// NewCrearComandaUseCase construye el coordinador.
func NewCrearComandaUseCase(
	txRunner TxRunner,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
) *CrearComandaUseCase {
	return &CrearComandaUseCase{
		txRunner:     txRunner,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
	}
}

// ItemInput línea cruda de la comanda.
type ItemInput struct {
	Lista    string
	CodProd  string
	Cantidad float64
	Monto    decimal.Decimal
}

// ComandaInput entrada de CrearComanda.
type ComandaInput struct {
	CodCli      string
	Fecha       string // "2006-01-02"
	RepartoID   string
	Solicitante domain.Solicitante
	Items       []ItemInput
}

// lineaValidada ítem con su producto resuelto.
type lineaValidada struct {
	producto *entity.Producto
	lista    string
	cantidad int64
	monto    decimal.Decimal
}

// CrearComanda ejecuta el pipeline completo y devuelve la comanda creada.
// Si alguna línea no tiene stock, rechaza la comanda ENTERA con la lista de
// faltantes: no hay comandas parciales.
func (uc *CrearComandaUseCase) CrearComanda(ctx context.Context, in ComandaInput) (*entity.Comanda, error) {
	if !in.Solicitante.Valida() {
		return nil, domain.ErrUnauthorized
	}
	if in.CodCli == "" {
		return nil, domain.NewValidationError("La comanda debe indicar el cliente")
	}
	fecha, err := time.Parse("2006-01-02", in.Fecha)
	if err != nil {
		return nil, domain.NewValidationError("Fecha de comanda inválida")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("La comanda debe tener al menos un ítem")
	}

	cliente, err := uc.clienteRepo.GetByCodigo(ctx, in.CodCli)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.NewValidationError("El cliente no existe")
	}

	lineas, err := uc.validarItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	// Pre-chequeo fuera de la transacción: junta todos los faltantes para
	// responder la lista completa, no solo el primero. El descuento
	// condicional dentro de la tx revalida contra carreras.
	var faltantes []domain.FaltanteStock
	for _, l := range lineas {
		if l.producto.Stock < l.cantidad {
			faltantes = append(faltantes, domain.FaltanteStock{
				CodProd:     l.producto.CodProd,
				Descripcion: l.producto.Descripcion,
				StkActual:   l.producto.Stock,
				Solicitado:  l.cantidad,
			})
		}
	}
	if len(faltantes) > 0 {
		return nil, &domain.StockInsuficienteError{Productos: faltantes}
	}

	ahora := time.Now()
	var creada *entity.Comanda
	err = uc.txRunner.Run(ctx, func(
		comandaRepo repository.ComandaRepository,
		contadorRepo repository.ContadorRepository,
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoRepository,
	) error {
		numero, err := contadorRepo.ProximoNumero(ctx, entity.NombreContadorComandas)
		if err != nil {
			return err
		}

		items := make([]entity.LineaComanda, 0, len(lineas))
		for _, l := range lineas {
			items = append(items, entity.LineaComanda{
				ProductoID: l.producto.ID,
				CodProd:    l.producto.CodProd,
				Lista:      l.lista,
				Cantidad:   l.cantidad,
				Monto:      l.monto,
			})
		}
		comanda := &entity.Comanda{
			ID:        uuid.New().String(),
			Numero:    numero,
			ClienteID: cliente.ID,
			CodCli:    cliente.CodCli,
			RepartoID: in.RepartoID,
			Fecha:     fecha,
			Items:     items,
			CreadoPor: in.Solicitante.ID,
			Activo:    true,
			CreatedAt: ahora,
			UpdatedAt: ahora,
		}
		if err := comandaRepo.Create(ctx, comanda); err != nil {
			return err
		}

		for _, l := range lineas {
			// Descuento condicional: otra comanda pudo consumir el stock entre
			// el pre-chequeo y acá. Si falla, se aborta todo: ni comanda, ni
			// número, ni descuentos previos quedan visibles.
			if err := productoRepo.DescontarStock(ctx, l.producto.ID, l.cantidad); err != nil {
				if err == domain.ErrInsufficientStock {
					actual, errGet := productoRepo.GetByID(ctx, l.producto.ID)
					stk := l.producto.Stock
					if errGet == nil && actual != nil {
						stk = actual.Stock
					}
					return &domain.StockInsuficienteError{Productos: []domain.FaltanteStock{{
						CodProd:     l.producto.CodProd,
						Descripcion: l.producto.Descripcion,
						StkActual:   stk,
						Solicitado:  l.cantidad,
					}}}
				}
				return err
			}
			mov := &entity.MovimientoStock{
				ID:            uuid.New().String(),
				ProductoID:    l.producto.ID,
				CodProd:       l.producto.CodProd,
				ReferenciaID:  comanda.ID,
				Tipo:          entity.MovimientoVenta,
				Cantidad:      -l.cantidad,
				Fecha:         ahora,
				RegistradoPor: in.Solicitante.ID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
		creada = comanda
		return nil
	})
	if err != nil {
		return nil, err
	}
	return creada, nil
}

// validarItems valida cantidades y resuelve los productos por código.
func (uc *CrearComandaUseCase) validarItems(ctx context.Context, items []ItemInput) ([]lineaValidada, error) {
	lineas := make([]lineaValidada, 0, len(items))
	for _, item := range items {
		if item.Cantidad == 0 || item.Cantidad != math.Trunc(item.Cantidad) {
			return nil, domain.NewValidationError("La cantidad debe ser un entero distinto de cero")
		}
		if item.Cantidad < 0 {
			return nil, domain.NewValidationError("La cantidad debe ser mayor a cero")
		}
		if item.Monto.IsNegative() {
			return nil, domain.NewValidationError("El monto no puede ser negativo")
		}
		producto, err := uc.productoRepo.GetByCodigo(ctx, item.CodProd)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.NewValidationError("El producto " + item.CodProd + " no existe")
		}
		lineas = append(lineas, lineaValidada{
			producto: producto,
			lista:    item.Lista,
			cantidad: int64(item.Cantidad),
			monto:    item.Monto,
		})
	}
	return lineas, nil
}
