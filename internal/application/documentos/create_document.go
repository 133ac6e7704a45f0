package documentos

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/numbering"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// Mensajes de validación que ve el cliente.
const (
	MsgCantidadInvalida = "La cantidad debe ser un entero distinto de cero"
	MsgItemsVacios      = "El documento debe tener al menos un ítem"
)

// Operaciones de ajuste (flag del caller para documentos AJ).
const (
	AjusteIncremento = "incremento"
	AjusteDecremento = "decremento"
)

// CrearDocumentoUseCase coordina el alta transaccional de un documento:
// validar referencias, agregar ítems duplicados, asignar secuencia, mutar
// stock con deltas atómicos y escribir el ledger de movimientos, todo dentro
// de una transacción. Ante cualquier falla nada queda visible: ni documento,
// ni delta de stock, ni fila de movimiento.
type CrearDocumentoUseCase struct {
	txRunner      TxRunner
	proveedorRepo repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
}

// NewCrearDocumentoUseCase construye el coordinador.
func NewCrearDocumentoUseCase(
	txRunner TxRunner,
	proveedorRepo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
) *CrearDocumentoUseCase {
	return &CrearDocumentoUseCase{
		txRunner:      txRunner,
		proveedorRepo: proveedorRepo,
		productoRepo:  productoRepo,
	}
}

// ItemInput línea cruda del caller. Cantidad llega como float para poder
// rechazar fraccionarios con mensaje propio en lugar de truncarlos.
type ItemInput struct {
	Cantidad   float64
	ProductoID string
	CodProd    string
}

// DocumentoInput entrada de CrearDocumento.
type DocumentoInput struct {
	Tipo            string
	Prefijo         string
	ProveedorID     string
	FechaRemito     string // "2006-01-02"
	AjusteOperacion string // incremento | decremento (solo AJ)
	NumeroSugerido  string
	Notas           string
	Solicitante     domain.Solicitante
	Items           []ItemInput
}

// StockUpdate delta neto aplicado a un producto por el documento creado.
type StockUpdate struct {
	ProductoID string
	CodProd    string
	Delta      int64
	Operacion  string // incremento | decremento
}

// lineaAgregada ítem ya validado y con duplicados sumados.
type lineaAgregada struct {
	producto *entity.Producto
	delta    int64
}

// CrearDocumento ejecuta el pipeline completo. Las violaciones de reglas de
// negocio se detectan antes de tocar nada; solo las carreras de secuencia
// (índice único) disparan el reintento acotado, que repite la transacción
// entera desde la asignación.
func (uc *CrearDocumentoUseCase) CrearDocumento(ctx context.Context, in DocumentoInput) (*entity.Documento, []StockUpdate, error) {
	if !in.Solicitante.Valida() {
		return nil, nil, domain.ErrUnauthorized
	}
	if !entity.TipoDocumentoValido(in.Tipo) {
		return nil, nil, domain.NewValidationError("Tipo de documento desconocido")
	}
	fechaRemito, err := time.Parse("2006-01-02", in.FechaRemito)
	if err != nil {
		return nil, nil, domain.NewValidationError("Fecha de remito inválida")
	}
	if len(in.Items) == 0 {
		return nil, nil, domain.NewValidationError(MsgItemsVacios)
	}

	proveedor, err := uc.proveedorRepo.GetByID(ctx, in.ProveedorID)
	if err != nil {
		return nil, nil, err
	}
	if proveedor == nil {
		return nil, nil, domain.NewValidationError("El proveedor no existe")
	}

	prefijo := numbering.NormalizarPrefijo(in.Prefijo)

	lineas, err := uc.validarYAgregarItems(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	secSugerida, err := uc.resolverSugerido(in, prefijo)
	if err != nil {
		return nil, nil, err
	}

	updates := make([]StockUpdate, 0, len(lineas))
	for _, l := range lineas {
		op := AjusteIncremento
		if l.delta < 0 {
			op = AjusteDecremento
		}
		updates = append(updates, StockUpdate{
			ProductoID: l.producto.ID,
			CodProd:    l.producto.CodProd,
			Delta:      l.delta,
			Operacion:  op,
		})
	}

	var creado *entity.Documento
	for intento := 1; ; intento++ {
		creado = nil
		err = uc.txRunner.Run(ctx, func(
			docRepo repository.DocumentoRepository,
			reservaRepo repository.ReservaRepository,
			productoRepo repository.ProductoRepository,
			movRepo repository.MovimientoRepository,
		) error {
			doc, errTx := uc.crearEnTx(ctx, docRepo, reservaRepo, productoRepo, movRepo, in, prefijo, secSugerida, fechaRemito, lineas, updates)
			if errTx != nil {
				return errTx
			}
			creado = doc
			return nil
		})
		if err == nil {
			return creado, updates, nil
		}
		// Solo la carrera por el índice único se reintenta; validaciones y
		// conflictos de negocio salen directo.
		if !errors.Is(err, domain.ErrDuplicate) || intento >= maxIntentosAsignacion {
			break
		}
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, nil, domain.NewConflictError("No se pudo asignar un número de documento, reintente")
	}
	return nil, nil, err
}

// validarYAgregarItems valida cada línea cruda y suma las que referencian el
// mismo producto en una sola cantidad neta, preservando el orden de primera
// aparición. El stock de cada producto se toca exactamente una vez por
// documento y el ledger tiene una fila por producto distinto: no es una
// conveniencia, evita el doble conteo.
func (uc *CrearDocumentoUseCase) validarYAgregarItems(ctx context.Context, in DocumentoInput) ([]lineaAgregada, error) {
	porProducto := make(map[string]int)
	var lineas []lineaAgregada

	for _, item := range in.Items {
		if item.Cantidad == 0 || item.Cantidad != math.Trunc(item.Cantidad) {
			return nil, domain.NewValidationError(MsgCantidadInvalida)
		}
		cantidad := int64(item.Cantidad)

		switch in.Tipo {
		case entity.TipoRemito, entity.TipoNotaRecepcion:
			if cantidad < 0 {
				return nil, domain.NewValidationError("La cantidad debe ser mayor a cero para este tipo de documento")
			}
		case entity.TipoAjuste:
			if in.AjusteOperacion == AjusteDecremento {
				if cantidad < 0 {
					cantidad = -cantidad
				}
				cantidad = -cantidad
			}
		}

		producto, err := uc.buscarProducto(ctx, item)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.NewValidationError("El producto " + item.CodProd + " no existe")
		}
		// Un producto inactivo en una recepción es falla dura, no advertencia.
		if in.Tipo == entity.TipoNotaRecepcion && !producto.Activo {
			return nil, domain.NewValidationError("El producto " + producto.CodProd + " está inactivo")
		}

		if idx, visto := porProducto[producto.ID]; visto {
			lineas[idx].delta += cantidad
			continue
		}
		porProducto[producto.ID] = len(lineas)
		lineas = append(lineas, lineaAgregada{producto: producto, delta: cantidad})
	}
	return lineas, nil
}

// buscarProducto resuelve por ID y cae al código si el ID no vino.
func (uc *CrearDocumentoUseCase) buscarProducto(ctx context.Context, item ItemInput) (*entity.Producto, error) {
	if item.ProductoID != "" {
		return uc.productoRepo.GetByID(ctx, item.ProductoID)
	}
	if item.CodProd != "" {
		return uc.productoRepo.GetByCodigo(ctx, item.CodProd)
	}
	return nil, domain.NewValidationError("Cada ítem debe indicar el producto")
}

// resolverSugerido valida el número sugerido del caller. Para ajustes, un
// número bien formado se honra textualmente (sin asignación). Para los demás
// tipos el sugerido solo sirve si coincide con una reserva viva del
// solicitante; eso se verifica dentro de la transacción. Devuelve 0 si no hay
// secuencia sugerida aplicable.
func (uc *CrearDocumentoUseCase) resolverSugerido(in DocumentoInput, prefijo string) (int64, error) {
	sugerido := in.NumeroSugerido
	if sugerido == "" {
		return 0, nil
	}
	prefSug, tipoSug, sec, ok := numbering.Descomponer(sugerido)
	if !ok || tipoSug != in.Tipo {
		if in.Tipo == entity.TipoAjuste {
			return 0, domain.NewValidationError("Número sugerido inválido")
		}
		return 0, nil
	}
	if in.Tipo == entity.TipoAjuste && !numbering.EsNumeroAJValido(sugerido) {
		return 0, domain.NewValidationError("Número sugerido inválido")
	}
	if prefSug != prefijo {
		return 0, domain.NewValidationError("El número sugerido no corresponde al prefijo del documento")
	}
	return sec, nil
}

// crearEnTx corre un intento completo dentro de la transacción: decidir la
// secuencia, chequear el duplicado activo, aplicar los deltas de stock,
// persistir el documento, consumir la reserva si la hubo y escribir los
// movimientos.
func (uc *CrearDocumentoUseCase) crearEnTx(
	ctx context.Context,
	docRepo repository.DocumentoRepository,
	reservaRepo repository.ReservaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
	in DocumentoInput,
	prefijo string,
	secSugerida int64,
	fechaRemito time.Time,
	lineas []lineaAgregada,
	updates []StockUpdate,
) (*entity.Documento, error) {
	ahora := time.Now()

	secuencia, reserva, err := uc.decidirSecuencia(ctx, docRepo, reservaRepo, in, prefijo, secSugerida, ahora)
	if err != nil {
		return nil, err
	}
	numero := numbering.NumeroDocumento(prefijo, in.Tipo, secuencia)

	// Guardia de idempotencia: reenvíos del mismo número no crean un segundo
	// documento, devuelven conflicto.
	existente, err := docRepo.GetActivoByNumero(ctx, numero)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewConflictError("Ya existe un documento activo con el número " + numero)
	}

	for _, u := range updates {
		if u.Delta == 0 {
			continue
		}
		if err := productoRepo.AjustarStock(ctx, u.ProductoID, u.Delta); err != nil {
			return nil, err
		}
	}

	items := make([]entity.LineaDocumento, 0, len(lineas))
	for _, l := range lineas {
		items = append(items, entity.LineaDocumento{
			ProductoID: l.producto.ID,
			CodProd:    l.producto.CodProd,
			Cantidad:   l.delta,
		})
	}
	doc := &entity.Documento{
		ID:             uuid.New().String(),
		Tipo:           in.Tipo,
		Prefijo:        prefijo,
		Secuencia:      secuencia,
		NroDeDocumento: numero,
		ProveedorID:    in.ProveedorID,
		FechaRemito:    fechaRemito,
		FechaRegistro:  ahora,
		CreadoPor:      in.Solicitante.ID,
		Items:          items,
		Notas:          in.Notas,
		Activo:         true,
		CreatedAt:      ahora,
		UpdatedAt:      ahora,
	}
	if err := docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if reserva != nil {
		if err := reservaRepo.Consumir(ctx, reserva.ID, ahora); err != nil {
			return nil, err
		}
	}

	for _, l := range lineas {
		mov := &entity.MovimientoStock{
			ID:            uuid.New().String(),
			ProductoID:    l.producto.ID,
			CodProd:       l.producto.CodProd,
			ReferenciaID:  doc.ID,
			Tipo:          tipoMovimiento(in.Tipo, l.delta),
			Cantidad:      l.delta,
			Fecha:         ahora,
			RegistradoPor: in.Solicitante.ID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// decidirSecuencia resuelve la secuencia del documento: sugerida (ajustes, o
// reserva viva del solicitante), reserva previa por (tipo, prefijo,
// solicitante), o candidato fresco 1+max.
func (uc *CrearDocumentoUseCase) decidirSecuencia(
	ctx context.Context,
	docRepo repository.DocumentoRepository,
	reservaRepo repository.ReservaRepository,
	in DocumentoInput,
	prefijo string,
	secSugerida int64,
	ahora time.Time,
) (int64, *entity.ReservaSecuencia, error) {
	if secSugerida > 0 {
		reserva, err := reservaRepo.GetViva(ctx, in.Tipo, prefijo, secSugerida, ahora)
		if err != nil {
			return 0, nil, err
		}
		if reserva != nil {
			if reserva.SolicitadaPor != in.Solicitante.ID {
				return 0, nil, domain.NewConflictError("El número sugerido está reservado por otro usuario")
			}
			return secSugerida, reserva, nil
		}
		// Ajustes honran el sugerido textualmente aun sin reserva; para los
		// demás tipos se ignora y se asigna fresco (la guardia de duplicado
		// activo corre igual con el número resultante).
		if in.Tipo == entity.TipoAjuste {
			return secSugerida, nil, nil
		}
		existente, err := docRepo.GetActivoByNumero(ctx, numbering.NumeroDocumento(prefijo, in.Tipo, secSugerida))
		if err != nil {
			return 0, nil, err
		}
		if existente != nil {
			return 0, nil, domain.NewConflictError("Ya existe un documento activo con el número " + existente.NroDeDocumento)
		}
	}

	reserva, err := reservaRepo.GetVivaPorSolicitante(ctx, in.Tipo, prefijo, in.Solicitante.ID, ahora)
	if err != nil {
		return 0, nil, err
	}
	if reserva != nil {
		// La reserva se consume textualmente, sin recálculo.
		return reserva.Secuencia, reserva, nil
	}

	sec, err := secuenciaCandidata(ctx, docRepo, reservaRepo, in.Tipo, prefijo, ahora)
	if err != nil {
		return 0, nil, err
	}
	return sec, nil, nil
}

// tipoMovimiento mapea tipo de documento y signo del delta al tipo de
// movimiento del ledger.
func tipoMovimiento(tipoDoc string, delta int64) string {
	switch tipoDoc {
	case entity.TipoRemito:
		return entity.MovimientoCompra
	case entity.TipoNotaRecepcion:
		return entity.MovimientoDevolucion
	default:
		if delta < 0 {
			return entity.MovimientoAjusteNeg
		}
		return entity.MovimientoAjustePos
	}
}
