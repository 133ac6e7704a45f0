package documentos

import (
	"context"
	"math"
	"time"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// DocumentoUseCase lecturas y mutaciones post-creación de documentos.
// La numeración es inmutable: solo cambian proveedor, fecha, items y notas.
// La baja es siempre lógica; la secuencia de un documento desactivado no se
// reutiliza jamás.
type DocumentoUseCase struct {
	docRepo      repository.DocumentoRepository
	productoRepo repository.ProductoRepository
}

// NewDocumentoUseCase construye el caso de uso.
func NewDocumentoUseCase(docRepo repository.DocumentoRepository, productoRepo repository.ProductoRepository) *DocumentoUseCase {
	return &DocumentoUseCase{docRepo: docRepo, productoRepo: productoRepo}
}

// GetByID obtiene un documento.
func (uc *DocumentoUseCase) GetByID(ctx context.Context, id string) (*entity.Documento, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// List lista documentos paginados.
func (uc *DocumentoUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Documento, error) {
	return uc.docRepo.List(ctx, limit, offset)
}

// ActualizacionDocumento campos editables después de la creación.
type ActualizacionDocumento struct {
	ProveedorID string
	FechaRemito string
	Notas       string
	Items       []ItemInput
}

// Actualizar modifica campos ajenos a la numeración. Los items se reemplazan
// tal cual: el stock ya fue mutado en la creación y el ledger conserva la
// historia; una corrección de existencias se hace con un documento de ajuste,
// no editando este.
func (uc *DocumentoUseCase) Actualizar(ctx context.Context, id string, in ActualizacionDocumento) (*entity.Documento, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProveedorID != "" {
		doc.ProveedorID = in.ProveedorID
	}
	if in.FechaRemito != "" {
		fecha, err := time.Parse("2006-01-02", in.FechaRemito)
		if err != nil {
			return nil, domain.NewValidationError("Fecha de remito inválida")
		}
		doc.FechaRemito = fecha
	}
	if in.Notas != "" {
		doc.Notas = in.Notas
	}
	if len(in.Items) > 0 {
		items := make([]entity.LineaDocumento, 0, len(in.Items))
		for _, item := range in.Items {
			if item.Cantidad == 0 || item.Cantidad != math.Trunc(item.Cantidad) {
				return nil, domain.NewValidationError(MsgCantidadInvalida)
			}
			producto, err := uc.buscarProductoItem(ctx, item)
			if err != nil {
				return nil, err
			}
			if producto == nil {
				return nil, domain.NewValidationError("El producto " + item.CodProd + " no existe")
			}
			items = append(items, entity.LineaDocumento{
				ProductoID: producto.ID,
				CodProd:    producto.CodProd,
				Cantidad:   int64(item.Cantidad),
			})
		}
		doc.Items = items
	}
	doc.UpdatedAt = time.Now()
	if err := uc.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (uc *DocumentoUseCase) buscarProductoItem(ctx context.Context, item ItemInput) (*entity.Producto, error) {
	if item.ProductoID != "" {
		return uc.productoRepo.GetByID(ctx, item.ProductoID)
	}
	return uc.productoRepo.GetByCodigo(ctx, item.CodProd)
}

// Desactivar baja lógica del documento. Libera el número visible para la
// unicidad entre activos, pero la secuencia queda quemada.
func (uc *DocumentoUseCase) Desactivar(ctx context.Context, id string) error {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	return uc.docRepo.Deactivate(ctx, id)
}
