package documentos_test

import (
	"context"
	"time"

	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
	"github.com/distrisur/gestion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos + tx runner con semántica de rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocRepo struct {
	docs []*entity.Documento
	// fallosCreate inyecta ErrDuplicate en los próximos N Create, simulando la
	// carrera por el índice único.
	fallosCreate int
	creates      int
}

func (r *fakeDocRepo) Create(_ context.Context, doc *entity.Documento) error {
	r.creates++
	if r.fallosCreate > 0 {
		r.fallosCreate--
		return domain.ErrDuplicate
	}
	for _, d := range r.docs {
		if d.Tipo == doc.Tipo && d.Prefijo == doc.Prefijo && d.Secuencia == doc.Secuencia {
			return domain.ErrDuplicate
		}
	}
	copia := *doc
	r.docs = append(r.docs, &copia)
	return nil
}

func (r *fakeDocRepo) MaxSecuencia(_ context.Context, tipo, prefijo string) (int64, error) {
	var max int64
	for _, d := range r.docs {
		if d.Tipo == tipo && d.Prefijo == prefijo && d.Secuencia > max {
			max = d.Secuencia
		}
	}
	return max, nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, id string) (*entity.Documento, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDocRepo) GetActivoByNumero(_ context.Context, numero string) (*entity.Documento, error) {
	for _, d := range r.docs {
		if d.NroDeDocumento == numero && d.Activo {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDocRepo) Update(_ context.Context, doc *entity.Documento) error {
	for i, d := range r.docs {
		if d.ID == doc.ID {
			copia := *doc
			r.docs[i] = &copia
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeDocRepo) Deactivate(_ context.Context, id string) error {
	for _, d := range r.docs {
		if d.ID == id {
			d.Activo = false
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeDocRepo) List(_ context.Context, limit, offset int) ([]*entity.Documento, error) {
	if offset >= len(r.docs) {
		return nil, nil
	}
	fin := offset + limit
	if fin > len(r.docs) {
		fin = len(r.docs)
	}
	return r.docs[offset:fin], nil
}

type fakeReservaRepo struct {
	reservas []*entity.ReservaSecuencia
}

func (r *fakeReservaRepo) Create(_ context.Context, reserva *entity.ReservaSecuencia) error {
	for _, e := range r.reservas {
		if e.Tipo == reserva.Tipo && e.Prefijo == reserva.Prefijo && e.Secuencia == reserva.Secuencia {
			return domain.ErrDuplicate
		}
	}
	copia := *reserva
	r.reservas = append(r.reservas, &copia)
	return nil
}

func (r *fakeReservaRepo) GetVivaPorSolicitante(_ context.Context, tipo, prefijo, solicitante string, ahora time.Time) (*entity.ReservaSecuencia, error) {
	for _, e := range r.reservas {
		if e.Tipo == tipo && e.Prefijo == prefijo && e.SolicitadaPor == solicitante && e.Viva(ahora) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeReservaRepo) GetViva(_ context.Context, tipo, prefijo string, secuencia int64, ahora time.Time) (*entity.ReservaSecuencia, error) {
	for _, e := range r.reservas {
		if e.Tipo == tipo && e.Prefijo == prefijo && e.Secuencia == secuencia && e.Viva(ahora) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeReservaRepo) MaxSecuenciaViva(_ context.Context, tipo, prefijo string, ahora time.Time) (int64, error) {
	var max int64
	for _, e := range r.reservas {
		if e.Tipo != tipo || e.Prefijo != prefijo {
			continue
		}
		viva := e.Viva(ahora) || e.Estado == entity.ReservaConsumida
		if viva && e.Secuencia > max {
			max = e.Secuencia
		}
	}
	return max, nil
}

func (r *fakeReservaRepo) Consumir(_ context.Context, id string, ahora time.Time) error {
	for _, e := range r.reservas {
		if e.ID == id && e.Viva(ahora) {
			e.Estado = entity.ReservaConsumida
			e.ConsumedAt = &ahora
			return nil
		}
	}
	return domain.ErrConflict
}

func (r *fakeReservaRepo) LiberarExpiradas(_ context.Context, ahora time.Time) (int64, error) {
	var n int64
	for _, e := range r.reservas {
		if e.Estado == entity.ReservaReservada && !ahora.Before(e.ExpiresAt) {
			e.Estado = entity.ReservaLiberada
			e.ReleasedAt = &ahora
			n++
		}
	}
	return n, nil
}

type fakeProductoRepo struct {
	productos map[string]*entity.Producto
	// fallaAjustarEn inyecta un error al ajustar el stock del producto indicado.
	fallaAjustarEn string
}

func newFakeProductoRepo(productos ...*entity.Producto) *fakeProductoRepo {
	r := &fakeProductoRepo{productos: make(map[string]*entity.Producto)}
	for _, p := range productos {
		copia := *p
		r.productos[p.ID] = &copia
	}
	return r
}

func (r *fakeProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	copia := *p
	r.productos[p.ID] = &copia
	return nil
}

func (r *fakeProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	if p, ok := r.productos[id]; ok {
		copia := *p
		return &copia, nil
	}
	return nil, nil
}

func (r *fakeProductoRepo) GetByCodigo(_ context.Context, codProd string) (*entity.Producto, error) {
	for _, p := range r.productos {
		if p.CodProd == codProd {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeProductoRepo) AjustarStock(_ context.Context, productoID string, delta int64) error {
	if productoID == r.fallaAjustarEn {
		return domain.ErrConflict
	}
	p, ok := r.productos[productoID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductoRepo) DescontarStock(_ context.Context, productoID string, cantidad int64) error {
	p, ok := r.productos[productoID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < cantidad {
		return domain.ErrInsufficientStock
	}
	p.Stock -= cantidad
	return nil
}

type fakeMovRepo struct {
	movs []*entity.MovimientoStock
}

func (r *fakeMovRepo) Create(_ context.Context, mov *entity.MovimientoStock) error {
	copia := *mov
	r.movs = append(r.movs, &copia)
	return nil
}

func (r *fakeMovRepo) ListByProducto(_ context.Context, productoID string, _, _ *time.Time, _, _ int) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, m := range r.movs {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovRepo) ListByReferencia(_ context.Context, referenciaID string) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, m := range r.movs {
		if m.ReferenciaID == referenciaID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProveedorRepo struct {
	proveedores map[string]*entity.Proveedor
}

func newFakeProveedorRepo(ids ...string) *fakeProveedorRepo {
	r := &fakeProveedorRepo{proveedores: make(map[string]*entity.Proveedor)}
	for _, id := range ids {
		r.proveedores[id] = &entity.Proveedor{ID: id, Nombre: "Proveedor " + id, Activo: true}
	}
	return r
}

func (r *fakeProveedorRepo) Create(_ context.Context, p *entity.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *fakeProveedorRepo) GetByID(_ context.Context, id string) (*entity.Proveedor, error) {
	if p, ok := r.proveedores[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (r *fakeProveedorRepo) List(_ context.Context, _, _ int) ([]*entity.Proveedor, error) {
	var out []*entity.Proveedor
	for _, p := range r.proveedores {
		out = append(out, p)
	}
	return out, nil
}

// fakeTxRunner reproduce la atomicidad por snapshot: copia el estado de los
// fakes antes de fn y lo restaura entero si fn falla.
type fakeTxRunner struct {
	docs      *fakeDocRepo
	reservas  *fakeReservaRepo
	productos *fakeProductoRepo
	movs      *fakeMovRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	docRepo repository.DocumentoRepository,
	reservaRepo repository.ReservaRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	docsSnap := snapshotDocs(r.docs.docs)
	reservasSnap := snapshotReservas(r.reservas.reservas)
	productosSnap := snapshotProductos(r.productos.productos)
	movsSnap := snapshotMovs(r.movs.movs)

	if err := fn(r.docs, r.reservas, r.productos, r.movs); err != nil {
		r.docs.docs = docsSnap
		r.reservas.reservas = reservasSnap
		r.productos.productos = productosSnap
		r.movs.movs = movsSnap
		return err
	}
	return nil
}

func snapshotDocs(in []*entity.Documento) []*entity.Documento {
	out := make([]*entity.Documento, len(in))
	for i, d := range in {
		copia := *d
		out[i] = &copia
	}
	return out
}

func snapshotReservas(in []*entity.ReservaSecuencia) []*entity.ReservaSecuencia {
	out := make([]*entity.ReservaSecuencia, len(in))
	for i, e := range in {
		copia := *e
		out[i] = &copia
	}
	return out
}

func snapshotProductos(in map[string]*entity.Producto) map[string]*entity.Producto {
	out := make(map[string]*entity.Producto, len(in))
	for k, p := range in {
		copia := *p
		out[k] = &copia
	}
	return out
}

func snapshotMovs(in []*entity.MovimientoStock) []*entity.MovimientoStock {
	out := make([]*entity.MovimientoStock, len(in))
	for i, m := range in {
		copia := *m
		out[i] = &copia
	}
	return out
}
