package documentos_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distrisur/gestion-api/internal/application/documentos"
	"github.com/distrisur/gestion-api/internal/domain"
	"github.com/distrisur/gestion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProveedorID = "prov-1"
	testUsuarioID   = "user-1"
)

type entorno struct {
	uc        *documentos.CrearDocumentoUseCase
	docs      *fakeDocRepo
	reservas  *fakeReservaRepo
	productos *fakeProductoRepo
	movs      *fakeMovRepo
}

func nuevoEntorno(productos ...*entity.Producto) *entorno {
	docs := &fakeDocRepo{}
	reservas := &fakeReservaRepo{}
	prodRepo := newFakeProductoRepo(productos...)
	movs := &fakeMovRepo{}
	tx := &fakeTxRunner{docs: docs, reservas: reservas, productos: prodRepo, movs: movs}
	uc := documentos.NewCrearDocumentoUseCase(tx, newFakeProveedorRepo(testProveedorID), prodRepo)
	return &entorno{uc: uc, docs: docs, reservas: reservas, productos: prodRepo, movs: movs}
}

func productoDePrueba(id, codProd string, stock int64) *entity.Producto {
	return &entity.Producto{ID: id, CodProd: codProd, Descripcion: "Producto " + codProd, Stock: stock, Activo: true}
}

func entradaBase(tipo string, items ...documentos.ItemInput) documentos.DocumentoInput {
	return documentos.DocumentoInput{
		Tipo:        tipo,
		Prefijo:     "12",
		ProveedorID: testProveedorID,
		FechaRemito: "2026-08-20",
		Solicitante: domain.Solicitante{ID: testUsuarioID, Rol: entity.RolDeposito},
		Items:       items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_RechazaCantidadCero(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 0, ProductoID: "p1", CodProd: "A100"})

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "La cantidad debe ser un entero distinto de cero", valErr.Message)
	assert.Empty(t, env.docs.docs, "nada debe persistirse ante una validación fallida")
}

func TestCrearDocumento_RechazaCantidadFraccionaria(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoAjuste, documentos.ItemInput{Cantidad: -1.5, ProductoID: "p1", CodProd: "A100"})

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "La cantidad debe ser un entero distinto de cero", valErr.Message)
}

func TestCrearDocumento_RemitoRechazaCantidadNegativa(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: -3, ProductoID: "p1", CodProd: "A100"})

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestCrearDocumento_AjusteAceptaCantidadNegativa(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoAjuste, documentos.ItemInput{Cantidad: -3, ProductoID: "p1", CodProd: "A100"})

	doc, updates, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(-3), updates[0].Delta)
	assert.Equal(t, "decremento", updates[0].Operacion)
	assert.Equal(t, int64(7), env.productos.productos["p1"].Stock)
	assert.Equal(t, int64(-3), doc.Items[0].Cantidad)
}

func TestCrearDocumento_AjusteDecrementoNiegaCantidadesPositivas(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoAjuste, documentos.ItemInput{Cantidad: 4, ProductoID: "p1", CodProd: "A100"})
	in.AjusteOperacion = documentos.AjusteDecremento

	_, updates, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(-4), updates[0].Delta)
	assert.Equal(t, int64(6), env.productos.productos["p1"].Stock)
}

func TestCrearDocumento_SinItems(t *testing.T) {
	env := nuevoEntorno()
	in := entradaBase(entity.TipoRemito)

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, documentos.MsgItemsVacios, valErr.Message)
}

func TestCrearDocumento_ProveedorInexistente(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	in.ProveedorID = "no-existe"

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestCrearDocumento_NotaRecepcionProductoInactivo(t *testing.T) {
	inactivo := productoDePrueba("p1", "A100", 10)
	inactivo.Activo = false
	env := nuevoEntorno(inactivo)
	in := entradaBase(entity.TipoNotaRecepcion, documentos.ItemInput{Cantidad: 2, ProductoID: "p1", CodProd: "A100"})

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "inactivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregación de ítems duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_AgregaItemsDelMismoProducto(t *testing.T) {
	env := nuevoEntorno(
		productoDePrueba("p1", "A100", 0),
		productoDePrueba("p2", "B200", 0),
	)
	in := entradaBase(entity.TipoRemito,
		documentos.ItemInput{Cantidad: 2, ProductoID: "p1", CodProd: "A100"},
		documentos.ItemInput{Cantidad: 5, ProductoID: "p2", CodProd: "B200"},
		documentos.ItemInput{Cantidad: 3, ProductoID: "p1", CodProd: "A100"},
	)

	doc, updates, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	// Una línea por producto distinto, en orden de primera aparición.
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "p1", doc.Items[0].ProductoID)
	assert.Equal(t, int64(5), doc.Items[0].Cantidad)
	assert.Equal(t, "p2", doc.Items[1].ProductoID)
	assert.Equal(t, int64(5), doc.Items[1].Cantidad)

	// El stock se toca exactamente una vez por producto.
	require.Len(t, updates, 2)
	assert.Equal(t, int64(5), env.productos.productos["p1"].Stock)
	assert.Equal(t, int64(5), env.productos.productos["p2"].Stock)

	// Una fila de ledger por producto distinto.
	assert.Len(t, env.movs.movs, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_NumeracionSecuencialPorBucket(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})

	doc1, _, err := env.uc.CrearDocumento(context.Background(), in)
	require.NoError(t, err)
	doc2, _, err := env.uc.CrearDocumento(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(1), doc1.Secuencia)
	assert.Equal(t, "0012R00000001", doc1.NroDeDocumento)
	assert.Equal(t, int64(2), doc2.Secuencia)
	assert.Equal(t, "0012R00000002", doc2.NroDeDocumento)

	// Otro tipo arranca su propia numeración.
	inNR := entradaBase(entity.TipoNotaRecepcion, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	docNR, _, err := env.uc.CrearDocumento(context.Background(), inNR)
	require.NoError(t, err)
	assert.Equal(t, "0012NR00000001", docNR.NroDeDocumento)
}

func TestCrearDocumento_ReintentaAnteCarreraDeSecuencia(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	env.docs.fallosCreate = 2 // los dos primeros intentos pierden la carrera
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})

	doc, _, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, 3, env.docs.creates, "dos fallos más el intento exitoso")
	assert.Equal(t, int64(1), env.productos.productos["p1"].Stock,
		"los intentos fallidos no deben dejar deltas de stock")
	assert.NotNil(t, doc)
}

func TestCrearDocumento_AgotaReintentosYDevuelveConflicto(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	env.docs.fallosCreate = 3
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var confErr *domain.ConflictError
	require.ErrorAs(t, err, &confErr)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Empty(t, env.docs.docs)
	assert.Equal(t, int64(0), env.productos.productos["p1"].Stock)
}

func TestCrearDocumento_SugeridoDuplicadoDevuelveConflicto(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})

	_, _, err := env.uc.CrearDocumento(context.Background(), in)
	require.NoError(t, err)

	// Reenvío con el número ya comprometido.
	in.NumeroSugerido = "0012R00000001"
	_, _, err = env.uc.CrearDocumento(context.Background(), in)

	var confErr *domain.ConflictError
	require.ErrorAs(t, err, &confErr)
	assert.Len(t, env.docs.docs, 1, "el reenvío no debe crear un segundo documento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Números sugeridos de ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_AjusteHonraSugeridoTextual(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoAjuste, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	in.NumeroSugerido = "0012AJ00000042"

	doc, _, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(42), doc.Secuencia)
	assert.Equal(t, "0012AJ00000042", doc.NroDeDocumento)
}

func TestCrearDocumento_AjusteSugeridoMalFormado(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoAjuste, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	in.NumeroSugerido = "12AJ42"

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestCrearDocumento_SugeridoDePrefijoAjeno(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 10))
	in := entradaBase(entity.TipoAjuste, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	in.NumeroSugerido = "0099AJ00000042" // el documento es del prefijo 0012

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_ConsumeReservaDelSolicitante(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	ahora := time.Now()
	env.reservas.reservas = append(env.reservas.reservas, &entity.ReservaSecuencia{
		ID: "res-1", Tipo: entity.TipoRemito, Prefijo: "0012", Secuencia: 7,
		SolicitadaPor: testUsuarioID, Estado: entity.ReservaReservada,
		ExpiresAt: ahora.Add(10 * time.Minute), CreatedAt: ahora,
	})
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})

	doc, _, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(7), doc.Secuencia, "la reserva se consume textualmente")
	assert.Equal(t, entity.ReservaConsumida, env.reservas.reservas[0].Estado)
}

func TestCrearDocumento_ReservaVencidaNoSeUsa(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	ahora := time.Now()
	env.reservas.reservas = append(env.reservas.reservas, &entity.ReservaSecuencia{
		ID: "res-1", Tipo: entity.TipoRemito, Prefijo: "0012", Secuencia: 7,
		SolicitadaPor: testUsuarioID, Estado: entity.ReservaReservada,
		ExpiresAt: ahora.Add(-1 * time.Minute), CreatedAt: ahora.Add(-20 * time.Minute),
	})
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})

	doc, _, err := env.uc.CrearDocumento(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Secuencia, "una reserva vencida no cuenta")
}

func TestCrearDocumento_SugeridoReservadoPorOtroUsuario(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	ahora := time.Now()
	env.reservas.reservas = append(env.reservas.reservas, &entity.ReservaSecuencia{
		ID: "res-1", Tipo: entity.TipoRemito, Prefijo: "0012", Secuencia: 7,
		SolicitadaPor: "otro-usuario", Estado: entity.ReservaReservada,
		ExpiresAt: ahora.Add(10 * time.Minute), CreatedAt: ahora,
	})
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	in.NumeroSugerido = "0012R00000007"

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	var confErr *domain.ConflictError
	require.ErrorAs(t, err, &confErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_RollbackCompletoAnteFalloDeStock(t *testing.T) {
	env := nuevoEntorno(
		productoDePrueba("p1", "A100", 0),
		productoDePrueba("p2", "B200", 0),
		productoDePrueba("p3", "C300", 0),
	)
	env.productos.fallaAjustarEn = "p3" // el tercer delta falla
	in := entradaBase(entity.TipoRemito,
		documentos.ItemInput{Cantidad: 1, ProductoID: "p1"},
		documentos.ItemInput{Cantidad: 2, ProductoID: "p2"},
		documentos.ItemInput{Cantidad: 3, ProductoID: "p3"},
	)

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	require.Error(t, err)
	assert.Empty(t, env.docs.docs, "el documento no debe quedar visible")
	assert.Empty(t, env.movs.movs, "el ledger no debe tener filas")
	assert.Equal(t, int64(0), env.productos.productos["p1"].Stock, "los deltas previos deben revertirse")
	assert.Equal(t, int64(0), env.productos.productos["p2"].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDocumento_TiposDeMovimiento(t *testing.T) {
	casos := []struct {
		nombre   string
		tipo     string
		cantidad float64
		esperado string
	}{
		{"remito registra compra", entity.TipoRemito, 5, entity.MovimientoCompra},
		{"nota de recepción registra devolución", entity.TipoNotaRecepcion, 5, entity.MovimientoDevolucion},
		{"ajuste positivo", entity.TipoAjuste, 5, entity.MovimientoAjustePos},
		{"ajuste negativo", entity.TipoAjuste, -5, entity.MovimientoAjusteNeg},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			env := nuevoEntorno(productoDePrueba("p1", "A100", 100))
			in := entradaBase(c.tipo, documentos.ItemInput{Cantidad: c.cantidad, ProductoID: "p1", CodProd: "A100"})

			doc, _, err := env.uc.CrearDocumento(context.Background(), in)

			require.NoError(t, err)
			require.Len(t, env.movs.movs, 1)
			mov := env.movs.movs[0]
			assert.Equal(t, c.esperado, mov.Tipo)
			assert.Equal(t, doc.ID, mov.ReferenciaID)
			assert.Equal(t, int64(c.cantidad), mov.Cantidad)
			assert.Equal(t, testUsuarioID, mov.RegistradoPor)
		})
	}
}

func TestCrearDocumento_SolicitanteVacio(t *testing.T) {
	env := nuevoEntorno(productoDePrueba("p1", "A100", 0))
	in := entradaBase(entity.TipoRemito, documentos.ItemInput{Cantidad: 1, ProductoID: "p1"})
	in.Solicitante = domain.Solicitante{}

	_, _, err := env.uc.CrearDocumento(context.Background(), in)

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
