package kardex_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/kardex"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el TxRunner clona el estado,
// ejecuta el callback sobre el clon y solo lo publica si no hubo error. Un
// rollback deja el estado original intacto, igual que la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	productos   map[string]*entity.Producto
	kardex      []*entity.KardexEntry
	movimientos map[string]*entity.Movimiento
}

func newMemStore(productos ...*entity.Producto) *memStore {
	s := &memStore{
		productos:   make(map[string]*entity.Producto),
		movimientos: make(map[string]*entity.Movimiento),
	}
	for _, p := range productos {
		cp := *p
		s.productos[p.Codigo] = &cp
	}
	return s
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		productos:   make(map[string]*entity.Producto, len(s.productos)),
		kardex:      make([]*entity.KardexEntry, len(s.kardex)),
		movimientos: make(map[string]*entity.Movimiento, len(s.movimientos)),
	}
	for k, p := range s.productos {
		cp := *p
		c.productos[k] = &cp
	}
	for i, e := range s.kardex {
		ce := *e
		c.kardex[i] = &ce
	}
	for k, m := range s.movimientos {
		cm := *m
		c.movimientos[k] = &cm
	}
	return c
}

type memProductoRepo struct{ s *memStore }

func (r *memProductoRepo) Create(p *entity.Producto) error {
	if _, ok := r.s.productos[p.Codigo]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.productos[p.Codigo] = &cp
	return nil
}

func (r *memProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	p, ok := r.s.productos[codigo]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetByCodigoForUpdate(codigo string) (*entity.Producto, error) {
	return r.GetByCodigo(codigo)
}

func (r *memProductoRepo) List(string, bool) ([]*entity.Producto, error) {
	out := make([]*entity.Producto, 0, len(r.s.productos))
	for _, p := range r.s.productos {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductoRepo) Update(p *entity.Producto) error {
	if _, ok := r.s.productos[p.Codigo]; !ok {
		return domain.ErrProductoNotFound
	}
	cp := *p
	r.s.productos[p.Codigo] = &cp
	return nil
}

func (r *memProductoRepo) UpdateExistencia(codigo string, existencia int) error {
	p, ok := r.s.productos[codigo]
	if !ok {
		return domain.ErrProductoNotFound
	}
	p.Existencia = existencia
	return nil
}

func (r *memProductoRepo) Desactivar(codigo string) error {
	p, ok := r.s.productos[codigo]
	if !ok {
		return domain.ErrProductoNotFound
	}
	p.Activo = false
	return nil
}

type memKardexRepo struct{ s *memStore }

func (r *memKardexRepo) Create(e *entity.KardexEntry) error {
	ce := *e
	r.s.kardex = append(r.s.kardex, &ce)
	return nil
}

func (r *memKardexRepo) ListByMovimiento(movimientoID string, soloActivos bool) ([]*entity.KardexEntry, error) {
	var out []*entity.KardexEntry
	for _, e := range r.s.kardex {
		if e.MovimientoID != movimientoID {
			continue
		}
		if soloActivos && e.Estado != entity.EstadoActivo {
			continue
		}
		ce := *e
		out = append(out, &ce)
	}
	return out, nil
}

func (r *memKardexRepo) ListByProducto(codigo string, desde, hasta *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	var out []*entity.KardexEntry
	for _, e := range r.s.kardex {
		if e.Producto.Codigo == codigo {
			ce := *e
			out = append(out, &ce)
		}
	}
	return out, nil
}

func (r *memKardexRepo) Anular(id, usuario string, fecha time.Time) error {
	for _, e := range r.s.kardex {
		if e.ID == id && e.Estado == entity.EstadoActivo {
			e.Estado = entity.EstadoAnulado
			e.UsuarioAnulacion = usuario
			e.FechaAnulacion = &fecha
			return nil
		}
	}
	return domain.ErrNotFound
}

type memMovimientoRepo struct{ s *memStore }

func (r *memMovimientoRepo) Create(m *entity.Movimiento) error {
	cm := *m
	r.s.movimientos[m.ID] = &cm
	return nil
}

func (r *memMovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	m, ok := r.s.movimientos[id]
	if !ok {
		return nil, nil
	}
	cm := *m
	return &cm, nil
}

func (r *memMovimientoRepo) Anular(id, usuario string, fecha time.Time) error {
	m, ok := r.s.movimientos[id]
	if !ok || m.Estado != entity.EstadoActivo {
		return domain.ErrMovimientoNotFound
	}
	m.Estado = entity.EstadoAnulado
	m.UsuarioAnulacion = usuario
	m.FechaAnulacion = &fecha
	return nil
}

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	kardexRepo repository.KardexRepository,
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx := r.s.clone()
	if err := fn(&memKardexRepo{tx}, &memMovimientoRepo{tx}, &memProductoRepo{tx}); err != nil {
		return err
	}
	*r.s = *tx
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func producto(codigo string, existencia int) *entity.Producto {
	return &entity.Producto{
		ID:          codigo + "-id",
		Codigo:      codigo,
		Descripcion: "Producto " + codigo,
		Precio:      decimal.NewFromInt(10),
		Existencia:  existencia,
		Activo:      true,
	}
}

func buildEngine(productos ...*entity.Producto) (*kardex.BatchUseCase, *memStore) {
	store := newMemStore(productos...)
	uc := kardex.NewBatchUseCase(&fakeTxRunner{store}, &memProductoRepo{store})
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_CompraActualizaSaldosYKardex(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))

	result, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoCompra,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 5, TipoMovimiento: entity.MovimientoCompra}},
	})
	require.NoError(t, err)
	require.Len(t, result.Lineas, 1)
	assert.Equal(t, 10, result.Lineas[0].SaldoPrevio)
	assert.Equal(t, 15, result.Lineas[0].SaldoPosterior)

	assert.Equal(t, 15, store.productos["A"].Existencia)
	require.Len(t, store.kardex, 1)
	asiento := store.kardex[0]
	assert.Equal(t, result.MovimientoID, asiento.MovimientoID)
	assert.Equal(t, 5, asiento.Cantidad, "la cantidad de una entrada va positiva")
	assert.Equal(t, 10, asiento.SaldoPrevio)
	assert.Equal(t, 15, asiento.SaldoPosterior)
	assert.Equal(t, entity.EstadoActivo, asiento.Estado)
	assert.Equal(t, "Producto A", asiento.Producto.Descripcion, "el asiento congela el snapshot del producto")

	mov, ok := store.movimientos[result.MovimientoID]
	require.True(t, ok, "debe quedar la cabecera del lote")
	assert.Equal(t, []string{"A"}, mov.Productos)
	assert.Equal(t, entity.EstadoActivo, mov.Estado)
}

func TestApply_VentaDescuentaYFirmaNegativo(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))

	_, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoVenta,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 4, TipoMovimiento: entity.MovimientoVenta}},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, store.productos["A"].Existencia)
	assert.Equal(t, -4, store.kardex[0].Cantidad, "la cantidad de una salida va negativa en el asiento")
}

func TestApply_ProductoInexistenteAbortaLoteCompleto(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))

	_, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoCompra,
		Lineas: []kardex.LineaLote{
			{Codigo: "A", Cantidad: 5, TipoMovimiento: entity.MovimientoCompra},
			{Codigo: "NO-EXISTE", Cantidad: 1, TipoMovimiento: entity.MovimientoCompra},
		},
	})
	require.ErrorIs(t, err, domain.ErrProductoNotFound)
	assert.Contains(t, err.Error(), "NO-EXISTE", "el error debe nombrar el código ofensor")

	// Atomicidad: la línea válida tampoco se aplicó.
	assert.Equal(t, 10, store.productos["A"].Existencia)
	assert.Empty(t, store.kardex)
	assert.Empty(t, store.movimientos)
}

func TestApply_RecolectaTodasLasInsuficiencias(t *testing.T) {
	uc, store := buildEngine(producto("A", 2), producto("B", 100), producto("C", 0))

	_, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoVenta,
		Lineas: []kardex.LineaLote{
			{Codigo: "A", Cantidad: 5, TipoMovimiento: entity.MovimientoVenta},
			{Codigo: "B", Cantidad: 10, TipoMovimiento: entity.MovimientoVenta},
			{Codigo: "C", Cantidad: 1, TipoMovimiento: entity.MovimientoVenta},
		},
	})

	var insuficiente *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuficiente)
	require.Len(t, insuficiente.Lineas, 2, "deben reportarse todos los ofensores, no solo el primero")
	assert.Equal(t, "A", insuficiente.Lineas[0].Codigo)
	assert.Equal(t, 2, insuficiente.Lineas[0].Existencia)
	assert.Equal(t, 5, insuficiente.Lineas[0].Solicitado)
	assert.Equal(t, "C", insuficiente.Lineas[1].Codigo)

	// Ni siquiera la línea suficiente (B) se aplicó.
	assert.Equal(t, 100, store.productos["B"].Existencia)
	assert.Empty(t, store.kardex)
}

func TestApply_MismoProductoVariasLineas_SaldoCorre(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))

	result, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoVenta,
		Lineas: []kardex.LineaLote{
			{Codigo: "A", Cantidad: 6, TipoMovimiento: entity.MovimientoVenta},
			{Codigo: "A", Cantidad: 3, TipoMovimiento: entity.MovimientoVenta},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Lineas[0].SaldoPrevio)
	assert.Equal(t, 4, result.Lineas[0].SaldoPosterior)
	assert.Equal(t, 4, result.Lineas[1].SaldoPrevio, "la segunda línea parte del saldo que dejó la primera")
	assert.Equal(t, 1, result.Lineas[1].SaldoPosterior)
	assert.Equal(t, 1, store.productos["A"].Existencia)
}

func TestApply_MismoProductoVariasLineas_InsuficienciaAculumada(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))

	// Cada línea cabría sola, pero juntas exceden la existencia.
	_, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoVenta,
		Lineas: []kardex.LineaLote{
			{Codigo: "A", Cantidad: 7, TipoMovimiento: entity.MovimientoVenta},
			{Codigo: "A", Cantidad: 7, TipoMovimiento: entity.MovimientoVenta},
		},
	})
	var insuficiente *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuficiente)
	assert.Equal(t, 10, store.productos["A"].Existencia, "nada se aplica")
}

func TestApply_AjusteFijaValorAbsoluto(t *testing.T) {
	uc, store := buildEngine(producto("A", 37))

	result, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoAjuste,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 20, TipoMovimiento: entity.MovimientoAjuste}},
	})
	require.NoError(t, err)
	assert.Equal(t, 37, result.Lineas[0].SaldoPrevio)
	assert.Equal(t, 20, result.Lineas[0].SaldoPosterior)
	assert.Equal(t, 20, store.productos["A"].Existencia)
}

func TestApply_AjusteACeroEsValido(t *testing.T) {
	uc, store := buildEngine(producto("A", 5))

	_, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoAjuste,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 0, TipoMovimiento: entity.MovimientoAjuste}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.productos["A"].Existencia)
}

func TestApply_ValidacionesDeEntrada(t *testing.T) {
	uc, _ := buildEngine(producto("A", 10))
	ctx := context.Background()

	casos := []kardex.LoteInput{
		{Usuario: "maria", Tipo: entity.MovimientoCompra},                                                                                              // sin líneas
		{Tipo: entity.MovimientoCompra, Lineas: []kardex.LineaLote{{Codigo: "A", Cantidad: 1, TipoMovimiento: entity.MovimientoCompra}}},               // sin usuario
		{Usuario: "maria", Tipo: "prestamo", Lineas: []kardex.LineaLote{{Codigo: "A", Cantidad: 1, TipoMovimiento: "prestamo"}}},                       // tipo inválido
		{Usuario: "maria", Tipo: entity.MovimientoCompra, Lineas: []kardex.LineaLote{{Codigo: "A", Cantidad: 0, TipoMovimiento: entity.MovimientoCompra}}},  // cantidad cero
		{Usuario: "maria", Tipo: entity.MovimientoCompra, Lineas: []kardex.LineaLote{{Codigo: "A", Cantidad: -1, TipoMovimiento: entity.MovimientoCompra}}}, // cantidad negativa
		{Usuario: "maria", Tipo: entity.MovimientoAjuste, Lineas: []kardex.LineaLote{{Codigo: "A", Cantidad: -1, TipoMovimiento: entity.MovimientoAjuste}}}, // ajuste negativo
		{Usuario: "maria", Tipo: entity.MovimientoTransferencia, Lineas: []kardex.LineaLote{{Codigo: "A", Cantidad: -3, TipoMovimiento: entity.MovimientoTransferencia}}}, // transferencia sin contrapartida
	}
	for i, in := range casos {
		_, err := uc.Apply(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d debe rechazarse", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarTransaccion
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarTransaccion_Transferencia(t *testing.T) {
	uc, store := buildEngine(producto("ORIGEN", 10), producto("DESTINO", 1))

	result, err := uc.RegistrarTransaccion(context.Background(), kardex.TransaccionInput{
		TipoMovimiento: entity.MovimientoTransferencia,
		Usuario:        "maria",
		Productos: []kardex.ProductoTransaccion{
			{Codigo: "ORIGEN", Cantidad: 4},
			{Codigo: "DESTINO", Cantidad: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, store.productos["ORIGEN"].Existencia)
	assert.Equal(t, 5, store.productos["DESTINO"].Existencia)

	require.Len(t, result.Lineas, 2)
	assert.Equal(t, -4, store.kardex[0].Cantidad, "el asiento del origen va negativo")
	assert.Equal(t, 4, store.kardex[1].Cantidad, "el asiento del destino va positivo")
}

func TestRegistrarTransaccion_TransferenciaRequiereParExacto(t *testing.T) {
	uc, _ := buildEngine(producto("A", 10), producto("B", 1))
	ctx := context.Background()

	_, err := uc.RegistrarTransaccion(ctx, kardex.TransaccionInput{
		TipoMovimiento: entity.MovimientoTransferencia,
		Usuario:        "maria",
		Productos:      []kardex.ProductoTransaccion{{Codigo: "A", Cantidad: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una sola línea no es transferencia")

	_, err = uc.RegistrarTransaccion(ctx, kardex.TransaccionInput{
		TipoMovimiento: entity.MovimientoTransferencia,
		Usuario:        "maria",
		Productos: []kardex.ProductoTransaccion{
			{Codigo: "A", Cantidad: 4},
			{Codigo: "B", Cantidad: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidades distintas no netean cero")
}

func TestRegistrarTransaccion_TransferenciaSinStockEnOrigen(t *testing.T) {
	uc, store := buildEngine(producto("ORIGEN", 2), producto("DESTINO", 0))

	_, err := uc.RegistrarTransaccion(context.Background(), kardex.TransaccionInput{
		TipoMovimiento: entity.MovimientoTransferencia,
		Usuario:        "maria",
		Productos: []kardex.ProductoTransaccion{
			{Codigo: "ORIGEN", Cantidad: 5},
			{Codigo: "DESTINO", Cantidad: 5},
		},
	})
	var insuficiente *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuficiente)
	assert.Equal(t, 2, store.productos["ORIGEN"].Existencia)
	assert.Equal(t, 0, store.productos["DESTINO"].Existencia)
}

func TestRegistrarTransaccion_DescargoRecolectaInsuficiencias(t *testing.T) {
	uc, _ := buildEngine(producto("A", 1), producto("B", 0))

	_, err := uc.RegistrarTransaccion(context.Background(), kardex.TransaccionInput{
		TipoMovimiento: entity.MovimientoDescargo,
		Usuario:        "maria",
		Productos: []kardex.ProductoTransaccion{
			{Codigo: "A", Cantidad: 3},
			{Codigo: "B", Cantidad: 2},
		},
	})
	var insuficiente *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuficiente)
	assert.Len(t, insuficiente.Lineas, 2)
}

func TestRegistrarTransaccion_ProductoInexistente(t *testing.T) {
	uc, _ := buildEngine(producto("A", 10))

	_, err := uc.RegistrarTransaccion(context.Background(), kardex.TransaccionInput{
		TipoMovimiento: entity.MovimientoCompra,
		Usuario:        "maria",
		Productos:      []kardex.ProductoTransaccion{{Codigo: "GHOST", Cantidad: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductoNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Void
// ──────────────────────────────────────────────────────────────────────────────

func aplicarCompra(t *testing.T, uc *kardex.BatchUseCase, codigo string, cantidad int) *kardex.LoteResult {
	t.Helper()
	result, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoCompra,
		Lineas:  []kardex.LineaLote{{Codigo: codigo, Cantidad: cantidad, TipoMovimiento: entity.MovimientoCompra}},
	})
	require.NoError(t, err)
	return result
}

func TestVoid_RevierteYEscribeCompensacion(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))
	lote := aplicarCompra(t, uc, "A", 5) // 10 -> 15

	result, err := uc.Void(context.Background(), lote.MovimientoID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, 10, store.productos["A"].Existencia, "la existencia vuelve al valor previo")
	require.Len(t, result.Lineas, 1)
	assert.Equal(t, 15, result.Lineas[0].SaldoPrevio)
	assert.Equal(t, 10, result.Lineas[0].SaldoPosterior)

	// El asiento original queda anulado, no borrado.
	original := store.kardex[0]
	assert.Equal(t, entity.EstadoAnulado, original.Estado)
	assert.Equal(t, "jefe", original.UsuarioAnulacion)
	require.NotNil(t, original.FechaAnulacion)

	// El asiento de compensación vive en un lote nuevo con referencia al anulado.
	require.Len(t, store.kardex, 2)
	compensacion := store.kardex[1]
	assert.Equal(t, result.AnulacionID, compensacion.MovimientoID)
	assert.Equal(t, entity.MovimientoAnulacion, compensacion.TipoMovimiento)
	assert.Equal(t, -5, compensacion.Cantidad)
	assert.Equal(t, lote.MovimientoID, compensacion.DocumentoOrigen)
	assert.Equal(t, entity.EstadoActivo, compensacion.Estado)

	// Cabeceras: la original anulada, la de anulación con back-reference.
	assert.Equal(t, entity.EstadoAnulado, store.movimientos[lote.MovimientoID].Estado)
	anulacion := store.movimientos[result.AnulacionID]
	require.NotNil(t, anulacion)
	assert.Equal(t, lote.MovimientoID, anulacion.MovimientoAnulado)
}

func TestVoid_DobleAnulacionFalla(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))
	lote := aplicarCompra(t, uc, "A", 5)

	_, err := uc.Void(context.Background(), lote.MovimientoID, "jefe")
	require.NoError(t, err)
	existencia := store.productos["A"].Existencia

	_, err = uc.Void(context.Background(), lote.MovimientoID, "jefe")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.Equal(t, existencia, store.productos["A"].Existencia, "la segunda anulación no aplica nada")
}

func TestVoid_MovimientoInexistente(t *testing.T) {
	uc, _ := buildEngine(producto("A", 10))
	_, err := uc.Void(context.Background(), "no-existe", "jefe")
	assert.ErrorIs(t, err, domain.ErrMovimientoNotFound)
}

func TestVoid_AjusteRestauraSaldoPrevio(t *testing.T) {
	uc, store := buildEngine(producto("A", 37))

	lote, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoAjuste,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 20, TipoMovimiento: entity.MovimientoAjuste}},
	})
	require.NoError(t, err)
	require.Equal(t, 20, store.productos["A"].Existencia)

	_, err = uc.Void(context.Background(), lote.MovimientoID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, 37, store.productos["A"].Existencia,
		"anular un ajuste restaura el saldo previo del asiento, no recalcula")
}

func TestVoid_SalidaDevuelveStock(t *testing.T) {
	uc, store := buildEngine(producto("A", 10))

	lote, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoVenta,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 4, TipoMovimiento: entity.MovimientoVenta}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, store.productos["A"].Existencia)

	_, err = uc.Void(context.Background(), lote.MovimientoID, "jefe")
	require.NoError(t, err)
	assert.Equal(t, 10, store.productos["A"].Existencia)
}

func TestVoid_ReversionQueDejaNegativoFalla(t *testing.T) {
	uc, store := buildEngine(producto("A", 0))
	lote := aplicarCompra(t, uc, "A", 5) // 0 -> 5

	// Una venta posterior consume lo que entró; anular la compra dejaría -2.
	_, err := uc.Apply(context.Background(), kardex.LoteInput{
		Usuario: "maria",
		Tipo:    entity.MovimientoVenta,
		Lineas:  []kardex.LineaLote{{Codigo: "A", Cantidad: 3, TipoMovimiento: entity.MovimientoVenta}},
	})
	require.NoError(t, err)

	_, err = uc.Void(context.Background(), lote.MovimientoID, "jefe")
	var insuficiente *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuficiente)
	assert.Equal(t, 2, store.productos["A"].Existencia, "nada cambió")

	// Los asientos del lote siguen activos: la anulación falló completa.
	activos, _ := (&memKardexRepo{store}).ListByMovimiento(lote.MovimientoID, true)
	assert.Len(t, activos, 1)
}

func TestVoid_EntradaInvalida(t *testing.T) {
	uc, _ := buildEngine(producto("A", 10))
	ctx := context.Background()

	_, err := uc.Void(ctx, "", "jefe")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Void(ctx, "algo", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
