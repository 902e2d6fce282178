package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

type productoRepoFake struct {
	productos map[string]*entity.Producto
}

func newProductoRepoFake() *productoRepoFake {
	return &productoRepoFake{productos: make(map[string]*entity.Producto)}
}

func (r *productoRepoFake) Create(p *entity.Producto) error {
	if _, ok := r.productos[p.Codigo]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.productos[p.Codigo] = &cp
	return nil
}

func (r *productoRepoFake) GetByCodigo(codigo string) (*entity.Producto, error) {
	p, ok := r.productos[codigo]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productoRepoFake) GetByCodigoForUpdate(codigo string) (*entity.Producto, error) {
	return r.GetByCodigo(codigo)
}

func (r *productoRepoFake) List(filtro string, soloActivos bool) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.productos {
		if soloActivos && !p.Activo {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *productoRepoFake) Update(p *entity.Producto) error {
	if _, ok := r.productos[p.Codigo]; !ok {
		return domain.ErrProductoNotFound
	}
	cp := *p
	r.productos[p.Codigo] = &cp
	return nil
}

func (r *productoRepoFake) UpdateExistencia(codigo string, existencia int) error {
	p, ok := r.productos[codigo]
	if !ok {
		return domain.ErrProductoNotFound
	}
	p.Existencia = existencia
	return nil
}

func (r *productoRepoFake) Desactivar(codigo string) error {
	p, ok := r.productos[codigo]
	if !ok {
		return domain.ErrProductoNotFound
	}
	p.Activo = false
	return nil
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestCreate_DerivaPrecioDeCostoYUtilidad(t *testing.T) {
	uc := usecase.NewProductoUseCase(newProductoRepoFake())

	out, err := uc.Create(dto.CreateProductoRequest{
		Codigo:      "ASP-500",
		Descripcion: "Aspirina 500mg",
		Costo:       dec("60"),
		Utilidad:    dec("40"),
		Existencia:  10,
	})
	require.NoError(t, err)
	// Margen sobre el precio de venta: 60 / (1 - 0.40) = 100.
	assert.True(t, out.Precio.Equal(dec("100")), "precio esperado 100, fue %s", out.Precio)
	assert.True(t, out.Activo)
}

func TestCreate_PrecioExplicitoSinCostoUtilidad(t *testing.T) {
	uc := usecase.NewProductoUseCase(newProductoRepoFake())

	precio := dec("12.50")
	out, err := uc.Create(dto.CreateProductoRequest{
		Codigo:      "GAS-01",
		Descripcion: "Gasa estéril",
		Precio:      &precio,
	})
	require.NoError(t, err)
	assert.True(t, out.Precio.Equal(precio))
}

func TestCreate_CodigoDuplicado(t *testing.T) {
	uc := usecase.NewProductoUseCase(newProductoRepoFake())

	_, err := uc.Create(dto.CreateProductoRequest{Codigo: "ASP-500", Descripcion: "Aspirina"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductoRequest{Codigo: "ASP-500", Descripcion: "Otra aspirina"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_ValidacionesDeEntrada(t *testing.T) {
	uc := usecase.NewProductoUseCase(newProductoRepoFake())

	casos := []dto.CreateProductoRequest{
		{Descripcion: "sin código"},
		{Codigo: "X"},                                        // sin descripción
		{Codigo: "X", Descripcion: "neg", Existencia: -1},    // existencia negativa
	}
	for i, in := range casos {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d debe rechazarse", i)
	}
}

func TestList_FiltroIgnoraAcentosYMayusculas(t *testing.T) {
	repo := newProductoRepoFake()
	uc := usecase.NewProductoUseCase(repo)

	for _, p := range []struct{ codigo, descripcion string }{
		{"JBE-01", "Jarabe para la tos"},
		{"ACE-01", "Acetaminofén 650mg"},
		{"IBU-01", "Ibuprofeno 400mg"},
	} {
		_, err := uc.Create(dto.CreateProductoRequest{Codigo: p.codigo, Descripcion: p.descripcion})
		require.NoError(t, err)
	}

	out, err := uc.List("ACETAMINOFEN", true)
	require.NoError(t, err)
	require.Len(t, out, 1, "la búsqueda sin tilde debe encontrar la descripción con tilde")
	assert.Equal(t, "ACE-01", out[0].Codigo)

	out, err = uc.List("ibu", true)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "IBU-01", out[0].Codigo)
}

func TestList_SoloActivosExcluyeDesactivados(t *testing.T) {
	repo := newProductoRepoFake()
	uc := usecase.NewProductoUseCase(repo)

	_, err := uc.Create(dto.CreateProductoRequest{Codigo: "A", Descripcion: "Activo"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductoRequest{Codigo: "B", Descripcion: "Baja"})
	require.NoError(t, err)
	require.NoError(t, uc.Desactivar("B"))

	out, err := uc.List("", true)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Codigo)

	out, err = uc.List("", false)
	require.NoError(t, err)
	assert.Len(t, out, 2, "incluir inactivos muestra la baja lógica")
}

func TestUpdate_RederivaPrecioAlCambiarCosto(t *testing.T) {
	repo := newProductoRepoFake()
	uc := usecase.NewProductoUseCase(repo)

	_, err := uc.Create(dto.CreateProductoRequest{
		Codigo: "ASP-500", Descripcion: "Aspirina", Costo: dec("60"), Utilidad: dec("40"),
	})
	require.NoError(t, err)

	nuevoCosto := dec("75")
	out, err := uc.Update("ASP-500", dto.UpdateProductoRequest{Costo: &nuevoCosto})
	require.NoError(t, err)
	// 75 / (1 - 0.40) = 125.
	assert.True(t, out.Precio.Equal(dec("125")), "precio esperado 125, fue %s", out.Precio)
}

func TestUpdate_NoTocaExistencia(t *testing.T) {
	repo := newProductoRepoFake()
	uc := usecase.NewProductoUseCase(repo)

	_, err := uc.Create(dto.CreateProductoRequest{Codigo: "A", Descripcion: "Producto", Existencia: 7})
	require.NoError(t, err)

	descripcion := "Producto renombrado"
	out, err := uc.Update("A", dto.UpdateProductoRequest{Descripcion: &descripcion})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Existencia, "la existencia solo la escribe el motor de kardex")
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc := usecase.NewProductoUseCase(newProductoRepoFake())
	d := "x"
	_, err := uc.Update("no-existe", dto.UpdateProductoRequest{Descripcion: &d})
	assert.ErrorIs(t, err, domain.ErrProductoNotFound)
}

func TestDesactivar_ConservaLaFicha(t *testing.T) {
	repo := newProductoRepoFake()
	uc := usecase.NewProductoUseCase(repo)

	_, err := uc.Create(dto.CreateProductoRequest{Codigo: "A", Descripcion: "Producto"})
	require.NoError(t, err)
	require.NoError(t, uc.Desactivar("A"))

	// La ficha sigue consultable por código, solo deja de listarse.
	out, err := uc.GetByCodigo("A")
	require.NoError(t, err)
	assert.False(t, out.Activo)

	assert.ErrorIs(t, uc.Desactivar("no-existe"), domain.ErrProductoNotFound)
}
