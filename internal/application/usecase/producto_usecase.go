package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/inventario"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductoUseCase casos de uso CRUD del inventario maestro. La existencia no
// se edita por acá: solo el motor de kardex la escribe.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create da de alta un producto. Si vienen costo y utilidad, el precio se
// deriva de ellos; un precio explícito solo se respeta cuando falta alguno de
// los dos.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Descripcion == "" || in.Existencia < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCodigo(in.Codigo)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	precio := decimal.Zero
	if in.Precio != nil {
		precio = *in.Precio
	}
	if in.Costo.GreaterThan(decimal.Zero) && in.Utilidad.GreaterThan(decimal.Zero) {
		precio = inventario.PrecioConUtilidad(in.Costo, in.Utilidad)
	}
	if precio.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	producto := &entity.Producto{
		ID:          uuid.New().String(),
		Codigo:      in.Codigo,
		Descripcion: in.Descripcion,
		Laboratorio: in.Laboratorio,
		Costo:       in.Costo,
		Utilidad:    in.Utilidad,
		Precio:      precio,
		Existencia:  in.Existencia,
		StockMinimo: in.StockMinimo,
		StockMaximo: in.StockMaximo,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return dto.FromProducto(producto), nil
}

// GetByCodigo obtiene una ficha por código.
func (uc *ProductoUseCase) GetByCodigo(codigo string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNotFound
	}
	return dto.FromProducto(producto), nil
}

// List lista el catálogo. El filtro busca por código y descripción ignorando
// acentos y mayúsculas (el catálogo viene en español, con tildes inconsistentes
// según quién cargó el archivo).
func (uc *ProductoUseCase) List(filtro string, soloActivos bool) ([]*dto.ProductoResponse, error) {
	productos, err := uc.repo.List("", soloActivos)
	if err != nil {
		return nil, err
	}
	needle := normalizar(filtro)
	out := make([]*dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		if needle != "" &&
			!strings.Contains(normalizar(p.Descripcion), needle) &&
			!strings.Contains(normalizar(p.Codigo), needle) {
			continue
		}
		out = append(out, dto.FromProducto(p))
	}
	return out, nil
}

// Update actualiza la ficha. Si cambian costo o utilidad y ambos quedan
// definidos, el precio se rederiva; la existencia jamás se toca por acá.
func (uc *ProductoUseCase) Update(codigo string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNotFound
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Laboratorio != nil {
		producto.Laboratorio = *in.Laboratorio
	}
	rederivar := false
	if in.Costo != nil {
		producto.Costo = *in.Costo
		rederivar = true
	}
	if in.Utilidad != nil {
		producto.Utilidad = *in.Utilidad
		rederivar = true
	}
	if rederivar && producto.Costo.GreaterThan(decimal.Zero) && producto.Utilidad.GreaterThan(decimal.Zero) {
		producto.Precio = inventario.PrecioConUtilidad(producto.Costo, producto.Utilidad)
	} else if in.Precio != nil {
		producto.Precio = *in.Precio
	}
	if in.StockMinimo != nil {
		producto.StockMinimo = in.StockMinimo
	}
	if in.StockMaximo != nil {
		producto.StockMaximo = in.StockMaximo
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return dto.FromProducto(producto), nil
}

// Desactivar baja lógica: el producto deja de listarse pero conserva su
// historial de kardex. Nunca hay borrado físico.
func (uc *ProductoUseCase) Desactivar(codigo string) error {
	producto, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrProductoNotFound
	}
	return uc.repo.Desactivar(codigo)
}

var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizar baja a minúsculas y quita marcas diacríticas para comparar texto
// de catálogo en español.
func normalizar(s string) string {
	limpio, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		limpio = s
	}
	return strings.ToLower(strings.TrimSpace(limpio))
}
