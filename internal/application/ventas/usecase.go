package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/kardex"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/inventario"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// RegisterSaleUseCase registra ventas de punto de venta descontando el
// inventario en una sola transacción, con el kardex como registro de cada
// descuento.
type RegisterSaleUseCase struct {
	txRunner     TxRunner
	kardexUC     *kardex.BatchUseCase
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaRepository
}

// NewRegisterSaleUseCase construye el caso de uso.
func NewRegisterSaleUseCase(
	txRunner TxRunner,
	kardexUC *kardex.BatchUseCase,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{
		txRunner:     txRunner,
		kardexUC:     kardexUC,
		productoRepo: productoRepo,
		ventaRepo:    ventaRepo,
	}
}

// LineaVentaInput una línea del carrito de punto de venta.
type LineaVentaInput struct {
	Codigo         string
	Cantidad       int
	PrecioUnitario decimal.Decimal // cero = usar el precio de lista del producto
	Descuento      decimal.Decimal
}

// VentaInput entrada para registrar una venta.
type VentaInput struct {
	Usuario       string
	ClienteRIF    string
	ClienteNombre string
	MetodoPago    string
	Observaciones string
	Productos     []LineaVentaInput
}

// VentaResult resultado de una venta registrada.
type VentaResult struct {
	VentaID      string
	MovimientoID string
	Fecha        time.Time
	Total        decimal.Decimal
	Lineas       []kardex.LineaResultado
}

// RegisterSale valida el stock de todas las líneas antes de procesar nada
// (recolectando todas las insuficiencias, no solo la primera) y luego persiste
// la venta, descuenta existencias y escribe el kardex en una transacción.
// Ninguna venta parcial queda registrada jamás.
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, input VentaInput) (*VentaResult, error) {
	if len(input.Productos) == 0 || input.Usuario == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range input.Productos {
		if l.Codigo == "" || l.Cantidad <= 0 || l.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Pre-vuelo: resolver todos los productos y validar suficiencia completa.
	productos := make(map[string]*entity.Producto, len(input.Productos))
	var insuficientes []domain.LineaInsuficiente
	for _, l := range input.Productos {
		producto, err := uc.productoRepo.GetByCodigo(l.Codigo)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNotFound, l.Codigo)
		}
		productos[l.Codigo] = producto
		if ok, _ := inventario.ValidarStockSuficiente(producto.Existencia, l.Cantidad); !ok {
			insuficientes = append(insuficientes, domain.LineaInsuficiente{
				Codigo:      l.Codigo,
				Descripcion: producto.Descripcion,
				Existencia:  producto.Existencia,
				Solicitado:  l.Cantidad,
			})
		}
	}
	if len(insuficientes) > 0 {
		return nil, &domain.InsufficientStockError{Lineas: insuficientes}
	}

	now := time.Now()
	ventaID := uuid.New().String()
	movimientoID := uuid.New().String()

	lineasVenta := make([]entity.LineaVenta, len(input.Productos))
	lineasLote := make([]kardex.LineaLote, len(input.Productos))
	total := decimal.Zero
	for i, l := range input.Productos {
		producto := productos[l.Codigo]
		precio := l.PrecioUnitario
		if precio.IsZero() {
			precio = producto.Precio
		}
		subtotal := precio.Mul(decimal.NewFromInt(int64(l.Cantidad))).Sub(l.Descuento)
		total = total.Add(subtotal)
		lineasVenta[i] = entity.LineaVenta{
			Codigo:         l.Codigo,
			Descripcion:    producto.Descripcion,
			Cantidad:       l.Cantidad,
			PrecioUnitario: precio,
			Descuento:      l.Descuento,
			Subtotal:       subtotal,
		}
		lineasLote[i] = kardex.LineaLote{Codigo: l.Codigo, Cantidad: l.Cantidad, TipoMovimiento: entity.MovimientoVenta}
	}

	venta := &entity.Venta{
		ID:            ventaID,
		Fecha:         now,
		Usuario:       input.Usuario,
		ClienteRIF:    input.ClienteRIF,
		ClienteNombre: input.ClienteNombre,
		Productos:     lineasVenta,
		Total:         total,
		MetodoPago:    input.MetodoPago,
		Observaciones: input.Observaciones,
		Estado:        "completada",
		MovimientoID:  movimientoID,
	}

	result := &VentaResult{VentaID: ventaID, MovimientoID: movimientoID, Fecha: now, Total: total}
	err := uc.txRunner.RunVenta(ctx, func(
		kardexRepo repository.KardexRepository,
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error {
		// El chequeo autoritativo corre aquí adentro con las filas bloqueadas;
		// si otro writer consumió stock entre el pre-vuelo y este punto, el
		// motor rechaza y la venta completa se revierte.
		lineas, err := uc.kardexUC.ApplyInTx(kardexRepo, movRepo, productoRepo, movimientoID, kardex.LoteInput{
			Usuario:         input.Usuario,
			Tipo:            entity.MovimientoVenta,
			Observaciones:   input.Observaciones,
			DocumentoOrigen: ventaID,
			Lineas:          lineasLote,
		}, now)
		if err != nil {
			return err
		}
		result.Lineas = lineas
		return ventaRepo.Create(venta)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID obtiene una venta por su id.
func (uc *RegisterSaleUseCase) GetByID(id string) (*entity.Venta, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	return venta, nil
}

// List lista ventas con filtros opcionales de fecha, usuario y cliente.
func (uc *RegisterSaleUseCase) List(filtro repository.VentaFiltro) ([]*entity.Venta, error) {
	if filtro.Limit <= 0 || filtro.Limit > 100 {
		filtro.Limit = 100
	}
	return uc.ventaRepo.List(filtro)
}
