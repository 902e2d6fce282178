package ventas

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de venta e inventario atados a esa tx. El registro de la venta,
// el descuento de existencias y los asientos de kardex se vuelven visibles
// juntos, o ninguno.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		kardexRepo repository.KardexRepository,
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}
