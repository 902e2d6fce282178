package kardex

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/inventario"
)

// ProductoTransaccion una línea de una transacción genérica de inventario.
type ProductoTransaccion struct {
	Codigo   string
	Cantidad int
}

// TransaccionInput entrada de la pasarela genérica de transacciones: un tipo
// de movimiento del vocabulario completo aplicado a una lista de productos.
// Para transferencia se esperan exactamente dos líneas (origen y destino) con
// la misma cantidad.
type TransaccionInput struct {
	TipoMovimiento  string
	Usuario         string
	Observaciones   string
	DocumentoOrigen string
	Productos       []ProductoTransaccion
}

// RegistrarTransaccion valida el pre-vuelo de la transacción completa
// (existencia de todos los códigos y suficiencia de stock para salidas, con la
// lista entera de ofensores) y aplica el lote. El chequeo autoritativo vuelve
// a correr dentro de la transacción con las filas bloqueadas; el pre-vuelo
// solo evita abrir una tx condenada.
func (uc *BatchUseCase) RegistrarTransaccion(ctx context.Context, input TransaccionInput) (*LoteResult, error) {
	if len(input.Productos) == 0 || input.Usuario == "" || !inventario.TipoValido(input.TipoMovimiento) {
		return nil, domain.ErrInvalidInput
	}
	if input.TipoMovimiento == entity.MovimientoTransferencia {
		if len(input.Productos) != 2 || input.Productos[0].Cantidad != input.Productos[1].Cantidad {
			return nil, domain.ErrInvalidInput
		}
	}

	var insuficientes []domain.LineaInsuficiente
	for _, p := range input.Productos {
		producto, err := uc.productoRepo.GetByCodigo(p.Codigo)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNotFound, p.Codigo)
		}
		if inventario.EsSalida(input.TipoMovimiento) {
			if ok, _ := inventario.ValidarStockSuficiente(producto.Existencia, p.Cantidad); !ok {
				insuficientes = append(insuficientes, domain.LineaInsuficiente{
					Codigo:      p.Codigo,
					Descripcion: producto.Descripcion,
					Existencia:  producto.Existencia,
					Solicitado:  p.Cantidad,
				})
			}
		}
	}
	if len(insuficientes) > 0 {
		return nil, &domain.InsufficientStockError{Lineas: insuficientes}
	}

	lineas := make([]LineaLote, len(input.Productos))
	for i, p := range input.Productos {
		cantidad := p.Cantidad
		if input.TipoMovimiento == entity.MovimientoTransferencia && i == 0 {
			cantidad = -cantidad // la primera línea es el origen
		}
		lineas[i] = LineaLote{Codigo: p.Codigo, Cantidad: cantidad, TipoMovimiento: input.TipoMovimiento}
	}
	return uc.Apply(ctx, LoteInput{
		Usuario:         input.Usuario,
		Tipo:            input.TipoMovimiento,
		Observaciones:   input.Observaciones,
		DocumentoOrigen: input.DocumentoOrigen,
		Lineas:          lineas,
	})
}
