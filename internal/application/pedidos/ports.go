package pedidos

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de pedidos atado a esa tx. Cada transición es un
// read-modify-write atómico: la guarda se evalúa contra el mismo snapshot que
// se escribe de vuelta, para que dos transiciones concurrentes no puedan
// partir ambas del mismo estado.
type TxRunner interface {
	RunPedido(ctx context.Context, fn func(pedidoRepo repository.PedidoRepository) error) error
}
