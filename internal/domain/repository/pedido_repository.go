package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// PedidoRepository define el puerto de persistencia para pedidos.
type PedidoRepository interface {
	Create(pedido *entity.Pedido) error
	GetByID(id string) (*entity.Pedido, error)
	// GetByIDForUpdate bloquea la fila del pedido (SELECT FOR UPDATE); las
	// transiciones evalúan su guarda y escriben contra ese mismo snapshot.
	GetByIDForUpdate(id string) (*entity.Pedido, error)
	Update(pedido *entity.Pedido) error
	ListByEstados(estados []string) ([]*entity.Pedido, error)
	ListByCliente(rif string) ([]*entity.Pedido, error)
	// ListNuevosPorValidacion lista pedidos en estado nuevo según su bandera
	// validado: false = cola de administración, true = cola de picking.
	ListNuevosPorValidacion(validado bool) ([]*entity.Pedido, error)
}
