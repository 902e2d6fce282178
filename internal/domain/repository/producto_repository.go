package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// ProductoRepository define el puerto de persistencia del inventario maestro.
// La existencia solo se escribe dentro de transacciones del motor de kardex.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByCodigo(codigo string) (*entity.Producto, error)
	// GetByCodigoForUpdate bloquea la fila para update (SELECT FOR UPDATE);
	// usar dentro de una transacción para cerrar la brecha check-then-act.
	GetByCodigoForUpdate(codigo string) (*entity.Producto, error)
	List(filtro string, soloActivos bool) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	UpdateExistencia(codigo string, existencia int) error
	Desactivar(codigo string) error
}
