package repository

import (
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// KardexRepository define el puerto de persistencia para asientos de kardex.
// Los asientos son append-mostly: solo mutan sus campos de anulación.
type KardexRepository interface {
	Create(entry *entity.KardexEntry) error
	ListByMovimiento(movimientoID string, soloActivos bool) ([]*entity.KardexEntry, error)
	ListByProducto(codigo string, desde, hasta *time.Time, limit, offset int) ([]*entity.KardexEntry, error)
	Anular(id, usuario string, fecha time.Time) error
}

// MovimientoRepository define el puerto de persistencia para lotes de
// movimientos (la unidad de atomicidad y de anulación del kardex).
type MovimientoRepository interface {
	Create(movimiento *entity.Movimiento) error
	GetByID(id string) (*entity.Movimiento, error)
	Anular(id, usuario string, fecha time.Time) error
}
