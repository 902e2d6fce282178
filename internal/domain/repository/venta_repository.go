package repository

import (
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// VentaFiltro filtros opcionales para listar ventas.
type VentaFiltro struct {
	Desde      *time.Time
	Hasta      *time.Time
	Usuario    string
	ClienteRIF string
	Limit      int
}

// VentaRepository define el puerto de persistencia para ventas de punto de venta.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	List(filtro VentaFiltro) ([]*entity.Venta, error)
}
