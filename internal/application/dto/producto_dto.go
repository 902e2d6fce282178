package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// CreateProductoRequest alta de producto en el inventario maestro.
// Si vienen costo y utilidad, el precio se deriva: precio = costo / (1 - utilidad/100).
type CreateProductoRequest struct {
	Codigo      string           `json:"codigo"`
	Descripcion string           `json:"descripcion"`
	Laboratorio string           `json:"laboratorio"`
	Costo       decimal.Decimal  `json:"costo"`
	Utilidad    decimal.Decimal  `json:"utilidad"`
	Precio      *decimal.Decimal `json:"precio"`
	Existencia  int              `json:"existencia"`
	StockMinimo *int             `json:"stock_minimo"`
	StockMaximo *int             `json:"stock_maximo"`
}

// UpdateProductoRequest actualización parcial de la ficha; la existencia no se
// toca por acá (solo vía movimientos).
type UpdateProductoRequest struct {
	Descripcion *string          `json:"descripcion"`
	Laboratorio *string          `json:"laboratorio"`
	Costo       *decimal.Decimal `json:"costo"`
	Utilidad    *decimal.Decimal `json:"utilidad"`
	Precio      *decimal.Decimal `json:"precio"`
	StockMinimo *int             `json:"stock_minimo"`
	StockMaximo *int             `json:"stock_maximo"`
	Activo      *bool            `json:"activo"`
}

// ProductoResponse ficha de producto para la API.
type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Laboratorio string          `json:"laboratorio"`
	Costo       decimal.Decimal `json:"costo"`
	Utilidad    decimal.Decimal `json:"utilidad"`
	Precio      decimal.Decimal `json:"precio"`
	Existencia  int             `json:"existencia"`
	StockMinimo *int            `json:"stock_minimo,omitempty"`
	StockMaximo *int            `json:"stock_maximo,omitempty"`
	Activo      bool            `json:"activo"`
}

// FromProducto mapea la entidad al DTO de respuesta.
func FromProducto(p *entity.Producto) *ProductoResponse {
	return &ProductoResponse{
		ID:          p.ID,
		Codigo:      p.Codigo,
		Descripcion: p.Descripcion,
		Laboratorio: p.Laboratorio,
		Costo:       p.Costo,
		Utilidad:    p.Utilidad,
		Precio:      p.Precio,
		Existencia:  p.Existencia,
		StockMinimo: p.StockMinimo,
		StockMaximo: p.StockMaximo,
		Activo:      p.Activo,
	}
}
