package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa una ficha del inventario maestro. La existencia se
// modifica únicamente a través del motor de kardex; los CRUD de catálogo no
// tocan el stock. Nunca se borra físicamente mientras tenga historial de
// kardex: se desactiva (Activo=false).
type Producto struct {
	ID          string
	Codigo      string
	Descripcion string
	Laboratorio string
	Costo       decimal.Decimal
	Utilidad    decimal.Decimal // margen % sobre el precio de venta
	Precio      decimal.Decimal
	Existencia  int // nunca negativa
	StockMinimo *int
	StockMaximo *int
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot copia los campos descriptivos del producto al momento de un
// movimiento, para dejarlos congelados en el kardex.
type ProductoSnapshot struct {
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Laboratorio string          `json:"laboratorio,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
}

// Snapshot devuelve la copia inmutable que se guarda en cada asiento de kardex.
func (p *Producto) Snapshot() ProductoSnapshot {
	return ProductoSnapshot{
		Codigo:      p.Codigo,
		Descripcion: p.Descripcion,
		Laboratorio: p.Laboratorio,
		Precio:      p.Precio,
	}
}
