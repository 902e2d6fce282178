package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaVenta una línea de una venta de punto de venta.
type LineaVenta struct {
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Venta registro de una venta de punto de venta. Se persiste en la misma
// transacción que descuenta existencias y escribe el kardex.
type Venta struct {
	ID            string
	Fecha         time.Time
	Usuario       string
	ClienteRIF    string
	ClienteNombre string
	Productos     []LineaVenta
	Total         decimal.Decimal
	MetodoPago    string
	Observaciones string
	Estado        string
	MovimientoID  string // lote de kardex generado por la venta
}
