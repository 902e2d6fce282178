package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/ventas"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// ProductoVentaRequest una línea del carrito de punto de venta.
type ProductoVentaRequest struct {
	Codigo         string          `json:"codigo"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
}

// VentaRequest registro de una venta de punto de venta.
type VentaRequest struct {
	ClienteRIF    string                 `json:"cliente_rif"`
	ClienteNombre string                 `json:"cliente_nombre"`
	MetodoPago    string                 `json:"metodo_pago"`
	Observaciones string                 `json:"observaciones"`
	Productos     []ProductoVentaRequest `json:"productos"`
}

// VentaRegistradaResponse confirmación de una venta registrada.
type VentaRegistradaResponse struct {
	VentaID      string                   `json:"venta_id"`
	MovimientoID string                   `json:"movimiento_id"`
	Fecha        time.Time                `json:"fecha"`
	Total        decimal.Decimal          `json:"total"`
	Productos    []LineaResultadoResponse `json:"productos_procesados"`
}

// VentaResponse una venta para la API.
type VentaResponse struct {
	ID            string              `json:"id"`
	Fecha         time.Time           `json:"fecha"`
	Usuario       string              `json:"usuario"`
	ClienteRIF    string              `json:"cliente_rif,omitempty"`
	ClienteNombre string              `json:"cliente_nombre,omitempty"`
	Productos     []entity.LineaVenta `json:"productos"`
	Total         decimal.Decimal     `json:"total"`
	MetodoPago    string              `json:"metodo_pago"`
	Observaciones string              `json:"observaciones,omitempty"`
	Estado        string              `json:"estado"`
	MovimientoID  string              `json:"movimiento_id"`
}

// FromVentaResult mapea la confirmación de una venta.
func FromVentaResult(r *ventas.VentaResult) *VentaRegistradaResponse {
	return &VentaRegistradaResponse{
		VentaID:      r.VentaID,
		MovimientoID: r.MovimientoID,
		Fecha:        r.Fecha,
		Total:        r.Total,
		Productos:    lineasResultado(r.Lineas),
	}
}

// FromVenta mapea una venta persistida.
func FromVenta(v *entity.Venta) *VentaResponse {
	return &VentaResponse{
		ID:            v.ID,
		Fecha:         v.Fecha,
		Usuario:       v.Usuario,
		ClienteRIF:    v.ClienteRIF,
		ClienteNombre: v.ClienteNombre,
		Productos:     v.Productos,
		Total:         v.Total,
		MetodoPago:    v.MetodoPago,
		Observaciones: v.Observaciones,
		Estado:        v.Estado,
		MovimientoID:  v.MovimientoID,
	}
}
