package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/kardex"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// ProductoTransaccionRequest una línea de una transacción de inventario.
type ProductoTransaccionRequest struct {
	Codigo   string `json:"producto_codigo"`
	Cantidad int    `json:"cantidad"`
}

// TransaccionRequest registro de una transacción genérica de inventario.
type TransaccionRequest struct {
	TipoMovimiento  string                       `json:"tipo_movimiento"`
	Observaciones   string                       `json:"observaciones"`
	DocumentoOrigen string                       `json:"documento_origen"`
	Productos       []ProductoTransaccionRequest `json:"productos"`
}

// AnularTransaccionRequest anulación de un lote de movimientos.
type AnularTransaccionRequest struct {
	MovimientoID string `json:"movimiento_id"`
}

// LineaResultadoResponse saldos previo y posterior de una línea aplicada.
type LineaResultadoResponse struct {
	Codigo         string `json:"codigo"`
	SaldoPrevio    int    `json:"saldo_previo"`
	SaldoPosterior int    `json:"saldo_posterior"`
}

// LoteResponse resultado de aplicar un lote de movimientos.
type LoteResponse struct {
	MovimientoID string                   `json:"movimiento_id"`
	Resultados   []LineaResultadoResponse `json:"resultados"`
}

// AnulacionResponse resultado de anular un lote.
type AnulacionResponse struct {
	MovimientoID string                   `json:"movimiento_id"`
	AnulacionID  string                   `json:"anulacion_id"`
	Resultados   []LineaResultadoResponse `json:"resultados"`
}

// KardexEntryResponse un asiento de kardex para la API.
type KardexEntryResponse struct {
	ID              string          `json:"id"`
	MovimientoID    string          `json:"movimiento_id"`
	Fecha           time.Time       `json:"fecha"`
	Usuario         string          `json:"usuario"`
	TipoMovimiento  string          `json:"tipo_movimiento"`
	Codigo          string          `json:"codigo"`
	Descripcion     string          `json:"descripcion"`
	Cantidad        int             `json:"cantidad"`
	Precio          decimal.Decimal `json:"precio"`
	SaldoPrevio     int             `json:"saldo_previo"`
	SaldoPosterior  int             `json:"saldo_posterior"`
	DocumentoOrigen string          `json:"documento_origen,omitempty"`
	Estado          string          `json:"estado"`
}

func lineasResultado(lineas []kardex.LineaResultado) []LineaResultadoResponse {
	out := make([]LineaResultadoResponse, len(lineas))
	for i, l := range lineas {
		out[i] = LineaResultadoResponse{Codigo: l.Codigo, SaldoPrevio: l.SaldoPrevio, SaldoPosterior: l.SaldoPosterior}
	}
	return out
}

// FromLote mapea el resultado de un lote aplicado.
func FromLote(r *kardex.LoteResult) *LoteResponse {
	return &LoteResponse{MovimientoID: r.MovimientoID, Resultados: lineasResultado(r.Lineas)}
}

// FromAnulacion mapea el resultado de una anulación.
func FromAnulacion(r *kardex.VoidResult) *AnulacionResponse {
	return &AnulacionResponse{MovimientoID: r.MovimientoID, AnulacionID: r.AnulacionID, Resultados: lineasResultado(r.Lineas)}
}

// FromKardexEntry mapea un asiento de kardex.
func FromKardexEntry(e *entity.KardexEntry) *KardexEntryResponse {
	return &KardexEntryResponse{
		ID:              e.ID,
		MovimientoID:    e.MovimientoID,
		Fecha:           e.Fecha,
		Usuario:         e.Usuario,
		TipoMovimiento:  e.TipoMovimiento,
		Codigo:          e.Producto.Codigo,
		Descripcion:     e.Producto.Descripcion,
		Cantidad:        e.Cantidad,
		Precio:          e.Precio,
		SaldoPrevio:     e.SaldoPrevio,
		SaldoPosterior:  e.SaldoPosterior,
		DocumentoOrigen: e.DocumentoOrigen,
		Estado:          e.Estado,
	}
}
