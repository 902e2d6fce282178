package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de kardex y su efecto sobre la existencia.
const (
	MovimientoCompra        = "compra"        // entrada
	MovimientoCargo         = "cargo"         // entrada
	MovimientoDevolucion    = "devolucion"    // entrada
	MovimientoVenta         = "venta"         // salida
	MovimientoDescargo      = "descargo"      // salida
	MovimientoPedido        = "pedido"        // salida (débito por pedido)
	MovimientoApartado      = "apartado"      // salida (reserva)
	MovimientoAjuste        = "ajuste"        // fija la existencia en un valor absoluto
	MovimientoTransferencia = "transferencia" // par salida/entrada, neto cero
	MovimientoAnulacion     = "anulacion"     // lote de compensación
)

// Estados de un asiento o lote de kardex.
const (
	EstadoActivo  = "activo"
	EstadoAnulado = "anulado"
)

// KardexEntry es un asiento del kardex: un renglón por (producto, operación).
// Inmutable una vez escrito salvo los campos de anulación; una reversión nunca
// edita el asiento original, escribe asientos de compensación en un lote nuevo.
type KardexEntry struct {
	ID             string
	MovimientoID   string // lote al que pertenece
	Fecha          time.Time
	Usuario        string
	TipoMovimiento string
	Producto       ProductoSnapshot
	Cantidad       int // con signo: positivo entrada, negativo salida; para ajuste, el valor fijado
	Precio         decimal.Decimal
	SaldoPrevio    int
	SaldoPosterior int
	DocumentoOrigen string // id de venta / transacción / pedido que originó el asiento
	Estado          string
	UsuarioAnulacion string
	FechaAnulacion   *time.Time
}

// Movimiento agrupa los asientos de kardex producidos por una operación lógica
// (una venta, una transacción). Es la unidad de atomicidad y de anulación.
type Movimiento struct {
	ID                string
	Fecha             time.Time
	Usuario           string
	Tipo              string
	Observaciones     string
	Productos         []string // códigos afectados
	Estado            string
	MovimientoAnulado string // para lotes de anulación: id del lote revertido
	UsuarioAnulacion  string
	FechaAnulacion    *time.Time
}
