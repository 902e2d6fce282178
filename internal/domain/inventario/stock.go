package inventario

import (
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// EsEntrada indica si el tipo de movimiento aumenta la existencia.
func EsEntrada(tipo string) bool {
	switch tipo {
	case entity.MovimientoCompra, entity.MovimientoCargo, entity.MovimientoDevolucion:
		return true
	}
	return false
}

// EsSalida indica si el tipo de movimiento disminuye la existencia.
func EsSalida(tipo string) bool {
	switch tipo {
	case entity.MovimientoVenta, entity.MovimientoDescargo, entity.MovimientoPedido, entity.MovimientoApartado:
		return true
	}
	return false
}

// TipoValido indica si el tipo pertenece al vocabulario de movimientos que el
// motor de kardex sabe aplicar. La transferencia se modela como par
// salida/entrada construido por el caller, no como tipo directo del motor.
func TipoValido(tipo string) bool {
	return EsEntrada(tipo) || EsSalida(tipo) || tipo == entity.MovimientoAjuste || tipo == entity.MovimientoTransferencia
}

// NuevoSaldo calcula el saldo posterior de una línea de movimiento.
// Para ajuste la cantidad es un valor absoluto: fija la existencia, no la
// desplaza. Para transferencia la cantidad viene firmada por el caller
// (negativa en el origen, positiva en el destino). El rechazo de saldos
// negativos es responsabilidad del motor, que valida el resultado; aquí solo
// se calcula.
func NuevoSaldo(saldoPrevio, cantidad int, tipo string) (int, error) {
	switch {
	case tipo == entity.MovimientoAjuste:
		return cantidad, nil
	case tipo == entity.MovimientoTransferencia:
		return saldoPrevio + cantidad, nil
	case EsEntrada(tipo):
		return saldoPrevio + cantidad, nil
	case EsSalida(tipo):
		return saldoPrevio - cantidad, nil
	}
	return 0, fmt.Errorf("tipo de movimiento desconocido: %q", tipo)
}

// CantidadFirmada devuelve la cantidad con el signo que le corresponde en el
// asiento de kardex: positiva para entradas, negativa para salidas. El ajuste
// conserva el valor absoluto fijado y la transferencia el signo del caller.
func CantidadFirmada(tipo string, cantidad int) int {
	if EsSalida(tipo) {
		return -cantidad
	}
	return cantidad
}

// ValidarStockSuficiente valida una salida contra la existencia actual.
// Devuelve false y el motivo cuando la cantidad no es válida o no alcanza.
func ValidarStockSuficiente(existencia, solicitada int) (bool, string) {
	if solicitada <= 0 {
		return false, "la cantidad solicitada debe ser mayor a cero"
	}
	if existencia < solicitada {
		return false, fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", existencia, solicitada)
	}
	return true, ""
}
