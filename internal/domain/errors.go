package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductoNotFound   = errors.New("producto no encontrado")
	ErrMovimientoNotFound = errors.New("no se encontraron movimientos activos para el id")
	ErrPedidoNotFound     = errors.New("pedido no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidPIN         = errors.New("pin de validación incorrecto")
	ErrAlreadyVoided      = errors.New("el movimiento ya está anulado")
	ErrAlreadyCancelled   = errors.New("el pedido ya está cancelado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// LineaInsuficiente describe una línea rechazada por falta de existencia.
type LineaInsuficiente struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion,omitempty"`
	Existencia  int    `json:"existencia"`
	Solicitado  int    `json:"solicitado"`
}

// InsufficientStockError agrupa todas las líneas con stock insuficiente de una
// operación. Se construye después de validar el lote completo: el caller recibe
// la lista entera de ofensores, no solo el primero.
type InsufficientStockError struct {
	Lineas []LineaInsuficiente
}

func (e *InsufficientStockError) Error() string {
	codigos := make([]string, len(e.Lineas))
	for i, l := range e.Lineas {
		codigos[i] = fmt.Sprintf("%s (disponible %d, solicitado %d)", l.Codigo, l.Existencia, l.Solicitado)
	}
	return "stock insuficiente: " + strings.Join(codigos, ", ")
}

// IncompleteVerificationError indica productos del pedido sin verificación de
// check picking (o con verificación incompleta). Bloquea check_picking → packing.
type IncompleteVerificationError struct {
	Codigos []string
}

func (e *IncompleteVerificationError) Error() string {
	return "verificación de check picking incompleta para: " + strings.Join(e.Codigos, ", ")
}
