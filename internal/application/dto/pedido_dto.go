package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// CrearPedidoRequest intake de un pedido.
type CrearPedidoRequest struct {
	Cliente     string               `json:"cliente"`
	RIF         string               `json:"rif"`
	Observacion string               `json:"observacion"`
	Productos   []entity.LineaPedido `json:"productos"`
}

// ActualizarEstadoRequest transición de estado de un pedido. Verificaciones
// solo aplica para check_picking → packing; chofer solo para el envío.
type ActualizarEstadoRequest struct {
	NuevoEstado    string                         `json:"nuevo_estado"`
	Chofer         string                         `json:"chofer"`
	Verificaciones map[string]entity.Verificacion `json:"verificaciones"`
}

// ValidacionPedidoRequest validación de un pedido con PIN.
type ValidacionPedidoRequest struct {
	PIN string `json:"pin"`
}

// CantidadesEncontradasRequest cantidades encontradas durante el picking, por
// código de producto.
type CantidadesEncontradasRequest struct {
	Cantidades map[string]int `json:"cantidades"`
}

// PedidoResponse un pedido para la API.
type PedidoResponse struct {
	ID          string               `json:"id"`
	Cliente     string               `json:"cliente"`
	RIF         string               `json:"rif"`
	Observacion string               `json:"observacion,omitempty"`
	Fecha       time.Time            `json:"fecha"`
	Productos   []entity.LineaPedido `json:"productos"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Total       decimal.Decimal      `json:"total"`
	Estado      string               `json:"estado"`

	Validado          bool       `json:"validado"`
	FechaValidacion   *time.Time `json:"fecha_validacion,omitempty"`
	UsuarioValidacion string     `json:"usuario_validacion,omitempty"`

	FechaCancelacion   *time.Time `json:"fecha_cancelacion,omitempty"`
	UsuarioCancelacion string     `json:"usuario_cancelacion,omitempty"`

	Verificaciones      map[string]entity.Verificacion `json:"verificaciones_check_picking,omitempty"`
	EstadoCheckPicking  string                         `json:"estado_check_picking"`
	FechaCheckPicking   *time.Time                     `json:"fecha_check_picking,omitempty"`
	UsuarioCheckPicking string                         `json:"usuario_check_picking,omitempty"`

	Picking     entity.EtapaInfo `json:"picking"`
	Packing     entity.EtapaInfo `json:"packing"`
	Envio       entity.EtapaInfo `json:"envio"`
	Facturacion entity.EtapaInfo `json:"facturacion"`
}

// FromPedido mapea la entidad al DTO de respuesta.
func FromPedido(p *entity.Pedido) *PedidoResponse {
	return &PedidoResponse{
		ID:                  p.ID,
		Cliente:             p.Cliente,
		RIF:                 p.RIF,
		Observacion:         p.Observacion,
		Fecha:               p.Fecha,
		Productos:           p.Productos,
		Subtotal:            p.Subtotal,
		Total:               p.Total,
		Estado:              p.Estado,
		Validado:            p.Validado,
		FechaValidacion:     p.FechaValidacion,
		UsuarioValidacion:   p.UsuarioValidacion,
		FechaCancelacion:    p.FechaCancelacion,
		UsuarioCancelacion:  p.UsuarioCancelacion,
		Verificaciones:      p.Verificaciones,
		EstadoCheckPicking:  p.EstadoCheckPicking,
		FechaCheckPicking:   p.FechaCheckPicking,
		UsuarioCheckPicking: p.UsuarioCheckPicking,
		Picking:             p.Picking,
		Packing:             p.Packing,
		Envio:               p.Envio,
		Facturacion:         p.Facturacion,
	}
}

// FromPedidos mapea una lista de pedidos.
func FromPedidos(pedidos []*entity.Pedido) []*PedidoResponse {
	out := make([]*PedidoResponse, len(pedidos))
	for i, p := range pedidos {
		out[i] = FromPedido(p)
	}
	return out
}
