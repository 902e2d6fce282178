package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido. El flujo normal avanza en este orden;
// cancelado es alcanzable desde cualquier estado no terminal y entregado es
// terminal absoluto.
const (
	PedidoNuevo         = "nuevo"
	PedidoPicking       = "picking"
	PedidoCheckPicking  = "check_picking"
	PedidoPacking       = "packing"
	PedidoParaFacturar  = "para_facturar"
	PedidoFacturando    = "facturando"
	PedidoEnviado       = "enviado"
	PedidoEntregado     = "entregado"
	PedidoCancelado     = "cancelado"
)

// Sub-estados del proceso de check picking.
const (
	CheckPickingPendiente  = "pendiente"
	CheckPickingEnProceso  = "en_proceso"
	CheckPickingCompletado = "completado"
)

// Condiciones admitidas en una verificación de check picking.
const (
	CondicionBueno   = "bueno"
	CondicionVencido = "vencido"
	CondicionDanado  = "dañado"
)

// LineaPedido una línea de pedido: lo solicitado por el cliente y lo que el
// almacenista encontró durante el picking.
type LineaPedido struct {
	Codigo             string          `json:"codigo"`
	Descripcion        string          `json:"descripcion"`
	Precio             decimal.Decimal `json:"precio"`
	Descuento1         decimal.Decimal `json:"descuento1"`
	Descuento2         decimal.Decimal `json:"descuento2"`
	Descuento3         decimal.Decimal `json:"descuento3"`
	CantidadPedida     int             `json:"cantidad_pedida"`
	CantidadEncontrada int             `json:"cantidad_encontrada"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// Verificacion registro de check picking de una línea: cantidad contada,
// vencimiento y condición física antes de pasar a packing.
type Verificacion struct {
	CantidadVerificada int    `json:"cantidad_verificada"`
	FechaVencimiento   string `json:"fecha_vencimiento"`
	Condicion          string `json:"condicion"` // bueno, vencido, dañado
	Observaciones      string `json:"observaciones,omitempty"`
}

// EtapaInfo auditoría de una etapa del pipeline (picking, packing, envío,
// facturación): quién la trabajó y cuándo.
type EtapaInfo struct {
	Usuario     string     `json:"usuario,omitempty"`
	Estado      string     `json:"estado,omitempty"`
	FechaInicio *time.Time `json:"fecha_inicio,omitempty"`
	FechaFin    *time.Time `json:"fecha_fin,omitempty"`
	Chofer      string     `json:"chofer,omitempty"` // solo envío
}

// Pedido documento de pedido con su máquina de estados de despacho.
// El avance del pedido y el kardex son ejes independientes: una transición de
// estado no mueve stock; el débito de existencias ocurre solo por las
// operaciones explícitas de venta/transacción.
type Pedido struct {
	ID          string
	Cliente     string
	RIF         string
	Observacion string
	Fecha       time.Time
	Productos   []LineaPedido
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	Estado      string

	Validado          bool
	FechaValidacion   *time.Time
	UsuarioValidacion string

	FechaCancelacion   *time.Time
	UsuarioCancelacion string

	Verificaciones     map[string]Verificacion // por código de producto
	EstadoCheckPicking string
	FechaCheckPicking  *time.Time
	UsuarioCheckPicking string

	Picking     EtapaInfo
	Packing     EtapaInfo
	Envio       EtapaInfo
	Facturacion EtapaInfo
}

// EsTerminal indica si el estado no admite ninguna transición posterior.
func (p *Pedido) EsTerminal() bool {
	return p.Estado == PedidoEntregado || p.Estado == PedidoCancelado
}
