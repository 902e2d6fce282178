package pedidos

import (
	"context"
	"crypto/subtle"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// transiciones tabla de transiciones legales del pipeline de despacho.
// cancelado no aparece: es alcanzable desde cualquier estado no terminal y se
// trata aparte. El avance de un pedido nunca mueve stock; el kardex es un eje
// independiente reconciliado por proceso de negocio fuera de este módulo.
var transiciones = map[string]string{
	entity.PedidoNuevo:        entity.PedidoPicking,
	entity.PedidoPicking:      entity.PedidoCheckPicking,
	entity.PedidoCheckPicking: entity.PedidoPacking,
	entity.PedidoPacking:      entity.PedidoParaFacturar,
	entity.PedidoParaFacturar: entity.PedidoFacturando,
	entity.PedidoFacturando:   entity.PedidoEnviado,
	entity.PedidoEnviado:      entity.PedidoEntregado,
}

// PedidoUseCase máquina de estados de pedidos: intake, validación con PIN,
// transiciones guardadas por etapa y cancelación con auditoría.
type PedidoUseCase struct {
	txRunner      TxRunner
	pedidoRepo    repository.PedidoRepository
	pinValidacion string
}

// NewPedidoUseCase construye el caso de uso. El PIN de validación viene de la
// configuración, no de una constante.
func NewPedidoUseCase(txRunner TxRunner, pedidoRepo repository.PedidoRepository, pinValidacion string) *PedidoUseCase {
	return &PedidoUseCase{txRunner: txRunner, pedidoRepo: pedidoRepo, pinValidacion: pinValidacion}
}

// CrearPedidoInput entrada para registrar un pedido.
type CrearPedidoInput struct {
	Cliente     string
	RIF         string
	Observacion string
	Productos   []entity.LineaPedido
}

// TransitionPayload datos de apoyo de una transición: quién la ejecuta y, según
// la etapa, el chofer del envío o las verificaciones de check picking.
type TransitionPayload struct {
	Usuario        string
	Chofer         string
	Verificaciones map[string]entity.Verificacion
}

// Create registra un pedido en estado nuevo, sin validar y con el check
// picking pendiente. Subtotal y total se calculan de las líneas.
func (uc *PedidoUseCase) Create(input CrearPedidoInput) (*entity.Pedido, error) {
	if input.Cliente == "" || input.RIF == "" || len(input.Productos) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range input.Productos {
		if l.Codigo == "" || l.CantidadPedida <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	subtotal := decimal.Zero
	for _, l := range input.Productos {
		subtotal = subtotal.Add(l.Subtotal)
	}
	pedido := &entity.Pedido{
		ID:                 uuid.New().String(),
		Cliente:            input.Cliente,
		RIF:                input.RIF,
		Observacion:        input.Observacion,
		Fecha:              time.Now(),
		Productos:          input.Productos,
		Subtotal:           subtotal,
		Total:              subtotal,
		Estado:             entity.PedidoNuevo,
		EstadoCheckPicking: entity.CheckPickingPendiente,
	}
	if err := uc.pedidoRepo.Create(pedido); err != nil {
		return nil, err
	}
	return pedido, nil
}

// Validate valida un pedido con el PIN de administración. Marca validado con
// fecha y usuario pero NO avanza el estado: validar y pasar a picking son dos
// operaciones distintas, y validado es guarda dura de nuevo → picking.
func (uc *PedidoUseCase) Validate(ctx context.Context, pedidoID, pin, usuario string) (*entity.Pedido, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(uc.pinValidacion)) != 1 {
		return nil, domain.ErrInvalidPIN
	}
	var pedido *entity.Pedido
	err := uc.txRunner.RunPedido(ctx, func(pedidoRepo repository.PedidoRepository) error {
		p, err := pedidoRepo.GetByIDForUpdate(pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPedidoNotFound
		}
		if p.Estado != entity.PedidoNuevo {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		p.Validado = true
		p.FechaValidacion = &now
		p.UsuarioValidacion = usuario
		if err := pedidoRepo.Update(p); err != nil {
			return err
		}
		pedido = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// Transition mueve un pedido al estado destino si la transición es legal desde
// el estado actual y su guarda pasa. Cualquier destino ilegal deja el pedido
// intacto y devuelve ErrInvalidTransition. La evaluación y la escritura ocurren
// sobre la misma fila bloqueada.
func (uc *PedidoUseCase) Transition(ctx context.Context, pedidoID, nuevoEstado string, payload TransitionPayload) (*entity.Pedido, error) {
	var pedido *entity.Pedido
	err := uc.txRunner.RunPedido(ctx, func(pedidoRepo repository.PedidoRepository) error {
		p, err := pedidoRepo.GetByIDForUpdate(pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPedidoNotFound
		}
		if nuevoEstado == entity.PedidoCancelado {
			if err := cancelar(p, payload.Usuario); err != nil {
				return err
			}
		} else {
			if transiciones[p.Estado] != nuevoEstado {
				return domain.ErrInvalidTransition
			}
			if err := aplicarTransicion(p, nuevoEstado, payload); err != nil {
				return err
			}
		}
		if err := pedidoRepo.Update(p); err != nil {
			return err
		}
		pedido = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// Cancel cancela un pedido desde cualquier estado no terminal.
func (uc *PedidoUseCase) Cancel(ctx context.Context, pedidoID, usuario string) (*entity.Pedido, error) {
	return uc.Transition(ctx, pedidoID, entity.PedidoCancelado, TransitionPayload{Usuario: usuario})
}

func cancelar(p *entity.Pedido, usuario string) error {
	switch p.Estado {
	case entity.PedidoEntregado:
		return domain.ErrInvalidTransition
	case entity.PedidoCancelado:
		return domain.ErrAlreadyCancelled
	}
	now := time.Now()
	p.Estado = entity.PedidoCancelado
	p.FechaCancelacion = &now
	p.UsuarioCancelacion = usuario
	return nil
}

// aplicarTransicion aplica la guarda y los efectos de cada etapa. El estado
// solo se escribe cuando la guarda pasó.
func aplicarTransicion(p *entity.Pedido, nuevoEstado string, payload TransitionPayload) error {
	now := time.Now()
	switch nuevoEstado {
	case entity.PedidoPicking:
		// Guarda dura: un pedido nuevo sin validar no entra a picking.
		if !p.Validado {
			return domain.ErrInvalidTransition
		}
		p.Picking = entity.EtapaInfo{Usuario: payload.Usuario, Estado: "en_proceso", FechaInicio: &now}

	case entity.PedidoCheckPicking:
		p.Picking.Estado = "completado"
		p.Picking.FechaFin = &now
		p.EstadoCheckPicking = entity.CheckPickingEnProceso
		p.FechaCheckPicking = &now
		p.UsuarioCheckPicking = payload.Usuario

	case entity.PedidoPacking:
		if err := validarVerificaciones(p, payload.Verificaciones); err != nil {
			return err
		}
		p.Verificaciones = payload.Verificaciones
		p.EstadoCheckPicking = entity.CheckPickingCompletado
		p.FechaCheckPicking = &now
		if payload.Usuario != "" {
			p.UsuarioCheckPicking = payload.Usuario
		}
		p.Packing = entity.EtapaInfo{Usuario: payload.Usuario, Estado: "en_proceso", FechaInicio: &now}

	case entity.PedidoParaFacturar:
		p.Packing.Estado = "completado"
		p.Packing.FechaFin = &now

	case entity.PedidoFacturando:
		p.Facturacion = entity.EtapaInfo{Usuario: payload.Usuario, Estado: "en_proceso", FechaInicio: &now}

	case entity.PedidoEnviado:
		p.Facturacion.Estado = "completado"
		p.Facturacion.FechaFin = &now
		p.Envio = entity.EtapaInfo{Usuario: payload.Usuario, Chofer: payload.Chofer, Estado: "en_proceso", FechaInicio: &now}

	case entity.PedidoEntregado:
		p.Envio.Estado = "completado"
		p.Envio.FechaFin = &now
	}
	p.Estado = nuevoEstado
	return nil
}

// validarVerificaciones exige una verificación completa (cantidad, vencimiento
// y condición) para cada línea del pedido. Falla cerrado: cualquier línea sin
// verificación bloquea la transición nombrando los códigos ofensores.
func validarVerificaciones(p *entity.Pedido, verificaciones map[string]entity.Verificacion) error {
	var faltantes []string
	for _, l := range p.Productos {
		v, ok := verificaciones[l.Codigo]
		if !ok || v.FechaVencimiento == "" || v.Condicion == "" || v.CantidadVerificada < 0 {
			faltantes = append(faltantes, l.Codigo)
		}
	}
	if len(faltantes) > 0 {
		sort.Strings(faltantes)
		return &domain.IncompleteVerificationError{Codigos: faltantes}
	}
	return nil
}

// ActualizarCantidades actualiza las cantidades encontradas durante el picking,
// por código de producto.
func (uc *PedidoUseCase) ActualizarCantidades(ctx context.Context, pedidoID string, cantidades map[string]int) (*entity.Pedido, error) {
	var pedido *entity.Pedido
	err := uc.txRunner.RunPedido(ctx, func(pedidoRepo repository.PedidoRepository) error {
		p, err := pedidoRepo.GetByIDForUpdate(pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPedidoNotFound
		}
		for i := range p.Productos {
			if c, ok := cantidades[p.Productos[i].Codigo]; ok {
				p.Productos[i].CantidadEncontrada = c
			}
		}
		if err := pedidoRepo.Update(p); err != nil {
			return err
		}
		pedido = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pedido, nil
}

// GetByID obtiene un pedido por id.
func (uc *PedidoUseCase) GetByID(id string) (*entity.Pedido, error) {
	p, err := uc.pedidoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPedidoNotFound
	}
	return p, nil
}

// ListByEstados lista pedidos filtrando por estados; vacío = todos.
func (uc *PedidoUseCase) ListByEstados(estados []string) ([]*entity.Pedido, error) {
	return uc.pedidoRepo.ListByEstados(estados)
}

// ListByCliente lista los pedidos de un cliente por RIF.
func (uc *PedidoUseCase) ListByCliente(rif string) ([]*entity.Pedido, error) {
	return uc.pedidoRepo.ListByCliente(rif)
}

// ListAdministracion cola de administración: pedidos nuevos sin validar.
func (uc *PedidoUseCase) ListAdministracion() ([]*entity.Pedido, error) {
	return uc.pedidoRepo.ListNuevosPorValidacion(false)
}

// ListParaPicking cola de picking: pedidos nuevos ya validados.
func (uc *PedidoUseCase) ListParaPicking() ([]*entity.Pedido, error) {
	return uc.pedidoRepo.ListNuevosPorValidacion(true)
}
