package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/pedidos"
)

// PedidoHandler maneja el pipeline de pedidos (protegido).
type PedidoHandler struct {
	uc *pedidos.PedidoUseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *pedidos.PedidoUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearPedidoRequest  true  "cliente, rif, productos"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pedido, err := h.uc.Create(pedidos.CrearPedidoInput{
		Cliente:     in.Cliente,
		RIF:         in.RIF,
		Observacion: in.Observacion,
		Productos:   in.Productos,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPedido(pedido))
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	pedido, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedido(pedido))
}

// List godoc
// @Summary      Listar pedidos
// @Description  Filtra por estados (separados por coma) o por RIF de cliente.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        estados  query  string  false  "Estados separados por coma (ej. picking,packing)"
// @Param        rif      query  string  false  "RIF del cliente"
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	if rif := c.Query("rif"); rif != "" {
		list, err := h.uc.ListByCliente(rif)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.FromPedidos(list))
	}
	var estados []string
	if raw := c.Query("estados"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				estados = append(estados, e)
			}
		}
	}
	list, err := h.uc.ListByEstados(estados)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedidos(list))
}

// ListAdministracion godoc
// @Summary      Cola de administración
// @Description  Pedidos nuevos pendientes de validación.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos/administracion [get]
func (h *PedidoHandler) ListAdministracion(c *fiber.Ctx) error {
	list, err := h.uc.ListAdministracion()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedidos(list))
}

// ListParaPicking godoc
// @Summary      Cola de picking
// @Description  Pedidos nuevos ya validados, listos para entrar a picking.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos/para-picking [get]
func (h *PedidoHandler) ListParaPicking(c *fiber.Ctx) error {
	list, err := h.uc.ListParaPicking()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedidos(list))
}

// Validar godoc
// @Summary      Validar pedido con PIN
// @Description  Marca el pedido como validado sin avanzar su estado. Validado
//               es guarda dura para entrar a picking.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ValidacionPedidoRequest  true  "pin"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/validar [post]
func (h *PedidoHandler) Validar(c *fiber.Ctx) error {
	var in dto.ValidacionPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pedido, err := h.uc.Validate(c.Context(), c.Params("id"), in.PIN, GetUsuario(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedido(pedido))
}

// ActualizarEstado godoc
// @Summary      Transicionar estado del pedido
// @Description  Mueve el pedido al estado destino si la transición es legal y
//               su guarda pasa. check_picking → packing exige la verificación
//               completa de todas las líneas; enviado acepta chofer.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ActualizarEstadoRequest  true  "nuevo_estado"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/estado [put]
func (h *PedidoHandler) ActualizarEstado(c *fiber.Ctx) error {
	var in dto.ActualizarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NuevoEstado == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nuevo_estado es requerido"})
	}
	pedido, err := h.uc.Transition(c.Context(), c.Params("id"), in.NuevoEstado, pedidos.TransitionPayload{
		Usuario:        GetUsuario(c),
		Chofer:         in.Chofer,
		Verificaciones: in.Verificaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedido(pedido))
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Description  Cancela desde cualquier estado no terminal, con usuario y fecha
//               de auditoría.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	pedido, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUsuario(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedido(pedido))
}

// ActualizarCantidades godoc
// @Summary      Actualizar cantidades encontradas
// @Description  Registra durante el picking la cantidad encontrada por línea.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.CantidadesEncontradasRequest  true  "cantidades por código"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cantidades [put]
func (h *PedidoHandler) ActualizarCantidades(c *fiber.Ctx) error {
	var in dto.CantidadesEncontradasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pedido, err := h.uc.ActualizarCantidades(c.Context(), c.Params("id"), in.Cantidades)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromPedido(pedido))
}
