package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/kardex"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
)

// TransaccionHandler maneja las transacciones de inventario y las consultas de
// kardex (protegido).
type TransaccionHandler struct {
	kardexUC   *kardex.BatchUseCase
	consultaUC *usecase.KardexConsultaUseCase
}

// NewTransaccionHandler construye el handler.
func NewTransaccionHandler(kardexUC *kardex.BatchUseCase, consultaUC *usecase.KardexConsultaUseCase) *TransaccionHandler {
	return &TransaccionHandler{kardexUC: kardexUC, consultaUC: consultaUC}
}

// Registrar godoc
// @Summary      Registrar transacción de inventario
// @Description  Aplica un movimiento (compra, cargo, devolución, venta, descargo,
//               pedido, apartado, ajuste o transferencia) a una lista de productos
//               en una sola transacción. Para transferencia se esperan dos líneas
//               (origen y destino) con la misma cantidad.
// @Tags         transacciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransaccionRequest  true  "tipo_movimiento, productos"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transacciones [post]
func (h *TransaccionHandler) Registrar(c *fiber.Ctx) error {
	var in dto.TransaccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	productos := make([]kardex.ProductoTransaccion, len(in.Productos))
	for i, p := range in.Productos {
		productos[i] = kardex.ProductoTransaccion{Codigo: p.Codigo, Cantidad: p.Cantidad}
	}
	result, err := h.kardexUC.RegistrarTransaccion(c.Context(), kardex.TransaccionInput{
		TipoMovimiento:  in.TipoMovimiento,
		Usuario:         GetUsuario(c),
		Observaciones:   in.Observaciones,
		DocumentoOrigen: in.DocumentoOrigen,
		Productos:       productos,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLote(result))
}

// Anular godoc
// @Summary      Anular una transacción
// @Description  Marca los asientos del lote como anulados, revierte su efecto
//               sobre la existencia y escribe un lote de compensación con
//               referencia al lote anulado.
// @Tags         transacciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AnularTransaccionRequest  true  "movimiento_id"
// @Success      200   {object}  dto.AnulacionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transacciones/anular [post]
func (h *TransaccionHandler) Anular(c *fiber.Ctx) error {
	var in dto.AnularTransaccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.kardexUC.Void(c.Context(), in.MovimientoID, GetUsuario(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromAnulacion(result))
}

// KardexPorProducto godoc
// @Summary      Historial de kardex de un producto
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        codigo  path   string  true   "Código del producto"
// @Param        desde   query  string  false  "Fecha inicial (RFC 3339)"
// @Param        hasta   query  string  false  "Fecha final (RFC 3339)"
// @Param        limit   query  int     false  "Máximo de asientos (default 50, máx 200)"
// @Param        offset  query  int     false  "Offset de paginación"
// @Success      200  {array}   dto.KardexEntryResponse
// @Router       /api/kardex/producto/{codigo} [get]
func (h *TransaccionHandler) KardexPorProducto(c *fiber.Ctx) error {
	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde: fecha inválida"})
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta: fecha inválida"})
	}
	out, err := h.consultaUC.ListByProducto(c.Params("codigo"), desde, hasta, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// KardexPorMovimiento godoc
// @Summary      Asientos de un lote de movimientos
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {array}   dto.KardexEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/movimiento/{id} [get]
func (h *TransaccionHandler) KardexPorMovimiento(c *fiber.Ctx) error {
	out, err := h.consultaUC.ListByMovimiento(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// También se acepta solo fecha.
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
