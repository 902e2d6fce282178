package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/ventas"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// VentaHandler maneja las ventas de punto de venta (protegido).
type VentaHandler struct {
	uc *ventas.RegisterSaleUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.RegisterSaleUseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar venta
// @Description  Valida el stock de todas las líneas antes de procesar nada y
//               persiste la venta, el descuento de existencias y el kardex en
//               una transacción. Ninguna venta parcial queda registrada.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "productos, cliente, metodo_pago"
// @Success      201   {object}  dto.VentaRegistradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	productos := make([]ventas.LineaVentaInput, len(in.Productos))
	for i, p := range in.Productos {
		productos[i] = ventas.LineaVentaInput{
			Codigo:         p.Codigo,
			Cantidad:       p.Cantidad,
			PrecioUnitario: p.PrecioUnitario,
			Descuento:      p.Descuento,
		}
	}
	result, err := h.uc.RegisterSale(c.Context(), ventas.VentaInput{
		Usuario:       GetUsuario(c),
		ClienteRIF:    in.ClienteRIF,
		ClienteNombre: in.ClienteNombre,
		MetodoPago:    in.MetodoPago,
		Observaciones: in.Observaciones,
		Productos:     productos,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromVentaResult(result))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromVenta(venta))
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        desde        query  string  false  "Fecha inicial (RFC 3339)"
// @Param        hasta        query  string  false  "Fecha final (RFC 3339)"
// @Param        usuario      query  string  false  "Filtrar por usuario"
// @Param        cliente_rif  query  string  false  "Filtrar por RIF de cliente"
// @Param        limit        query  int     false  "Máximo de ventas (default 100)"
// @Success      200  {array}  dto.VentaResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	var desde, hasta *time.Time
	var err error
	if desde, err = parseFecha(c.Query("desde")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde: fecha inválida"})
	}
	if hasta, err = parseFecha(c.Query("hasta")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta: fecha inválida"})
	}
	list, err := h.uc.List(repository.VentaFiltro{
		Desde:      desde,
		Hasta:      hasta,
		Usuario:    c.Query("usuario"),
		ClienteRIF: c.Query("cliente_rif"),
		Limit:      c.QueryInt("limit"),
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.VentaResponse, len(list))
	for i, v := range list {
		out[i] = dto.FromVenta(v)
	}
	return c.JSON(out)
}
