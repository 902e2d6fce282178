package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/kardex"
	"github.com/jhoicas/distribuidora-api/internal/application/pedidos"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductoUC *usecase.ProductoUseCase
	KardexUC   *kardex.BatchUseCase
	ConsultaUC *usecase.KardexConsultaUseCase
	VentaUC    *ventas.RegisterSaleUseCase
	PedidoUC   *pedidos.PedidoUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:codigo", productoHandler.GetByCodigo)
	productos.Put("/:codigo", productoHandler.Update)
	productos.Delete("/:codigo", productoHandler.Desactivar)

	// Transacciones de inventario y kardex (protegido)
	transaccionHandler := NewTransaccionHandler(deps.KardexUC, deps.ConsultaUC)
	transacciones := protected.Group("/transacciones")
	transacciones.Post("/", transaccionHandler.Registrar)
	transacciones.Post("/anular", transaccionHandler.Anular)
	kardexGroup := protected.Group("/kardex")
	kardexGroup.Get("/producto/:codigo", transaccionHandler.KardexPorProducto)
	kardexGroup.Get("/movimiento/:id", transaccionHandler.KardexPorMovimiento)

	// Ventas (protegido)
	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventasGroup.Post("/", ventaHandler.Registrar)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)

	// Pedidos (protegido)
	pedidosGroup := protected.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.PedidoUC)
	pedidosGroup.Post("/", pedidoHandler.Create)
	pedidosGroup.Get("/", pedidoHandler.List)
	pedidosGroup.Get("/administracion", pedidoHandler.ListAdministracion)
	pedidosGroup.Get("/para-picking", pedidoHandler.ListParaPicking)
	pedidosGroup.Get("/:id", pedidoHandler.GetByID)
	pedidosGroup.Post("/:id/validar", RequireRole("admin"), pedidoHandler.Validar)
	pedidosGroup.Put("/:id/estado", pedidoHandler.ActualizarEstado)
	pedidosGroup.Post("/:id/cancelar", pedidoHandler.Cancelar)
	pedidosGroup.Put("/:id/cantidades", pedidoHandler.ActualizarCantidades)
}
