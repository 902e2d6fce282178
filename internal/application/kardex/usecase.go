package kardex

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/inventario"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// BatchUseCase es el motor de kardex: aplica lotes de movimientos sobre el
// inventario maestro de forma transaccional (bloqueo de fila con SELECT FOR
// UPDATE y Commit/Rollback) y soporta la anulación compensatoria de un lote.
type BatchUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
}

// NewBatchUseCase construye el motor de kardex. productoRepo se usa para las
// validaciones de pre-vuelo fuera de la transacción (solo lectura); dentro de
// la tx siempre se trabaja con los repositorios atados a ella.
func NewBatchUseCase(txRunner TxRunner, productoRepo repository.ProductoRepository) *BatchUseCase {
	return &BatchUseCase{txRunner: txRunner, productoRepo: productoRepo}
}

// LineaLote una línea de un lote: producto, cantidad y tipo de movimiento.
// Para ajuste la cantidad es el valor absoluto a fijar; para transferencia
// viene firmada (negativa en el origen).
type LineaLote struct {
	Codigo         string
	Cantidad       int
	TipoMovimiento string
}

// LoteInput entrada para aplicar un lote de movimientos.
type LoteInput struct {
	Usuario         string
	Tipo            string // tipo dominante del lote, para el registro de movimientos
	Observaciones   string
	DocumentoOrigen string // id de venta / pedido / documento que origina el lote
	Lineas          []LineaLote
}

// LineaResultado saldos antes y después de aplicar una línea.
type LineaResultado struct {
	Codigo         string
	SaldoPrevio    int
	SaldoPosterior int
}

// LoteResult resultado de aplicar un lote.
type LoteResult struct {
	MovimientoID string
	Lineas       []LineaResultado
}

// VoidResult resultado de anular un lote: el lote anulado y el lote de
// compensación que revierte su efecto.
type VoidResult struct {
	MovimientoID string
	AnulacionID  string
	Lineas       []LineaResultado
}

// Apply aplica un lote completo: resuelve y bloquea todos los productos antes
// de mutar nada, calcula saldo previo/posterior por línea, escribe las nuevas
// existencias y un asiento de kardex por línea, todo en una transacción.
// Cualquier código desconocido o saldo negativo aborta el lote entero sin
// efectos visibles.
func (uc *BatchUseCase) Apply(ctx context.Context, input LoteInput) (*LoteResult, error) {
	if err := validarLote(input); err != nil {
		return nil, err
	}

	now := time.Now()
	result := &LoteResult{MovimientoID: uuid.New().String()}

	err := uc.txRunner.Run(ctx, func(
		kardexRepo repository.KardexRepository,
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		lineas, err := uc.ApplyInTx(kardexRepo, movRepo, productoRepo, result.MovimientoID, input, now)
		if err != nil {
			return err
		}
		result.Lineas = lineas
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx aplica un lote usando los repositorios proporcionados (misma
// transacción del caller). Lo usa la pasarela de ventas para que el registro
// de la venta, el descuento de existencias y los asientos de kardex se
// confirmen juntos o ninguno.
func (uc *BatchUseCase) ApplyInTx(
	kardexRepo repository.KardexRepository,
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	movimientoID string,
	input LoteInput,
	now time.Time,
) ([]LineaResultado, error) {
	if err := validarLote(input); err != nil {
		return nil, err
	}
	lineas, err := uc.aplicarLineas(kardexRepo, productoRepo, movimientoID, input, now)
	if err != nil {
		return nil, err
	}
	codigos := make([]string, len(input.Lineas))
	for i, l := range input.Lineas {
		codigos[i] = l.Codigo
	}
	if err := movRepo.Create(&entity.Movimiento{
		ID:            movimientoID,
		Fecha:         now,
		Usuario:       input.Usuario,
		Tipo:          input.Tipo,
		Observaciones: input.Observaciones,
		Productos:     codigos,
		Estado:        entity.EstadoActivo,
	}); err != nil {
		return nil, err
	}
	return lineas, nil
}

func validarLote(input LoteInput) error {
	if len(input.Lineas) == 0 || input.Usuario == "" {
		return domain.ErrInvalidInput
	}
	sumaTransferencia := 0
	for _, l := range input.Lineas {
		if !inventario.TipoValido(l.TipoMovimiento) {
			return domain.ErrInvalidInput
		}
		switch l.TipoMovimiento {
		case entity.MovimientoAjuste:
			if l.Cantidad < 0 {
				return domain.ErrInvalidInput
			}
		case entity.MovimientoTransferencia:
			if l.Cantidad == 0 {
				return domain.ErrInvalidInput
			}
			sumaTransferencia += l.Cantidad
		default:
			if l.Cantidad <= 0 {
				return domain.ErrInvalidInput
			}
		}
	}
	// Una transferencia es un par entrada/salida con neto cero entre productos.
	if sumaTransferencia != 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// aplicarLineas ejecuta las tres pasadas del lote dentro de la tx: bloquear y
// resolver todos los productos, calcular los saldos sin escribir, y recién
// entonces persistir existencias y asientos.
func (uc *BatchUseCase) aplicarLineas(
	kardexRepo repository.KardexRepository,
	productoRepo repository.ProductoRepository,
	movimientoID string,
	input LoteInput,
	now time.Time,
) ([]LineaResultado, error) {
	// Pasada 1: resolver y bloquear cada producto referenciado. Si falta
	// alguno, el lote completo se rechaza antes de cualquier escritura.
	productos := make(map[string]*entity.Producto, len(input.Lineas))
	for _, l := range input.Lineas {
		if _, ok := productos[l.Codigo]; ok {
			continue
		}
		producto, err := productoRepo.GetByCodigoForUpdate(l.Codigo)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNotFound, l.Codigo)
		}
		productos[l.Codigo] = producto
	}

	// Pasada 2: calcular saldos sobre un mapa en memoria. Un mismo producto
	// puede aparecer en varias líneas; el saldo corre entre ellas.
	saldos := make(map[string]int, len(productos))
	for codigo, p := range productos {
		saldos[codigo] = p.Existencia
	}
	lineas := make([]LineaResultado, 0, len(input.Lineas))
	var insuficientes []domain.LineaInsuficiente
	for _, l := range input.Lineas {
		previo := saldos[l.Codigo]
		posterior, err := inventario.NuevoSaldo(previo, l.Cantidad, l.TipoMovimiento)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if posterior < 0 {
			insuficientes = append(insuficientes, domain.LineaInsuficiente{
				Codigo:      l.Codigo,
				Descripcion: productos[l.Codigo].Descripcion,
				Existencia:  previo,
				Solicitado:  l.Cantidad,
			})
			continue
		}
		saldos[l.Codigo] = posterior
		lineas = append(lineas, LineaResultado{Codigo: l.Codigo, SaldoPrevio: previo, SaldoPosterior: posterior})
	}
	if len(insuficientes) > 0 {
		return nil, &domain.InsufficientStockError{Lineas: insuficientes}
	}

	// Pasada 3: persistir existencias y asientos.
	for i, l := range input.Lineas {
		r := lineas[i]
		if err := productoRepo.UpdateExistencia(l.Codigo, r.SaldoPosterior); err != nil {
			return nil, err
		}
		producto := productos[l.Codigo]
		entry := &entity.KardexEntry{
			ID:              uuid.New().String(),
			MovimientoID:    movimientoID,
			Fecha:           now,
			Usuario:         input.Usuario,
			TipoMovimiento:  l.TipoMovimiento,
			Producto:        producto.Snapshot(),
			Cantidad:        inventario.CantidadFirmada(l.TipoMovimiento, l.Cantidad),
			Precio:          producto.Precio,
			SaldoPrevio:     r.SaldoPrevio,
			SaldoPosterior:  r.SaldoPosterior,
			DocumentoOrigen: input.DocumentoOrigen,
			Estado:          entity.EstadoActivo,
		}
		if err := kardexRepo.Create(entry); err != nil {
			return nil, err
		}
	}
	return lineas, nil
}

// Void anula un lote: marca sus asientos activos como anulados, revierte el
// efecto de cada uno sobre la existencia actual y escribe un lote de
// compensación con referencia al lote anulado. La reversión de un ajuste
// restaura el saldo previo guardado en el asiento, no recalcula. Anular un
// lote ya anulado falla con ErrAlreadyVoided sin aplicar nada dos veces.
func (uc *BatchUseCase) Void(ctx context.Context, movimientoID, usuario string) (*VoidResult, error) {
	if movimientoID == "" || usuario == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	result := &VoidResult{MovimientoID: movimientoID, AnulacionID: uuid.New().String()}

	err := uc.txRunner.Run(ctx, func(
		kardexRepo repository.KardexRepository,
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		entries, err := kardexRepo.ListByMovimiento(movimientoID, true)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			mov, err := movRepo.GetByID(movimientoID)
			if err != nil {
				return err
			}
			if mov != nil && mov.Estado == entity.EstadoAnulado {
				return domain.ErrAlreadyVoided
			}
			return domain.ErrMovimientoNotFound
		}

		codigos := make([]string, 0, len(entries))
		for _, e := range entries {
			producto, err := productoRepo.GetByCodigoForUpdate(e.Producto.Codigo)
			if err != nil {
				return err
			}
			if producto == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductoNotFound, e.Producto.Codigo)
			}

			previo := producto.Existencia
			var posterior int
			if e.TipoMovimiento == entity.MovimientoAjuste {
				// El ajuste fijó un valor absoluto; el inverso es restaurar el
				// saldo que el asiento dejó registrado.
				posterior = e.SaldoPrevio
			} else {
				// La cantidad del asiento va firmada: restarla deshace el efecto.
				posterior = previo - e.Cantidad
			}
			if posterior < 0 {
				return &domain.InsufficientStockError{Lineas: []domain.LineaInsuficiente{{
					Codigo:      e.Producto.Codigo,
					Descripcion: e.Producto.Descripcion,
					Existencia:  previo,
					Solicitado:  e.Cantidad,
				}}}
			}

			if err := productoRepo.UpdateExistencia(e.Producto.Codigo, posterior); err != nil {
				return err
			}
			if err := kardexRepo.Anular(e.ID, usuario, now); err != nil {
				return err
			}
			compensacion := &entity.KardexEntry{
				ID:              uuid.New().String(),
				MovimientoID:    result.AnulacionID,
				Fecha:           now,
				Usuario:         usuario,
				TipoMovimiento:  entity.MovimientoAnulacion,
				Producto:        e.Producto,
				Cantidad:        posterior - previo,
				Precio:          e.Precio,
				SaldoPrevio:     previo,
				SaldoPosterior:  posterior,
				DocumentoOrigen: movimientoID,
				Estado:          entity.EstadoActivo,
			}
			if err := kardexRepo.Create(compensacion); err != nil {
				return err
			}
			codigos = append(codigos, e.Producto.Codigo)
			result.Lineas = append(result.Lineas, LineaResultado{Codigo: e.Producto.Codigo, SaldoPrevio: previo, SaldoPosterior: posterior})
		}

		if err := movRepo.Anular(movimientoID, usuario, now); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movimiento{
			ID:                result.AnulacionID,
			Fecha:             now,
			Usuario:           usuario,
			Tipo:              entity.MovimientoAnulacion,
			Observaciones:     fmt.Sprintf("Anulación de movimiento %s", movimientoID),
			Productos:         codigos,
			Estado:            entity.EstadoActivo,
			MovimientoAnulado: movimientoID,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
