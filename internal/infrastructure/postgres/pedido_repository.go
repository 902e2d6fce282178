package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL (usable con pool o tx).
// Líneas, verificaciones y auditoría de etapas se guardan como JSONB: el pedido
// se lee y escribe siempre como documento completo.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const pedidoColumns = `id, cliente, rif, observacion, fecha, productos, subtotal, total, estado,
	validado, fecha_validacion, usuario_validacion,
	fecha_cancelacion, usuario_cancelacion,
	verificaciones, estado_check_picking, fecha_check_picking, usuario_check_picking,
	picking, packing, envio, facturacion`

// Create persiste un pedido nuevo.
func (r *PedidoRepo) Create(pedido *entity.Pedido) error {
	if pedido.ID == "" {
		pedido.ID = uuid.New().String()
	}
	doc, err := marshalPedidoDocs(pedido)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO pedidos (` + pedidoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = r.q.Exec(context.Background(), query,
		pedido.ID, pedido.Cliente, nullIfEmpty(pedido.RIF), nullIfEmpty(pedido.Observacion),
		pedido.Fecha, doc.productos, pedido.Subtotal, pedido.Total, pedido.Estado,
		pedido.Validado, pedido.FechaValidacion, nullIfEmpty(pedido.UsuarioValidacion),
		pedido.FechaCancelacion, nullIfEmpty(pedido.UsuarioCancelacion),
		doc.verificaciones, pedido.EstadoCheckPicking, pedido.FechaCheckPicking,
		nullIfEmpty(pedido.UsuarioCheckPicking),
		doc.picking, doc.packing, doc.envio, doc.facturacion,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE id = $1`
	return scanPedido(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un pedido bloqueando su fila (SELECT FOR UPDATE).
// Usar dentro de una transacción: serializa las transiciones sobre el mismo pedido.
func (r *PedidoRepo) GetByIDForUpdate(id string) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE id = $1 FOR UPDATE`
	return scanPedido(r.q.QueryRow(context.Background(), query, id))
}

// Update escribe el pedido completo de vuelta.
func (r *PedidoRepo) Update(pedido *entity.Pedido) error {
	doc, err := marshalPedidoDocs(pedido)
	if err != nil {
		return err
	}
	query := `
		UPDATE pedidos
		SET cliente = $2, rif = $3, observacion = $4, productos = $5, subtotal = $6,
		    total = $7, estado = $8, validado = $9, fecha_validacion = $10,
		    usuario_validacion = $11, fecha_cancelacion = $12, usuario_cancelacion = $13,
		    verificaciones = $14, estado_check_picking = $15, fecha_check_picking = $16,
		    usuario_check_picking = $17, picking = $18, packing = $19, envio = $20,
		    facturacion = $21
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		pedido.ID, pedido.Cliente, nullIfEmpty(pedido.RIF), nullIfEmpty(pedido.Observacion),
		doc.productos, pedido.Subtotal, pedido.Total, pedido.Estado,
		pedido.Validado, pedido.FechaValidacion, nullIfEmpty(pedido.UsuarioValidacion),
		pedido.FechaCancelacion, nullIfEmpty(pedido.UsuarioCancelacion),
		doc.verificaciones, pedido.EstadoCheckPicking, pedido.FechaCheckPicking,
		nullIfEmpty(pedido.UsuarioCheckPicking),
		doc.picking, doc.packing, doc.envio, doc.facturacion,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPedidoNotFound
	}
	return nil
}

// ListByEstados lista pedidos cuyo estado esté en la lista, más antiguo primero
// (las colas de trabajo se atienden en orden de llegada).
func (r *PedidoRepo) ListByEstados(estados []string) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE estado = ANY($1) ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, estados)
	if err != nil {
		return nil, fmt.Errorf("list pedidos by estado: %w", err)
	}
	return scanPedidoRows(rows)
}

// ListByCliente lista los pedidos de un cliente, más reciente primero.
func (r *PedidoRepo) ListByCliente(rif string) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE rif = $1 ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, rif)
	if err != nil {
		return nil, fmt.Errorf("list pedidos by cliente: %w", err)
	}
	return scanPedidoRows(rows)
}

// ListNuevosPorValidacion lista pedidos en estado nuevo según su bandera validado.
func (r *PedidoRepo) ListNuevosPorValidacion(validado bool) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE estado = 'nuevo' AND validado = $1 ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, validado)
	if err != nil {
		return nil, fmt.Errorf("list pedidos nuevos: %w", err)
	}
	return scanPedidoRows(rows)
}

type pedidoDocs struct {
	productos      []byte
	verificaciones []byte
	picking        []byte
	packing        []byte
	envio          []byte
	facturacion    []byte
}

func marshalPedidoDocs(pedido *entity.Pedido) (*pedidoDocs, error) {
	var doc pedidoDocs
	var err error
	if doc.productos, err = json.Marshal(pedido.Productos); err != nil {
		return nil, fmt.Errorf("marshal lineas: %w", err)
	}
	verificaciones := pedido.Verificaciones
	if verificaciones == nil {
		verificaciones = map[string]entity.Verificacion{}
	}
	if doc.verificaciones, err = json.Marshal(verificaciones); err != nil {
		return nil, fmt.Errorf("marshal verificaciones: %w", err)
	}
	if doc.picking, err = json.Marshal(pedido.Picking); err != nil {
		return nil, fmt.Errorf("marshal picking: %w", err)
	}
	if doc.packing, err = json.Marshal(pedido.Packing); err != nil {
		return nil, fmt.Errorf("marshal packing: %w", err)
	}
	if doc.envio, err = json.Marshal(pedido.Envio); err != nil {
		return nil, fmt.Errorf("marshal envio: %w", err)
	}
	if doc.facturacion, err = json.Marshal(pedido.Facturacion); err != nil {
		return nil, fmt.Errorf("marshal facturacion: %w", err)
	}
	return &doc, nil
}

func scanPedidoRows(rows pgx.Rows) ([]*entity.Pedido, error) {
	defer rows.Close()
	var list []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPedido(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	var productos, verificaciones, picking, packing, envio, facturacion []byte
	var rif, observacion, usuarioValidacion, usuarioCancelacion, usuarioCheckPicking *string
	err := row.Scan(
		&p.ID, &p.Cliente, &rif, &observacion, &p.Fecha, &productos, &p.Subtotal,
		&p.Total, &p.Estado, &p.Validado, &p.FechaValidacion, &usuarioValidacion,
		&p.FechaCancelacion, &usuarioCancelacion,
		&verificaciones, &p.EstadoCheckPicking, &p.FechaCheckPicking, &usuarioCheckPicking,
		&picking, &packing, &envio, &facturacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan pedido: %w", err)
	}
	if err := json.Unmarshal(productos, &p.Productos); err != nil {
		return nil, fmt.Errorf("unmarshal lineas: %w", err)
	}
	if err := json.Unmarshal(verificaciones, &p.Verificaciones); err != nil {
		return nil, fmt.Errorf("unmarshal verificaciones: %w", err)
	}
	if err := json.Unmarshal(picking, &p.Picking); err != nil {
		return nil, fmt.Errorf("unmarshal picking: %w", err)
	}
	if err := json.Unmarshal(packing, &p.Packing); err != nil {
		return nil, fmt.Errorf("unmarshal packing: %w", err)
	}
	if err := json.Unmarshal(envio, &p.Envio); err != nil {
		return nil, fmt.Errorf("unmarshal envio: %w", err)
	}
	if err := json.Unmarshal(facturacion, &p.Facturacion); err != nil {
		return nil, fmt.Errorf("unmarshal facturacion: %w", err)
	}
	p.RIF = derefStr(rif)
	p.Observacion = derefStr(observacion)
	p.UsuarioValidacion = derefStr(usuarioValidacion)
	p.UsuarioCancelacion = derefStr(usuarioCancelacion)
	p.UsuarioCheckPicking = derefStr(usuarioCheckPicking)
	return &p, nil
}
