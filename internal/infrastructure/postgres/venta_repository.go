package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas se guardan como JSONB: la venta es un documento cerrado, no se consulta por línea.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaColumns = `id, fecha, usuario, cliente_rif, cliente_nombre, productos, total, metodo_pago, observaciones, estado, movimiento_id`

// Create persiste una venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	if venta.ID == "" {
		venta.ID = uuid.New().String()
	}
	lineas, err := json.Marshal(venta.Productos)
	if err != nil {
		return fmt.Errorf("marshal lineas: %w", err)
	}
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		venta.ID, venta.Fecha, venta.Usuario, nullIfEmpty(venta.ClienteRIF),
		nullIfEmpty(venta.ClienteNombre), lineas, venta.Total,
		nullIfEmpty(venta.MetodoPago), nullIfEmpty(venta.Observaciones),
		venta.Estado, venta.MovimientoID,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE id = $1`
	v, err := scanVenta(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, err
	}
	return v, nil
}

// List lista ventas según los filtros, más reciente primero.
func (r *VentaRepo) List(filtro repository.VentaFiltro) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE 1=1`
	var args []any
	pos := 1
	if filtro.Desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *filtro.Desde)
		pos++
	}
	if filtro.Hasta != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *filtro.Hasta)
		pos++
	}
	if filtro.Usuario != "" {
		query += fmt.Sprintf(" AND usuario = $%d", pos)
		args = append(args, filtro.Usuario)
		pos++
	}
	if filtro.ClienteRIF != "" {
		query += fmt.Sprintf(" AND cliente_rif = $%d", pos)
		args = append(args, filtro.ClienteRIF)
		pos++
	}
	limit := filtro.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	var lineas []byte
	var clienteRIF, clienteNombre, metodoPago, observaciones *string
	err := row.Scan(
		&v.ID, &v.Fecha, &v.Usuario, &clienteRIF, &clienteNombre, &lineas,
		&v.Total, &metodoPago, &observaciones, &v.Estado, &v.MovimientoID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan venta: %w", err)
	}
	if err := json.Unmarshal(lineas, &v.Productos); err != nil {
		return nil, fmt.Errorf("unmarshal lineas: %w", err)
	}
	v.ClienteRIF = derefStr(clienteRIF)
	v.ClienteNombre = derefStr(clienteNombre)
	v.MetodoPago = derefStr(metodoPago)
	v.Observaciones = derefStr(observaciones)
	return &v, nil
}
