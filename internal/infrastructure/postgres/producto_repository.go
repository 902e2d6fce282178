package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, codigo, descripcion, laboratorio, costo, utilidad, precio, existencia, stock_minimo, stock_maximo, activo, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	if producto.ID == "" {
		producto.ID = uuid.New().String()
	}
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Codigo, producto.Descripcion, producto.Laboratorio,
		producto.Costo, producto.Utilidad, producto.Precio, producto.Existencia,
		producto.StockMinimo, producto.StockMaximo, producto.Activo,
		producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByCodigo obtiene un producto por código.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, codigo))
}

// GetByCodigoForUpdate obtiene un producto por código bloqueando su fila
// (SELECT FOR UPDATE). Usar dentro de una transacción: el lock serializa las
// escrituras de existencia contra esa fila.
func (r *ProductoRepo) GetByCodigoForUpdate(codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, codigo))
}

func (r *ProductoRepo) scanOne(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Descripcion, &p.Laboratorio, &p.Costo, &p.Utilidad,
		&p.Precio, &p.Existencia, &p.StockMinimo, &p.StockMaximo, &p.Activo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List lista productos, opcionalmente filtrados por código/descripción/laboratorio (ILIKE)
// y por estado activo.
func (r *ProductoRepo) List(filtro string, soloActivos bool) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos`
	var args []any
	var conds []string
	if soloActivos {
		conds = append(conds, "activo = true")
	}
	if filtro != "" {
		args = append(args, "%"+filtro+"%")
		conds = append(conds, fmt.Sprintf("(codigo ILIKE $%d OR descripcion ILIKE $%d OR laboratorio ILIKE $%d)", len(args), len(args), len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY descripcion"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Descripcion, &p.Laboratorio, &p.Costo, &p.Utilidad,
			&p.Precio, &p.Existencia, &p.StockMinimo, &p.StockMaximo, &p.Activo,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza la ficha de un producto. No toca Existencia (se maneja vía movimientos).
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos
		SET descripcion = $2, laboratorio = $3, costo = $4, utilidad = $5, precio = $6,
		    stock_minimo = $7, stock_maximo = $8, activo = $9, updated_at = $10
		WHERE codigo = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		producto.Codigo, producto.Descripcion, producto.Laboratorio, producto.Costo,
		producto.Utilidad, producto.Precio, producto.StockMinimo, producto.StockMaximo,
		producto.Activo, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductoNotFound
	}
	return nil
}

// UpdateExistencia actualiza solo la existencia (usado por el motor de kardex dentro de tx).
func (r *ProductoRepo) UpdateExistencia(codigo string, existencia int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE productos SET existencia = $2, updated_at = now() WHERE codigo = $1`,
		codigo, existencia,
	)
	if err != nil {
		return fmt.Errorf("update existencia: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductoNotFound
	}
	return nil
}

// Desactivar marca un producto como inactivo (baja lógica: el historial de kardex lo referencia).
func (r *ProductoRepo) Desactivar(codigo string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE productos SET activo = false, updated_at = now() WHERE codigo = $1`,
		codigo,
	)
	if err != nil {
		return fmt.Errorf("desactivar producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductoNotFound
	}
	return nil
}
