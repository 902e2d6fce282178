package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del puerto MovimientoRepository sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumns = `id, fecha, usuario, tipo, observaciones, productos, estado, movimiento_anulado, usuario_anulacion, fecha_anulacion`

// Create persiste la cabecera de un lote de movimientos.
func (r *MovimientoRepo) Create(movimiento *entity.Movimiento) error {
	if movimiento.ID == "" {
		movimiento.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.Fecha, movimiento.Usuario, movimiento.Tipo,
		nullIfEmpty(movimiento.Observaciones), movimiento.Productos, movimiento.Estado,
		nullIfEmpty(movimiento.MovimientoAnulado), nullIfEmpty(movimiento.UsuarioAnulacion),
		movimiento.FechaAnulacion,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un lote por ID.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos WHERE id = $1`
	var m entity.Movimiento
	var observaciones, movimientoAnulado, usuarioAnulacion *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Fecha, &m.Usuario, &m.Tipo, &observaciones, &m.Productos,
		&m.Estado, &movimientoAnulado, &usuarioAnulacion, &m.FechaAnulacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	m.Observaciones = derefStr(observaciones)
	m.MovimientoAnulado = derefStr(movimientoAnulado)
	m.UsuarioAnulacion = derefStr(usuarioAnulacion)
	return &m, nil
}

// Anular marca la cabecera del lote como anulada.
func (r *MovimientoRepo) Anular(id, usuario string, fecha time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE movimientos SET estado = 'anulado', usuario_anulacion = $2, fecha_anulacion = $3 WHERE id = $1 AND estado = 'activo'`,
		id, usuario, fecha,
	)
	if err != nil {
		return fmt.Errorf("anular movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovimientoNotFound
	}
	return nil
}
