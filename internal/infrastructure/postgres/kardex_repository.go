package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo implementación del puerto KardexRepository sobre PostgreSQL (usable con pool o tx).
// El snapshot de producto se guarda como JSONB para dejarlo congelado al momento del asiento.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

const kardexColumns = `id, movimiento_id, fecha, usuario, tipo_movimiento, producto, cantidad, precio, saldo_previo, saldo_posterior, documento_origen, estado, usuario_anulacion, fecha_anulacion`

// Create persiste un asiento de kardex.
func (r *KardexRepo) Create(entry *entity.KardexEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	snapshot, err := json.Marshal(entry.Producto)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `
		INSERT INTO kardex (` + kardexColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(context.Background(), query,
		entry.ID, entry.MovimientoID, entry.Fecha, entry.Usuario, entry.TipoMovimiento,
		snapshot, entry.Cantidad, entry.Precio, entry.SaldoPrevio, entry.SaldoPosterior,
		nullIfEmpty(entry.DocumentoOrigen), entry.Estado,
		nullIfEmpty(entry.UsuarioAnulacion), entry.FechaAnulacion,
	)
	if err != nil {
		return fmt.Errorf("insert kardex: %w", err)
	}
	return nil
}

// ListByMovimiento lista los asientos de un lote, opcionalmente solo los activos.
func (r *KardexRepo) ListByMovimiento(movimientoID string, soloActivos bool) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE movimiento_id = $1`
	if soloActivos {
		query += ` AND estado = 'activo'`
	}
	query += ` ORDER BY fecha, id`
	rows, err := r.q.Query(context.Background(), query, movimientoID)
	if err != nil {
		return nil, fmt.Errorf("list kardex by movimiento: %w", err)
	}
	return scanKardexRows(rows)
}

// ListByProducto lista el historial de kardex de un producto en un rango de fechas, más reciente primero.
func (r *KardexRepo) ListByProducto(codigo string, desde, hasta *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE producto->>'codigo' = $1`
	args := []any{codigo}
	pos := 2
	if desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *desde)
		pos++
	}
	if hasta != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *hasta)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list kardex by producto: %w", err)
	}
	return scanKardexRows(rows)
}

// Anular marca un asiento como anulado. No borra: el asiento queda con su
// saldo histórico y los campos de auditoría de la anulación.
func (r *KardexRepo) Anular(id, usuario string, fecha time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE kardex SET estado = 'anulado', usuario_anulacion = $2, fecha_anulacion = $3 WHERE id = $1 AND estado = 'activo'`,
		id, usuario, fecha,
	)
	if err != nil {
		return fmt.Errorf("anular kardex: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanKardexRows(rows pgx.Rows) ([]*entity.KardexEntry, error) {
	defer rows.Close()
	var list []*entity.KardexEntry
	for rows.Next() {
		e, err := scanKardex(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanKardex(row pgx.Row) (*entity.KardexEntry, error) {
	var e entity.KardexEntry
	var snapshot []byte
	var documentoOrigen, usuarioAnulacion *string
	err := row.Scan(
		&e.ID, &e.MovimientoID, &e.Fecha, &e.Usuario, &e.TipoMovimiento,
		&snapshot, &e.Cantidad, &e.Precio, &e.SaldoPrevio, &e.SaldoPosterior,
		&documentoOrigen, &e.Estado, &usuarioAnulacion, &e.FechaAnulacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan kardex: %w", err)
	}
	if err := json.Unmarshal(snapshot, &e.Producto); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	e.DocumentoOrigen = derefStr(documentoOrigen)
	e.UsuarioAnulacion = derefStr(usuarioAnulacion)
	return &e, nil
}
