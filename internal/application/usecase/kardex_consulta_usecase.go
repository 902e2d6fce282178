package usecase

import (
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// KardexConsultaUseCase consultas de solo lectura sobre el kardex.
type KardexConsultaUseCase struct {
	kardexRepo repository.KardexRepository
	movRepo    repository.MovimientoRepository
}

// NewKardexConsultaUseCase construye el caso de uso.
func NewKardexConsultaUseCase(kardexRepo repository.KardexRepository, movRepo repository.MovimientoRepository) *KardexConsultaUseCase {
	return &KardexConsultaUseCase{kardexRepo: kardexRepo, movRepo: movRepo}
}

// ListByProducto historial de kardex de un producto, más reciente primero.
func (uc *KardexConsultaUseCase) ListByProducto(codigo string, desde, hasta *time.Time, limit, offset int) ([]*dto.KardexEntryResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := uc.kardexRepo.ListByProducto(codigo, desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.KardexEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.FromKardexEntry(e)
	}
	return out, nil
}

// ListByMovimiento asientos de un lote, incluidos los anulados.
func (uc *KardexConsultaUseCase) ListByMovimiento(movimientoID string) ([]*dto.KardexEntryResponse, error) {
	entries, err := uc.kardexRepo.ListByMovimiento(movimientoID, false)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		mov, err := uc.movRepo.GetByID(movimientoID)
		if err != nil {
			return nil, err
		}
		if mov == nil {
			return nil, domain.ErrMovimientoNotFound
		}
	}
	out := make([]*dto.KardexEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.FromKardexEntry(e)
	}
	return out, nil
}
