package inventory

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	inv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// StockUseCase consultas de stock actual (lotes) para los diálogos de venta.
type StockUseCase struct {
	lotRepo repository.StockLotRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(lotRepo repository.StockLotRepository) *StockUseCase {
	return &StockUseCase{lotRepo: lotRepo}
}

// ListLots devuelve los lotes filtrados por producto/variante/ubicación, incluidos los que están en cero.
func (uc *StockUseCase) ListLots(ctx context.Context, f repository.LotFilter) ([]dto.StockLotResponse, error) {
	lots, err := uc.lotRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return ToLotResponses(lots), nil
}

// Summary cantidad disponible y costo promedio de una variante en una ubicación.
func (uc *StockUseCase) Summary(ctx context.Context, locationID, variantID string) (*dto.StockSummaryResponse, error) {
	if locationID == "" || variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	lots, err := uc.lotRepo.List(ctx, repository.LotFilter{LocationID: locationID, VariantID: variantID, OnlyAvailable: true})
	if err != nil {
		return nil, err
	}
	return &dto.StockSummaryResponse{
		LocationID:  locationID,
		VariantID:   variantID,
		Available:   inv.AvailableQuantity(lots, locationID),
		AverageCost: inv.AverageLotCost(lots, locationID).Round(2),
		Lots:        len(lots),
	}, nil
}

// ToLotResponses convierte lotes de dominio a DTO.
func ToLotResponses(lots []entity.StockLot) []dto.StockLotResponse {
	out := make([]dto.StockLotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.StockLotResponse{
			LocationID:     l.LocationID,
			PurchaseItemID: l.PurchaseItemID,
			VariantID:      l.VariantID,
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitCost:       l.UnitCost,
			CostPerKg:      l.CostPerKg,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out
}
