package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	inv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// PurchaseUseCase registra compras de forma transaccional: cada ítem crea un lote en la
// ubicación de la compra y actualiza el costo promedio ponderado de la variante.
type PurchaseUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		purchaseRepo: purchaseRepo,
		log:          log,
	}
}

// RegisterPurchase valida ubicación y variantes fuera de la tx y luego, en una sola transacción,
// guarda la compra, crea un lote por ítem y recalcula el costo promedio de cada variante.
func (uc *PurchaseUseCase) RegisterPurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.LocationID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerKg != nil && in.CostPerKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	variants := make(map[string]*entity.Variant, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) || it.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := variants[it.VariantID]; ok {
			continue
		}
		v, err := uc.productRepo.GetVariant(ctx, it.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, domain.ErrNotFound
		}
		variants[it.VariantID] = v
	}

	now := time.Now()
	purchasedAt := now
	if in.PurchasedAt != nil {
		purchasedAt = *in.PurchasedAt
	}
	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		LocationID:   in.LocationID,
		Supplier:     in.Supplier,
		CostPerKg:    in.CostPerKg,
		ShippingCost: in.ShippingCost,
		Notes:        in.Notes,
		PurchasedAt:  purchasedAt,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	for _, it := range in.Items {
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  variants[it.VariantID].ProductID,
			VariantID:  it.VariantID,
			Quantity:   it.Quantity,
			UnitCost:   it.UnitCost,
		})
	}

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		// Stock actual por variante (todas las ubicaciones) antes de la entrada
		stockByVariant := make(map[string]decimal.Decimal, len(variants))
		for id := range variants {
			lots, err := lotRepo.List(ctx, repository.LotFilter{VariantID: id, OnlyAvailable: true})
			if err != nil {
				return err
			}
			qty := decimal.Zero
			for _, l := range lots {
				qty = qty.Add(l.Quantity)
			}
			stockByVariant[id] = qty
		}

		for i, it := range purchase.Items {
			lot := &entity.StockLot{
				LocationID:     purchase.LocationID,
				PurchaseItemID: it.ID,
				VariantID:      it.VariantID,
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				UnitCost:       it.UnitCost,
				CostPerKg:      purchase.CostPerKg,
				// lotes de la misma compra conservan el orden de las líneas en el FIFO
				CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			}
			if err := lotRepo.Create(ctx, lot); err != nil {
				return err
			}

			v := variants[it.VariantID]
			v.AverageCost = inv.CostCalculator(stockByVariant[it.VariantID], v.AverageCost, it.Quantity, it.UnitCost)
			stockByVariant[it.VariantID] = stockByVariant[it.VariantID].Add(it.Quantity)
		}
		for id, v := range variants {
			if err := productRepo.UpdateVariantCost(ctx, id, v.AverageCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("purchase_id", purchase.ID).
		Str("location_id", purchase.LocationID).
		Int("items", len(purchase.Items)).
		Str("total_cost", purchase.TotalCost().String()).
		Msg("compra registrada")
	return toPurchaseResponse(purchase), nil
}

// GetPurchase obtiene una compra con sus ítems.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// ListPurchases lista compras filtradas (ubicación, rango de fechas, proveedor).
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, f repository.ListFilter) ([]dto.PurchaseResponse, error) {
	list, err := uc.purchaseRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPurchaseResponse(p))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return &dto.PurchaseResponse{
		ID:           p.ID,
		LocationID:   p.LocationID,
		Supplier:     p.Supplier,
		CostPerKg:    p.CostPerKg,
		ShippingCost: p.ShippingCost,
		TotalCost:    p.TotalCost(),
		Notes:        p.Notes,
		Items:        items,
		PurchasedAt:  p.PurchasedAt,
		CreatedAt:    p.CreatedAt,
	}
}
