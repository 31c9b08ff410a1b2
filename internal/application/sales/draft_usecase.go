package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	inv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	domsales "github.com/jhoicas/Backoffice-api/internal/domain/sales"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// DraftUseCase sesiones de edición de ventas. Cada sesión guarda su propia copia de los lotes:
// agregar una línea consume de la copia y quitarla la devuelve, sin tocar la base hasta que
// la venta se envía.
type DraftUseCase struct {
	store        DraftStore
	lotRepo      repository.StockLotRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	locationRepo repository.LocationRepository
	cfg          Config
	log          *logger.Logger
	now          func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(
	store DraftStore,
	lotRepo repository.StockLotRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	locationRepo repository.LocationRepository,
	cfg Config,
	log *logger.Logger,
) *DraftUseCase {
	return &DraftUseCase{
		store:        store,
		lotRepo:      lotRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		locationRepo: locationRepo,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// StartDraft abre una sesión vacía o, con SaleID, precargada con las líneas de la venta.
func (uc *DraftUseCase) StartDraft(ctx context.Context, in dto.StartDraftRequest) (*dto.DraftResponse, error) {
	loc, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	d := &Draft{
		ID:         uuid.New().String(),
		LocationID: in.LocationID,
		SaleID:     in.SaleID,
	}
	if in.SaleID != "" {
		sale, err := uc.saleRepo.GetByID(ctx, in.SaleID)
		if err != nil {
			return nil, err
		}
		if sale == nil {
			return nil, domain.ErrNotFound
		}
		if sale.LocationID != in.LocationID {
			return nil, domain.ErrInvalidInput
		}
		if domsales.IsTerminal(sale.ChannelType(), sale.Status) {
			return nil, domain.ErrTerminalStatus
		}
		d.Items = append(d.Items, sale.Items...)
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// GetDraft devuelve el estado actual de la sesión.
func (uc *DraftUseCase) GetDraft(ctx context.Context, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// AddItem asigna FIFO contra la copia de lotes de la sesión y agrega la línea.
// Con stock insuficiente la sesión no cambia.
func (uc *DraftUseCase) AddItem(ctx context.Context, id string, in dto.DraftItemRequest) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.addItem(ctx, d, in, len(d.Items)); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// RemoveItem quita la línea index y devuelve sus cantidades a la copia de lotes.
func (uc *DraftUseCase) RemoveItem(ctx context.Context, id string, index int) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.removeItem(ctx, d, index); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// ReplaceItem devuelve la línea index y asigna la nueva en su lugar. Si la nueva no tiene
// stock la sesión queda como estaba.
func (uc *DraftUseCase) ReplaceItem(ctx context.Context, id string, index int, in dto.DraftItemRequest) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.removeItem(ctx, d, index); err != nil {
		return nil, err
	}
	if err := uc.addItem(ctx, d, in, index); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftResponse(d), nil
}

// Summary resumen financiero del borrador con los montos indicados.
func (uc *DraftUseCase) Summary(ctx context.Context, id string, in dto.DraftSummaryRequest) (*dto.SummaryResponse, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	extra := domsales.Extras{PaidAmount: in.PaidAmount, DeliveryCost: in.DeliveryCost, ReturnCost: in.ReturnCost}
	total := domsales.TotalAmount(d.Items)
	if err := domsales.ValidateAmounts(total, in.DiscountAmount, extra); err != nil {
		return nil, err
	}
	s := domsales.Summarize(total, domsales.TotalCost(d.Items, uc.cfg.DefaultCostPerKg), in.DiscountAmount, extra)
	out := toSummaryResponse(s)
	return &out, nil
}

// Discard elimina la sesión. No toca el stock persistido.
func (uc *DraftUseCase) Discard(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, id)
}

func (uc *DraftUseCase) addItem(ctx context.Context, d *Draft, in dto.DraftItemRequest, at int) error {
	if in.Price != nil && in.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	vi, err := newCatalog(uc.productRepo).lookup(ctx, in.VariantID)
	if err != nil {
		return err
	}
	if err := uc.ensureLots(ctx, d, in.VariantID); err != nil {
		return err
	}
	item, lots, err := allocateItem(d.Lots, d.LocationID, vi, in.Quantity, in.Price)
	if err != nil {
		return err
	}
	d.Lots = lots
	d.Items = append(d.Items, entity.SaleItem{})
	copy(d.Items[at+1:], d.Items[at:])
	d.Items[at] = item
	return nil
}

func (uc *DraftUseCase) removeItem(ctx context.Context, d *Draft, index int) error {
	if index < 0 || index >= len(d.Items) {
		return domain.ErrInvalidInput
	}
	removed := d.Items[index]
	if err := uc.ensureLots(ctx, d, removed.VariantID); err != nil {
		return err
	}
	gone := []entity.SaleItem{removed}
	for _, det := range inv.Unmatched(d.Lots, gone, d.LocationID) {
		uc.log.Warn().
			Str("draft_id", d.ID).
			Str("purchase_item_id", det.PurchaseItemID).
			Msg("lote de origen inexistente; cantidad no restaurada")
	}
	d.Lots = inv.Restore(d.Lots, gone, d.LocationID)
	d.Items = append(d.Items[:index:index], d.Items[index+1:]...)
	return nil
}

// ensureLots carga en la copia los lotes de la variante la primera vez que se usa.
func (uc *DraftUseCase) ensureLots(ctx context.Context, d *Draft, variantID string) error {
	if d.hasVariant(variantID) {
		return nil
	}
	lots, err := uc.lotRepo.List(ctx, repository.LotFilter{LocationID: d.LocationID, VariantID: variantID})
	if err != nil {
		return err
	}
	d.Lots = append(d.Lots, lots...)
	d.Variants = append(d.Variants, variantID)
	return nil
}

func (uc *DraftUseCase) load(ctx context.Context, id string) (*Draft, error) {
	d, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *DraftUseCase) save(ctx context.Context, d *Draft) error {
	d.ExpiresAt = uc.now().Add(uc.cfg.DraftTTL)
	return uc.store.Save(ctx, d, uc.cfg.DraftTTL)
}
