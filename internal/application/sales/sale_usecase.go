package sales

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
	domsales "github.com/jhoicas/Backoffice-api/internal/domain/sales"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// SaleUseCase orquesta ventas de los tres canales. Toda escritura de stock ocurre en una
// transacción con los lotes bloqueados; si algo falla no queda nada a medias.
type SaleUseCase struct {
	txRunner     SalesTxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	clientRepo   repository.ClientRepository
	handlerRepo  repository.DeliveryHandlerRepository
	renderer     ReceiptRenderer
	cfg          Config
	log          *logger.Logger
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner SalesTxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	clientRepo repository.ClientRepository,
	handlerRepo repository.DeliveryHandlerRepository,
	renderer ReceiptRenderer,
	cfg Config,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		clientRepo:   clientRepo,
		handlerRepo:  handlerRepo,
		renderer:     renderer,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

// CreateStoreSale registra una venta en tienda. Nace COMPLETED.
func (uc *SaleUseCase) CreateStoreSale(ctx context.Context, userID string, in dto.CreateStoreSaleRequest) (*dto.SaleResponse, error) {
	sale := uc.newSale(userID, in.Sale, &entity.StoreDetails{})
	return uc.create(ctx, sale, in.Sale.Items, entity.SaleStatus(in.Status))
}

// CreateOnlineSale registra una venta en línea. El repartidor debe existir.
func (uc *SaleUseCase) CreateOnlineSale(ctx context.Context, userID string, in dto.CreateOnlineSaleRequest) (*dto.SaleResponse, error) {
	if err := uc.checkDeliveryHandler(ctx, in.DeliveryHandlerID); err != nil {
		return nil, err
	}
	details := &entity.OnlineDetails{
		DeliveryHandlerID: in.DeliveryHandlerID,
		TrackingNumber:    in.TrackingNumber,
		DeliveryCost:      in.DeliveryCost,
	}
	if in.ReturnCost != nil {
		details.ReturnCost = *in.ReturnCost
	}
	sale := uc.newSale(userID, in.Sale, details)
	return uc.create(ctx, sale, in.Sale.Items, entity.SaleStatus(in.Status))
}

// CreateAdvanceSale registra un adelanto. Sin estado explícito, se completa si lo pagado
// cubre el monto a pagar.
func (uc *SaleUseCase) CreateAdvanceSale(ctx context.Context, userID string, in dto.CreateAdvanceSaleRequest) (*dto.SaleResponse, error) {
	if err := uc.checkClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	sale := uc.newSale(userID, in.Sale, &entity.AdvanceDetails{ClientID: in.ClientID, PaidAmount: in.PaidAmount})
	return uc.create(ctx, sale, in.Sale.Items, entity.SaleStatus(in.Status))
}

func (uc *SaleUseCase) newSale(userID string, in dto.SaleRequest, ch entity.SaleChannel) *entity.Sale {
	now := uc.now()
	return &entity.Sale{
		ID:             uuid.New().String(),
		LocationID:     in.LocationID,
		DiscountAmount: in.DiscountAmount,
		Channel:        ch,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      userID,
	}
}

func (uc *SaleUseCase) create(ctx context.Context, sale *entity.Sale, reqs []dto.SaleItemRequest, status entity.SaleStatus) (*dto.SaleResponse, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkLocation(ctx, sale.LocationID); err != nil {
		return nil, err
	}
	cat := newCatalog(uc.productRepo)
	infos := make([]variantInfo, len(reqs))
	for i, r := range reqs {
		if !r.Quantity.GreaterThan(decimal.Zero) || (r.Price != nil && r.Price.IsNegative()) {
			return nil, domain.ErrInvalidInput
		}
		vi, err := cat.lookup(ctx, r.VariantID)
		if err != nil {
			return nil, err
		}
		infos[i] = vi
	}

	err := uc.txRunner.RunSales(ctx, func(lotRepo repository.StockLotRepository, saleRepo repository.SaleRepository) error {
		variantIDs := make([]string, 0, len(reqs))
		for _, r := range reqs {
			variantIDs = append(variantIDs, r.VariantID)
		}
		before, err := lotRepo.ListForUpdate(ctx, sale.LocationID, variantIDs)
		if err != nil {
			return err
		}
		lots := inv.CloneLots(before)
		for i, r := range reqs {
			var item entity.SaleItem
			item, lots, err = allocateItem(lots, sale.LocationID, infos[i], r.Quantity, r.Price)
			if err != nil {
				return err
			}
			item.SaleID = sale.ID
			sale.Items = append(sale.Items, item)
		}
		if err := uc.recompute(sale); err != nil {
			return err
		}

		if status == "" {
			status = domsales.InitialStatus(sale)
		}
		if !domsales.ValidStatus(sale.ChannelType(), status) {
			return domain.ErrInvalidTransition
		}
		if ch, ok := sale.Channel.(*entity.AdvanceDetails); ok {
			if err := domsales.ValidateAdvanceStatus(status, ch.PaidAmount, sale.TotalAmount.Sub(sale.DiscountAmount)); err != nil {
				return err
			}
		}
		sale.Status = status
		domsales.StampInitial(sale, sale.CreatedAt)

		if err := persistLots(ctx, lotRepo, before, lots); err != nil {
			return err
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("channel", string(sale.ChannelType())).
		Str("status", string(sale.Status)).
		Int("items", len(sale.Items)).
		Str("total_amount", sale.TotalAmount.String()).
		Msg("venta registrada")
	return ToSaleResponse(sale), nil
}

// recompute recalcula totales a partir de las líneas y valida descuento y montos del canal.
func (uc *SaleUseCase) recompute(sale *entity.Sale) error {
	sale.TotalAmount = domsales.TotalAmount(sale.Items)
	sale.TotalCost = domsales.TotalCost(sale.Items, uc.cfg.DefaultCostPerKg)
	return domsales.ValidateAmounts(sale.TotalAmount, sale.DiscountAmount, channelExtras(sale))
}

func channelExtras(sale *entity.Sale) domsales.Extras {
	var extra domsales.Extras
	switch ch := sale.Channel.(type) {
	case *entity.OnlineDetails:
		extra.DeliveryCost = &ch.DeliveryCost
		extra.ReturnCost = &ch.ReturnCost
	case *entity.AdvanceDetails:
		extra.PaidAmount = &ch.PaidAmount
	case *entity.StoreDetails:
	}
	return extra
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

// UpdateSale edita una venta no final. Las líneas enviadas con ID y la misma variante y cantidad
// conservan su asignación; las ausentes devuelven su stock a los lotes de origen y las nuevas
// se asignan FIFO contra el stock ya restaurado.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.DeliveryHandlerID != nil {
		if err := uc.checkDeliveryHandler(ctx, *in.DeliveryHandlerID); err != nil {
			return nil, err
		}
	}
	if in.ClientID != nil {
		if err := uc.checkClient(ctx, *in.ClientID); err != nil {
			return nil, err
		}
	}
	cat := newCatalog(uc.productRepo)
	for _, r := range in.Items {
		if !r.Quantity.GreaterThan(decimal.Zero) || (r.Price != nil && r.Price.IsNegative()) {
			return nil, domain.ErrInvalidInput
		}
		if _, err := cat.lookup(ctx, r.VariantID); err != nil {
			return nil, err
		}
	}

	var sale *entity.Sale
	err := uc.txRunner.RunSales(ctx, func(lotRepo repository.StockLotRepository, saleRepo repository.SaleRepository) error {
		var err error
		sale, err = saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if domsales.IsTerminal(sale.ChannelType(), sale.Status) {
			return domain.ErrTerminalStatus
		}
		if err := applyChannelFields(sale, in); err != nil {
			return err
		}
		if in.DiscountAmount != nil {
			sale.DiscountAmount = *in.DiscountAmount
		}
		if in.Items != nil {
			if err := uc.replaceItems(ctx, lotRepo, sale, in.Items, cat); err != nil {
				return err
			}
		}
		if err := uc.recompute(sale); err != nil {
			return err
		}

		from := sale.Status
		target := from
		if in.Status != nil {
			target = entity.SaleStatus(*in.Status)
		} else if _, ok := sale.Channel.(*entity.AdvanceDetails); ok {
			target = domsales.SummarizeSale(sale).SuggestedStatus
		}
		if err := domsales.Transition(sale, target, uc.now()); err != nil {
			return err
		}
		if domsales.ReleasesStock(from, target) {
			if err := uc.release(ctx, lotRepo, sale); err != nil {
				return err
			}
		}
		sale.UpdatedAt = uc.now()
		return saleRepo.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("status", string(sale.Status)).
		Int("items", len(sale.Items)).
		Msg("venta actualizada")
	return ToSaleResponse(sale), nil
}

func applyChannelFields(sale *entity.Sale, in dto.UpdateSaleRequest) error {
	onlineFields := in.DeliveryHandlerID != nil || in.TrackingNumber != nil || in.DeliveryCost != nil || in.ReturnCost != nil
	advanceFields := in.ClientID != nil || in.PaidAmount != nil

	switch ch := sale.Channel.(type) {
	case *entity.StoreDetails:
		if onlineFields || advanceFields {
			return domain.ErrInvalidInput
		}
	case *entity.OnlineDetails:
		if advanceFields {
			return domain.ErrInvalidInput
		}
		if in.DeliveryHandlerID != nil {
			ch.DeliveryHandlerID = *in.DeliveryHandlerID
		}
		if in.TrackingNumber != nil {
			ch.TrackingNumber = *in.TrackingNumber
		}
		if in.DeliveryCost != nil {
			ch.DeliveryCost = *in.DeliveryCost
		}
		if in.ReturnCost != nil {
			ch.ReturnCost = *in.ReturnCost
		}
	case *entity.AdvanceDetails:
		if onlineFields {
			return domain.ErrInvalidInput
		}
		if in.ClientID != nil {
			ch.ClientID = *in.ClientID
		}
		if in.PaidAmount != nil {
			ch.PaidAmount = *in.PaidAmount
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *SaleUseCase) replaceItems(
	ctx context.Context,
	lotRepo repository.StockLotRepository,
	sale *entity.Sale,
	reqs []dto.SaleItemRequest,
	cat *catalog,
) error {
	existing := make(map[string]entity.SaleItem, len(sale.Items))
	for _, it := range sale.Items {
		existing[it.ID] = it
	}

	// items conserva el orden del pedido; pending marca las posiciones que se asignan de nuevo.
	items := make([]entity.SaleItem, len(reqs))
	var pending []int
	var removed []entity.SaleItem
	referenced := make(map[string]bool)
	for i, r := range reqs {
		if r.ID == "" {
			pending = append(pending, i)
			continue
		}
		cur, ok := existing[r.ID]
		if !ok || referenced[r.ID] {
			return domain.ErrInvalidInput
		}
		referenced[r.ID] = true
		if cur.VariantID != r.VariantID || !cur.Quantity().Equal(r.Quantity) {
			// cambio de variante o cantidad: se devuelve y se vuelve a asignar
			removed = append(removed, cur)
			pending = append(pending, i)
			continue
		}
		if r.Price != nil {
			cur.Price = *r.Price
		}
		items[i] = cur
	}
	for _, it := range sale.Items {
		if !referenced[it.ID] {
			removed = append(removed, it)
		}
	}
	if len(removed) == 0 && len(pending) == 0 {
		sale.Items = items
		return nil
	}

	addedIDs := make([]string, 0, len(pending))
	for _, i := range pending {
		addedIDs = append(addedIDs, reqs[i].VariantID)
	}
	before, err := lotRepo.ListForUpdate(ctx, sale.LocationID, itemVariantIDs(removed, addedIDs...))
	if err != nil {
		return err
	}
	uc.warnUnmatched(sale.ID, before, removed, sale.LocationID)
	lots := inv.Restore(before, removed, sale.LocationID)

	for _, i := range pending {
		r := reqs[i]
		vi, err := cat.lookup(ctx, r.VariantID)
		if err != nil {
			return err
		}
		var item entity.SaleItem
		item, lots, err = allocateItem(lots, sale.LocationID, vi, r.Quantity, r.Price)
		if err != nil {
			return err
		}
		item.SaleID = sale.ID
		items[i] = item
	}
	if err := persistLots(ctx, lotRepo, before, lots); err != nil {
		return err
	}
	sale.Items = items
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado
// ──────────────────────────────────────────────────────────────────────────────

// ChangeStatus aplica la máquina de estados del canal. CANCELED y RETURNED devuelven el stock.
func (uc *SaleUseCase) ChangeStatus(ctx context.Context, id string, status string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	var from entity.SaleStatus
	err := uc.txRunner.RunSales(ctx, func(lotRepo repository.StockLotRepository, saleRepo repository.SaleRepository) error {
		var err error
		sale, err = saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		from = sale.Status
		to := entity.SaleStatus(status)
		if err := domsales.Transition(sale, to, uc.now()); err != nil {
			return err
		}
		if domsales.ReleasesStock(from, to) {
			if err := uc.release(ctx, lotRepo, sale); err != nil {
				return err
			}
		}
		sale.UpdatedAt = uc.now()
		return saleRepo.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("from", string(from)).
		Str("to", string(sale.Status)).
		Msg("estado de venta actualizado")
	return ToSaleResponse(sale), nil
}

// release devuelve a los lotes de origen todo lo asignado a la venta. Solo bloquea los lotes
// que aparecen en el desglose.
func (uc *SaleUseCase) release(ctx context.Context, lotRepo repository.StockLotRepository, sale *entity.Sale) error {
	before, err := lotRepo.ListByPurchaseItems(ctx, sale.LocationID, detailLotIDs(sale.Items))
	if err != nil {
		return err
	}
	uc.warnUnmatched(sale.ID, before, sale.Items, sale.LocationID)
	return persistLots(ctx, lotRepo, before, inv.Restore(before, sale.Items, sale.LocationID))
}

func (uc *SaleUseCase) warnUnmatched(saleID string, lots []entity.StockLot, items []entity.SaleItem, locationID string) {
	for _, d := range inv.Unmatched(lots, items, locationID) {
		uc.log.Warn().
			Str("sale_id", saleID).
			Str("purchase_item_id", d.PurchaseItemID).
			Str("quantity", d.Quantity.String()).
			Msg("lote de origen inexistente; cantidad no restaurada")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

// GetSale obtiene una venta con sus líneas y resumen.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.getSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// ListSales lista ventas paginadas según el filtro.
func (uc *SaleUseCase) ListSales(ctx context.Context, f repository.ListFilter) ([]dto.SaleResponse, int, error) {
	list, total, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSaleResponse(s))
	}
	return out, total, nil
}

// Receipt genera el comprobante PDF de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	s, err := uc.getSale(ctx, id)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByID(ctx, s.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return uc.renderer.RenderSaleReceipt(ctx, s, loc)
}

func (uc *SaleUseCase) getSale(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SaleUseCase) checkLocation(ctx context.Context, id string) error {
	loc, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *SaleUseCase) checkClient(ctx context.Context, id string) error {
	c, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *SaleUseCase) checkDeliveryHandler(ctx context.Context, id string) error {
	h, err := uc.handlerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if h == nil {
		return domain.ErrNotFound
	}
	return nil
}
