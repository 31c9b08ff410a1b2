package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// Cabecera común + columnas por canal en la misma fila; channel indica cuáles aplican.
const saleColumns = `id, channel, location_id, status, total_amount, discount_amount, total_cost,
	completed_at, canceled_at, returned_at,
	delivery_handler_id, tracking_number, delivery_cost, return_cost,
	client_id, paid_amount,
	created_at, updated_at, created_by`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// saleRow columnas planas de la tabla sales.
type saleRow struct {
	completedAt, canceledAt, returnedAt *time.Time
	handlerID, tracking, clientID       *string
	deliveryCost, returnCost, paid      *decimal.Decimal
}

func toSaleRow(s *entity.Sale) (saleRow, error) {
	var row saleRow
	switch ch := s.Channel.(type) {
	case *entity.StoreDetails:
		row.completedAt, row.canceledAt = ch.CompletedAt, ch.CanceledAt
	case *entity.OnlineDetails:
		row.completedAt, row.canceledAt, row.returnedAt = ch.CompletedAt, ch.CanceledAt, ch.ReturnedAt
		row.handlerID, row.tracking = nullIfEmpty(ch.DeliveryHandlerID), nullIfEmpty(ch.TrackingNumber)
		row.deliveryCost, row.returnCost = &ch.DeliveryCost, &ch.ReturnCost
	case *entity.AdvanceDetails:
		row.completedAt, row.canceledAt = ch.CompletedAt, ch.CanceledAt
		row.clientID, row.paid = nullIfEmpty(ch.ClientID), &ch.PaidAmount
	default:
		return row, domain.ErrInvalidInput
	}
	return row, nil
}

// Create persiste cabecera, líneas y desglose por lote.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	row, err := toSaleRow(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.ChannelType(), s.LocationID, s.Status, s.TotalAmount, s.DiscountAmount, s.TotalCost,
		row.completedAt, row.canceledAt, row.returnedAt,
		row.handlerID, row.tracking, row.deliveryCost, row.returnCost,
		row.clientID, row.paid,
		s.CreatedAt, s.UpdatedAt, nullIfEmpty(s.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return r.insertItems(ctx, s)
}

// Update reescribe cabecera y reemplaza las líneas (el desglose cae en cascada).
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	row, err := toSaleRow(s)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales
		SET status = $2, total_amount = $3, discount_amount = $4, total_cost = $5,
		    completed_at = $6, canceled_at = $7, returned_at = $8,
		    delivery_handler_id = $9, tracking_number = $10, delivery_cost = $11, return_cost = $12,
		    client_id = $13, paid_amount = $14, updated_at = $15
		WHERE id = $1`,
		s.ID, s.Status, s.TotalAmount, s.DiscountAmount, s.TotalCost,
		row.completedAt, row.canceledAt, row.returnedAt,
		row.handlerID, row.tracking, row.deliveryCost, row.returnCost,
		row.clientID, row.paid, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, s.ID); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return r.insertItems(ctx, s)
}

func (r *SaleRepo) insertItems(ctx context.Context, s *entity.Sale) error {
	for pos, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, position, product_id, variant_id, product_name, variant_name, price, weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, s.ID, pos, it.ProductID, it.VariantID, it.ProductName, it.VariantName, it.Price, it.Weight,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
		for dpos, d := range it.Details {
			_, err := r.q.Exec(ctx, `
				INSERT INTO sale_item_details (sale_item_id, position, purchase_item_id, quantity, unit_cost, cost_per_kg)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				it.ID, dpos, d.PurchaseItemID, d.Quantity, d.UnitCost, d.CostPerKg,
			)
			if err != nil {
				return fmt.Errorf("insert sale item detail: %w", err)
			}
		}
	}
	return nil
}

// GetByID obtiene una venta completa por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la tx.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s, err := pgx.CollectOneRow(rows, scanSale)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas filtradas y paginadas, más recientes primero; devuelve también el total sin paginar.
func (r *SaleRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Sale, int, error) {
	var w whereBuilder
	if f.LocationID != "" {
		w.add("location_id = $%d", f.LocationID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.Channel != "" {
		w.add("channel = $%d", f.Channel)
	}
	if f.Search != "" {
		w.add("(id::text ILIKE $%[1]d OR tracking_number ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `SELECT ` + saleColumns + ` FROM sales` + where + " ORDER BY created_at DESC"
	query += w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanSale)
	if err != nil {
		return nil, 0, fmt.Errorf("scan sale: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SaleRepo) attachItems(ctx context.Context, list []*entity.Sale) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(list))
	ids := make([]string, 0, len(list))
	for _, s := range list {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.sale_id, i.product_id, i.variant_id, i.product_name, i.variant_name, i.price, i.weight,
		       d.purchase_item_id, d.quantity, d.unit_cost, d.cost_per_kg
		FROM sale_items i
		LEFT JOIN sale_item_details d ON d.sale_item_id = i.id
		WHERE i.sale_id = ANY($1)
		ORDER BY i.sale_id, i.position, d.position`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var current *entity.SaleItem
	var currentSale *entity.Sale
	flush := func() {
		if current != nil {
			currentSale.Items = append(currentSale.Items, *current)
		}
	}
	for rows.Next() {
		var it entity.SaleItem
		var purchaseItemID *string
		var qty, unitCost *decimal.Decimal
		var costPerKg *decimal.Decimal
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.VariantID, &it.ProductName, &it.VariantName,
			&it.Price, &it.Weight, &purchaseItemID, &qty, &unitCost, &costPerKg); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if current == nil || current.ID != it.ID {
			flush()
			current = &it
			currentSale = byID[it.SaleID]
		}
		if purchaseItemID != nil {
			current.Details = append(current.Details, entity.StockAllocationDetail{
				PurchaseItemID: *purchaseItemID,
				Quantity:       *qty,
				UnitCost:       *unitCost,
				CostPerKg:      costPerKg,
			})
		}
	}
	flush()
	return rows.Err()
}

func scanSale(row pgx.CollectableRow) (*entity.Sale, error) {
	var s entity.Sale
	var channel string
	var r saleRow
	var createdBy *string
	err := row.Scan(
		&s.ID, &channel, &s.LocationID, &s.Status, &s.TotalAmount, &s.DiscountAmount, &s.TotalCost,
		&r.completedAt, &r.canceledAt, &r.returnedAt,
		&r.handlerID, &r.tracking, &r.deliveryCost, &r.returnCost,
		&r.clientID, &r.paid,
		&s.CreatedAt, &s.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedBy = derefStr(createdBy)

	switch entity.Channel(channel) {
	case entity.ChannelStore:
		s.Channel = &entity.StoreDetails{CompletedAt: r.completedAt, CanceledAt: r.canceledAt}
	case entity.ChannelOnline:
		s.Channel = &entity.OnlineDetails{
			DeliveryHandlerID: derefStr(r.handlerID),
			TrackingNumber:    derefStr(r.tracking),
			DeliveryCost:      decOrZero(r.deliveryCost),
			ReturnCost:        decOrZero(r.returnCost),
			CompletedAt:       r.completedAt,
			CanceledAt:        r.canceledAt,
			ReturnedAt:        r.returnedAt,
		}
	case entity.ChannelAdvance:
		s.Channel = &entity.AdvanceDetails{
			ClientID:    derefStr(r.clientID),
			PaidAmount:  decOrZero(r.paid),
			CompletedAt: r.completedAt,
			CanceledAt:  r.canceledAt,
		}
	default:
		return nil, fmt.Errorf("canal de venta desconocido %q", channel)
	}
	return &s, nil
}

func decOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
