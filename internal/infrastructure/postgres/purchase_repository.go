package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, location_id, supplier, cost_per_kg, shipping_cost, notes, purchased_at, created_at, created_by`

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste cabecera e ítems de la compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.LocationID, nullIfEmpty(p.Supplier), p.CostPerKg, p.ShippingCost, nullIfEmpty(p.Notes),
		p.PurchasedAt, p.CreatedAt, nullIfEmpty(p.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, it := range p.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_items (id, purchase_id, product_id, variant_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, p.ID, it.ProductID, it.VariantID, it.Quantity, it.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus ítems.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	p, err := pgx.CollectOneRow(rows, scanPurchase)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List compras por ubicación, proveedor y rango de fechas, más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Purchase, error) {
	var w whereBuilder
	if f.LocationID != "" {
		w.add("location_id = $%d", f.LocationID)
	}
	if f.Search != "" {
		w.add("supplier ILIKE $%d", "%"+f.Search+"%")
	}
	if f.From != nil {
		w.add("purchased_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("purchased_at <= $%d", *f.To)
	}
	query := `SELECT ` + purchaseColumns + ` FROM purchases` + w.sql() + " ORDER BY purchased_at DESC"
	query += w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanPurchase)
	if err != nil {
		return nil, fmt.Errorf("scan purchase: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PurchaseRepo) attachItems(ctx context.Context, list []*entity.Purchase) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Purchase, len(list))
	ids := make([]string, 0, len(list))
	for _, p := range list {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, variant_id, quantity, unit_cost
		FROM purchase_items WHERE purchase_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list purchase items: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.PurchaseItem])
	if err != nil {
		return fmt.Errorf("scan purchase item: %w", err)
	}
	for _, it := range items {
		p := byID[it.PurchaseID]
		p.Items = append(p.Items, it)
	}
	return nil
}

func scanPurchase(row pgx.CollectableRow) (*entity.Purchase, error) {
	var p entity.Purchase
	var supplier, notes, createdBy *string
	err := row.Scan(&p.ID, &p.LocationID, &supplier, &p.CostPerKg, &p.ShippingCost, &notes,
		&p.PurchasedAt, &p.CreatedAt, &createdBy)
	p.Supplier, p.Notes, p.CreatedBy = derefStr(supplier), derefStr(notes), derefStr(createdBy)
	return &p, err
}
