package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

const lotColumns = `location_id, purchase_item_id, variant_id, product_id, quantity, unit_cost, cost_per_kg, created_at`

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL (usable con pool o tx).
// Un lote se identifica por (location_id, purchase_item_id).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

// List lotes según el filtro, del más antiguo al más nuevo.
func (r *StockLotRepo) List(ctx context.Context, f repository.LotFilter) ([]entity.StockLot, error) {
	var w whereBuilder
	if f.LocationID != "" {
		w.add("location_id = $%d", f.LocationID)
	}
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	if f.VariantID != "" {
		w.add("variant_id = $%d", f.VariantID)
	}
	query := `SELECT ` + lotColumns + ` FROM stock_lots` + w.sql()
	if f.OnlyAvailable {
		if len(w.clauses) == 0 {
			query += " WHERE quantity > 0"
		} else {
			query += " AND quantity > 0"
		}
	}
	query += " ORDER BY created_at, purchase_item_id"
	return r.query(ctx, "list stock lots", query, w.args...)
}

// ListForUpdate bloquea los lotes de las variantes en la ubicación hasta el fin de la tx.
func (r *StockLotRepo) ListForUpdate(ctx context.Context, locationID string, variantIDs []string) ([]entity.StockLot, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + lotColumns + ` FROM stock_lots
		WHERE location_id = $1 AND variant_id = ANY($2)
		ORDER BY created_at, purchase_item_id
		FOR UPDATE`
	return r.query(ctx, "list stock lots for update", query, locationID, variantIDs)
}

// ListByPurchaseItems bloquea los lotes referenciados por detalles de asignación.
func (r *StockLotRepo) ListByPurchaseItems(ctx context.Context, locationID string, purchaseItemIDs []string) ([]entity.StockLot, error) {
	if len(purchaseItemIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + lotColumns + ` FROM stock_lots
		WHERE location_id = $1 AND purchase_item_id = ANY($2)
		ORDER BY created_at, purchase_item_id
		FOR UPDATE`
	return r.query(ctx, "list stock lots by purchase items", query, locationID, purchaseItemIDs)
}

// Create persiste un lote nuevo.
func (r *StockLotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `INSERT INTO stock_lots (` + lotColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		lot.LocationID, lot.PurchaseItemID, lot.VariantID, lot.ProductID,
		lot.Quantity, lot.UnitCost, lot.CostPerKg, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad disponible del lote.
func (r *StockLotRepo) UpdateQuantity(ctx context.Context, locationID, purchaseItemID string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_lots SET quantity = $3 WHERE location_id = $1 AND purchase_item_id = $2`,
		locationID, purchaseItemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock lot quantity: %w", err)
	}
	return nil
}

func (r *StockLotRepo) query(ctx context.Context, op, query string, args ...any) ([]entity.StockLot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lots, err := pgx.CollectRows(rows, scanLot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lots, nil
}

func scanLot(row pgx.CollectableRow) (entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(&l.LocationID, &l.PurchaseItemID, &l.VariantID, &l.ProductID,
		&l.Quantity, &l.UnitCost, &l.CostPerKg, &l.CreatedAt)
	return l, err
}
