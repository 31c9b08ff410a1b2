package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const variantColumns = `id, product_id, name, sku, price, weight, average_cost, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y sus variantes.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	for i := range product.Variants {
		if err := r.CreateVariant(ctx, &product.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un producto con sus variantes.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, category, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	variants, err := r.variantsOf(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Variants = variants[p.ID]
	return &p, nil
}

// List productos por nombre/categoría, con sus variantes.
func (r *ProductRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Product, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(name ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	query := `SELECT id, name, description, category, created_at, updated_at FROM products` +
		w.sql() + " ORDER BY name"
	query += w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	var ids []string
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	variants, err := r.variantsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Variants = variants[p.ID]
	}
	return list, nil
}

// CreateVariant persiste una variante. AverageCost inicia en 0.
func (r *ProductRepo) CreateVariant(ctx context.Context, v *entity.Variant) error {
	query := `INSERT INTO variants (` + variantColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ProductID, v.Name, nullIfEmpty(v.SKU), v.Price, v.Weight, v.AverageCost,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetVariant obtiene una variante por ID.
func (r *ProductRepo) GetVariant(ctx context.Context, id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}
	v, err := pgx.CollectOneRow(rows, scanVariant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// UpdateVariantCost actualiza el costo promedio ponderado de la variante.
func (r *ProductRepo) UpdateVariantCost(ctx context.Context, variantID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE variants SET average_cost = $2, updated_at = now() WHERE id = $1`,
		variantID, cost,
	)
	if err != nil {
		return fmt.Errorf("update variant cost: %w", err)
	}
	return nil
}

func (r *ProductRepo) variantsOf(ctx context.Context, productIDs []string) (map[string][]entity.Variant, error) {
	out := make(map[string][]entity.Variant, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+variantColumns+` FROM variants WHERE product_id = ANY($1) ORDER BY created_at, name`,
		productIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanVariant)
	if err != nil {
		return nil, fmt.Errorf("scan variant: %w", err)
	}
	for _, v := range list {
		out[v.ProductID] = append(out[v.ProductID], v)
	}
	return out, nil
}

func scanVariant(row pgx.CollectableRow) (entity.Variant, error) {
	var v entity.Variant
	var sku *string
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &sku, &v.Price, &v.Weight, &v.AverageCost, &v.CreatedAt, &v.UpdatedAt)
	v.SKU = derefStr(sku)
	return v, err
}
