package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El costo promedio de las variantes se maneja vía compras.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un producto con sus variantes iniciales. AverageCost inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	seen := make(map[string]bool, len(in.Variants))
	for _, v := range in.Variants {
		variant, err := newVariant(product.ID, v, now)
		if err != nil {
			return nil, err
		}
		if variant.SKU != "" {
			if seen[variant.SKU] {
				return nil, domain.ErrDuplicate
			}
			seen[variant.SKU] = true
		}
		product.Variants = append(product.Variants, *variant)
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// AddVariant agrega una variante a un producto existente.
func (uc *ProductUseCase) AddVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := uc.get(ctx, productID)
	if err != nil {
		return nil, err
	}
	variant, err := newVariant(product.ID, in, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateVariant(ctx, variant); err != nil {
		return nil, err
	}
	resp := toVariantResponse(variant)
	return &resp, nil
}

// GetByID obtiene un producto por ID con sus variantes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List busca productos por nombre/categoría con paginación.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ListFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func newVariant(productID string, in dto.CreateVariantRequest, now time.Time) (*entity.Variant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Weight.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Variant{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Name:        name,
		SKU:         strings.TrimSpace(in.SKU),
		Price:       in.Price,
		Weight:      in.Weight,
		AverageCost: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func toVariantResponse(v *entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:          v.ID,
		ProductID:   v.ProductID,
		Name:        v.Name,
		SKU:         v.SKU,
		Price:       v.Price,
		Weight:      v.Weight,
		AverageCost: v.AverageCost,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, toVariantResponse(&p.Variants[i]))
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
