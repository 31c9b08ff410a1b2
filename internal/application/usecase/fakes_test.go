package usecase_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

type memLocations struct {
	mu   sync.Mutex
	byID map[string]entity.Location
}

func newMemLocations() *memLocations { return &memLocations{byID: map[string]entity.Location{}} }

func (m *memLocations) Create(_ context.Context, l *entity.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[l.ID] = *l
	return nil
}

func (m *memLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memLocations) Update(_ context.Context, l *entity.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[l.ID] = *l
	return nil
}

func (m *memLocations) List(_ context.Context, _, _ int) ([]*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Location, 0, len(m.byID))
	for _, l := range m.byID {
		l := l
		out = append(out, &l)
	}
	return out, nil
}

func (m *memLocations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memProducts struct {
	mu       sync.Mutex
	products map[string]entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Variants = append([]entity.Variant(nil), p.Variants...)
	m.products[p.ID] = cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	p.Variants = append([]entity.Variant(nil), p.Variants...)
	return &p, nil
}

func (m *memProducts) List(_ context.Context, _ repository.ListFilter) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.products))
	for _, p := range m.products {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (m *memProducts) CreateVariant(_ context.Context, v *entity.Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[v.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Variants = append(p.Variants, *v)
	m.products[p.ID] = p
	return nil
}

func (m *memProducts) GetVariant(_ context.Context, id string) (*entity.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		for _, v := range p.Variants {
			if v.ID == id {
				v := v
				return &v, nil
			}
		}
	}
	return nil, nil
}

func (m *memProducts) UpdateVariantCost(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

type memEmployees struct {
	byID map[string]entity.Employee
}

func (m *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	m.byID[e.ID] = *e
	return nil
}

func (m *memEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memEmployees) Update(_ context.Context, e *entity.Employee) error {
	if _, ok := m.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[e.ID] = *e
	return nil
}

func (m *memEmployees) List(_ context.Context, _ repository.ListFilter) ([]*entity.Employee, error) {
	out := make([]*entity.Employee, 0, len(m.byID))
	for _, e := range m.byID {
		e := e
		out = append(out, &e)
	}
	return out, nil
}

type memHandlers struct {
	byID map[string]entity.DeliveryHandler
}

func (m *memHandlers) Create(_ context.Context, h *entity.DeliveryHandler) error {
	m.byID[h.ID] = *h
	return nil
}

func (m *memHandlers) GetByID(_ context.Context, id string) (*entity.DeliveryHandler, error) {
	h, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (m *memHandlers) Update(_ context.Context, h *entity.DeliveryHandler) error {
	m.byID[h.ID] = *h
	return nil
}

func (m *memHandlers) List(_ context.Context, _ repository.ListFilter) ([]*entity.DeliveryHandler, error) {
	out := make([]*entity.DeliveryHandler, 0, len(m.byID))
	for _, h := range m.byID {
		h := h
		out = append(out, &h)
	}
	return out, nil
}

type memClients struct {
	byID map[string]entity.Client
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.byID[c.ID] = *c
	return nil
}

func (m *memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	m.byID[c.ID] = *c
	return nil
}

func (m *memClients) List(_ context.Context, _ repository.ListFilter) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(m.byID))
	for _, c := range m.byID {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

type memExpenses struct {
	byID map[string]entity.Expense
}

func (m *memExpenses) Create(_ context.Context, e *entity.Expense) error {
	m.byID[e.ID] = *e
	return nil
}

func (m *memExpenses) List(_ context.Context, _ repository.ListFilter) ([]*entity.Expense, error) {
	out := make([]*entity.Expense, 0, len(m.byID))
	for _, e := range m.byID {
		e := e
		out = append(out, &e)
	}
	return out, nil
}

func (m *memExpenses) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
