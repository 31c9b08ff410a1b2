package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLocation_CrearActualizarEliminar(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocations())
	ctx := context.Background()

	loc, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "  Centro ", Address: "Rue 1"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", loc.Name)

	upd, err := uc.Update(ctx, loc.ID, dto.UpdateLocationRequest{Address: ptr("Rue 2")})
	require.NoError(t, err)
	assert.Equal(t, "Centro", upd.Name)
	assert.Equal(t, "Rue 2", upd.Address)

	_, err = uc.Update(ctx, loc.ID, dto.UpdateLocationRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, loc.ID))
	_, err = uc.GetByID(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CrearConVariantesYAgregar(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProducts{products: map[string]entity.Product{}})
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Camiseta",
		Variants: []dto.CreateVariantRequest{
			{Name: "S", SKU: "CAM-S", Price: decimal.NewFromInt(20), Weight: decimal.NewFromInt(150)},
			{Name: "M", SKU: "CAM-M", Price: decimal.NewFromInt(20), Weight: decimal.NewFromInt(170)},
		},
	})
	require.NoError(t, err)
	require.Len(t, p.Variants, 2)
	assert.True(t, p.Variants[0].AverageCost.IsZero())

	v, err := uc.AddVariant(ctx, p.ID, dto.CreateVariantRequest{Name: "L", Price: decimal.NewFromInt(22)})
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProductID)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Variants, 3)

	_, err = uc.AddVariant(ctx, "no-existe", dto.CreateVariantRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_SKURepetidoEnElMismoAlta(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProducts{products: map[string]entity.Product{}})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Taza",
		Variants: []dto.CreateVariantRequest{
			{Name: "Roja", SKU: "T-1"},
			{Name: "Azul", SKU: "T-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_PrecioNegativo(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProducts{products: map[string]entity.Product{}})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Taza",
		Variants: []dto.CreateVariantRequest{{Name: "Roja", Price: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repartidores (unión EMPLOYEE | AGENCY)
// ──────────────────────────────────────────────────────────────────────────────

func newHandlerUC(t *testing.T) (*usecase.DeliveryHandlerUseCase, *usecase.EmployeeUseCase) {
	t.Helper()
	employees := &memEmployees{byID: map[string]entity.Employee{}}
	return usecase.NewDeliveryHandlerUseCase(&memHandlers{byID: map[string]entity.DeliveryHandler{}}, employees),
		usecase.NewEmployeeUseCase(employees)
}

func TestDeliveryHandler_EmpleadoYAgencia(t *testing.T) {
	uc, employees := newHandlerUC(t)
	ctx := context.Background()

	emp, err := employees.Create(ctx, dto.CreateEmployeeRequest{FirstName: "Luc", LastName: "Martin"})
	require.NoError(t, err)

	h, err := uc.Create(ctx, dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerEmployee, EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryHandlerEmployee, h.Type)
	require.NotNil(t, h.Employee)
	assert.Equal(t, "Luc Martin", h.Employee.FullName)
	assert.Nil(t, h.Agency)

	// cambiar a agencia limpia el empleado
	h, err = uc.Update(ctx, h.ID, dto.DeliveryHandlerRequest{
		Type:   entity.DeliveryHandlerAgency,
		Agency: &dto.AgencyRequest{Name: "Colis Express", Phone: "0102"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryHandlerAgency, h.Type)
	assert.Empty(t, h.EmployeeID)
	require.NotNil(t, h.Agency)
	assert.Equal(t, "Colis Express", h.Agency.Name)
}

func TestDeliveryHandler_DatosIncoherentes(t *testing.T) {
	uc, employees := newHandlerUC(t)
	ctx := context.Background()

	emp, err := employees.Create(ctx, dto.CreateEmployeeRequest{FirstName: "Luc"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.DeliveryHandlerRequest
		want error
	}{
		{"empleado sin id", dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerEmployee}, domain.ErrInvalidInput},
		{"empleado con agencia", dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerEmployee, EmployeeID: emp.ID, Agency: &dto.AgencyRequest{Name: "x"}}, domain.ErrInvalidInput},
		{"agencia sin datos", dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerAgency}, domain.ErrInvalidInput},
		{"agencia con empleado", dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerAgency, EmployeeID: emp.ID, Agency: &dto.AgencyRequest{Name: "x"}}, domain.ErrInvalidInput},
		{"tipo desconocido", dto.DeliveryHandlerRequest{Type: "DRONE"}, domain.ErrInvalidInput},
		{"empleado inexistente", dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerEmployee, EmployeeID: "nadie"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDeliveryHandler_EmpleadoInactivo(t *testing.T) {
	uc, employees := newHandlerUC(t)
	ctx := context.Background()

	emp, err := employees.Create(ctx, dto.CreateEmployeeRequest{FirstName: "Luc"})
	require.NoError(t, err)
	_, err = employees.Update(ctx, emp.ID, dto.UpdateEmployeeRequest{Active: ptr(false)})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.DeliveryHandlerRequest{Type: entity.DeliveryHandlerEmployee, EmployeeID: emp.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_CrearYActualizar(t *testing.T) {
	uc := usecase.NewClientUseCase(&memClients{byID: map[string]entity.Client{}})
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Marie", Phone: " 0600 "})
	require.NoError(t, err)
	assert.Equal(t, "0600", c.Phone)

	c, err = uc.Update(ctx, c.ID, dto.UpdateClientRequest{Email: ptr("marie@mail.fr")})
	require.NoError(t, err)
	assert.Equal(t, "marie@mail.fr", c.Email)
	assert.Equal(t, "Marie", c.Name)

	_, err = uc.GetByID(ctx, "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpense_UbicacionDebeExistir(t *testing.T) {
	locations := newMemLocations()
	require.NoError(t, locations.Create(context.Background(), &entity.Location{ID: "loc-1", Name: "Centro"}))
	uc := usecase.NewExpenseUseCase(&memExpenses{byID: map[string]entity.Expense{}}, locations)
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", dto.CreateExpenseRequest{Category: "alquiler", Amount: decimal.NewFromInt(500), LocationID: "otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "user-1", dto.CreateExpenseRequest{Category: "alquiler", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	e, err := uc.Create(ctx, "user-1", dto.CreateExpenseRequest{Category: "alquiler", Amount: decimal.NewFromInt(500), LocationID: "loc-1"})
	require.NoError(t, err)
	assert.False(t, e.SpentAt.IsZero())

	list, err := uc.List(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, e.ID))
	assert.ErrorIs(t, uc.Delete(ctx, e.ID), domain.ErrNotFound)
}
