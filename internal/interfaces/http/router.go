package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	LocationUC        *usecase.LocationUseCase
	ProductUC         *usecase.ProductUseCase
	ClientUC          *usecase.ClientUseCase
	EmployeeUC        *usecase.EmployeeUseCase
	DeliveryHandlerUC *usecase.DeliveryHandlerUseCase
	ExpenseUC         *usecase.ExpenseUseCase
	StockUC           *inventory.StockUseCase
	PurchaseUC        *inventory.PurchaseUseCase
	SaleUC            *sales.SaleUseCase
	DraftUC           *sales.DraftUseCase
	DashboardUC       *analytics.DashboardUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth: login público, el resto con token
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Ubicaciones
	locations := NewLocationHandler(deps.LocationUC)
	protected.Get("/locations", locations.List)
	protected.Get("/locations/:id", locations.Get)
	protected.Post("/locations", managers, locations.Create)
	protected.Put("/locations/:id", managers, locations.Update)
	protected.Delete("/locations/:id", adminOnly, locations.Delete)

	// Catálogo
	products := NewProductHandler(deps.ProductUC)
	protected.Get("/products", products.List)
	protected.Get("/products/:id", products.Get)
	protected.Post("/products", managers, products.Create)
	protected.Post("/products/:id/variants", managers, products.AddVariant)

	// Stock y compras
	inv := NewInventoryHandler(deps.StockUC, deps.PurchaseUC)
	protected.Get("/stock/lots", inv.ListLots)
	protected.Get("/stock/summary", inv.Summary)
	protected.Get("/purchases", managers, inv.ListPurchases)
	protected.Get("/purchases/:id", managers, inv.GetPurchase)
	protected.Post("/purchases", managers, inv.CreatePurchase)

	// Ventas
	sale := NewSaleHandler(deps.SaleUC)
	protected.Get("/sales", sale.List)
	protected.Post("/sales/store", sale.CreateStore)
	protected.Post("/sales/online", sale.CreateOnline)
	protected.Post("/sales/advance", sale.CreateAdvance)
	protected.Get("/sales/:id", sale.Get)
	protected.Patch("/sales/:id", sale.Update)
	protected.Post("/sales/:id/status", sale.ChangeStatus)
	protected.Get("/sales/:id/receipt", sale.Receipt)

	// Borradores
	drafts := NewDraftHandler(deps.DraftUC)
	protected.Post("/drafts", drafts.Start)
	protected.Get("/drafts/:id", drafts.Get)
	protected.Delete("/drafts/:id", drafts.Discard)
	protected.Post("/drafts/:id/items", drafts.AddItem)
	protected.Put("/drafts/:id/items/:index", drafts.ReplaceItem)
	protected.Delete("/drafts/:id/items/:index", drafts.RemoveItem)
	protected.Post("/drafts/:id/summary", drafts.Summary)

	// Personas y gastos
	people := NewPeopleHandler(deps.ClientUC, deps.EmployeeUC, deps.DeliveryHandlerUC, deps.ExpenseUC)
	protected.Get("/clients", people.ListClients)
	protected.Post("/clients", people.CreateClient)
	protected.Get("/clients/:id", people.GetClient)
	protected.Put("/clients/:id", people.UpdateClient)

	protected.Get("/employees", managers, people.ListEmployees)
	protected.Post("/employees", managers, people.CreateEmployee)
	protected.Get("/employees/:id", managers, people.GetEmployee)
	protected.Put("/employees/:id", managers, people.UpdateEmployee)

	protected.Get("/delivery-handlers", people.ListDeliveryHandlers)
	protected.Get("/delivery-handlers/:id", people.GetDeliveryHandler)
	protected.Post("/delivery-handlers", managers, people.CreateDeliveryHandler)
	protected.Put("/delivery-handlers/:id", managers, people.UpdateDeliveryHandler)

	protected.Get("/expenses", managers, people.ListExpenses)
	protected.Post("/expenses", managers, people.CreateExpense)
	protected.Delete("/expenses/:id", managers, people.DeleteExpense)

	// Tablero
	dashboard := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", managers, dashboard.Get)
}
