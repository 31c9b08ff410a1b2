package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// InventoryHandler stock por lotes y compras.
type InventoryHandler struct {
	stock     *inventory.StockUseCase
	purchases *inventory.PurchaseUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, purchases *inventory.PurchaseUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, purchases: purchases}
}

// ListLots godoc
// @Summary      Lotes de stock actuales
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Param        location_id     query  string  false  "ubicación"
// @Param        product_id      query  string  false  "producto"
// @Param        variant_id      query  string  false  "variante"
// @Param        only_available  query  bool    false  "omitir lotes agotados"
// @Success      200  {array}   dto.StockLotResponse
// @Router       /api/stock/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	f := repository.LotFilter{
		LocationID:    c.Query("location_id"),
		ProductID:     c.Query("product_id"),
		VariantID:     c.Query("variant_id"),
		OnlyAvailable: c.QueryBool("only_available", false),
	}
	out, err := h.stock.ListLots(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []dto.StockLotResponse{}
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Disponibilidad de una variante en una ubicación
// @Tags         stock
// @Produce      json
// @Security     Bearer
// @Param        location_id  query  string  true  "ubicación"
// @Param        variant_id   query  string  true  "variante"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	locationID, variantID := c.Query("location_id"), c.Query("variant_id")
	if locationID == "" || variantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id y variant_id son requeridos"})
	}
	out, err := h.stock.Summary(c.UserContext(), locationID, variantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Description  Crea la compra, un lote por línea en la ubicación y actualiza el costo promedio de cada variante.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreatePurchaseRequest  true  "compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *InventoryHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.purchases.RegisterPurchase(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPurchase godoc
// @Summary      Obtener compra
// @Tags         purchases
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *InventoryHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.purchases.GetPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Produce      json
// @Security     Bearer
// @Param        location_id  query  string  false  "ubicación"
// @Param        from         query  string  false  "desde"
// @Param        to           query  string  false  "hasta"
// @Param        page         query  int     false  "página"
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *InventoryHandler) ListPurchases(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, err := h.purchases.ListPurchases(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}
