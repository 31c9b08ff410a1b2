package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
)

// LocationHandler CRUD de ubicaciones.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateLocationRequest  true  "name, address"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener ubicación
// @Tags         locations
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.UpdateLocationRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Security     Bearer
// @Param        page       query  int  false  "página (1..)"
// @Param        page_size  query  int  false  "tamaño (máx 100)"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	lf := f.ListFilter()
	items, err := h.uc.List(c.UserContext(), lf.Limit, lf.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}

// Delete godoc
// @Summary      Eliminar ubicación
// @Tags         locations
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductHandler catálogo de productos y variantes.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto con variantes
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateProductRequest  true  "producto y variantes"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddVariant godoc
// @Summary      Agregar variante
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.CreateVariantRequest  true  "variante"
// @Success      201   {object}  dto.VariantResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants [post]
func (h *ProductHandler) AddVariant(c *fiber.Ctx) error {
	var in dto.CreateVariantRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddVariant(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Security     Bearer
// @Param        search     query  string  false  "texto en nombre o SKU"
// @Param        category   query  string  false  "categoría"
// @Param        page       query  int     false  "página"
// @Param        page_size  query  int     false  "tamaño"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, err := h.uc.List(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, 0))
}
