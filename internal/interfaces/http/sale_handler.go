package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
)

// SaleHandler ventas por canal.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func submitted(c *fiber.Ctx, status int, msg string, sale *dto.SaleResponse) error {
	return c.Status(status).JSON(dto.SubmitResponse{Status: dto.SubmitStatusSuccess, Message: msg, Data: sale})
}

// CreateStore godoc
// @Summary      Registrar venta en tienda
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateStoreSaleRequest  true  "venta"
// @Success      201   {object}  dto.SubmitResponse{data=dto.SaleResponse}
// @Failure      409   {object}  dto.SubmitResponse
// @Failure      422   {object}  dto.SubmitResponse
// @Router       /api/sales/store [post]
func (h *SaleHandler) CreateStore(c *fiber.Ctx) error {
	var in dto.CreateStoreSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateStoreSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeSubmitError(c, err)
	}
	return submitted(c, fiber.StatusCreated, "venta registrada", out)
}

// CreateOnline godoc
// @Summary      Registrar venta en línea
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateOnlineSaleRequest  true  "venta"
// @Success      201   {object}  dto.SubmitResponse{data=dto.SaleResponse}
// @Failure      409   {object}  dto.SubmitResponse
// @Failure      422   {object}  dto.SubmitResponse
// @Router       /api/sales/online [post]
func (h *SaleHandler) CreateOnline(c *fiber.Ctx) error {
	var in dto.CreateOnlineSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateOnlineSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeSubmitError(c, err)
	}
	return submitted(c, fiber.StatusCreated, "venta registrada", out)
}

// CreateAdvance godoc
// @Summary      Registrar venta por adelanto
// @Description  COMPLETED solo si paid_amount cubre el monto a pagar; sin status se deriva del pago.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateAdvanceSaleRequest  true  "venta"
// @Success      201   {object}  dto.SubmitResponse{data=dto.SaleResponse}
// @Failure      409   {object}  dto.SubmitResponse
// @Failure      422   {object}  dto.SubmitResponse
// @Router       /api/sales/advance [post]
func (h *SaleHandler) CreateAdvance(c *fiber.Ctx) error {
	var in dto.CreateAdvanceSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateAdvanceSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeSubmitError(c, err)
	}
	return submitted(c, fiber.StatusCreated, "venta registrada", out)
}

// Update godoc
// @Summary      Editar venta
// @Description  Las líneas con id se conservan; las ausentes devuelven su cantidad a los lotes; las nuevas se asignan FIFO.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateSaleRequest  true  "cambios"
// @Success      200   {object}  dto.SubmitResponse{data=dto.SaleResponse}
// @Failure      404   {object}  dto.SubmitResponse
// @Failure      409   {object}  dto.SubmitResponse
// @Router       /api/sales/{id} [patch]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSale(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeSubmitError(c, err)
	}
	return submitted(c, fiber.StatusOK, "venta actualizada", out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.ChangeStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.SubmitResponse{data=dto.SaleResponse}
// @Failure      409   {object}  dto.SubmitResponse
// @Router       /api/sales/{id}/status [post]
func (h *SaleHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeSubmitError(c, err)
	}
	return submitted(c, fiber.StatusOK, "estado actualizado", out)
}

// Get godoc
// @Summary      Obtener venta con su resumen
// @Tags         sales
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Security     Bearer
// @Param        channel      query  string  false  "STORE, ONLINE o ADVANCE"
// @Param        status       query  string  false  "estado"
// @Param        location_id  query  string  false  "ubicación"
// @Param        from         query  string  false  "desde"
// @Param        to           query  string  false  "hasta"
// @Param        page         query  int     false  "página"
// @Param        page_size    query  int     false  "tamaño"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	items, total, err := h.uc.ListSales(c.UserContext(), f.ListFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listOf(items, f, total))
}

// Receipt godoc
// @Summary      Recibo PDF de la venta
// @Tags         sales
// @Produce      application/pdf
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="recibo-%s.pdf"`, id))
	return c.Send(pdf)
}
