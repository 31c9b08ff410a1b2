package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
)

// DraftHandler sesiones de edición de ventas con snapshot de lotes.
type DraftHandler struct {
	uc *sales.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *sales.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Start godoc
// @Summary      Abrir borrador
// @Description  Con sale_id carga las líneas de la venta para editarla.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.StartDraftRequest  true  "ubicación y venta opcional"
// @Success      201   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Start(c *fiber.Ctx) error {
	var in dto.StartDraftRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.StartDraft(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea al borrador
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.DraftItemRequest  true  "línea"
// @Success      200   {object}  dto.DraftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	var in dto.DraftItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReplaceItem godoc
// @Summary      Reemplazar línea del borrador
// @Description  La cantidad de la línea anterior vuelve al snapshot antes de asignar la nueva.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id     path  string                true  "ID"
// @Param        index  path  int                   true  "posición de la línea"
// @Param        body   body  dto.DraftItemRequest  true  "línea"
// @Success      200    {object}  dto.DraftResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index} [put]
func (h *DraftHandler) ReplaceItem(c *fiber.Ctx) error {
	index, ok, err := indexParam(c, "index")
	if !ok {
		return err
	}
	var in dto.DraftItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.ReplaceItem(c.UserContext(), c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea del borrador
// @Tags         drafts
// @Produce      json
// @Security     Bearer
// @Param        id     path  string  true  "ID"
// @Param        index  path  int     true  "posición de la línea"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index} [delete]
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	index, ok, err := indexParam(c, "index")
	if !ok {
		return err
	}
	out, err := h.uc.RemoveItem(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen financiero del borrador
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.DraftSummaryRequest  true  "descuento y montos del canal"
// @Success      200   {object}  dto.SummaryResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/summary [post]
func (h *DraftHandler) Summary(c *fiber.Ctx) error {
	var in dto.DraftSummaryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Summary(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
