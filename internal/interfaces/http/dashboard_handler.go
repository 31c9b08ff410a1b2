package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
)

// DashboardHandler expone el tablero del período.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Tablero del período
// @Description  Ventas, costo, margen, gastos, KPIs por canal y ranking de variantes. Sin from/to usa el mes en curso.
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Param        from  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        to    query  string  false  "YYYY-MM-DD o RFC3339 (incluye el día)"
// @Success      200   {object}  dto.DashboardDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	f, ok, err := queryFilter(c)
	if !ok {
		return err
	}
	var from, to time.Time
	if f.From != nil {
		from = *f.From
	}
	if f.To != nil {
		to = *f.To
	}
	out, err := h.uc.Dashboard(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

