package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/discoteca-api/internal/application/analytics"
)

// DashboardHandler indicadores del back-office.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Indicadores agregados del mes en curso
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/manager/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Serie diaria de ventas del periodo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week | month | year (default month)"
// @Success      200  {array}  dto.SalesPointResponse
// @Router       /api/manager/dashboard/sales [get]
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.Sales(c.Context(), c.Query("period", analytics.PeriodMonth))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Ranking de productos más vendidos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TopProductResponse
// @Router       /api/manager/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
