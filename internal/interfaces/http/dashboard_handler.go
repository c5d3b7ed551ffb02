package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/dental-inventory-api/internal/application/analytics"
)

// DashboardHandler reportes de gasto en materiales (solo Master).
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// FinancialSummary gasto en materiales del rango: un grupo global y uno por clínica.
// GET /dashboard/financial-summary
//
// Sin fechas se usa desde el día 1 del mes en curso hasta ahora. end_date incluye el día completo.
// clinic_id limita los movimientos a esa clínica; el id de "todas las clínicas" equivale a vacío.
//
// @Summary      Gasto en materiales
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        clinic_id   query  string  false  "ID de la clínica"
// @Success      200  {object}  dto.DashboardFinancialSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /dashboard/financial-summary [get]
func (h *DashboardHandler) FinancialSummary(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return writeError(c, err)
	}
	summary, err := h.uc.FinancialSummary(c.Context(), start, end, c.Query("clinic_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// ClinicDetails godoc
// @Summary      Detalle operativo de una clínica
// @Description  Stock con cantidad mayor a cero y los últimos 20 movimientos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la clínica"
// @Success      200  {object}  dto.DashboardClinicDetail
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /dashboard/clinic/{id} [get]
func (h *DashboardHandler) ClinicDetails(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.ClinicDetails(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
