package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FinancialHandler libro de ingresos y egresos por clínica.
type FinancialHandler struct {
	uc  *finance.TransactionUseCase
	now func() time.Time
}

// NewFinancialHandler construye el handler.
func NewFinancialHandler(uc *finance.TransactionUseCase) *FinancialHandler {
	return &FinancialHandler{uc: uc, now: func() time.Time { return time.Now().UTC() }}
}

// List godoc
// @Summary      Listar transacciones
// @Description  Ordenadas por fecha de transacción y luego por creación, ambas descendentes.
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        clinic_id  query  string  false  "ID de la clínica"
// @Param        date       query  string  false  "Fecha (YYYY-MM-DD)"
// @Success      200  {array}   dto.FinancialTransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /financial-transactions [get]
func (h *FinancialHandler) List(c *fiber.Ctx) error {
	date, err := optionalDate(c, "date")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), c.Query("clinic_id"), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener transacción
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.FinancialTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /financial-transactions/{id} [get]
func (h *FinancialHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar ingreso o egreso
// @Tags         financial
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinancialTransactionCreateRequest  true  "clinic_id, transaction_type (Income|Expense), amount, description, transaction_date"
// @Success      201  {object}  dto.FinancialTransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /financial-transactions [post]
func (h *FinancialHandler) Create(c *fiber.Ctx) error {
	var in dto.FinancialTransactionCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar transacción
// @Description  Solo el usuario que la creó o un Master.
// @Tags         financial
// @Security     Bearer
// @Param        id  path  string  true  "ID de la transacción"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /financial-transactions/{id} [delete]
func (h *FinancialHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), GetRole(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DailyBalance godoc
// @Summary      Balance diario de una clínica
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        clinic_id  query  string  true   "ID de la clínica"
// @Param        date       query  string  false  "Fecha (YYYY-MM-DD, por defecto hoy)"
// @Success      200  {object}  dto.DailyBalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /financial-transactions/daily-balance [get]
func (h *FinancialHandler) DailyBalance(c *fiber.Ctx) error {
	date, err := h.dateOrToday(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.DailyBalance(c.Context(), c.Query("clinic_id"), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DailyBalancePDF godoc
// @Summary      Balance diario en PDF
// @Tags         financial
// @Security     Bearer
// @Produce      application/pdf
// @Param        clinic_id  query  string  true   "ID de la clínica"
// @Param        date       query  string  false  "Fecha (YYYY-MM-DD, por defecto hoy)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /financial-transactions/daily-balance/pdf [get]
func (h *FinancialHandler) DailyBalancePDF(c *fiber.Ctx) error {
	date, err := h.dateOrToday(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, name, err := h.uc.DailyBalancePDF(c.Context(), c.Query("clinic_id"), date)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", name, doc)
}

// Export godoc
// @Summary      Exportar transacciones a Excel
// @Tags         financial
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        clinic_id   query  string  false  "ID de la clínica (vacío = todas)"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /financial-transactions/export [get]
func (h *FinancialHandler) Export(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, name, err := h.uc.Export(c.Context(), start, end, c.Query("clinic_id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, contentTypeXLSX, name, doc)
}

// Dashboard godoc
// @Summary      Resumen financiero
// @Description  Totales del rango, historial diario y desempeño por clínica. Por defecto el mes en curso.
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        clinic_id   query  string  false  "ID de la clínica"
// @Success      200  {object}  dto.FinancialDashboardSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /financial-transactions/dashboard [get]
func (h *FinancialHandler) Dashboard(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Dashboard(c.Context(), start, end, c.Query("clinic_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *FinancialHandler) dateOrToday(c *fiber.Ctx) (time.Time, error) {
	date, err := optionalDate(c, "date")
	if err != nil {
		return time.Time{}, err
	}
	if date == nil {
		return h.now(), nil
	}
	return *date, nil
}

func dateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	start, err := optionalDate(c, "start_date")
	if err != nil {
		return nil, nil, err
	}
	end, err := optionalDate(c, "end_date")
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
