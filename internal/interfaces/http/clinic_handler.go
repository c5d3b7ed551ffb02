package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/usecase"
)

// ClinicHandler CRUD de clínicas.
type ClinicHandler struct {
	uc *usecase.ClinicUseCase
}

// NewClinicHandler construye el handler.
func NewClinicHandler(uc *usecase.ClinicUseCase) *ClinicHandler {
	return &ClinicHandler{uc: uc}
}

// List godoc
// @Summary      Listar clínicas
// @Tags         clinics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClinicResponse
// @Router       /clinics [get]
func (h *ClinicHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MyClinics godoc
// @Summary      Resumen de clínicas
// @Description  Materiales distintos y cantidad total por clínica.
// @Tags         clinics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClinicSummaryResponse
// @Router       /clinics/my-clinics [get]
func (h *ClinicHandler) MyClinics(c *fiber.Ctx) error {
	out, err := h.uc.MyClinics(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una clínica
// @Description  Stock ordenado por nombre de material (incluye cantidades en cero) y últimos movimientos.
// @Tags         clinics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la clínica"
// @Success      200  {object}  dto.ClinicDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clinics/{id} [get]
func (h *ClinicHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear clínica
// @Tags         clinics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClinicRequest  true  "name"
// @Success      201  {object}  dto.ClinicResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /clinics [post]
func (h *ClinicHandler) Create(c *fiber.Ctx) error {
	var in dto.ClinicRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar clínica
// @Tags         clinics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la clínica"
// @Param        body  body  dto.ClinicRequest  true  "name"
// @Success      200  {object}  dto.ClinicResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clinics/{id} [put]
func (h *ClinicHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.ClinicRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar clínica
// @Description  Elimina también su stock, movimientos y transacciones.
// @Tags         clinics
// @Security     Bearer
// @Param        id  path  string  true  "ID de la clínica"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clinics/{id} [delete]
func (h *ClinicHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
