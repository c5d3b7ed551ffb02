package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dental-inventory-api/internal/application/usecase"
)

// MaterialHandler consultas del catálogo de materiales y baja.
// Las escrituras que mueven stock están en InventoryHandler.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        with_open_status  query  bool  false  "Incluye cantidad distribuida y estado abierto por clínica"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("with_open_status", false) {
		out, err := h.uc.ListWithOpenStatus(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Stock general por material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MaterialGeneralStockResponse
// @Router       /materials/summary [get]
func (h *MaterialHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /materials/categories [get]
func (h *MaterialHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Categories())
}

// ByCategory godoc
// @Summary      Materiales de una categoría
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        category  path  string  true  "Nombre o número de la categoría"
// @Success      200  {array}   dto.MaterialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /materials/by-category/{category} [get]
func (h *MaterialHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /materials/{id} [get]
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
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

// Delete godoc
// @Summary      Eliminar material
// @Tags         materials
// @Security     Bearer
// @Param        id  path  string  true  "ID del material"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
