package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
)

// InventoryHandler operaciones de stock: traslados, consumos, apertura y registro de movimientos.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Allocate godoc
// @Summary      Distribuir material de la bodega general a una clínica
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la clínica"
// @Param        body  body  dto.ClinicAllocateRequest  true  "material_id, quantity, note"
// @Success      200   {object}  dto.AllocateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /clinics/{id}/allocate [post]
func (h *InventoryHandler) Allocate(c *fiber.Ctx) error {
	clinicID := c.Params("id")
	if clinicID == "" {
		return missingID(c)
	}
	var in dto.ClinicAllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Allocate(c.Context(), GetUserID(c), clinicID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddStock godoc
// @Summary      Entrada directa al inventario de una clínica
// @Description  Descuenta de la bodega general y registra un movimiento Inbound en la clínica.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la clínica"
// @Param        body  body  dto.ClinicAllocateRequest  true  "material_id, quantity, note"
// @Success      200   {object}  dto.ClinicStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /clinics/{id}/stock/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	clinicID := c.Params("id")
	if clinicID == "" {
		return missingID(c)
	}
	var in dto.ClinicAllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddToClinic(c.Context(), GetUserID(c), clinicID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Consume godoc
// @Summary      Consumir material de una clínica
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la clínica"
// @Param        body  body  dto.ClinicConsumeRequest  true  "material_id, quantity, note"
// @Success      200   {object}  dto.ConsumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /clinics/{id}/consume [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	clinicID := c.Params("id")
	if clinicID == "" {
		return missingID(c)
	}
	var in dto.ClinicConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Consume(c.Context(), GetUserID(c), clinicID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetOpen godoc
// @Summary      Marcar un material de la clínica como abierto o cerrado
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string                      true  "ID de la clínica"
// @Param        materialId  path  string                      true  "ID del material"
// @Param        body        body  dto.ClinicStockOpenRequest  true  "is_open"
// @Success      200   {object}  dto.ClinicStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /clinics/{id}/stock/{materialId}/open [post]
func (h *InventoryHandler) SetOpen(c *fiber.Ctx) error {
	clinicID, materialID := c.Params("id"), c.Params("materialId")
	if clinicID == "" || materialID == "" {
		return missingID(c)
	}
	var in dto.ClinicStockOpenRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetOpen(c.Context(), clinicID, materialID, in.IsOpen)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Registro de movimientos de una clínica
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la clínica"
// @Param        limit   query  int     false  "Máximo de registros (1-100, por defecto 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clinics/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	clinicID := c.Params("id")
	if clinicID == "" {
		return missingID(c)
	}
	out, err := h.uc.ListMovements(c.Context(), clinicID, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ClearMovements godoc
// @Summary      Vaciar el registro de movimientos de una clínica
// @Description  No modifica cantidades; solo elimina el historial.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la clínica"
// @Success      200  {object}  dto.ClearMovementsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clinics/{id}/movements [delete]
func (h *InventoryHandler) ClearMovements(c *fiber.Ctx) error {
	clinicID := c.Params("id")
	if clinicID == "" {
		return missingID(c)
	}
	n, err := h.uc.ClearMovements(c.Context(), clinicID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ClearMovementsResponse{Message: "registro de movimientos eliminado", Deleted: n})
}

// GetMovement godoc
// @Summary      Obtener un movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetMovement(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddWarehouseStock godoc
// @Summary      Agregar cantidad a un material de la bodega general
// @Description  Reemplaza el costo unitario y actualiza los datos de la última entrada.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID del material"
// @Param        body  body  dto.MaterialAdjustQuantityRequest  true  "quantity, cost, total"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /materials/{id}/add-stock [post]
func (h *InventoryHandler) AddWarehouseStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.MaterialAdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddWarehouseStock(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignToClinic godoc
// @Summary      Asignar material de la bodega general a una clínica
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID del material"
// @Param        body  body  dto.MaterialAssignToClinicRequest  true  "clinic_id, quantity"
// @Success      200   {object}  dto.AssignToClinicResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /materials/{id}/assign-to-clinic [post]
func (h *InventoryHandler) AssignToClinic(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.MaterialAssignToClinicRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AssignToClinic(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMaterial godoc
// @Summary      Crear material
// @Description  Si trae cantidad registra un movimiento de entrada "Stock inicial" en la bodega general.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialCreateRequest  true  "name, category, quantity, cost, total"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /materials [post]
func (h *InventoryHandler) CreateMaterial(c *fiber.Ctx) error {
	var in dto.MaterialCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateMaterial(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBatch godoc
// @Summary      Crear materiales en lote
// @Description  Todo o nada: si un ítem falla no se guarda ninguno y se listan los errores por ítem.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialCreateBatchRequest  true  "materials"
// @Success      201   {array}   dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /materials/batch [post]
func (h *InventoryHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.MaterialCreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateBatch(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMaterial godoc
// @Summary      Actualizar material (administrativo)
// @Description  Un cambio de cantidad queda registrado como movimiento de la bodega general.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del material"
// @Param        body  body  dto.MaterialUpdateRequest  true  "name, category, quantity, cost"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /materials/{id} [put]
func (h *InventoryHandler) UpdateMaterial(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.MaterialUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateMaterial(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
