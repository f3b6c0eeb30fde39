package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/application/usecase"
)

// AdminHandler gestión directa de registros (resúmenes y posiciones sueltas).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// StocksSummary godoc
// @Summary      Resumen de almacenes
// @Description  Cada almacén con su número de productos distintos.
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.StockSummaryListResponse
// @Router       /api/admin/stocks/summary [get]
func (h *AdminHandler) StocksSummary(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.StocksSummary(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPositions godoc
// @Summary      Listar posiciones
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.AdminPositionListResponse
// @Router       /api/admin/positions [get]
func (h *AdminHandler) ListPositions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListPositions(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePosition godoc
// @Summary      Alta directa de posición
// @Description  Inserta sin reconciliar; un duplicado de (stock, product) se rechaza como validación.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdminPositionRequest  true  "stock, product, quantity, price"
// @Success      201   {object}  dto.AdminPositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/positions [post]
func (h *AdminHandler) CreatePosition(c *fiber.Ctx) error {
	var in dto.CreateAdminPositionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreatePosition(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePosition godoc
// @Summary      Edición directa de posición
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la posición"
// @Param        body  body  dto.UpdateAdminPositionRequest  true  "quantity y/o price"
// @Success      200   {object}  dto.AdminPositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/positions/{id} [put]
func (h *AdminHandler) UpdatePosition(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "posición no encontrada")
	}
	var in dto.UpdateAdminPositionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdatePosition(id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "posición no encontrada")
	}
	return c.JSON(out)
}

// DeletePosition godoc
// @Summary      Baja directa de posición
// @Tags         admin
// @Param        id  path  int  true  "ID de la posición"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/positions/{id} [delete]
func (h *AdminHandler) DeletePosition(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "posición no encontrada")
	}
	if err := h.uc.DeletePosition(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
