package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/application/usecase"
)

// StockHandler maneja las peticiones HTTP para Stock (almacenes con posiciones).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Crear almacén con posiciones
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "Dirección y lista opcional de posiciones"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar almacenes
// @Tags         stocks
// @Produce      json
// @Param        address   query  string  false  "Contención en dirección"
// @Param        products  query  string  false  "IDs de producto separados por coma"
// @Param        search    query  string  false  "Búsqueda en dirección"
// @Param        ordering  query  string  false  "created_at | address, prefijo - para descendente"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var q dto.StockListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de almacén
// @Description  Cada posición incluye el producto expandido (título, descripción, fechas).
// @Tags         stocks
// @Produce      json
// @Param        id   path  int  true  "ID del almacén"
// @Success      200  {object}  dto.StockDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "almacén no encontrado")
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "almacén no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar almacén y reconciliar posiciones
// @Description  Si el payload trae positions, el conjunto almacenado queda en
// @Description  correspondencia 1:1 con la lista (altas, bajas y sobreescrituras
// @Description  en una sola transacción). Sin positions, las existentes no se tocan;
// @Description  una lista vacía las elimina todas.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del almacén"
// @Param        body  body  dto.UpdateStockRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "almacén no encontrado")
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar almacén
// @Description  Elimina el almacén y, en cascada, todas sus posiciones.
// @Tags         stocks
// @Param        id  path  int  true  "ID del almacén"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, "almacén no encontrado")
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
