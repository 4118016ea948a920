package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

// InventoryHandler libro de stock, historial, reporte de bajo stock y exportación.
type InventoryHandler struct {
	setStock *inventory.SetStockUseCase
	history  *inventory.HistoryUseCase
	lowStock *inventory.LowStockUseCase
	export   *inventory.ExportUseCase
	log      *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	setStock *inventory.SetStockUseCase,
	history *inventory.HistoryUseCase,
	lowStock *inventory.LowStockUseCase,
	export *inventory.ExportUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{setStock: setStock, history: history, lowStock: lowStock, export: export, log: log}
}

// SetStock godoc
// @Summary      Fijar el stock de una variante en una ubicación
// @Description  Escribe el valor y registra el cambio (anterior y nuevo) en el historial, atómicamente.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la variante"
// @Param        body  body  dto.SetStockRequest  true  "field: stockTokyo|stockOsaka, value >= 0"
// @Success      200   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/stock [patch]
func (h *InventoryHandler) SetStock(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Value == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "value es requerido"})
	}
	out, err := h.setStock.SetStock(c.UserContext(), actorFrom(c), inventory.SetStockInput{
		VariantID:       c.Params("id"),
		Field:           in.Field,
		Value:           *in.Value,
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// VariantHistory godoc
// @Summary      Historial de stock de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la variante"
// @Param        limit  query  int     false  "Máximo de registros (por defecto 100, máx. 500)"
// @Success      200  {object}  dto.StockHistoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/history [get]
func (h *InventoryHandler) VariantHistory(c *fiber.Ctx) error {
	out, err := h.history.ListByVariant(c.UserContext(), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecentHistory godoc
// @Summary      Últimos cambios de stock (todas las variantes)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (por defecto 100, máx. 500)"
// @Success      200  {object}  dto.StockHistoryListResponse
// @Router       /api/inventory/history [get]
func (h *InventoryHandler) RecentHistory(c *fiber.Ctx) error {
	out, err := h.history.ListRecent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Variantes por debajo de su mínimo, más urgentes primero
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.lowStock.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar inventario en CSV
// @Tags         inventory
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/inventory/export.csv [get]
func (h *InventoryHandler) ExportCSV(c *fiber.Ctx) error {
	body, filename, err := h.export.CSV(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.SendString(body)
}

// ExportPDF godoc
// @Summary      Exportar inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventory/export.pdf [get]
func (h *InventoryHandler) ExportPDF(c *fiber.Ctx) error {
	doc, filename, err := h.export.PDF(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
