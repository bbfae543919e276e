package handler

import (
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/dberr"
	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InventoryUpdateRequest carries the only writable inventory field. The
// quantity is a pointer so an explicit zero passes validation.
type InventoryUpdateRequest struct {
	QuantityInStock *int `json:"quantity_in_stock" validate:"required"`
}

// ListInventory retrieves inventory rows page by page in id order
func (h *Handler) ListInventory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing inventory")
	prometheus.RecordEntityOperation("inventory", "list")

	skip, limit := listParams(c)

	inventory := make([]model.Inventory, 0)
	result := h.db.Preload("Product").Preload("Product.Category").Preload("Product.Supplier").
		Order("id").Offset(skip).Limit(limit).Find(&inventory)
	if result.Error != nil {
		log.Error("Failed to retrieve inventory", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve inventory",
		})
	}

	log.Info("Inventory retrieved successfully",
		zap.Int("count", len(inventory)),
		zap.Int("skip", skip),
		zap.Int("limit", limit))
	return c.JSON(http.StatusOK, inventory)
}

// GetInventory retrieves the inventory row for a product. The lookup key
// is the product reference, not the inventory id.
func (h *Handler) GetInventory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("inventory", "get")

	productID, err := parseID(c, "product_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	log.Info("Getting inventory by product ID", zap.Uint("product_id", productID))

	var inventory model.Inventory
	result := h.db.Preload("Product").Preload("Product.Category").Preload("Product.Supplier").
		Where("product_id = ?", productID).First(&inventory)
	if result.Error != nil {
		if dberr.IsNotFound(result.Error) {
			log.Warn("Inventory record not found", zap.Uint("product_id", productID))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Inventory record not found",
			})
		}
		log.Error("Failed to retrieve inventory record",
			zap.Uint("product_id", productID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve inventory record",
		})
	}

	return c.JSON(http.StatusOK, inventory)
}

// UpdateInventory overwrites the stock quantity for a product and stamps
// the row with the current time.
func (h *Handler) UpdateInventory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("inventory", "update")

	productID, err := parseID(c, "product_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	log.Info("Updating inventory", zap.Uint("product_id", productID))

	var req InventoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", productID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Inventory request failed validation", zap.Error(err))
		return validationFailed(c, err)
	}

	var inventory model.Inventory
	if err := h.db.Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Inventory record not found for update", zap.Uint("product_id", productID))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Inventory record not found",
			})
		}
		log.Error("Failed to retrieve inventory record for update",
			zap.Uint("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update inventory record",
		})
	}

	oldQuantity := inventory.QuantityInStock

	// Only the quantity and the timestamp change; other columns stay as-is.
	updates := map[string]interface{}{
		"quantity_in_stock": *req.QuantityInStock,
		"last_updated":      time.Now(),
	}
	updateStart := time.Now()
	err = h.db.Model(&inventory).Updates(updates).Error
	prometheus.TrackDBOperation("update")(updateStart)
	if err != nil {
		log.Error("Failed to update inventory record",
			zap.Uint("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update inventory record",
		})
	}

	result := h.db.Preload("Product").Preload("Product.Category").Preload("Product.Supplier").
		First(&inventory, inventory.ID)
	if result.Error != nil {
		log.Error("Failed to reload inventory record",
			zap.Uint("product_id", productID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update inventory record",
		})
	}

	log.Info("Inventory updated successfully",
		zap.Uint("product_id", productID),
		zap.Int("old_quantity", oldQuantity),
		zap.Int("new_quantity", inventory.QuantityInStock))
	return c.JSON(http.StatusOK, inventory)
}

// LowStockReport returns every product whose stock is at or below its
// reorder level, with the shortage relative to that level.
func (h *Handler) LowStockReport(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Computing low-stock report")
	prometheus.RecordEntityOperation("inventory", "low_stock_report")

	items := make([]model.LowStockItem, 0)
	queryStart := time.Now()
	err := h.db.Table("products").
		Select("products.id AS product_id, " +
			"products.name AS product_name, " +
			"inventory.quantity_in_stock AS current_stock, " +
			"products.reorder_level AS reorder_level, " +
			"products.reorder_level - inventory.quantity_in_stock AS shortage").
		Joins("JOIN inventory ON inventory.product_id = products.id").
		Where("inventory.quantity_in_stock <= products.reorder_level").
		Scan(&items).Error
	prometheus.TrackDBOperation("query")(queryStart)
	if err != nil {
		log.Error("Failed to compute low-stock report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute low-stock report",
		})
	}

	for _, item := range items {
		prometheus.UpdateLowStock(
			strconv.FormatUint(uint64(item.ProductID), 10),
			item.ProductName,
			float64(item.CurrentStock))
	}

	log.Info("Low-stock report computed", zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, items)
}
