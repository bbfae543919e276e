package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/dberr"
	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultReorderLevel is used when a product is created without one.
const defaultReorderLevel = 10

// ProductRequest defines the structure for product creation/update requests.
// The unit price is a pointer so a missing field is rejected while an
// explicit zero price still passes.
type ProductRequest struct {
	Name         string           `json:"name" validate:"required"`
	Code         string           `json:"code" validate:"required"`
	CategoryID   uint             `json:"category_id" validate:"required"`
	SupplierID   uint             `json:"supplier_id" validate:"required"`
	UnitPrice    *decimal.Decimal `json:"unit_price" validate:"required"`
	ReorderLevel *int             `json:"reorder_level"`
	Description  string           `json:"description"`
}

// CreateProduct adds a new product and provisions its zero-quantity
// inventory row in the same transaction.
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")
	prometheus.RecordEntityOperation("product", "create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product request failed validation", zap.Error(err))
		return validationFailed(c, err)
	}

	// Check if a product with the same code already exists
	var count int64
	h.db.Model(&model.Product{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		log.Warn("Product with this code already exists", zap.String("code", req.Code))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Product with this code already exists",
		})
	}

	reorderLevel := defaultReorderLevel
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}

	product := model.Product{
		Name:         req.Name,
		Code:         req.Code,
		CategoryID:   req.CategoryID,
		SupplierID:   req.SupplierID,
		UnitPrice:    *req.UnitPrice,
		ReorderLevel: reorderLevel,
		Description:  req.Description,
	}

	// The product and its inventory row commit or roll back together.
	insertStart := time.Now()
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		inventory := model.Inventory{
			ProductID:       product.ID,
			QuantityInStock: 0,
			LastUpdated:     time.Now(),
		}
		return tx.Create(&inventory).Error
	})
	prometheus.TrackDBOperation("insert")(insertStart)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Product with this code already exists",
			})
		}
		if dberr.IsForeignKeyViolation(err) {
			log.Warn("Referenced category or supplier does not exist",
				zap.Uint("category_id", req.CategoryID),
				zap.Uint("supplier_id", req.SupplierID))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Referenced category or supplier does not exist",
			})
		}
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.String("code", req.Code),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	// Reload with the embedded category and supplier for the response
	if err := h.db.Preload("Category").Preload("Supplier").First(&product, product.ID).Error; err != nil {
		log.Error("Failed to reload created product",
			zap.Uint("product_id", product.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("code", product.Code))
	return c.JSON(http.StatusCreated, product)
}

// ListProducts retrieves products page by page in id order
func (h *Handler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing products")
	prometheus.RecordEntityOperation("product", "list")

	skip, limit := listParams(c)

	products := make([]model.Product, 0)
	result := h.db.Preload("Category").Preload("Supplier").
		Order("id").Offset(skip).Limit(limit).Find(&products)
	if result.Error != nil {
		log.Error("Failed to retrieve products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully",
		zap.Int("count", len(products)),
		zap.Int("skip", skip),
		zap.Int("limit", limit))
	return c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a single product by ID
func (h *Handler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "get")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	log.Info("Getting product by ID", zap.Uint("product_id", id))

	var product model.Product
	if err := h.db.Preload("Category").Preload("Supplier").First(&product, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Product not found", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to retrieve product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct replaces every writable field of an existing product
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	log.Info("Updating product", zap.Uint("product_id", id))

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	var product model.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Product not found for update", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to retrieve product for update",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	// Check if the new code collides with another product
	if req.Code != product.Code {
		var count int64
		h.db.Model(&model.Product{}).Where("code = ? AND id != ?", req.Code, id).Count(&count)
		if count > 0 {
			log.Warn("Product with this code already exists", zap.String("code", req.Code))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Product with this code already exists",
			})
		}
	}

	reorderLevel := defaultReorderLevel
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}

	// Full replacement of the writable fields; created_at is untouched
	product.Name = req.Name
	product.Code = req.Code
	product.CategoryID = req.CategoryID
	product.SupplierID = req.SupplierID
	product.UnitPrice = *req.UnitPrice
	product.ReorderLevel = reorderLevel
	product.Description = req.Description

	updateStart := time.Now()
	err = h.db.Save(&product).Error
	prometheus.TrackDBOperation("update")(updateStart)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Product with this code already exists",
			})
		}
		if dberr.IsForeignKeyViolation(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Referenced category or supplier does not exist",
			})
		}
		log.Error("Failed to update product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	if err := h.db.Preload("Category").Preload("Supplier").First(&product, product.ID).Error; err != nil {
		log.Error("Failed to reload updated product",
			zap.Uint("product_id", product.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("code", product.Code))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product together with its inventory row in one
// transaction, keeping the 1:1 invariant intact.
func (h *Handler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("product", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	log.Info("Deleting product", zap.Uint("product_id", id))

	var product model.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Product not found for deletion", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to retrieve product for deletion",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	deleteStart := time.Now()
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&model.Inventory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	prometheus.TrackDBOperation("delete")(deleteStart)
	if err != nil {
		log.Error("Failed to delete product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	log.Info("Product deleted successfully",
		zap.Uint("product_id", id),
		zap.String("code", product.Code))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}
