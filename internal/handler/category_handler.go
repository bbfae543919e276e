package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/dberr"
	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a new category
func (h *Handler) CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")
	prometheus.RecordEntityOperation("category", "create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Category request failed validation", zap.Error(err))
		return validationFailed(c, err)
	}

	// Check if a category with the same name already exists
	var count int64
	h.db.Model(&model.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Category with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Category with this name already exists",
		})
	}

	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	insertStart := time.Now()
	err := h.db.Create(&category).Error
	prometheus.TrackDBOperation("insert")(insertStart)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			log.Warn("Category with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Category with this name already exists",
			})
		}
		log.Error("Failed to create category",
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create category",
		})
	}

	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// ListCategories retrieves categories page by page in id order
func (h *Handler) ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing categories")
	prometheus.RecordEntityOperation("category", "list")

	skip, limit := listParams(c)

	categories := make([]model.Category, 0)
	result := h.db.Order("id").Offset(skip).Limit(limit).Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	log.Info("Categories retrieved successfully",
		zap.Int("count", len(categories)),
		zap.Int("skip", skip),
		zap.Int("limit", limit))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a single category by ID
func (h *Handler) GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("category", "get")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid category id",
		})
	}
	log.Info("Getting category by ID", zap.Uint("category_id", id))

	var category model.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Category not found", zap.Uint("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Category not found",
			})
		}
		log.Error("Failed to retrieve category",
			zap.Uint("category_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve category",
		})
	}

	return c.JSON(http.StatusOK, category)
}

// UpdateCategory replaces every writable field of an existing category
func (h *Handler) UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("category", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid category id",
		})
	}
	log.Info("Updating category", zap.Uint("category_id", id))

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	var category model.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Category not found for update", zap.Uint("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Category not found",
			})
		}
		log.Error("Failed to retrieve category for update",
			zap.Uint("category_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update category",
		})
	}

	// Check if the new name collides with another category
	if req.Name != category.Name {
		var count int64
		h.db.Model(&model.Category{}).Where("name = ? AND id != ?", req.Name, id).Count(&count)
		if count > 0 {
			log.Warn("Category with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Category with this name already exists",
			})
		}
	}

	// Full replacement of the writable fields; created_at is untouched
	category.Name = req.Name
	category.Description = req.Description

	updateStart := time.Now()
	err = h.db.Save(&category).Error
	prometheus.TrackDBOperation("update")(updateStart)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Category with this name already exists",
			})
		}
		log.Error("Failed to update category",
			zap.Uint("category_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update category",
		})
	}

	log.Info("Category updated successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Categories still referenced by
// products are protected by the foreign key and cannot be deleted.
func (h *Handler) DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("category", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid category id",
		})
	}
	log.Info("Deleting category", zap.Uint("category_id", id))

	deleteStart := time.Now()
	result := h.db.Delete(&model.Category{}, id)
	prometheus.TrackDBOperation("delete")(deleteStart)
	if result.Error != nil {
		if dberr.IsForeignKeyViolation(result.Error) {
			log.Warn("Category is referenced by existing products", zap.Uint("category_id", id))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Category is referenced by existing products",
			})
		}
		log.Error("Failed to delete category",
			zap.Uint("category_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete category",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Category not found for deletion", zap.Uint("category_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	log.Info("Category deleted successfully", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Category deleted successfully",
	})
}
