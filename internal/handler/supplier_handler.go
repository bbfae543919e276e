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

// SupplierRequest defines the structure for supplier creation/update
// requests. All contact fields are optional.
type SupplierRequest struct {
	Name          string  `json:"name" validate:"required"`
	ContactPerson string  `json:"contact_person"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
}

// normalizeEmail treats an explicit empty string as an absent email so
// empty values never occupy the unique index.
func normalizeEmail(email *string) *string {
	if email == nil || *email == "" {
		return nil
	}
	return email
}

// emailTaken reports whether another supplier already uses the email.
// excludeID is 0 on create.
func (h *Handler) emailTaken(email *string, excludeID uint) bool {
	if email == nil || *email == "" {
		return false
	}
	var count int64
	query := h.db.Model(&model.Supplier{}).Where("email = ?", *email)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}

// CreateSupplier adds a new supplier
func (h *Handler) CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new supplier")
	prometheus.RecordEntityOperation("supplier", "create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Supplier request failed validation", zap.Error(err))
		return validationFailed(c, err)
	}
	req.Email = normalizeEmail(req.Email)

	if h.emailTaken(req.Email, 0) {
		log.Warn("Supplier with this email already exists", zap.String("email", *req.Email))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Supplier with this email already exists",
		})
	}

	supplier := model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}

	insertStart := time.Now()
	err := h.db.Create(&supplier).Error
	prometheus.TrackDBOperation("insert")(insertStart)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Supplier with this email already exists",
			})
		}
		log.Error("Failed to create supplier",
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create supplier",
		})
	}

	log.Info("Supplier created successfully",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// ListSuppliers retrieves suppliers page by page in id order
func (h *Handler) ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing suppliers")
	prometheus.RecordEntityOperation("supplier", "list")

	skip, limit := listParams(c)

	suppliers := make([]model.Supplier, 0)
	result := h.db.Order("id").Offset(skip).Limit(limit).Find(&suppliers)
	if result.Error != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve suppliers",
		})
	}

	log.Info("Suppliers retrieved successfully",
		zap.Int("count", len(suppliers)),
		zap.Int("skip", skip),
		zap.Int("limit", limit))
	return c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves a single supplier by ID
func (h *Handler) GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "get")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier id",
		})
	}
	log.Info("Getting supplier by ID", zap.Uint("supplier_id", id))

	var supplier model.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Supplier not found", zap.Uint("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Supplier not found",
			})
		}
		log.Error("Failed to retrieve supplier",
			zap.Uint("supplier_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve supplier",
		})
	}

	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier replaces every writable field of an existing supplier
func (h *Handler) UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier id",
		})
	}
	log.Info("Updating supplier", zap.Uint("supplier_id", id))

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	req.Email = normalizeEmail(req.Email)

	var supplier model.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			log.Warn("Supplier not found for update", zap.Uint("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Supplier not found",
			})
		}
		log.Error("Failed to retrieve supplier for update",
			zap.Uint("supplier_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update supplier",
		})
	}

	if h.emailTaken(req.Email, id) {
		log.Warn("Supplier with this email already exists", zap.String("email", *req.Email))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Supplier with this email already exists",
		})
	}

	// Full replacement of the writable fields; created_at is untouched
	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address

	updateStart := time.Now()
	err = h.db.Save(&supplier).Error
	prometheus.TrackDBOperation("update")(updateStart)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Supplier with this email already exists",
			})
		}
		log.Error("Failed to update supplier",
			zap.Uint("supplier_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update supplier",
		})
	}

	log.Info("Supplier updated successfully",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier. Suppliers still referenced by
// products are protected by the foreign key and cannot be deleted.
func (h *Handler) DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("supplier", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier id",
		})
	}
	log.Info("Deleting supplier", zap.Uint("supplier_id", id))

	deleteStart := time.Now()
	result := h.db.Delete(&model.Supplier{}, id)
	prometheus.TrackDBOperation("delete")(deleteStart)
	if result.Error != nil {
		if dberr.IsForeignKeyViolation(result.Error) {
			log.Warn("Supplier is referenced by existing products", zap.Uint("supplier_id", id))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Supplier is referenced by existing products",
			})
		}
		log.Error("Failed to delete supplier",
			zap.Uint("supplier_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete supplier",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Supplier not found for deletion", zap.Uint("supplier_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Supplier not found",
		})
	}

	log.Info("Supplier deleted successfully", zap.Uint("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Supplier deleted successfully",
	})
}
