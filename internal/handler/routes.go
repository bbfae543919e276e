package handler

import "github.com/labstack/echo/v4"

// Register mounts every API route on e. Collection endpoints keep their
// trailing slash; the static low-stock route coexists with the
// :product_id parameter route.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Status)
	e.GET("/health", h.Health)

	e.POST("/categories/", h.CreateCategory)
	e.GET("/categories/", h.ListCategories)
	e.GET("/categories/:id", h.GetCategory)
	e.PUT("/categories/:id", h.UpdateCategory)
	e.DELETE("/categories/:id", h.DeleteCategory)

	e.POST("/suppliers/", h.CreateSupplier)
	e.GET("/suppliers/", h.ListSuppliers)
	e.GET("/suppliers/:id", h.GetSupplier)
	e.PUT("/suppliers/:id", h.UpdateSupplier)
	e.DELETE("/suppliers/:id", h.DeleteSupplier)

	e.POST("/products/", h.CreateProduct)
	e.GET("/products/", h.ListProducts)
	e.GET("/products/:id", h.GetProduct)
	e.PUT("/products/:id", h.UpdateProduct)
	e.DELETE("/products/:id", h.DeleteProduct)

	e.GET("/inventory/", h.ListInventory)
	e.GET("/inventory/low-stock/", h.LowStockReport)
	e.GET("/inventory/:product_id", h.GetInventory)
	e.PUT("/inventory/:product_id", h.UpdateInventory)
}
