package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/internal/validation"
	"inventory-service/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestServer builds an Echo instance with all routes registered over an
// in-memory database.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	// Foreign keys are enforced so dangling references fail like they
	// would on Postgres
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	e := echo.New()
	e.Validator = validation.New()
	New(db).Register(e)
	return e
}

// do performs a request against the test server and returns the recorder.
func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func seedCategory(t *testing.T, e *echo.Echo, name string) model.Category {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/categories/",
		fmt.Sprintf(`{"name":%q,"description":"seeded"}`, name))
	require.Equal(t, http.StatusCreated, rec.Code)
	var category model.Category
	decode(t, rec, &category)
	return category
}

func seedSupplier(t *testing.T, e *echo.Echo, name, email string) model.Supplier {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	if email != "" {
		body = fmt.Sprintf(`{"name":%q,"email":%q}`, name, email)
	}
	rec := do(t, e, http.MethodPost, "/suppliers/", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var supplier model.Supplier
	decode(t, rec, &supplier)
	return supplier
}

func seedProduct(t *testing.T, e *echo.Echo, code string, categoryID, supplierID uint, reorderLevel int) model.Product {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/products/",
		fmt.Sprintf(`{"name":"Product %s","code":%q,"category_id":%d,"supplier_id":%d,"unit_price":19.99,"reorder_level":%d}`,
			code, code, categoryID, supplierID, reorderLevel))
	require.Equal(t, http.StatusCreated, rec.Code)
	var product model.Product
	decode(t, rec, &product)
	return product
}

func setStock(t *testing.T, e *echo.Echo, productID uint, quantity int) {
	t.Helper()
	rec := do(t, e, http.MethodPut, fmt.Sprintf("/inventory/%d", productID),
		fmt.Sprintf(`{"quantity_in_stock":%d}`, quantity))
	require.Equal(t, http.StatusOK, rec.Code)
}
