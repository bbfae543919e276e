package handler

import (
	"fmt"
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetCategory(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/categories/", `{"name":"Beverages","description":"Drinks and juices"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Category
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Beverages", created.Name)
	assert.Equal(t, "Drinks and juices", created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/categories/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.Category
	decode(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Description, fetched.Description)

	rec = do(t, e, http.MethodGet, "/categories/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []model.Category
	decode(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/categories/", `{"name":"Snacks"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodPost, "/categories/", `{"name":"Snacks"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoryNotFound(t *testing.T) {
	e := newTestServer(t)

	t.Run("get", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/categories/9999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		rec := do(t, e, http.MethodPut, "/categories/9999", `{"name":"Ghost"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/categories/9999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateCategoryValidation(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/categories/", `{"description":"missing name"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateCategoryReplacesFields(t *testing.T) {
	e := newTestServer(t)
	created := seedCategory(t, e, "Dairy")

	rec := do(t, e, http.MethodPut, fmt.Sprintf("/categories/%d", created.ID),
		`{"name":"Dairy & Eggs","description":"Chilled goods"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Category
	decode(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dairy & Eggs", updated.Name)
	assert.Equal(t, "Chilled goods", updated.Description)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateCategoryNameConflict(t *testing.T) {
	e := newTestServer(t)
	seedCategory(t, e, "Frozen")
	other := seedCategory(t, e, "Bakery")

	rec := do(t, e, http.MethodPut, fmt.Sprintf("/categories/%d", other.ID), `{"name":"Frozen"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	e := newTestServer(t)
	created := seedCategory(t, e, "Seasonal")

	rec := do(t, e, http.MethodDelete, fmt.Sprintf("/categories/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decode(t, rec, &resp)
	assert.Equal(t, "Category deleted successfully", resp["message"])

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/categories/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategoryLeavesProducts(t *testing.T) {
	e := newTestServer(t)
	category := seedCategory(t, e, "Electronics")
	supplier := seedSupplier(t, e, "Acme", "sales@acme.example")
	product := seedProduct(t, e, "ELEC-001", category.ID, supplier.ID, 10)

	do(t, e, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), "")

	// Products referencing the category are never removed implicitly
	rec := do(t, e, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListCategoriesPagination(t *testing.T) {
	e := newTestServer(t)

	ids := make([]uint, 0, 5)
	for i := 1; i <= 5; i++ {
		created := seedCategory(t, e, fmt.Sprintf("Category %d", i))
		ids = append(ids, created.ID)
	}

	rec := do(t, e, http.MethodGet, "/categories/?skip=1&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page []model.Category
	decode(t, rec, &page)
	require.Len(t, page, 2)
	assert.Equal(t, ids[1], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)
}
