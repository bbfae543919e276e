package handler

import (
	"fmt"
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetSupplier(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/suppliers/",
		`{"name":"Fresh Farms","contact_person":"Jamie Cole","email":"jamie@freshfarms.example","phone":"+1555000111","address":"12 Orchard Rd"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Supplier
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Fresh Farms", created.Name)
	assert.Equal(t, "Jamie Cole", created.ContactPerson)
	require.NotNil(t, created.Email)
	assert.Equal(t, "jamie@freshfarms.example", *created.Email)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/suppliers/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.Supplier
	decode(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
}

func TestCreateSupplierDuplicateEmail(t *testing.T) {
	e := newTestServer(t)
	seedSupplier(t, e, "First Co", "shared@suppliers.example")

	rec := do(t, e, http.MethodPost, "/suppliers/",
		`{"name":"Second Co","email":"shared@suppliers.example"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateSuppliersWithoutEmail(t *testing.T) {
	e := newTestServer(t)

	// Email is optional; suppliers without one never conflict
	first := seedSupplier(t, e, "No Mail One", "")
	second := seedSupplier(t, e, "No Mail Two", "")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Nil(t, first.Email)
}

func TestCreateSupplierEmptyEmailNormalized(t *testing.T) {
	e := newTestServer(t)

	// An explicit empty email is stored as absent and never conflicts
	rec := do(t, e, http.MethodPost, "/suppliers/", `{"name":"Blank One","email":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var first model.Supplier
	decode(t, rec, &first)
	assert.Nil(t, first.Email)

	rec = do(t, e, http.MethodPost, "/suppliers/", `{"name":"Blank Two","email":""}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdateSupplierEmptyEmailNormalized(t *testing.T) {
	e := newTestServer(t)
	created := seedSupplier(t, e, "Mailful", "drop@supplier.example")

	rec := do(t, e, http.MethodPut, fmt.Sprintf("/suppliers/%d", created.ID),
		`{"name":"Mailless","email":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Supplier
	decode(t, rec, &updated)
	assert.Nil(t, updated.Email)
}

func TestCreateSupplierInvalidEmail(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/suppliers/", `{"name":"Broken","email":"not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSupplierNotFound(t *testing.T) {
	e := newTestServer(t)

	t.Run("get", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/suppliers/404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		rec := do(t, e, http.MethodPut, "/suppliers/404", `{"name":"Ghost"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/suppliers/404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateSupplierReplacesFields(t *testing.T) {
	e := newTestServer(t)
	created := seedSupplier(t, e, "Old Name", "old@supplier.example")

	rec := do(t, e, http.MethodPut, fmt.Sprintf("/suppliers/%d", created.ID),
		`{"name":"New Name","contact_person":"Sam Reed","email":"new@supplier.example","phone":"+1555222333","address":"7 Dock St"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Supplier
	decode(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "new@supplier.example", *updated.Email)
	assert.Equal(t, "Sam Reed", updated.ContactPerson)
}

func TestDeleteSupplier(t *testing.T) {
	e := newTestServer(t)
	created := seedSupplier(t, e, "Short Lived", "")

	rec := do(t, e, http.MethodDelete, fmt.Sprintf("/suppliers/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decode(t, rec, &resp)
	assert.Equal(t, "Supplier deleted successfully", resp["message"])

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/suppliers/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSuppliersPagination(t *testing.T) {
	e := newTestServer(t)

	ids := make([]uint, 0, 4)
	for i := 1; i <= 4; i++ {
		created := seedSupplier(t, e, fmt.Sprintf("Supplier %d", i), "")
		ids = append(ids, created.ID)
	}

	rec := do(t, e, http.MethodGet, "/suppliers/?skip=2&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page []model.Supplier
	decode(t, rec, &page)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)
}
