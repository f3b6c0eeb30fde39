package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocks-api/internal/application/dto"
)

func TestProductHandler_Create(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Title:       "Teclado",
		Description: "Mecánico",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.ProductResponse
	decodeJSON(t, resp, &out)
	assert.Greater(t, out.ID, int64(0))
	assert.Equal(t, "Teclado", out.Title)
}

func TestProductHandler_Create_SinTitulo(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{Description: "sin título"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, "title")
}

func TestProductHandler_GetByID(t *testing.T) {
	app, _ := newTestApp()
	id := createProduct(t, app, "Teclado")

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "Teclado", out.Title)

	resp = doJSON(t, app, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductHandler_Update_Parcial(t *testing.T) {
	app, _ := newTestApp()
	id := createProduct(t, app, "Teclado")

	desc := "Mecánico RGB"
	resp := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/products/%d", id), dto.UpdateProductRequest{
		Description: &desc,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ProductResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "Teclado", out.Title)
	assert.Equal(t, desc, out.Description)
}

func TestProductHandler_List_Filtros(t *testing.T) {
	app, _ := newTestApp()
	createProduct(t, app, "Teclado mecánico")
	createProduct(t, app, "Monitor")

	resp := doJSON(t, app, http.MethodGet, "/api/products?title=teclado", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductListResponse
	decodeJSON(t, resp, &out)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Teclado mecánico", out.Items[0].Title)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestProductHandler_Delete(t *testing.T) {
	app, _ := newTestApp()
	id := createProduct(t, app, "Teclado")

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
