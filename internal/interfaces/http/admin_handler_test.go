package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocks-api/internal/application/dto"
)

func TestAdminHandler_StocksSummary(t *testing.T) {
	app, _ := newTestApp()
	p1 := createProduct(t, app, "Teclado")
	createStock(t, app, dto.CreateStockRequest{
		Address:   "Bodega norte",
		Positions: []dto.StockPositionInput{position(p1, 1, "10")},
	})
	createStock(t, app, dto.CreateStockRequest{Address: "Bodega sur"})

	resp := doJSON(t, app, http.MethodGet, "/api/admin/stocks/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StockSummaryListResponse
	decodeJSON(t, resp, &out)
	require.Len(t, out.Items, 2)

	counts := map[string]int64{}
	for _, item := range out.Items {
		counts[item.Address] = item.ProductsCount
	}
	assert.Equal(t, int64(1), counts["Bodega norte"])
	assert.Equal(t, int64(0), counts["Bodega sur"])
}

func TestAdminHandler_CreatePosition(t *testing.T) {
	app, _ := newTestApp()
	p1 := createProduct(t, app, "Teclado")
	stock := createStock(t, app, dto.CreateStockRequest{Address: "Bodega"})

	price := decimal.RequireFromString("12.50")
	resp := doJSON(t, app, http.MethodPost, "/api/admin/positions", dto.CreateAdminPositionRequest{
		Stock: stock.ID, Product: p1, Quantity: 3, Price: &price,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.AdminPositionResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "Bodega", out.StockAddress)
	assert.Equal(t, "Teclado", out.ProductTitle)

	// Segunda alta para el mismo par (stock, product): validación.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/positions", dto.CreateAdminPositionRequest{
		Stock: stock.ID, Product: p1, Quantity: 9, Price: &price,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp dto.ErrorResponse
	decodeJSON(t, resp, &errResp)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, "product")
}

func TestAdminHandler_ListPositions(t *testing.T) {
	app, _ := newTestApp()
	p1 := createProduct(t, app, "Teclado")
	createStock(t, app, dto.CreateStockRequest{
		Address:   "Bodega",
		Positions: []dto.StockPositionInput{position(p1, 4, "10.00")},
	})

	resp := doJSON(t, app, http.MethodGet, "/api/admin/positions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AdminPositionListResponse
	decodeJSON(t, resp, &out)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Bodega", out.Items[0].StockAddress)
	assert.Equal(t, "Teclado", out.Items[0].ProductTitle)
}

func TestAdminHandler_UpdateYDeletePosition(t *testing.T) {
	app, _ := newTestApp()
	p1 := createProduct(t, app, "Teclado")
	createStock(t, app, dto.CreateStockRequest{
		Address:   "Bodega",
		Positions: []dto.StockPositionInput{position(p1, 4, "10.00")},
	})

	resp := doJSON(t, app, http.MethodGet, "/api/admin/positions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.AdminPositionListResponse
	decodeJSON(t, resp, &list)
	require.Len(t, list.Items, 1)
	posID := list.Items[0].ID

	qty := int64(42)
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/positions/%d", posID), dto.UpdateAdminPositionRequest{
		Quantity: &qty,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AdminPositionResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, qty, out.Quantity)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/positions/%d", posID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/positions/%d", posID), dto.UpdateAdminPositionRequest{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
