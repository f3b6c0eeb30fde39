package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocks-api/internal/application/usecase"
	apihttp "github.com/jhoicas/stocks-api/internal/interfaces/http"
	"github.com/jhoicas/stocks-api/internal/testutil"
)

// newTestApp levanta la app Fiber con las rutas reales sobre repos en memoria.
func newTestApp() (*fiber.App, *testutil.MemStore) {
	store := testutil.NewMemStore()
	productRepo := &testutil.ProductRepo{Store: store}
	stockRepo := &testutil.StockRepo{Store: store}
	positionRepo := &testutil.PositionRepo{Store: store}
	txRunner := &testutil.TxRunner{Store: store}

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(productRepo),
		StockUC:   usecase.NewStockUseCase(txRunner, stockRepo, positionRepo),
		AdminUC:   usecase.NewAdminUseCase(stockRepo, productRepo, positionRepo),
	})
	return app, store
}

// doJSON ejecuta una petición contra la app y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeJSON deserializa el cuerpo de la respuesta en out.
func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
