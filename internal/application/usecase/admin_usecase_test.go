package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/application/usecase"
	"github.com/jhoicas/stocks-api/internal/domain"
	"github.com/jhoicas/stocks-api/internal/testutil"
)

func (e *env) admin() *usecase.AdminUseCase {
	return usecase.NewAdminUseCase(
		&testutil.StockRepo{Store: e.store},
		&testutil.ProductRepo{Store: e.store},
		&testutil.PositionRepo{Store: e.store},
	)
}

func TestAdminUseCase_CreatePosition(t *testing.T) {
	e := newEnv()
	admin := e.admin()
	p1 := e.mustProduct(t, "Teclado")
	stock, err := e.stocks.Create(context.Background(), dto.CreateStockRequest{Address: "Bodega"})
	require.NoError(t, err)

	out, err := admin.CreatePosition(dto.CreateAdminPositionRequest{
		Stock: stock.ID, Product: p1, Quantity: 3, Price: dec("12.50"),
	})
	require.NoError(t, err)
	assert.Greater(t, out.ID, int64(0))
	assert.Equal(t, "Bodega", out.StockAddress)
	assert.Equal(t, "Teclado", out.ProductTitle)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestAdminUseCase_CreatePosition_Duplicada(t *testing.T) {
	e := newEnv()
	admin := e.admin()
	p1 := e.mustProduct(t, "Teclado")
	stock, err := e.stocks.Create(context.Background(), dto.CreateStockRequest{
		Address:   "Bodega",
		Positions: []dto.StockPositionInput{pos(p1, 1, "10")},
	})
	require.NoError(t, err)

	// El único (stock, product) ya está ocupado: validación, no duplicado.
	_, err = admin.CreatePosition(dto.CreateAdminPositionRequest{
		Stock: stock.ID, Product: p1, Quantity: 9, Price: dec("1"),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "product")
	assert.Len(t, e.store.Positions, 1)
}

func TestAdminUseCase_CreatePosition_Validaciones(t *testing.T) {
	e := newEnv()
	admin := e.admin()

	_, err := admin.CreatePosition(dto.CreateAdminPositionRequest{
		Stock: 999, Product: 888, Quantity: -1, Price: dec("1.234"),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "stock")
	assert.Contains(t, verr.Fields, "product")
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "price")
}

func TestAdminUseCase_UpdatePosition(t *testing.T) {
	e := newEnv()
	admin := e.admin()
	p1 := e.mustProduct(t, "Teclado")
	stock, err := e.stocks.Create(context.Background(), dto.CreateStockRequest{
		Address:   "Bodega",
		Positions: []dto.StockPositionInput{pos(p1, 1, "10")},
	})
	require.NoError(t, err)
	posID := e.store.PositionsByStock(stock.ID)[p1].ID

	qty := int64(42)
	out, err := admin.UpdatePosition(posID, dto.UpdateAdminPositionRequest{Quantity: &qty, Price: dec("99.90")})
	require.NoError(t, err)
	assert.Equal(t, qty, out.Quantity)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("99.90")))
	assert.Equal(t, "Bodega", out.StockAddress)

	neg := int64(-1)
	_, err = admin.UpdatePosition(posID, dto.UpdateAdminPositionRequest{Quantity: &neg})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")

	out, err = admin.UpdatePosition(99999, dto.UpdateAdminPositionRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestAdminUseCase_DeletePosition(t *testing.T) {
	e := newEnv()
	admin := e.admin()
	p1 := e.mustProduct(t, "Teclado")
	stock, err := e.stocks.Create(context.Background(), dto.CreateStockRequest{
		Address:   "Bodega",
		Positions: []dto.StockPositionInput{pos(p1, 1, "10")},
	})
	require.NoError(t, err)
	posID := e.store.PositionsByStock(stock.ID)[p1].ID

	require.NoError(t, admin.DeletePosition(posID))
	assert.Empty(t, e.store.Positions)
	assert.ErrorIs(t, admin.DeletePosition(posID), domain.ErrNotFound)
}

func TestAdminUseCase_StocksSummary(t *testing.T) {
	e := newEnv()
	admin := e.admin()
	p1 := e.mustProduct(t, "Teclado")
	p2 := e.mustProduct(t, "Monitor")
	ctx := context.Background()

	s1, err := e.stocks.Create(ctx, dto.CreateStockRequest{
		Address:   "Bodega norte",
		Positions: []dto.StockPositionInput{pos(p1, 1, "10"), pos(p2, 2, "20")},
	})
	require.NoError(t, err)
	s2, err := e.stocks.Create(ctx, dto.CreateStockRequest{Address: "Bodega sur"})
	require.NoError(t, err)

	out, err := admin.StocksSummary(dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	counts := map[int64]int64{}
	for _, item := range out.Items {
		counts[item.ID] = item.ProductsCount
	}
	assert.Equal(t, int64(2), counts[s1.ID])
	assert.Equal(t, int64(0), counts[s2.ID])
}

func TestAdminUseCase_ListPositions(t *testing.T) {
	e := newEnv()
	admin := e.admin()
	p1 := e.mustProduct(t, "Teclado")
	_, err := e.stocks.Create(context.Background(), dto.CreateStockRequest{
		Address:   "Bodega",
		Positions: []dto.StockPositionInput{pos(p1, 4, "10.00")},
	})
	require.NoError(t, err)

	out, err := admin.ListPositions(dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Bodega", out.Items[0].StockAddress)
	assert.Equal(t, "Teclado", out.Items[0].ProductTitle)
	assert.Equal(t, int64(4), out.Items[0].Quantity)
}
