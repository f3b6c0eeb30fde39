package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position representa la posición de un producto en un almacén
// (cantidad y precio). Única por par (stock, product).
type Position struct {
	ID        int64
	StockID   int64
	ProductID int64
	Quantity  int64           // >= 0
	Price     decimal.Decimal // NUMERIC(10,2)
	CreatedAt time.Time
	UpdatedAt time.Time

	// Product se rellena solo en consultas con JOIN (vista de detalle).
	Product *Product
}

// PositionRow fila plana para el listado administrativo de posiciones
// (incluye dirección del almacén y título del producto).
type PositionRow struct {
	ID           int64
	StockID      int64
	StockAddress string
	ProductID    int64
	ProductTitle string
	Quantity     int64
	Price        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
