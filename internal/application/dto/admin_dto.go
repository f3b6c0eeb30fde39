package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSummaryResponse resumen administrativo de un almacén.
type StockSummaryResponse struct {
	ID            int64     `json:"id"`
	Address       string    `json:"address"`
	ProductsCount int64     `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockSummaryListResponse lista de resúmenes de almacén.
type StockSummaryListResponse struct {
	Items []StockSummaryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// AdminPositionResponse posición plana para el listado administrativo.
type AdminPositionResponse struct {
	ID           int64           `json:"id"`
	Stock        int64           `json:"stock"`
	StockAddress string          `json:"stock_address"`
	Product      int64           `json:"product"`
	ProductTitle string          `json:"product_title"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AdminPositionListResponse lista paginada de posiciones.
type AdminPositionListResponse struct {
	Items []AdminPositionResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// CreateAdminPositionRequest alta directa de una posición (fuera de la reconciliación).
type CreateAdminPositionRequest struct {
	Stock    int64            `json:"stock"`
	Product  int64            `json:"product"`
	Quantity int64            `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// UpdateAdminPositionRequest edición directa de cantidad/precio de una posición.
type UpdateAdminPositionRequest struct {
	Quantity *int64           `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}
