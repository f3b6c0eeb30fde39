package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPositionInput posición dentro del payload de creación/actualización de almacén.
// Price es puntero para distinguir "ausente" de cero.
type StockPositionInput struct {
	Product  int64            `json:"product"`
	Quantity int64            `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// CreateStockRequest entrada para crear un almacén con posiciones.
type CreateStockRequest struct {
	Address   string               `json:"address"`
	Positions []StockPositionInput `json:"positions"`
}

// UpdateStockRequest entrada para actualizar un almacén.
// Positions nil = no tocar las posiciones existentes; lista vacía = eliminarlas todas.
type UpdateStockRequest struct {
	Address   *string              `json:"address"`
	Positions []StockPositionInput `json:"positions"`
}

// StockPositionResponse posición ligera (vista de lista y respuestas de escritura).
type StockPositionResponse struct {
	Product  int64           `json:"product"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// StockResponse salida de un almacén con posiciones ligeras.
type StockResponse struct {
	ID        int64                   `json:"id"`
	Address   string                  `json:"address"`
	Positions []StockPositionResponse `json:"positions"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// StockPositionDetailResponse posición con el producto expandido (vista de detalle).
type StockPositionDetailResponse struct {
	ID        int64           `json:"id"`
	Product   ProductResponse `json:"product"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockDetailResponse salida de detalle de un almacén.
type StockDetailResponse struct {
	ID        int64                         `json:"id"`
	Address   string                        `json:"address"`
	Positions []StockPositionDetailResponse `json:"positions"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

// StockListResponse lista paginada de almacenes.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// StockListQuery parámetros de consulta para GET /api/stocks.
// Products es una lista de ids de producto separados por coma.
type StockListQuery struct {
	Address  string `query:"address"`
	Products string `query:"products"`
	Search   string `query:"search"`
	Ordering string `query:"ordering"`
	PageRequest
}
