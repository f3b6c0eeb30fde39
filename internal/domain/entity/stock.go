package entity

import "time"

// Stock representa un almacén con inventario de productos.
type Stock struct {
	ID        int64
	Address   string // máx. 300 caracteres
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockSummary resumen de un almacén para listados administrativos.
type StockSummary struct {
	ID            int64
	Address       string
	ProductsCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
