package repository

import "github.com/jhoicas/stocks-api/internal/domain/entity"

// StockFilter criterios de listado de almacenes ya normalizados.
// ProductIDs vacío significa "sin filtro de productos" (no-op, no "sin resultados").
type StockFilter struct {
	Address    string // contención, case-insensitive
	Search     string
	ProductIDs []int64 // almacenes con al menos una posición de estos productos
	OrderBy    string  // "created_at" | "address"
	Desc       bool
	Limit      int
	Offset     int
}

// StockRepository define el puerto de persistencia para Stock (DIP).
type StockRepository interface {
	Create(stock *entity.Stock) error
	GetByID(id int64) (*entity.Stock, error)
	// GetByIDForUpdate obtiene el almacén bloqueando la fila (SELECT FOR UPDATE)
	// para serializar reconciliaciones concurrentes sobre el mismo almacén.
	GetByIDForUpdate(id int64) (*entity.Stock, error)
	Update(stock *entity.Stock) error
	List(filter StockFilter) ([]*entity.Stock, error)
	Summary(limit, offset int) ([]*entity.StockSummary, error)
	Delete(id int64) error
}
