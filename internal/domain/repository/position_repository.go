package repository

import "github.com/jhoicas/stocks-api/internal/domain/entity"

// PositionRepository define el puerto de persistencia para las posiciones
// de producto por almacén (DIP).
type PositionRepository interface {
	// ListByStock devuelve las posiciones de un almacén con el producto expandido (JOIN).
	ListByStock(stockID int64) ([]*entity.Position, error)
	// ListByStockIDs devuelve las posiciones (sin expandir producto) de varios almacenes.
	ListByStockIDs(stockIDs []int64) ([]*entity.Position, error)
	ListAll(limit, offset int) ([]*entity.PositionRow, error)
	GetByID(id int64) (*entity.Position, error)
	// Create inserta sin upsert; una violación del único (stock, product)
	// se traduce a domain.ErrDuplicate.
	Create(position *entity.Position) error
	// Upsert inserta o, si ya existe posición para (stock, product), sobreescribe
	// quantity/price en sitio conservando id y created_at.
	Upsert(position *entity.Position) error
	Update(position *entity.Position) error
	// DeleteMissing elimina las posiciones del almacén cuyo producto no está
	// en keepProductIDs. Con keepProductIDs vacío elimina todas.
	DeleteMissing(stockID int64, keepProductIDs []int64) error
	Delete(id int64) error
}
