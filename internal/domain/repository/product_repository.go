package repository

import "github.com/jhoicas/stocks-api/internal/domain/entity"

// ProductFilter criterios de listado de productos ya normalizados
// (la capa de consulta valida ordering contra la lista blanca antes de llegar aquí).
type ProductFilter struct {
	Title       string // contención, case-insensitive
	Description string
	Search      string // contención sobre title O description
	OrderBy     string // "created_at" | "title"
	Desc        bool
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	// ExistingIDs devuelve el subconjunto de ids que existen en products.
	ExistingIDs(ids []int64) (map[int64]bool, error)
	Delete(id int64) error
}
