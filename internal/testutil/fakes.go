// Package testutil provee dobles en memoria de los puertos de persistencia
// para tests de casos de uso y handlers, incluido un TxRunner con
// snapshot/rollback que reproduce la atomicidad de la transacción real.
package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stocks-api/internal/domain"
	"github.com/jhoicas/stocks-api/internal/domain/entity"
	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

// MemStore estado compartido por los repos fake.
type MemStore struct {
	Products  map[int64]*entity.Product
	Stocks    map[int64]*entity.Stock
	Positions map[int64]*entity.Position

	nextProductID  int64
	nextStockID    int64
	nextPositionID int64
}

// NewMemStore crea un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		Products:  map[int64]*entity.Product{},
		Stocks:    map[int64]*entity.Stock{},
		Positions: map[int64]*entity.Position{},
	}
}

func (s *MemStore) clone() *MemStore {
	c := NewMemStore()
	c.nextProductID, c.nextStockID, c.nextPositionID = s.nextProductID, s.nextStockID, s.nextPositionID
	for id, p := range s.Products {
		cp := *p
		c.Products[id] = &cp
	}
	for id, st := range s.Stocks {
		cp := *st
		c.Stocks[id] = &cp
	}
	for id, pos := range s.Positions {
		cp := *pos
		cp.Product = nil
		c.Positions[id] = &cp
	}
	return c
}

func (s *MemStore) restore(from *MemStore) {
	s.Products, s.Stocks, s.Positions = from.Products, from.Stocks, from.Positions
	s.nextProductID, s.nextStockID, s.nextPositionID = from.nextProductID, from.nextStockID, from.nextPositionID
}

// PositionsByStock devuelve copias de las posiciones vivas de un almacén,
// indexadas por producto. Útil para asserts de estado.
func (s *MemStore) PositionsByStock(stockID int64) map[int64]entity.Position {
	out := map[int64]entity.Position{}
	for _, pos := range s.Positions {
		if pos.StockID == stockID {
			out[pos.ProductID] = *pos
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner fake: ejecuta fn sobre el estado vivo y, si falla, restaura el
// snapshot previo (rollback).
type TxRunner struct {
	Store *MemStore
}

// Run implementa usecase.TxRunner.
func (r *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	positionRepo repository.PositionRepository,
) error) error {
	snapshot := r.Store.clone()
	err := fn(&StockRepo{Store: r.Store}, &ProductRepo{Store: r.Store}, &PositionRepo{Store: r.Store})
	if err != nil {
		r.Store.restore(snapshot)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

// ProductRepo fake en memoria.
type ProductRepo struct {
	Store *MemStore
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(product *entity.Product) error {
	r.Store.nextProductID++
	product.ID = r.Store.nextProductID
	cp := *product
	r.Store.Products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.Store.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	if _, ok := r.Store.Products[product.ID]; ok {
		cp := *product
		r.Store.Products[product.ID] = &cp
	}
	return nil
}

func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.Store.Products {
		if filter.Title != "" && !containsFold(p.Title, filter.Title) {
			continue
		}
		if filter.Description != "" && !containsFold(p.Description, filter.Description) {
			continue
		}
		if filter.Search != "" && !containsFold(p.Title, filter.Search) && !containsFold(p.Description, filter.Search) {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		var less bool
		switch filter.OrderBy {
		case "title":
			less = list[i].Title < list[j].Title
		default:
			less = list[i].CreatedAt.Before(list[j].CreatedAt) ||
				(list[i].CreatedAt.Equal(list[j].CreatedAt) && list[i].ID < list[j].ID)
		}
		if filter.Desc {
			return !less
		}
		return less
	})
	return page(list, filter.Limit, filter.Offset), nil
}

func (r *ProductRepo) ExistingIDs(ids []int64) (map[int64]bool, error) {
	existing := map[int64]bool{}
	for _, id := range ids {
		if _, ok := r.Store.Products[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}

func (r *ProductRepo) Delete(id int64) error {
	delete(r.Store.Products, id)
	// Cascada como la FK real
	for posID, pos := range r.Store.Positions {
		if pos.ProductID == id {
			delete(r.Store.Positions, posID)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// StockRepo
// ──────────────────────────────────────────────────────────────────────────────

// StockRepo fake en memoria.
type StockRepo struct {
	Store *MemStore
}

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) Create(stock *entity.Stock) error {
	r.Store.nextStockID++
	stock.ID = r.Store.nextStockID
	cp := *stock
	r.Store.Stocks[stock.ID] = &cp
	return nil
}

func (r *StockRepo) GetByID(id int64) (*entity.Stock, error) {
	s, ok := r.Store.Stocks[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *StockRepo) GetByIDForUpdate(id int64) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *StockRepo) Update(stock *entity.Stock) error {
	if _, ok := r.Store.Stocks[stock.ID]; ok {
		cp := *stock
		r.Store.Stocks[stock.ID] = &cp
	}
	return nil
}

func (r *StockRepo) List(filter repository.StockFilter) ([]*entity.Stock, error) {
	wanted := map[int64]bool{}
	for _, id := range filter.ProductIDs {
		wanted[id] = true
	}
	var list []*entity.Stock
	for _, s := range r.Store.Stocks {
		if filter.Address != "" && !containsFold(s.Address, filter.Address) {
			continue
		}
		if filter.Search != "" && !containsFold(s.Address, filter.Search) {
			continue
		}
		if len(wanted) > 0 && !r.hasAnyProduct(s.ID, wanted) {
			continue
		}
		cp := *s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		var less bool
		switch filter.OrderBy {
		case "address":
			less = list[i].Address < list[j].Address
		default:
			less = list[i].CreatedAt.Before(list[j].CreatedAt) ||
				(list[i].CreatedAt.Equal(list[j].CreatedAt) && list[i].ID < list[j].ID)
		}
		if filter.Desc {
			return !less
		}
		return less
	})
	return page(list, filter.Limit, filter.Offset), nil
}

func (r *StockRepo) hasAnyProduct(stockID int64, wanted map[int64]bool) bool {
	for _, pos := range r.Store.Positions {
		if pos.StockID == stockID && wanted[pos.ProductID] {
			return true
		}
	}
	return false
}

func (r *StockRepo) Summary(limit, offset int) ([]*entity.StockSummary, error) {
	var list []*entity.StockSummary
	for _, s := range r.Store.Stocks {
		count := int64(0)
		for _, pos := range r.Store.Positions {
			if pos.StockID == s.ID {
				count++
			}
		}
		list = append(list, &entity.StockSummary{
			ID: s.ID, Address: s.Address, ProductsCount: count,
			CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return page(list, limit, offset), nil
}

func (r *StockRepo) Delete(id int64) error {
	delete(r.Store.Stocks, id)
	for posID, pos := range r.Store.Positions {
		if pos.StockID == id {
			delete(r.Store.Positions, posID)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// PositionRepo
// ──────────────────────────────────────────────────────────────────────────────

// PositionRepo fake en memoria. Reproduce el único (stock, product) y la
// semántica del upsert (conserva id y created_at de la fila existente).
type PositionRepo struct {
	Store *MemStore
}

var _ repository.PositionRepository = (*PositionRepo)(nil)

func (r *PositionRepo) find(stockID, productID int64) *entity.Position {
	for _, pos := range r.Store.Positions {
		if pos.StockID == stockID && pos.ProductID == productID {
			return pos
		}
	}
	return nil
}

func (r *PositionRepo) ListByStock(stockID int64) ([]*entity.Position, error) {
	var list []*entity.Position
	for _, pos := range r.Store.Positions {
		if pos.StockID != stockID {
			continue
		}
		cp := *pos
		if product, ok := r.Store.Products[pos.ProductID]; ok {
			pcp := *product
			cp.Product = &pcp
		}
		list = append(list, &cp)
	}
	sortPositions(list)
	return list, nil
}

func (r *PositionRepo) ListByStockIDs(stockIDs []int64) ([]*entity.Position, error) {
	wanted := map[int64]bool{}
	for _, id := range stockIDs {
		wanted[id] = true
	}
	var list []*entity.Position
	for _, pos := range r.Store.Positions {
		if wanted[pos.StockID] {
			cp := *pos
			list = append(list, &cp)
		}
	}
	sortPositions(list)
	return list, nil
}

func (r *PositionRepo) ListAll(limit, offset int) ([]*entity.PositionRow, error) {
	var list []*entity.PositionRow
	for _, pos := range r.Store.Positions {
		row := &entity.PositionRow{
			ID: pos.ID, StockID: pos.StockID, ProductID: pos.ProductID,
			Quantity: pos.Quantity, Price: pos.Price,
			CreatedAt: pos.CreatedAt, UpdatedAt: pos.UpdatedAt,
		}
		if s, ok := r.Store.Stocks[pos.StockID]; ok {
			row.StockAddress = s.Address
		}
		if p, ok := r.Store.Products[pos.ProductID]; ok {
			row.ProductTitle = p.Title
		}
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return page(list, limit, offset), nil
}

func (r *PositionRepo) GetByID(id int64) (*entity.Position, error) {
	pos, ok := r.Store.Positions[id]
	if !ok {
		return nil, nil
	}
	cp := *pos
	return &cp, nil
}

func (r *PositionRepo) Create(position *entity.Position) error {
	if r.find(position.StockID, position.ProductID) != nil {
		return domain.ErrDuplicate
	}
	r.Store.nextPositionID++
	position.ID = r.Store.nextPositionID
	cp := *position
	cp.Product = nil
	r.Store.Positions[position.ID] = &cp
	return nil
}

func (r *PositionRepo) Upsert(position *entity.Position) error {
	if existing := r.find(position.StockID, position.ProductID); existing != nil {
		existing.Quantity = position.Quantity
		existing.Price = position.Price
		existing.UpdatedAt = position.UpdatedAt
		position.ID = existing.ID
		position.CreatedAt = existing.CreatedAt
		return nil
	}
	return r.Create(position)
}

func (r *PositionRepo) Update(position *entity.Position) error {
	if existing, ok := r.Store.Positions[position.ID]; ok {
		existing.Quantity = position.Quantity
		existing.Price = position.Price
		existing.UpdatedAt = position.UpdatedAt
	}
	return nil
}

func (r *PositionRepo) DeleteMissing(stockID int64, keepProductIDs []int64) error {
	keep := map[int64]bool{}
	for _, id := range keepProductIDs {
		keep[id] = true
	}
	for id, pos := range r.Store.Positions {
		if pos.StockID == stockID && !keep[pos.ProductID] {
			delete(r.Store.Positions, id)
		}
	}
	return nil
}

func (r *PositionRepo) Delete(id int64) error {
	delete(r.Store.Positions, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// helpers
// ──────────────────────────────────────────────────────────────────────────────

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortPositions(list []*entity.Position) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].StockID != list[j].StockID {
			return list[i].StockID < list[j].StockID
		}
		return list[i].ID > list[j].ID
	})
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
