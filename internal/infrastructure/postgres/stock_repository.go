package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocks-api/internal/domain/entity"
	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para almacenes. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste un nuevo almacén y asigna el id generado.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (address, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		stock.Address, stock.CreatedAt, stock.UpdatedAt,
	).Scan(&stock.ID)
	if err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID. Devuelve nil si no existe.
func (r *StockRepo) GetByID(id int64) (*entity.Stock, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate obtiene el almacén bloqueando la fila (SELECT FOR UPDATE).
// Dos reconciliaciones concurrentes sobre el mismo almacén se serializan aquí.
func (r *StockRepo) GetByIDForUpdate(id int64) (*entity.Stock, error) {
	return r.getByID(id, true)
}

func (r *StockRepo) getByID(id int64, forUpdate bool) (*entity.Stock, error) {
	query := `
		SELECT id, address, created_at, updated_at
		FROM stocks WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Update actualiza un almacén existente.
func (r *StockRepo) Update(stock *entity.Stock) error {
	query := `
		UPDATE stocks SET address = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.Address, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List lista almacenes con filtros. El filtro por productos exige al menos
// una posición cuyo producto esté en el conjunto; con el conjunto vacío no
// se aplica (no-op).
func (r *StockRepo) List(filter repository.StockFilter) ([]*entity.Stock, error) {
	var conds []string
	var args []any
	if filter.Address != "" {
		args = append(args, "%"+filter.Address+"%")
		conds = append(conds, fmt.Sprintf("address ILIKE $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("address ILIKE $%d", len(args)))
	}
	if len(filter.ProductIDs) > 0 {
		args = append(args, filter.ProductIDs)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM stock_positions sp WHERE sp.stock_id = stocks.id AND sp.product_id = ANY($%d))",
			len(args)))
	}

	query := `SELECT id, address, created_at, updated_at FROM stocks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderClause(filter.OrderBy, filter.Desc)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Summary lista almacenes con el número de productos distintos que almacenan.
func (r *StockRepo) Summary(limit, offset int) ([]*entity.StockSummary, error) {
	query := `
		SELECT s.id, s.address, COUNT(sp.id), s.created_at, s.updated_at
		FROM stocks s
		LEFT JOIN stock_positions sp ON sp.stock_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("stocks summary: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockSummary
	for rows.Next() {
		var s entity.StockSummary
		if err := rows.Scan(&s.ID, &s.Address, &s.ProductsCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un almacén por ID; la BD cascadea sus posiciones.
func (r *StockRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
