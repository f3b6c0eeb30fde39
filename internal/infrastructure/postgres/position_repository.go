package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocks-api/internal/domain"
	"github.com/jhoicas/stocks-api/internal/domain/entity"
	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación del puerto PositionRepository sobre PostgreSQL
// (usable con pool o tx).
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador de posiciones. Pasar pool o tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

// ListByStock devuelve las posiciones de un almacén con el producto expandido.
func (r *PositionRepo) ListByStock(stockID int64) ([]*entity.Position, error) {
	query := `
		SELECT sp.id, sp.stock_id, sp.product_id, sp.quantity, sp.price, sp.created_at, sp.updated_at,
		       p.title, p.description, p.created_at, p.updated_at
		FROM stock_positions sp
		JOIN products p ON p.id = sp.product_id
		WHERE sp.stock_id = $1
		ORDER BY sp.created_at DESC, sp.id DESC`
	rows, err := r.q.Query(context.Background(), query, stockID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Position
	for rows.Next() {
		var pos entity.Position
		var product entity.Product
		if err := rows.Scan(
			&pos.ID, &pos.StockID, &pos.ProductID, &pos.Quantity, &pos.Price, &pos.CreatedAt, &pos.UpdatedAt,
			&product.Title, &product.Description, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		product.ID = pos.ProductID
		pos.Product = &product
		list = append(list, &pos)
	}
	return list, rows.Err()
}

// ListByStockIDs devuelve las posiciones de varios almacenes sin expandir producto.
func (r *PositionRepo) ListByStockIDs(stockIDs []int64) ([]*entity.Position, error) {
	if len(stockIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, stock_id, product_id, quantity, price, created_at, updated_at
		FROM stock_positions
		WHERE stock_id = ANY($1)
		ORDER BY stock_id, created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, stockIDs)
	if err != nil {
		return nil, fmt.Errorf("list positions by stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Position
	for rows.Next() {
		var pos entity.Position
		if err := rows.Scan(&pos.ID, &pos.StockID, &pos.ProductID, &pos.Quantity, &pos.Price, &pos.CreatedAt, &pos.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, &pos)
	}
	return list, rows.Err()
}

// ListAll devuelve filas planas para el listado administrativo.
func (r *PositionRepo) ListAll(limit, offset int) ([]*entity.PositionRow, error) {
	query := `
		SELECT sp.id, sp.stock_id, s.address, sp.product_id, p.title, sp.quantity, sp.price, sp.created_at, sp.updated_at
		FROM stock_positions sp
		JOIN stocks s ON s.id = sp.stock_id
		JOIN products p ON p.id = sp.product_id
		ORDER BY sp.created_at DESC, sp.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list all positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PositionRow
	for rows.Next() {
		var row entity.PositionRow
		if err := rows.Scan(&row.ID, &row.StockID, &row.StockAddress, &row.ProductID, &row.ProductTitle,
			&row.Quantity, &row.Price, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan position row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// GetByID obtiene una posición por ID. Devuelve nil si no existe.
func (r *PositionRepo) GetByID(id int64) (*entity.Position, error) {
	query := `
		SELECT id, stock_id, product_id, quantity, price, created_at, updated_at
		FROM stock_positions WHERE id = $1`
	var pos entity.Position
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pos.ID, &pos.StockID, &pos.ProductID, &pos.Quantity, &pos.Price, &pos.CreatedAt, &pos.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return &pos, nil
}

// Create inserta una posición sin upsert. Una violación del único
// (stock_id, product_id) se traduce a domain.ErrDuplicate.
func (r *PositionRepo) Create(position *entity.Position) error {
	query := `
		INSERT INTO stock_positions (stock_id, product_id, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		position.StockID, position.ProductID, position.Quantity, position.Price,
		position.CreatedAt, position.UpdatedAt,
	).Scan(&position.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// Upsert inserta o, si ya existe posición para (stock, product), sobreescribe
// quantity/price en sitio. La fila existente conserva id y created_at.
func (r *PositionRepo) Upsert(position *entity.Position) error {
	query := `
		INSERT INTO stock_positions (stock_id, product_id, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (stock_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		position.StockID, position.ProductID, position.Quantity, position.Price,
		position.CreatedAt, position.UpdatedAt,
	).Scan(&position.ID)
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}
	return nil
}

// Update actualiza cantidad y precio de una posición existente.
func (r *PositionRepo) Update(position *entity.Position) error {
	query := `
		UPDATE stock_positions SET quantity = $2, price = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		position.ID, position.Quantity, position.Price, position.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

// DeleteMissing elimina las posiciones del almacén cuyo producto no está en
// keepProductIDs. Con la lista vacía (ANY sobre array vacío es falso) elimina
// todas las posiciones del almacén.
func (r *PositionRepo) DeleteMissing(stockID int64, keepProductIDs []int64) error {
	if keepProductIDs == nil {
		keepProductIDs = []int64{}
	}
	query := `
		DELETE FROM stock_positions
		WHERE stock_id = $1 AND NOT (product_id = ANY($2))`
	_, err := r.q.Exec(context.Background(), query, stockID, keepProductIDs)
	if err != nil {
		return fmt.Errorf("delete missing positions: %w", err)
	}
	return nil
}

// Delete elimina una posición por ID.
func (r *PositionRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_positions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}
