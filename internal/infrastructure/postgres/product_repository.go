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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna el id generado.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Title, product.Description, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET title = $2, description = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.Description, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con filtros de contención, búsqueda y orden.
// OrderBy viene validado contra la lista blanca de la capa de consulta.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var conds []string
	var args []any
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Description != "" {
		args = append(args, "%"+filter.Description+"%")
		conds = append(conds, fmt.Sprintf("description ILIKE $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT id, title, description, created_at, updated_at FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderClause(filter.OrderBy, filter.Desc)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ExistingIDs devuelve el subconjunto de ids que existen en products.
func (r *ProductRepo) ExistingIDs(ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("check products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

// Delete elimina un producto por ID; la BD cascadea sus posiciones.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// orderClause arma el ORDER BY. La columna ya pasó la lista blanca, por lo
// que interpolarla es seguro.
func orderClause(orderBy string, desc bool) string {
	if orderBy == "" {
		orderBy = "created_at"
		desc = true
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", orderBy, dir)
}
