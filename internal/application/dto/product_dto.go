package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListQuery parámetros de consulta para GET /api/products.
type ProductListQuery struct {
	Title       string `query:"title"`
	Description string `query:"description"`
	Search      string `query:"search"`
	Ordering    string `query:"ordering"`
	PageRequest
}
