package entity

import "time"

// Product representa un producto del catálogo.
type Product struct {
	ID          int64
	Title       string // máx. 200 caracteres
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
