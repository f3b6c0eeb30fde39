package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/001_init.sql
var schemaSQL string

// EnsureSchema aplica el DDL embebido al arrancar. Es idempotente
// (CREATE ... IF NOT EXISTS); el único (stock_id, product_id), el CHECK de
// cantidad y los ON DELETE CASCADE viven aquí, no solo en la aplicación.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
