package usecase

import (
	"context"

	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la reconciliación
// de posiciones: o se aplica todo el diff o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		positionRepo repository.PositionRepository,
	) error) error
}
