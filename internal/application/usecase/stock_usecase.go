package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/domain"
	"github.com/jhoicas/stocks-api/internal/domain/entity"
	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

// StockUseCase casos de uso para almacenes, incluida la reconciliación
// transaccional de su lista de posiciones (crear/actualizar almacén con
// posiciones anidadas).
type StockUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository
	positionRepo repository.PositionRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, stockRepo repository.StockRepository, positionRepo repository.PositionRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, stockRepo: stockRepo, positionRepo: positionRepo}
}

// Create crea un almacén con cero o más posiciones en una sola transacción.
// Toda la validación ocurre antes de mutar; si algún producto referenciado no
// existe, la operación completa falla sin efectos.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if verr := validateAddress(in.Address); verr != nil {
		return nil, verr
	}
	if verr := validatePositions(in.Positions); verr != nil {
		return nil, verr
	}

	var stock *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		positionRepo repository.PositionRepository,
	) error {
		if err := checkProductsExist(productRepo, in.Positions); err != nil {
			return err
		}
		now := time.Now()
		stock = &entity.Stock{Address: in.Address, CreatedAt: now, UpdatedAt: now}
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		// Upsert por si el payload trae el mismo producto dos veces:
		// gana la última tupla (la clave es el producto, no la posición en la lista).
		for _, p := range in.Positions {
			if err := positionRepo.Upsert(newPosition(stock.ID, p, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.stockResponse(stock)
}

// Update actualiza un almacén y, si el payload trae lista de posiciones,
// reconcilia el conjunto almacenado contra ella:
//
//  1. bloquea la fila del almacén (FOR UPDATE) para serializar
//     reconciliaciones concurrentes sobre el mismo almacén;
//  2. valida que todos los productos referenciados existan;
//  3. elimina las posiciones cuyo producto no aparece en la nueva lista;
//  4. upsert de cada tupla en orden de entrada (conserva id y created_at
//     de las posiciones existentes; última tupla gana ante duplicados).
//
// Positions nil deja las posiciones intactas; lista vacía las elimina todas.
// Todo dentro de una transacción: o se aplica el diff completo o nada.
func (uc *StockUseCase) Update(ctx context.Context, id int64, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if in.Address != nil {
		if verr := validateAddress(*in.Address); verr != nil {
			return nil, verr
		}
	}
	if in.Positions != nil {
		if verr := validatePositions(in.Positions); verr != nil {
			return nil, verr
		}
	}

	txID := uuid.New().String()
	var stock *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		positionRepo repository.PositionRepository,
	) error {
		var err error
		stock, err = stockRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if in.Positions != nil {
			if err := checkProductsExist(productRepo, in.Positions); err != nil {
				return err
			}
			keep := productIDs(in.Positions)
			if err := positionRepo.DeleteMissing(id, keep); err != nil {
				return err
			}
			for _, p := range in.Positions {
				if err := positionRepo.Upsert(newPosition(id, p, now)); err != nil {
					return err
				}
			}
			zlog.Debug().
				Str("tx_id", txID).
				Int64("stock_id", id).
				Int("positions", len(in.Positions)).
				Msg("posiciones reconciliadas")
		}
		if in.Address != nil {
			stock.Address = *in.Address
		}
		stock.UpdatedAt = now
		return stockRepo.Update(stock)
	})
	if err != nil {
		return nil, err
	}
	return uc.stockResponse(stock)
}

// GetByID obtiene el detalle de un almacén con cada producto expandido.
// Devuelve nil si no existe.
func (uc *StockUseCase) GetByID(id int64) (*dto.StockDetailResponse, error) {
	stock, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}
	positions, err := uc.positionRepo.ListByStock(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.StockDetailResponse{
		ID:        stock.ID,
		Address:   stock.Address,
		Positions: make([]dto.StockPositionDetailResponse, 0, len(positions)),
		CreatedAt: stock.CreatedAt,
		UpdatedAt: stock.UpdatedAt,
	}
	for _, pos := range positions {
		item := dto.StockPositionDetailResponse{
			ID:        pos.ID,
			Quantity:  pos.Quantity,
			Price:     pos.Price,
			CreatedAt: pos.CreatedAt,
			UpdatedAt: pos.UpdatedAt,
		}
		if pos.Product != nil {
			item.Product = *toProductResponse(pos.Product)
		}
		detail.Positions = append(detail.Positions, item)
	}
	return detail, nil
}

// List lista almacenes con filtros (address, products, search) y orden.
func (uc *StockUseCase) List(q dto.StockListQuery) (*dto.StockListResponse, error) {
	q.DefaultPage()
	stocks, err := uc.stockRepo.List(q.Filter())
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(stocks))
	for _, s := range stocks {
		ids = append(ids, s.ID)
	}
	byStock := map[int64][]dto.StockPositionResponse{}
	if len(ids) > 0 {
		positions, err := uc.positionRepo.ListByStockIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, pos := range positions {
			byStock[pos.StockID] = append(byStock[pos.StockID], dto.StockPositionResponse{
				Product:  pos.ProductID,
				Quantity: pos.Quantity,
				Price:    pos.Price,
			})
		}
	}
	items := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		positions := byStock[s.ID]
		if positions == nil {
			positions = []dto.StockPositionResponse{}
		}
		items = append(items, dto.StockResponse{
			ID:        s.ID,
			Address:   s.Address,
			Positions: positions,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina un almacén; la BD cascadea la eliminación de sus posiciones.
func (uc *StockUseCase) Delete(id int64) error {
	stock, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return err
	}
	if stock == nil {
		return domain.ErrNotFound
	}
	return uc.stockRepo.Delete(id)
}

// stockResponse arma la respuesta de escritura releyendo el conjunto de
// posiciones resultante (vista ligera).
func (uc *StockUseCase) stockResponse(stock *entity.Stock) (*dto.StockResponse, error) {
	positions, err := uc.positionRepo.ListByStock(stock.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockResponse{
		ID:        stock.ID,
		Address:   stock.Address,
		Positions: make([]dto.StockPositionResponse, 0, len(positions)),
		CreatedAt: stock.CreatedAt,
		UpdatedAt: stock.UpdatedAt,
	}
	for _, pos := range positions {
		out.Positions = append(out.Positions, dto.StockPositionResponse{
			Product:  pos.ProductID,
			Quantity: pos.Quantity,
			Price:    pos.Price,
		})
	}
	return out, nil
}

func validateAddress(address string) *domain.ValidationError {
	if address == "" {
		return domain.NewValidationError("address", "address es requerido")
	}
	if runeLen(address) > maxAddressLen {
		return domain.NewValidationError("address", "máximo 300 caracteres")
	}
	return nil
}

// checkProductsExist verifica que todo producto referenciado exista, antes de
// cualquier mutación. Se ejecuta dentro de la transacción para que la lectura
// y el diff vean el mismo estado.
func checkProductsExist(productRepo repository.ProductRepository, positions []dto.StockPositionInput) error {
	ids := productIDs(positions)
	if len(ids) == 0 {
		return nil
	}
	existing, err := productRepo.ExistingIDs(ids)
	if err != nil {
		return err
	}
	verr := &domain.ValidationError{}
	for i, p := range positions {
		if !existing[p.Product] {
			verr.Add(fmt.Sprintf("positions[%d].product", i), fmt.Sprintf("el producto %d no existe", p.Product))
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// productIDs devuelve los ids de producto del payload, sin duplicados,
// en orden de primera aparición.
func productIDs(positions []dto.StockPositionInput) []int64 {
	seen := make(map[int64]bool, len(positions))
	ids := make([]int64, 0, len(positions))
	for _, p := range positions {
		if seen[p.Product] {
			continue
		}
		seen[p.Product] = true
		ids = append(ids, p.Product)
	}
	return ids
}

func newPosition(stockID int64, in dto.StockPositionInput, now time.Time) *entity.Position {
	return &entity.Position{
		StockID:   stockID,
		ProductID: in.Product,
		Quantity:  in.Quantity,
		Price:     in.Price.Round(maxPriceFractionDigits),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
