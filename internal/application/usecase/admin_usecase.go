package usecase

import (
	"time"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/domain"
	"github.com/jhoicas/stocks-api/internal/domain/entity"
	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

// AdminUseCase gestión directa de registros: resumen de almacenes y CRUD de
// posiciones sin pasar por la reconciliación. El alta directa sí puede chocar
// con el único (stock, product); ese conflicto se reporta como validación.
type AdminUseCase struct {
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	positionRepo repository.PositionRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository, positionRepo repository.PositionRepository) *AdminUseCase {
	return &AdminUseCase{stockRepo: stockRepo, productRepo: productRepo, positionRepo: positionRepo}
}

// StocksSummary lista almacenes con su número de productos distintos.
func (uc *AdminUseCase) StocksSummary(page dto.PageRequest) (*dto.StockSummaryListResponse, error) {
	page.DefaultPage()
	list, err := uc.stockRepo.Summary(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockSummaryResponse{
			ID:            s.ID,
			Address:       s.Address,
			ProductsCount: s.ProductsCount,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return &dto.StockSummaryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListPositions lista todas las posiciones con almacén y producto resueltos.
func (uc *AdminUseCase) ListPositions(page dto.PageRequest) (*dto.AdminPositionListResponse, error) {
	page.DefaultPage()
	rows, err := uc.positionRepo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdminPositionResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toAdminPositionResponse(r))
	}
	return &dto.AdminPositionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreatePosition alta directa de una posición. Un duplicado de
// (stock, product) se reporta como error de validación, nunca se duplica.
func (uc *AdminUseCase) CreatePosition(in dto.CreateAdminPositionRequest) (*dto.AdminPositionResponse, error) {
	verr := &domain.ValidationError{}
	if in.Quantity < 0 {
		verr.Add("quantity", "la cantidad no puede ser negativa")
	}
	if msg := validatePrice(in.Price); msg != "" {
		verr.Add("price", msg)
	}
	stock, err := uc.stockRepo.GetByID(in.Stock)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		verr.Add("stock", "el almacén no existe")
	}
	product, err := uc.productRepo.GetByID(in.Product)
	if err != nil {
		return nil, err
	}
	if product == nil {
		verr.Add("product", "el producto no existe")
	}
	if !verr.Empty() {
		return nil, verr
	}

	now := time.Now()
	position := &entity.Position{
		StockID:   in.Stock,
		ProductID: in.Product,
		Quantity:  in.Quantity,
		Price:     in.Price.Round(maxPriceFractionDigits),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.positionRepo.Create(position); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.NewValidationError("product", "ya existe una posición para este producto en este almacén")
		}
		return nil, err
	}
	out := dto.AdminPositionResponse{
		ID:           position.ID,
		Stock:        position.StockID,
		StockAddress: stock.Address,
		Product:      position.ProductID,
		ProductTitle: product.Title,
		Quantity:     position.Quantity,
		Price:        position.Price,
		CreatedAt:    position.CreatedAt,
		UpdatedAt:    position.UpdatedAt,
	}
	return &out, nil
}

// UpdatePosition edición directa de cantidad/precio. Devuelve nil si no existe.
func (uc *AdminUseCase) UpdatePosition(id int64, in dto.UpdateAdminPositionRequest) (*dto.AdminPositionResponse, error) {
	position, err := uc.positionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, nil
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
		}
		position.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if msg := validatePrice(in.Price); msg != "" {
			return nil, domain.NewValidationError("price", msg)
		}
		position.Price = in.Price.Round(maxPriceFractionDigits)
	}
	position.UpdatedAt = time.Now()
	if err := uc.positionRepo.Update(position); err != nil {
		return nil, err
	}
	return uc.positionResponse(position)
}

// DeletePosition elimina una posición por id.
func (uc *AdminUseCase) DeletePosition(id int64) error {
	position, err := uc.positionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if position == nil {
		return domain.ErrNotFound
	}
	return uc.positionRepo.Delete(id)
}

func (uc *AdminUseCase) positionResponse(position *entity.Position) (*dto.AdminPositionResponse, error) {
	stock, err := uc.stockRepo.GetByID(position.StockID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(position.ProductID)
	if err != nil {
		return nil, err
	}
	out := dto.AdminPositionResponse{
		ID:        position.ID,
		Stock:     position.StockID,
		Product:   position.ProductID,
		Quantity:  position.Quantity,
		Price:     position.Price,
		CreatedAt: position.CreatedAt,
		UpdatedAt: position.UpdatedAt,
	}
	if stock != nil {
		out.StockAddress = stock.Address
	}
	if product != nil {
		out.ProductTitle = product.Title
	}
	return &out, nil
}

func toAdminPositionResponse(r *entity.PositionRow) dto.AdminPositionResponse {
	return dto.AdminPositionResponse{
		ID:           r.ID,
		Stock:        r.StockID,
		StockAddress: r.StockAddress,
		Product:      r.ProductID,
		ProductTitle: r.ProductTitle,
		Quantity:     r.Quantity,
		Price:        r.Price,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
