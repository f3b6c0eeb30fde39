package usecase

import (
	"time"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/domain"
	"github.com/jhoicas/stocks-api/internal/domain/entity"
	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Title == "" {
		return nil, domain.NewValidationError("title", "title es requerido")
	}
	if runeLen(in.Title) > maxTitleLen {
		return nil, domain.NewValidationError("title", "máximo 200 caracteres")
	}
	now := time.Now()
	product := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto (campos presentes en la entrada).
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.NewValidationError("title", "title es requerido")
		}
		if runeLen(*in.Title) > maxTitleLen {
			return nil, domain.NewValidationError("title", "máximo 200 caracteres")
		}
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros, búsqueda y orden.
func (uc *ProductUseCase) List(q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(q.Filter())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina un producto. La BD cascadea la eliminación de sus posiciones
// en todos los almacenes.
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
