package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopkit-io/shopkit/internal/model"
)

// ProductRepositoryInterface defines the interface for product CRUD access.
type ProductRepositoryInterface interface {
	Insert(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, f model.ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryLookup resolves category references when products are created or moved.
type CategoryLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

// ProductService provides business logic for product administration.
type ProductService struct {
	repo       ProductRepositoryInterface
	categories CategoryLookup
}

// NewProductService creates a new ProductService with the given repositories.
func NewProductService(repo ProductRepositoryInterface, categories CategoryLookup) *ProductService {
	return &ProductService{repo: repo, categories: categories}
}

func (s *ProductService) resolveCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidRequest
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve category: %w", err)
	}
	if c == nil {
		return uuid.Nil, ErrCategoryNotFound
	}
	return id, nil
}

// Create creates a new product from the request.
// Returns ErrCategoryNotFound if the referenced category does not resolve.
func (s *ProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	// Defense-in-depth: check for nil pointers even though handler validates
	if req == nil || req.Price == nil || req.Stock == nil {
		return nil, ErrInvalidRequest
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		SalePrice:   req.SalePrice,
		Stock:       *req.Stock,
		CategoryID:  categoryID,
		ImageURL:    req.ImageURL,
		IsActive:    active,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get retrieves a product by id.
// Returns ErrProductNotFound if the product doesn't exist.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// List retrieves products matching the filter.
func (s *ProductService) List(ctx context.Context, f model.ProductFilter) ([]model.Product, error) {
	return s.repo.List(ctx, f)
}

// Update applies the non-nil fields of the request to an existing product.
// Returns ErrProductNotFound or ErrCategoryNotFound.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.SalePrice != nil {
		p.SalePrice = req.SalePrice
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product.
// Returns ErrProductNotFound if the product doesn't exist.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
