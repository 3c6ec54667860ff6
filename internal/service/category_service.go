package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopkit-io/shopkit/internal/model"
)

// CategoryRepositoryInterface defines the interface for category data access.
type CategoryRepositoryInterface interface {
	Insert(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService provides business logic for category administration.
type CategoryService struct {
	repo CategoryRepositoryInterface
}

// NewCategoryService creates a new CategoryService with the given repository.
func NewCategoryService(repo CategoryRepositoryInterface) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create creates a new category from the request.
// Returns ErrCategoryExists if the slug is already taken.
func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    active,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves a category by id.
// Returns ErrCategoryNotFound if the category doesn't exist.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// List retrieves all categories.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

// Update applies the non-nil fields of the request to an existing category.
// Returns ErrCategoryNotFound or ErrCategoryExists.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category.
// Returns ErrCategoryNotFound if the category doesn't exist.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
