package service

import (
	"context"
	"net/url"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"
	"boardcamp/internal/repository"
	"boardcamp/internal/validation"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	List(ctx context.Context, params url.Values) ([]*domain.Category, error)
	Create(ctx context.Context, record map[string]any) (*domain.Category, error)
}

type categoryService struct {
	store    repository.Store
	maxLimit uint
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(store repository.Store, maxLimit uint) CategoryService {
	return &categoryService{store: store, maxLimit: maxLimit}
}

func (s *categoryService) List(ctx context.Context, params url.Values) ([]*domain.Category, error) {
	return s.store.Categories().List(ctx, query.Parse(query.Categories, params, s.maxLimit))
}

// Create stores a category with a unique, trimmed name
func (s *categoryService) Create(ctx context.Context, record map[string]any) (*domain.Category, error) {
	name, err := validation.ValidateCategoryPayload(record)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid category", err)
	}

	return s.store.Categories().Create(ctx, name)
}
