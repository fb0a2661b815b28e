package transport

import (
	"context"
	"net/url"

	"boardcamp/internal/domain"
)

type stubCategoryService struct {
	list   func(params url.Values) ([]*domain.Category, error)
	create func(record map[string]any) (*domain.Category, error)
}

func (s *stubCategoryService) List(ctx context.Context, params url.Values) ([]*domain.Category, error) {
	return s.list(params)
}

func (s *stubCategoryService) Create(ctx context.Context, record map[string]any) (*domain.Category, error) {
	return s.create(record)
}

type stubGameService struct {
	list   func(params url.Values) ([]*domain.Game, error)
	create func(record map[string]any) (*domain.Game, error)
}

func (s *stubGameService) List(ctx context.Context, params url.Values) ([]*domain.Game, error) {
	return s.list(params)
}

func (s *stubGameService) Create(ctx context.Context, record map[string]any) (*domain.Game, error) {
	return s.create(record)
}

type stubCustomerService struct {
	list   func(params url.Values) ([]*domain.Customer, error)
	get    func(rawID string) (*domain.Customer, error)
	create func(record map[string]any) (*domain.Customer, error)
	update func(rawID string, record map[string]any) (*domain.Customer, error)
}

func (s *stubCustomerService) List(ctx context.Context, params url.Values) ([]*domain.Customer, error) {
	return s.list(params)
}

func (s *stubCustomerService) Get(ctx context.Context, rawID string) (*domain.Customer, error) {
	return s.get(rawID)
}

func (s *stubCustomerService) Create(ctx context.Context, record map[string]any) (*domain.Customer, error) {
	return s.create(record)
}

func (s *stubCustomerService) Update(ctx context.Context, rawID string, record map[string]any) (*domain.Customer, error) {
	return s.update(rawID, record)
}

type stubRentalService struct {
	list    func(params url.Values) ([]*domain.Rental, error)
	create  func(record map[string]any) (*domain.Rental, error)
	ret     func(rawID string) (*domain.Rental, error)
	del     func(rawID string) error
	metrics func(params url.Values) (*domain.RentalMetrics, error)
}

func (s *stubRentalService) List(ctx context.Context, params url.Values) ([]*domain.Rental, error) {
	return s.list(params)
}

func (s *stubRentalService) Create(ctx context.Context, record map[string]any) (*domain.Rental, error) {
	return s.create(record)
}

func (s *stubRentalService) Return(ctx context.Context, rawID string) (*domain.Rental, error) {
	return s.ret(rawID)
}

func (s *stubRentalService) Delete(ctx context.Context, rawID string) error {
	return s.del(rawID)
}

func (s *stubRentalService) Metrics(ctx context.Context, params url.Values) (*domain.RentalMetrics, error) {
	return s.metrics(params)
}
