package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"
	"boardcamp/internal/repository"
	"boardcamp/internal/validation"
)

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	List(ctx context.Context, params url.Values) ([]*domain.Customer, error)
	// Get looks a customer up by the raw path id
	Get(ctx context.Context, rawID string) (*domain.Customer, error)
	Create(ctx context.Context, record map[string]any) (*domain.Customer, error)
	Update(ctx context.Context, rawID string, record map[string]any) (*domain.Customer, error)
}

type customerService struct {
	store    repository.Store
	maxLimit uint
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(store repository.Store, maxLimit uint) CustomerService {
	return &customerService{store: store, maxLimit: maxLimit}
}

func (s *customerService) List(ctx context.Context, params url.Values) ([]*domain.Customer, error) {
	return s.store.Customers().List(ctx, query.Parse(query.Customers, params, s.maxLimit))
}

func (s *customerService) Get(ctx context.Context, rawID string) (*domain.Customer, error) {
	id, err := parseCustomerID(rawID)
	if err != nil {
		return nil, err
	}

	customer, err := s.store.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, customerLookupError(err, id)
	}

	return customer, nil
}

func (s *customerService) Create(ctx context.Context, record map[string]any) (*domain.Customer, error) {
	in, err := validation.ValidateCustomerPayload(record)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid customer", err)
	}

	return s.store.Customers().Create(ctx, in)
}

// Update replaces every field of an existing customer. The cpf may stay the
// same but cannot be taken from another customer.
func (s *customerService) Update(ctx context.Context, rawID string, record map[string]any) (*domain.Customer, error) {
	id, err := parseCustomerID(rawID)
	if err != nil {
		return nil, err
	}

	in, err := validation.ValidateCustomerPayload(record)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid customer", err)
	}

	var updated *domain.Customer
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Customers().Update(ctx, id, in); err != nil {
			return customerLookupError(err, id)
		}

		customer, err := tx.Customers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func parseCustomerID(rawID string) (int64, error) {
	id, err := validation.ValidatePositiveInteger(rawID)
	if err != nil {
		return 0, domain.NewInvalidInputError("invalid customer id", err)
	}
	return id, nil
}

func customerLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return domain.NewNotFoundError(fmt.Sprintf("customer %d not found", id))
	}
	return err
}
