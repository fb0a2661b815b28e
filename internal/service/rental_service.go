package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"
	"boardcamp/internal/repository"
	"boardcamp/internal/validation"
)

// RentalService defines the interface for the rental lifecycle.
// Open --Return--> Closed, Open --Delete--> gone. Closed is terminal.
type RentalService interface {
	List(ctx context.Context, params url.Values) ([]*domain.Rental, error)
	Create(ctx context.Context, record map[string]any) (*domain.Rental, error)
	Return(ctx context.Context, rawID string) (*domain.Rental, error)
	Delete(ctx context.Context, rawID string) error
	Metrics(ctx context.Context, params url.Values) (*domain.RentalMetrics, error)
}

type rentalService struct {
	store    repository.Store
	clock    Clock
	maxLimit uint
}

// NewRentalService creates a new instance of RentalService
func NewRentalService(store repository.Store, clock Clock, maxLimit uint) RentalService {
	return &rentalService{store: store, clock: clock, maxLimit: maxLimit}
}

func (s *rentalService) List(ctx context.Context, params url.Values) ([]*domain.Rental, error) {
	return s.store.Rentals().List(ctx, query.Parse(query.Rentals, params, s.maxLimit))
}

// Create opens a rental dated today. The game row stays locked from the
// stock check until the insert commits, so two rentals can never take the
// last copy.
func (s *rentalService) Create(ctx context.Context, record map[string]any) (*domain.Rental, error) {
	in, err := validation.ValidateRentalPayload(record)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid rental", err)
	}

	var created *domain.Rental
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Customers().FindByID(ctx, in.CustomerID); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return domain.NewUnknownReferenceError(fmt.Sprintf("customer %d does not exist", in.CustomerID))
			}
			return err
		}

		game, err := tx.Games().FindForUpdate(ctx, in.GameID)
		if err != nil {
			if errors.Is(err, repository.ErrGameNotFound) {
				return domain.NewUnknownReferenceError(fmt.Sprintf("game %d does not exist", in.GameID))
			}
			return err
		}

		open, err := tx.Rentals().CountOpenByGame(ctx, game.ID)
		if err != nil {
			return err
		}
		if open >= game.StockTotal {
			return domain.NewOutOfStockError(game.ID)
		}

		if in.DaysRented > math.MaxInt64/game.PricePerDay {
			return domain.NewInvalidInputError("rental price is too large", nil)
		}

		created, err = tx.Rentals().Create(ctx, domain.Rental{
			CustomerID:    in.CustomerID,
			GameID:        game.ID,
			RentDate:      today(s.clock),
			DaysRented:    in.DaysRented,
			OriginalPrice: game.PricePerDay * in.DaysRented,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Return closes an open rental today, charging the per-day price for every
// day past the due date
func (s *rentalService) Return(ctx context.Context, rawID string) (*domain.Rental, error) {
	id, err := parseRentalID(rawID)
	if err != nil {
		return nil, err
	}

	var closed *domain.Rental
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		rental, err := s.lockOpen(ctx, tx, id)
		if err != nil {
			return err
		}

		returnDate := today(s.clock)
		delayFee := rental.DelayFeeOn(returnDate)

		if err := tx.Rentals().Close(ctx, id, returnDate, delayFee); err != nil {
			return rentalWriteError(err, id)
		}

		rental.ReturnDate = &returnDate
		rental.DelayFee = delayFee
		closed = rental
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// Delete removes a rental that was never returned
func (s *rentalService) Delete(ctx context.Context, rawID string) error {
	id, err := parseRentalID(rawID)
	if err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := s.lockOpen(ctx, tx, id); err != nil {
			return err
		}

		if err := tx.Rentals().DeleteOpen(ctx, id); err != nil {
			return rentalWriteError(err, id)
		}
		return nil
	})
}

// Metrics reports revenue, count and floored average over the rentals
// whose rent date falls in the optional startDate/endDate range
func (s *rentalService) Metrics(ctx context.Context, params url.Values) (*domain.RentalMetrics, error) {
	metrics, err := s.store.Rentals().Metrics(ctx, query.RentDateRange(params))
	if err != nil {
		return nil, err
	}

	if metrics.Rentals > 0 {
		average := metrics.Revenue / metrics.Rentals
		metrics.Average = &average
	}

	return metrics, nil
}

func (s *rentalService) lockOpen(ctx context.Context, tx repository.Store, id int64) (*domain.Rental, error) {
	rental, err := tx.Rentals().FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRentalNotFound) {
			return nil, rentalNotFound(id)
		}
		return nil, err
	}

	if !rental.IsOpen() {
		return nil, domain.NewAlreadyClosedError(id)
	}

	return rental, nil
}

// parseRentalID treats a malformed id like an id that matches nothing
func parseRentalID(rawID string) (int64, error) {
	id, err := validation.ValidatePositiveInteger(rawID)
	if err != nil {
		return 0, domain.NewNotFoundError(fmt.Sprintf("rental %q not found", rawID))
	}
	return id, nil
}

func rentalNotFound(id int64) error {
	return domain.NewNotFoundError(fmt.Sprintf("rental %d not found", id))
}

func rentalWriteError(err error, id int64) error {
	if errors.Is(err, repository.ErrRentalNotOpen) {
		return domain.NewAlreadyClosedError(id)
	}
	return err
}
