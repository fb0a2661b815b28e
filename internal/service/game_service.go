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

// GameService defines the interface for game business logic
type GameService interface {
	List(ctx context.Context, params url.Values) ([]*domain.Game, error)
	Create(ctx context.Context, record map[string]any) (*domain.Game, error)
}

type gameService struct {
	store    repository.Store
	maxLimit uint
}

// NewGameService creates a new instance of GameService
func NewGameService(store repository.Store, maxLimit uint) GameService {
	return &gameService{store: store, maxLimit: maxLimit}
}

func (s *gameService) List(ctx context.Context, params url.Values) ([]*domain.Game, error) {
	return s.store.Games().List(ctx, query.Parse(query.Games, params, s.maxLimit))
}

// Create stores a game in an existing category
func (s *gameService) Create(ctx context.Context, record map[string]any) (*domain.Game, error) {
	in, err := validation.ValidateGamePayload(record)
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid game", err)
	}

	category, err := s.store.Categories().FindByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domain.NewUnknownReferenceError(fmt.Sprintf("category %d does not exist", in.CategoryID))
		}
		return nil, err
	}

	game, err := s.store.Games().Create(ctx, in)
	if err != nil {
		return nil, err
	}

	game.CategoryName = category.Name
	return game, nil
}
