package repository

import (
	"context"
	"database/sql"
	"errors"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game with this name already exists")
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	Create(ctx context.Context, in domain.GameInput) (*domain.Game, error)
	List(ctx context.Context, q query.Query) ([]*domain.Game, error)
	FindByID(ctx context.Context, id int64) (*domain.Game, error)
	// FindForUpdate reads the game and locks its row until the surrounding
	// transaction ends. Concurrent rentals of the same game serialize here.
	FindForUpdate(ctx context.Context, id int64) (*domain.Game, error)
}

type gameRepository struct {
	db DBTX
}

// NewGameRepository creates a new instance of GameRepository
func NewGameRepository(db DBTX) GameRepository {
	return &gameRepository{db: db}
}

var gameColumns = []any{
	gamesTable.Col("id"),
	gamesTable.Col("name"),
	gamesTable.Col("image"),
	gamesTable.Col("stock_total"),
	gamesTable.Col("category_id"),
	gamesTable.Col("price_per_day"),
}

// Create inserts a new game and returns the stored row
func (r *gameRepository) Create(ctx context.Context, in domain.GameInput) (*domain.Game, error) {
	sqlStr, args, err := query.Insert(gamesTable).
		Rows(goqu.Record{
			"name":          in.Name,
			"image":         in.Image,
			"stock_total":   in.StockTotal,
			"category_id":   in.CategoryID,
			"price_per_day": in.PricePerDay,
		}).
		Returning(gameColumns...).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build game insert")
	}

	game := &domain.Game{}
	if err := r.db.GetContext(ctx, game, sqlStr, args...); err != nil {
		return nil, classify(err, "create game")
	}

	return game, nil
}

// List retrieves games matching q with their category name and the number
// of rentals ever made
func (r *gameRepository) List(ctx context.Context, q query.Query) ([]*domain.Game, error) {
	columns := append(append([]any{}, gameColumns...),
		categoriesTable.Col("name").As("category_name"),
		goqu.COUNT(rentalsTable.Col("id")).As("rentals_count"),
	)

	ds := query.From(gamesTable).
		Select(columns...).
		Join(categoriesTable, goqu.On(categoriesTable.Col("id").Eq(gamesTable.Col("category_id")))).
		LeftJoin(rentalsTable, goqu.On(rentalsTable.Col("game_id").Eq(gamesTable.Col("id")))).
		GroupBy(gamesTable.Col("id"), categoriesTable.Col("name"))

	sqlStr, args, err := q.Apply(ds).ToSQL()
	if err != nil {
		return nil, classify(err, "build game list")
	}

	games := []*domain.Game{}
	if err := r.db.SelectContext(ctx, &games, sqlStr, args...); err != nil {
		return nil, classify(err, "list games")
	}

	return games, nil
}

// FindByID retrieves a game by ID
func (r *gameRepository) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	return r.find(ctx, id, false)
}

func (r *gameRepository) FindForUpdate(ctx context.Context, id int64) (*domain.Game, error) {
	return r.find(ctx, id, true)
}

func (r *gameRepository) find(ctx context.Context, id int64, lock bool) (*domain.Game, error) {
	ds := query.From(gamesTable).
		Select(gameColumns...).
		Where(gamesTable.Col("id").Eq(id))
	if lock {
		ds = ds.ForUpdate(exp.Wait)
	}

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, classify(err, "build game lookup")
	}

	game := &domain.Game{}
	if err := r.db.GetContext(ctx, game, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, classify(err, "find game by ID")
	}

	return game, nil
}
