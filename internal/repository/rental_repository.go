package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

var (
	ErrRentalNotFound = errors.New("rental not found")
	// ErrRentalNotOpen is returned by guarded writes that found no open rental
	ErrRentalNotOpen = errors.New("rental is not open")
)

// RentalRepository defines the interface for rental data access
type RentalRepository interface {
	Create(ctx context.Context, rental domain.Rental) (*domain.Rental, error)
	List(ctx context.Context, q query.Query) ([]*domain.Rental, error)
	// FindForUpdate reads the rental and locks its row until the
	// surrounding transaction ends
	FindForUpdate(ctx context.Context, id int64) (*domain.Rental, error)
	CountOpenByGame(ctx context.Context, gameID int64) (int64, error)
	// Close sets the return date and delay fee of an open rental in one write
	Close(ctx context.Context, id int64, returnDate domain.Date, delayFee *int64) error
	// DeleteOpen removes a rental that has not been returned
	DeleteOpen(ctx context.Context, id int64) error
	Metrics(ctx context.Context, where query.Predicate) (*domain.RentalMetrics, error)
}

type rentalRepository struct {
	db DBTX
}

// NewRentalRepository creates a new instance of RentalRepository
func NewRentalRepository(db DBTX) RentalRepository {
	return &rentalRepository{db: db}
}

var rentalColumns = []any{
	rentalsTable.Col("id"),
	rentalsTable.Col("customer_id"),
	rentalsTable.Col("game_id"),
	rentalsTable.Col("rent_date"),
	rentalsTable.Col("days_rented"),
	rentalsTable.Col("return_date"),
	rentalsTable.Col("original_price"),
	rentalsTable.Col("delay_fee"),
}

// rentalRow is a rental joined with the customer and game summaries
type rentalRow struct {
	domain.Rental
	CustomerName string `db:"customer_name"`
	GameName     string `db:"game_name"`
	CategoryID   int64  `db:"category_id"`
	CategoryName string `db:"category_name"`
}

func (row *rentalRow) toDomain() *domain.Rental {
	rental := row.Rental
	rental.Customer = &domain.RentalCustomer{
		ID:   row.CustomerID,
		Name: row.CustomerName,
	}
	rental.Game = &domain.RentalGame{
		ID:           row.GameID,
		Name:         row.GameName,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
	}
	return &rental
}

// Create inserts a new open rental and returns the stored row
func (r *rentalRepository) Create(ctx context.Context, rental domain.Rental) (*domain.Rental, error) {
	sqlStr, args, err := query.Insert(rentalsTable).
		Rows(goqu.Record{
			"customer_id":    rental.CustomerID,
			"game_id":        rental.GameID,
			"rent_date":      rental.RentDate.Time,
			"days_rented":    rental.DaysRented,
			"original_price": rental.OriginalPrice,
		}).
		Returning(rentalColumns...).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build rental insert")
	}

	created := &domain.Rental{}
	if err := r.db.GetContext(ctx, created, sqlStr, args...); err != nil {
		return nil, classify(err, "create rental")
	}

	return created, nil
}

// List retrieves rentals matching q with their customer and game summaries
func (r *rentalRepository) List(ctx context.Context, q query.Query) ([]*domain.Rental, error) {
	columns := append(append([]any{}, rentalColumns...),
		customersTable.Col("name").As("customer_name"),
		gamesTable.Col("name").As("game_name"),
		gamesTable.Col("category_id").As("category_id"),
		categoriesTable.Col("name").As("category_name"),
	)

	ds := query.From(rentalsTable).
		Select(columns...).
		Join(customersTable, goqu.On(customersTable.Col("id").Eq(rentalsTable.Col("customer_id")))).
		Join(gamesTable, goqu.On(gamesTable.Col("id").Eq(rentalsTable.Col("game_id")))).
		Join(categoriesTable, goqu.On(categoriesTable.Col("id").Eq(gamesTable.Col("category_id"))))

	sqlStr, args, err := q.Apply(ds).ToSQL()
	if err != nil {
		return nil, classify(err, "build rental list")
	}

	var rows []rentalRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, classify(err, "list rentals")
	}

	rentals := make([]*domain.Rental, 0, len(rows))
	for i := range rows {
		rentals = append(rentals, rows[i].toDomain())
	}

	return rentals, nil
}

func (r *rentalRepository) FindForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	sqlStr, args, err := query.From(rentalsTable).
		Select(rentalColumns...).
		Where(rentalsTable.Col("id").Eq(id)).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build rental lookup")
	}

	rental := &domain.Rental{}
	if err := r.db.GetContext(ctx, rental, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, classify(err, "find rental by ID")
	}

	return rental, nil
}

// CountOpenByGame counts the rentals of gameID that were not returned yet
func (r *rentalRepository) CountOpenByGame(ctx context.Context, gameID int64) (int64, error) {
	sqlStr, args, err := query.From(rentalsTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			rentalsTable.Col("game_id").Eq(gameID),
			rentalsTable.Col("return_date").IsNull(),
		).
		ToSQL()
	if err != nil {
		return 0, classify(err, "build open rental count")
	}

	var count int64
	if err := r.db.GetContext(ctx, &count, sqlStr, args...); err != nil {
		return 0, classify(err, "count open rentals")
	}

	return count, nil
}

func (r *rentalRepository) Close(ctx context.Context, id int64, returnDate domain.Date, delayFee *int64) error {
	var fee any
	if delayFee != nil {
		fee = *delayFee
	}

	sqlStr, args, err := query.Update(rentalsTable).
		Set(goqu.Record{
			"return_date": returnDate.Time,
			"delay_fee":   fee,
		}).
		Where(
			rentalsTable.Col("id").Eq(id),
			rentalsTable.Col("return_date").IsNull(),
		).
		ToSQL()
	if err != nil {
		return classify(err, "build rental close")
	}

	return r.execGuarded(ctx, "close rental", sqlStr, args)
}

func (r *rentalRepository) DeleteOpen(ctx context.Context, id int64) error {
	sqlStr, args, err := query.Delete(rentalsTable).
		Where(
			rentalsTable.Col("id").Eq(id),
			rentalsTable.Col("return_date").IsNull(),
		).
		ToSQL()
	if err != nil {
		return classify(err, "build rental delete")
	}

	return r.execGuarded(ctx, "delete rental", sqlStr, args)
}

// execGuarded runs a write that must touch exactly one open rental
func (r *rentalRepository) execGuarded(ctx context.Context, action, sqlStr string, args []any) error {
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return classify(err, action)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRentalNotOpen
	}

	return nil
}

// Metrics sums the price and delay fee of the rentals matching where.
// Average is left for the caller.
func (r *rentalRepository) Metrics(ctx context.Context, where query.Predicate) (*domain.RentalMetrics, error) {
	ds := query.From(rentalsTable).Select(
		goqu.L(`COALESCE(SUM("rentals"."original_price" + COALESCE("rentals"."delay_fee", 0)), 0)::BIGINT`).As("revenue"),
		goqu.COUNT(goqu.Star()).As("rentals"),
	)

	sqlStr, args, err := where.Apply(ds).ToSQL()
	if err != nil {
		return nil, classify(err, "build rental metrics")
	}

	metrics := &domain.RentalMetrics{}
	if err := r.db.GetContext(ctx, metrics, sqlStr, args...); err != nil {
		return nil, classify(err, "compute rental metrics")
	}

	return metrics, nil
}
