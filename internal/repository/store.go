package repository

import (
	"context"
	"database/sql"

	"boardcamp/internal/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
)

var (
	categoriesTable = goqu.T("categories")
	gamesTable      = goqu.T("games")
	customersTable  = goqu.T("customers")
	rentalsTable    = goqu.T("rentals")
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx
type DBTX interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store groups the repositories that share one connection or transaction
type Store interface {
	Categories() CategoryRepository
	Games() GameRepository
	Customers() CustomerRepository
	Rentals() RentalRepository

	// WithinTx runs fn with a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithinTx on a transactional Store reuses the open transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db *sqlx.DB
	q  DBTX
}

// NewStore creates a Store running its queries on db
func NewStore(db *sqlx.DB) Store {
	return &store{db: db, q: db}
}

func (s *store) Categories() CategoryRepository { return NewCategoryRepository(s.q) }
func (s *store) Games() GameRepository          { return NewGameRepository(s.q) }
func (s *store) Customers() CustomerRepository  { return NewCustomerRepository(s.q) }
func (s *store) Rentals() RentalRepository      { return NewRentalRepository(s.q) }

func (s *store) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	if _, inTx := s.q.(*sqlx.Tx); inTx {
		return fn(s)
	}

	err := database.RunInTx(ctx, s.db, nil, func(tx *sqlx.Tx) error {
		return fn(&store{db: s.db, q: tx})
	})
	return classify(err, "run transaction")
}
