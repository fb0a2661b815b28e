package repository

import (
	"context"
	"database/sql"
	"errors"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, q query.Query) ([]*domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
}

type categoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db DBTX) CategoryRepository {
	return &categoryRepository{db: db}
}

var categoryColumns = []any{
	categoriesTable.Col("id"),
	categoriesTable.Col("name"),
}

// Create inserts a new category and returns the stored row
func (r *categoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	sqlStr, args, err := query.Insert(categoriesTable).
		Rows(goqu.Record{"name": name}).
		Returning(categoryColumns...).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build category insert")
	}

	category := &domain.Category{}
	if err := r.db.GetContext(ctx, category, sqlStr, args...); err != nil {
		return nil, classify(err, "create category")
	}

	return category, nil
}

// List retrieves categories matching q
func (r *categoryRepository) List(ctx context.Context, q query.Query) ([]*domain.Category, error) {
	sqlStr, args, err := q.Apply(query.From(categoriesTable).Select(categoryColumns...)).ToSQL()
	if err != nil {
		return nil, classify(err, "build category list")
	}

	categories := []*domain.Category{}
	if err := r.db.SelectContext(ctx, &categories, sqlStr, args...); err != nil {
		return nil, classify(err, "list categories")
	}

	return categories, nil
}

// FindByID retrieves a category by ID
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	sqlStr, args, err := query.From(categoriesTable).
		Select(categoryColumns...).
		Where(categoriesTable.Col("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build category lookup")
	}

	category := &domain.Category{}
	if err := r.db.GetContext(ctx, category, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, classify(err, "find category by ID")
	}

	return category, nil
}
