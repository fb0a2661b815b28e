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
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerCPFTaken = errors.New("customer with this cpf already exists")
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, in domain.CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in domain.CustomerInput) (*domain.Customer, error)
	List(ctx context.Context, q query.Query) ([]*domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type customerRepository struct {
	db DBTX
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db DBTX) CustomerRepository {
	return &customerRepository{db: db}
}

var customerColumns = []any{
	customersTable.Col("id"),
	customersTable.Col("name"),
	customersTable.Col("phone"),
	customersTable.Col("cpf"),
	customersTable.Col("birthday"),
}

func customerRecord(in domain.CustomerInput) goqu.Record {
	return goqu.Record{
		"name":     in.Name,
		"phone":    in.Phone,
		"cpf":      in.CPF,
		"birthday": in.Birthday.Time,
	}
}

// selectCustomers joins the number of rentals each customer ever made
func selectCustomers() *goqu.SelectDataset {
	columns := append(append([]any{}, customerColumns...),
		goqu.COUNT(rentalsTable.Col("id")).As("rentals_count"),
	)

	return query.From(customersTable).
		Select(columns...).
		LeftJoin(rentalsTable, goqu.On(rentalsTable.Col("customer_id").Eq(customersTable.Col("id")))).
		GroupBy(customersTable.Col("id"))
}

// Create inserts a new customer and returns the stored row
func (r *customerRepository) Create(ctx context.Context, in domain.CustomerInput) (*domain.Customer, error) {
	sqlStr, args, err := query.Insert(customersTable).
		Rows(customerRecord(in)).
		Returning(customerColumns...).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build customer insert")
	}

	customer := &domain.Customer{}
	if err := r.db.GetContext(ctx, customer, sqlStr, args...); err != nil {
		return nil, classify(err, "create customer")
	}

	return customer, nil
}

// Update overwrites every field of the customer. A cpf already owned by
// another customer is reported as a conflict.
func (r *customerRepository) Update(ctx context.Context, id int64, in domain.CustomerInput) (*domain.Customer, error) {
	sqlStr, args, err := query.Update(customersTable).
		Set(customerRecord(in)).
		Where(customersTable.Col("id").Eq(id)).
		Returning(customerColumns...).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build customer update")
	}

	customer := &domain.Customer{}
	if err := r.db.GetContext(ctx, customer, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, classify(err, "update customer")
	}

	return customer, nil
}

// List retrieves customers matching q
func (r *customerRepository) List(ctx context.Context, q query.Query) ([]*domain.Customer, error) {
	sqlStr, args, err := q.Apply(selectCustomers()).ToSQL()
	if err != nil {
		return nil, classify(err, "build customer list")
	}

	customers := []*domain.Customer{}
	if err := r.db.SelectContext(ctx, &customers, sqlStr, args...); err != nil {
		return nil, classify(err, "list customers")
	}

	return customers, nil
}

// FindByID retrieves a customer by ID
func (r *customerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	sqlStr, args, err := selectCustomers().
		Where(customersTable.Col("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, classify(err, "build customer lookup")
	}

	customer := &domain.Customer{}
	if err := r.db.GetContext(ctx, customer, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, classify(err, "find customer by ID")
	}

	return customer, nil
}
