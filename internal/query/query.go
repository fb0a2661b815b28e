// Package query turns untrusted list parameters into goqu clauses. Every
// client supplied value ends up as a bound parameter; only whitelisted
// identifiers are ever rendered into SQL text.
package query

import (
	"net/url"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
)

const dialectPostgres = "postgres"

// Resource names a listable collection
type Resource string

const (
	Categories Resource = "categories"
	Customers  Resource = "customers"
	Games      Resource = "games"
	Rentals    Resource = "rentals"
)

var builder = goqu.Dialect(dialectPostgres)

// From starts a prepared (placeholder based) SELECT on table
func From(table ...any) *goqu.SelectDataset {
	return builder.From(table...).Prepared(true)
}

// Insert starts a prepared INSERT into table
func Insert(table any) *goqu.InsertDataset {
	return builder.Insert(table).Prepared(true)
}

// Update starts a prepared UPDATE of table
func Update(table any) *goqu.UpdateDataset {
	return builder.Update(table).Prepared(true)
}

// Delete starts a prepared DELETE from table
func Delete(table any) *goqu.DeleteDataset {
	return builder.Delete(table).Prepared(true)
}

// Query bundles the filter, order and page clauses of a list request
type Query struct {
	Where Predicate
	Order []exp.OrderedExpression
	Page  Page
}

// Parse reads the list parameters recognized for resource. Unknown or
// malformed parameters are ignored.
func Parse(resource Resource, values url.Values, maxLimit uint) Query {
	q := Query{
		Order: Order(resource, values),
		Page:  ParsePage(values, maxLimit),
	}

	switch resource {
	case Rentals:
		q.Where = RentalFilters(values)
	case Games:
		q.Where = GameFilters(values)
	case Customers:
		q.Where = CustomerFilters(values)
	}

	return q
}

// Apply adds the query clauses to ds
func (q Query) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	ds = q.Where.Apply(ds)
	if len(q.Order) > 0 {
		ds = ds.Order(q.Order...)
	}
	return q.Page.Apply(ds)
}
