package query

import (
	"net/url"
	"strings"

	"boardcamp/internal/validation"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	statusOpen   = "open"
	statusClosed = "closed"
)

var (
	rentalsTable   = goqu.T("rentals")
	gamesTable     = goqu.T("games")
	customersTable = goqu.T("customers")

	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// Predicate is an ordered list of conditions joined with AND
type Predicate struct {
	conds []exp.Expression
}

func (p *Predicate) and(cond exp.Expression) {
	p.conds = append(p.conds, cond)
}

// Len returns the number of conditions
func (p Predicate) Len() int {
	return len(p.conds)
}

// Expression returns the conditions joined with AND
func (p Predicate) Expression() exp.ExpressionList {
	return goqu.And(p.conds...)
}

// Apply adds a WHERE clause to ds when at least one condition is present
func (p Predicate) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if len(p.conds) == 0 {
		return ds
	}
	return ds.Where(p.conds...)
}

// RentalFilters reads customerId, gameId, status and startDate
func RentalFilters(values url.Values) Predicate {
	var p Predicate

	if id, err := validation.ValidatePositiveInteger(values.Get("customerId")); err == nil {
		p.and(rentalsTable.Col("customer_id").Eq(id))
	}

	if id, err := validation.ValidatePositiveInteger(values.Get("gameId")); err == nil {
		p.and(rentalsTable.Col("game_id").Eq(id))
	}

	switch values.Get("status") {
	case statusOpen:
		p.and(rentalsTable.Col("return_date").IsNull())
	case statusClosed:
		p.and(rentalsTable.Col("return_date").IsNotNull())
	}

	if start, err := validation.ParseStrictDate(values.Get("startDate")); err == nil {
		p.and(rentalsTable.Col("rent_date").Gte(start))
	}

	return p
}

// RentDateRange reads the inclusive startDate and endDate bounds used by metrics
func RentDateRange(values url.Values) Predicate {
	var p Predicate

	if start, err := validation.ParseStrictDate(values.Get("startDate")); err == nil {
		p.and(rentalsTable.Col("rent_date").Gte(start))
	}

	if end, err := validation.ParseStrictDate(values.Get("endDate")); err == nil {
		p.and(rentalsTable.Col("rent_date").Lte(end))
	}

	return p
}

// GameFilters reads the case-insensitive name prefix
func GameFilters(values url.Values) Predicate {
	var p Predicate

	name, err := validation.ValidateName(map[string]any{"name": values.Get("name")})
	if err == nil {
		p.and(gamesTable.Col("name").ILike(prefixPattern(name)))
	}

	return p
}

// CustomerFilters reads the cpf prefix. The prefix must be numeric; its
// leading zeros are kept.
func CustomerFilters(values url.Values) Predicate {
	var p Predicate

	cpf := values.Get("cpf")
	if _, err := validation.ValidatePositiveInteger(cpf); err == nil {
		p.and(customersTable.Col("cpf").ILike(prefixPattern(cpf)))
	}

	return p
}

func prefixPattern(term string) string {
	return likeEscaper.Replace(term) + "%"
}
