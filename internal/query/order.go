package query

import (
	"net/url"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// sortable maps the public field names accepted in ?order= to the SQL
// identifier they sort by. Aliased columns refer to the select list.
var sortable = map[Resource]map[string]exp.IdentifierExpression{
	Categories: {
		"id":   goqu.T("categories").Col("id"),
		"name": goqu.T("categories").Col("name"),
	},
	Customers: {
		"id":           customersTable.Col("id"),
		"name":         customersTable.Col("name"),
		"phone":        customersTable.Col("phone"),
		"cpf":          customersTable.Col("cpf"),
		"birthday":     customersTable.Col("birthday"),
		"rentalsCount": goqu.C("rentals_count"),
	},
	Games: {
		"id":           gamesTable.Col("id"),
		"name":         gamesTable.Col("name"),
		"image":        gamesTable.Col("image"),
		"stockTotal":   gamesTable.Col("stock_total"),
		"categoryId":   gamesTable.Col("category_id"),
		"pricePerDay":  gamesTable.Col("price_per_day"),
		"categoryName": goqu.C("category_name"),
		"rentalsCount": goqu.C("rentals_count"),
	},
	Rentals: {
		"id":            rentalsTable.Col("id"),
		"customerId":    rentalsTable.Col("customer_id"),
		"gameId":        rentalsTable.Col("game_id"),
		"rentDate":      rentalsTable.Col("rent_date"),
		"daysRented":    rentalsTable.Col("days_rented"),
		"returnDate":    rentalsTable.Col("return_date"),
		"originalPrice": rentalsTable.Col("original_price"),
		"delayFee":      rentalsTable.Col("delay_fee"),
		"customerName":  goqu.C("customer_name"),
		"gameName":      goqu.C("game_name"),
		"categoryId":    goqu.C("category_id"),
		"categoryName":  goqu.C("category_name"),
	},
}

// SortableFields returns the field names accepted in ?order= for resource
func SortableFields(resource Resource) []string {
	fields := make([]string, 0, len(sortable[resource]))
	for name := range sortable[resource] {
		fields = append(fields, name)
	}
	return fields
}

// Order reads ?order= and ?desc=true. A field outside the resource
// whitelist yields no ordering at all.
func Order(resource Resource, values url.Values) []exp.OrderedExpression {
	col, ok := sortable[resource][values.Get("order")]
	if !ok {
		return nil
	}

	if values.Get("desc") == "true" {
		return []exp.OrderedExpression{col.Desc()}
	}
	return []exp.OrderedExpression{col.Asc()}
}
