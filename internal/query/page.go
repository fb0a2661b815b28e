package query

import (
	"net/url"

	"boardcamp/internal/validation"

	"github.com/doug-martin/goqu/v9"
)

// Page holds the optional OFFSET and LIMIT of a list request. Zero means absent.
type Page struct {
	Offset uint
	Limit  uint
}

// ParsePage reads ?offset= and ?limit=. Limits above maxLimit are clamped;
// a zero maxLimit disables the cap.
func ParsePage(values url.Values, maxLimit uint) Page {
	var p Page

	if offset, err := validation.ValidatePositiveInteger(values.Get("offset")); err == nil {
		p.Offset = uint(offset)
	}

	if limit, err := validation.ValidatePositiveInteger(values.Get("limit")); err == nil {
		p.Limit = uint(limit)
	}

	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p
}

// Apply adds the present bounds to ds
func (p Page) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if p.Offset > 0 {
		ds = ds.Offset(p.Offset)
	}
	if p.Limit > 0 {
		ds = ds.Limit(p.Limit)
	}
	return ds
}
