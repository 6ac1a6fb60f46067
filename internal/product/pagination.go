package product

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination selects a page of available products. Zero values mean "use the
// default".
type Pagination struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

func (p Pagination) normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// Page is one window of available products.
type Page struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

func lastPage(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
