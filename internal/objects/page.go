package objects

// PageParams are the common pagination query parameters.
type PageParams struct {
	Page int `form:"page,default=1" json:"page"`
	Size int `form:"size,default=20" json:"size"`
}

// Offset converts page/size into a row offset.
func (p PageParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}

	return (page - 1) * p.Limit()
}

// Limit returns the effective page size.
func (p PageParams) Limit() int {
	if p.Size <= 0 {
		return 20
	}

	if p.Size > 200 {
		return 200
	}

	return p.Size
}

// Page is a paginated result envelope.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// NewPage builds a Page from items and the total row count.
func NewPage[T any](items []T, total int64, params PageParams) Page[T] {
	page := params.Page
	if page < 1 {
		page = 1
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  params.Limit(),
	}
}
