package repo

type ProductFilter struct {
	CategoryID     string
	IsActive       *bool
	LowStockOnly   bool
	OutOfStockOnly bool
	Search         string
	SortBy         string
	SortOrder      string
	Offset         *int
	Limit          *int
}

// sortColumns maps the accepted sort_by values to columns.
var sortColumns = map[string]string{
	"name":             "name",
	"current_quantity": "current_quantity",
	"minimum_stock":    "minimum_stock",
	"created_at":       "created_at",
	"updated_at":       "updated_at",
}

// ValidSort reports whether by is an accepted sort_by value. Empty means name.
func ValidSort(by string) bool {
	if by == "" {
		return true
	}
	_, ok := sortColumns[by]
	return ok
}

func (pf ProductFilter) orderBy() (string, bool) {
	col, ok := sortColumns[pf.SortBy]
	if !ok {
		col = "name"
	}
	return col, pf.SortOrder == "desc"
}
