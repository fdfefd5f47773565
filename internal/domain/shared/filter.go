package shared

// Filter holds common list query options shared by repositories.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// NewFilter creates a filter with sensible defaults.
func NewFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset implied by Page and PageSize.
func (f Filter) Offset() int {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the page size, or the given fallback when unset.
func (f Filter) Limit(fallback int) int {
	if f.PageSize <= 0 {
		return fallback
	}
	return f.PageSize
}
