package catalog

import "strings"

// ProductFilter narrows the public product list.
type ProductFilter struct {
	TypeID   string
	Query    string // case-insensitive substring of the name
	MinPrice *int64
	MaxPrice *int64
}

// Match reports whether p passes every set field of f.
func (f ProductFilter) Match(p Product) bool {
	if f.TypeID != "" && p.TypeID != f.TypeID {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
		return false
	}
	if f.MinPrice != nil && p.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.BasePrice > *f.MaxPrice {
		return false
	}
	return true
}
