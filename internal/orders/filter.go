package orders

import (
	"errors"
	"fmt"
	"time"
)

// Date range names accepted by Filter.DateRange.
const (
	RangeLast24Hours = "last24hours"
	RangeLastWeek    = "lastWeek"
	RangeLast2Weeks  = "last2Weeks"
	RangeLast3Weeks  = "last3Weeks"
	RangeLastMonth   = "lastMonth"
	RangeLast3Months = "last3Months"
	RangeLast6Months = "last6Months"
	RangeLastYear    = "lastYear"
)

// All disables a filter field, same as leaving it empty.
const All = "all"

var ErrInvalidRange = errors.New("invalid date range")

// Filter narrows the admin inbox. Fields combine with AND.
type Filter struct {
	Status      string `form:"status"`
	Product     string `form:"product"`      // product name
	ProductType string `form:"product_type"` // product type name
	Wilaya      string `form:"wilaya"`
	DateRange   string `form:"date_range"`
}

// TypeResolver maps a product id to its product type name, "" when unknown.
type TypeResolver func(productID string) string

// NewTypeResolver builds a resolver from product id -> type id and
// type id -> type name indexes.
func NewTypeResolver(productType, typeName map[string]string) TypeResolver {
	return func(productID string) string {
		typeID, ok := productType[productID]
		if !ok {
			return ""
		}
		return typeName[typeID]
	}
}

// Cutoff returns the earliest created_at admitted by a date range. ok is false
// when the range is unset.
func Cutoff(dateRange string, now time.Time) (cutoff time.Time, ok bool, err error) {
	switch dateRange {
	case "", All:
		return time.Time{}, false, nil
	case RangeLast24Hours:
		return now.Add(-24 * time.Hour), true, nil
	case RangeLastWeek:
		return now.AddDate(0, 0, -7), true, nil
	case RangeLast2Weeks:
		return now.AddDate(0, 0, -14), true, nil
	case RangeLast3Weeks:
		return now.AddDate(0, 0, -21), true, nil
	case RangeLastMonth:
		return now.AddDate(0, -1, 0), true, nil
	case RangeLast3Months:
		return now.AddDate(0, -3, 0), true, nil
	case RangeLast6Months:
		return now.AddDate(0, -6, 0), true, nil
	case RangeLastYear:
		return now.AddDate(-1, 0, 0), true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidRange, dateRange)
}

// Apply returns the orders matching f, keeping input order. resolve may be nil
// when f.ProductType is unset.
func Apply(list []Order, f Filter, resolve TypeResolver, now time.Time) ([]Order, error) {
	cutoff, hasCutoff, err := Cutoff(f.DateRange, now)
	if err != nil {
		return nil, err
	}
	if active(f.Status) && !ValidStatus(f.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}

	out := make([]Order, 0, len(list))
	for _, o := range list {
		if active(f.Status) && o.Status != f.Status {
			continue
		}
		if active(f.Product) && o.ProductName != f.Product {
			continue
		}
		if active(f.Wilaya) && o.Wilaya != f.Wilaya {
			continue
		}
		if active(f.ProductType) && (resolve == nil || resolve(o.ProductID) != f.ProductType) {
			continue
		}
		if hasCutoff && o.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func active(v string) bool { return v != "" && v != All }
