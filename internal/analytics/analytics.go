// Package analytics aggregates orders for the admin dashboard.
package analytics

import (
	"sort"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/orders"
)

// TopN bounds the product leaderboard.
const TopN = 5

// Count is one row of a ranked breakdown.
type Count struct {
	Key     string `json:"key"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// Day is one daily bucket in the store timezone.
type Day struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// Summary is the dashboard payload.
type Summary struct {
	Range       string         `json:"range"`
	TotalOrders int            `json:"total_orders"`
	Revenue     int64          `json:"revenue"`
	ByStatus    map[string]int `json:"by_status"`
	ByWilaya    []Count        `json:"by_wilaya"`
	TopProducts []Count        `json:"top_products"`
	Daily       []Day          `json:"daily"`
}

// countsRevenue reports whether an order's total is counted as revenue.
func countsRevenue(status string) bool {
	return status != orders.StatusCancelled && status != orders.StatusReturned
}

// Summarize aggregates the orders created within dateRange (empty or "all"
// for everything). Days are bucketed in loc.
func Summarize(list []orders.Order, dateRange string, now time.Time, loc *time.Location) (Summary, error) {
	if loc == nil {
		loc = time.UTC
	}
	in, err := orders.Apply(list, orders.Filter{DateRange: dateRange}, nil, now)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Range: dateRange, ByStatus: map[string]int{}}
	if s.Range == "" {
		s.Range = orders.All
	}
	for _, st := range orders.Statuses {
		s.ByStatus[st] = 0
	}

	wilayas := map[string]*Count{}
	products := map[string]*Count{}
	days := map[string]*Day{}

	for _, o := range in {
		s.TotalOrders++
		s.ByStatus[o.Status]++

		var rev int64
		if countsRevenue(o.Status) {
			rev = o.TotalPrice
		}
		s.Revenue += rev

		bump(wilayas, o.Wilaya, rev)
		bump(products, o.ProductName, rev)

		key := o.CreatedAt.In(loc).Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &Day{Date: key}
			days[key] = d
		}
		d.Orders++
		d.Revenue += rev
	}

	s.ByWilaya = ranked(wilayas, 0)
	s.TopProducts = ranked(products, TopN)
	s.Daily = make([]Day, 0, len(days))
	for _, d := range days {
		s.Daily = append(s.Daily, *d)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })
	return s, nil
}

func bump(m map[string]*Count, key string, rev int64) {
	c, ok := m[key]
	if !ok {
		c = &Count{Key: key}
		m[key] = c
	}
	c.Orders++
	c.Revenue += rev
}

// ranked sorts by orders desc, then key; limit <= 0 keeps all.
func ranked(m map[string]*Count, limit int) []Count {
	out := make([]Count, 0, len(m))
	for _, c := range m {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
