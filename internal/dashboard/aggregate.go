// Package dashboard holds the pure computations behind the admin order
// dashboard: summary statistics, filtering and snapshot reducers. Nothing
// here performs I/O; every function is total over its input.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/models"
)

const (
	// UnknownCity buckets orders whose customer has no city.
	UnknownCity = "Inconnue"
	// NoCity is returned when there are no orders to rank.
	NoCity = "N/A"
)

// ProductStat is one entry of the best-seller ranking. Revenue stays in
// the reference unit; display formatting is the caller's concern.
type ProductStat struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Stats summarizes an order snapshot for the dashboard.
type Stats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	TopCity           string          `json:"topCity"`
	TopProducts       []ProductStat   `json:"topProducts"`
}

// Aggregate computes dashboard statistics over the full order snapshot.
// Missing fields degrade to zero values or the unknown bucket; the
// function never fails, whatever shape the records are in.
func Aggregate(orders []models.Order) Stats {
	stats := Stats{
		TotalRevenue:      decimal.Zero,
		TotalOrders:       len(orders),
		AverageOrderValue: decimal.Zero,
		TopCity:           NoCity,
		TopProducts:       []ProductStat{},
	}

	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		if models.IsPending(string(o.Status)) {
			stats.PendingOrders++
		}
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalOrders)))
	}

	stats.TopCity = topCity(orders)
	stats.TopProducts = topProducts(orders, 5)
	return stats
}

// topCity returns the most frequent customer city. Ties go to the city
// seen first in the snapshot.
func topCity(orders []models.Order) string {
	counts := map[string]int{}
	var seen []string

	for _, o := range orders {
		city := o.Customer.City
		if city == "" {
			city = UnknownCity
		}
		if _, ok := counts[city]; !ok {
			seen = append(seen, city)
		}
		counts[city]++
	}

	if len(seen) == 0 {
		return NoCity
	}

	top := seen[0]
	for _, city := range seen[1:] {
		if counts[city] > counts[top] {
			top = city
		}
	}
	return top
}

// topProducts groups all line items by product name, accumulates quantity
// and reference-unit revenue, and returns the first limit entries by
// descending quantity. The sort is stable over first-seen order.
func topProducts(orders []models.Order, limit int) []ProductStat {
	index := map[string]int{}
	ranked := []ProductStat{}

	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.Name]
			if !ok {
				i = len(ranked)
				index[it.Name] = i
				ranked = append(ranked, ProductStat{Name: it.Name, Revenue: decimal.Zero})
			}
			ranked[i].Count += it.Quantity
			ranked[i].Revenue = ranked[i].Revenue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Count > ranked[b].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
