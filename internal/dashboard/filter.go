package dashboard

import (
	"strings"

	"github.com/winshop/winshop/internal/models"
)

// FilterAll disables the status or city predicate.
const FilterAll = "all"

// Criteria are the dashboard filter controls. The three predicates apply
// conjunctively.
type Criteria struct {
	Search string `query:"search"`
	Status string `query:"status"`
	City   string `query:"city"`
}

// Filter returns the orders matching the criteria, preserving input order.
// The input slice is never modified.
func Filter(orders []models.Order, c Criteria) []models.Order {
	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if matches(o, c) {
			matched = append(matched, o)
		}
	}
	return matched
}

func matches(o models.Order, c Criteria) bool {
	if c.Search != "" && !matchesSearch(o, c.Search) {
		return false
	}
	if c.Status != "" && c.Status != FilterAll && string(o.Status) != c.Status {
		return false
	}
	if c.City != "" && c.City != FilterAll && o.Customer.City != c.City {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match on the order
// number and customer name. Phones match on the raw stored string, so a
// search with separators only hits identically formatted numbers.
func matchesSearch(o models.Order, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(o.OrderNumber), lower) ||
		strings.Contains(strings.ToLower(o.Customer.Name), lower) ||
		strings.Contains(o.Customer.Phone, term)
}

// Cities lists the distinct customer cities in first-seen order, for the
// filter dropdown. Orders without a city are skipped.
func Cities(orders []models.Order) []string {
	seen := map[string]bool{}
	var cities []string
	for _, o := range orders {
		city := o.Customer.City
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		cities = append(cities, city)
	}
	return cities
}
