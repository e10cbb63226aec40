package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/models"
)

func order(total int64, status models.Status, city string) models.Order {
	return models.Order{
		TotalAmount: decimal.NewFromInt(total),
		Status:      status,
		Customer:    models.Customer{City: city},
	}
}

func TestAggregate(t *testing.T) {
	orders := []models.Order{
		order(100, models.StatusPending, "Douala"),
		order(200, models.StatusPaid, "Douala"),
		order(50, models.StatusPending, "Yaoundé"),
	}

	stats := Aggregate(orders)

	if stats.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", stats.TotalOrders)
	}
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(350)) {
		t.Errorf("TotalRevenue = %s, want 350", stats.TotalRevenue)
	}
	if stats.PendingOrders != 2 {
		t.Errorf("PendingOrders = %d, want 2", stats.PendingOrders)
	}
	wantAvg := decimal.NewFromInt(350).Div(decimal.NewFromInt(3))
	if !stats.AverageOrderValue.Equal(wantAvg) {
		t.Errorf("AverageOrderValue = %s, want %s", stats.AverageOrderValue, wantAvg)
	}
	if stats.TopCity != "Douala" {
		t.Errorf("TopCity = %q, want %q", stats.TopCity, "Douala")
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	if stats.TotalOrders != 0 {
		t.Errorf("TotalOrders = %d, want 0", stats.TotalOrders)
	}
	if !stats.AverageOrderValue.IsZero() {
		t.Errorf("AverageOrderValue = %s, want 0", stats.AverageOrderValue)
	}
	if !stats.TotalRevenue.IsZero() {
		t.Errorf("TotalRevenue = %s, want 0", stats.TotalRevenue)
	}
	if stats.TopCity != NoCity {
		t.Errorf("TopCity = %q, want %q", stats.TopCity, NoCity)
	}
	if len(stats.TopProducts) != 0 {
		t.Errorf("TopProducts = %v, want empty", stats.TopProducts)
	}
}

func TestAggregate_LegacyPendingAlias(t *testing.T) {
	orders := []models.Order{
		order(10, models.Status(models.StatusLegacyPending), "Douala"),
		order(10, models.StatusPending, "Douala"),
		order(10, models.StatusDelivered, "Douala"),
	}

	stats := Aggregate(orders)
	if stats.PendingOrders != 2 {
		t.Errorf("PendingOrders = %d, want 2 (legacy alias counts)", stats.PendingOrders)
	}
}

func TestAggregate_MissingCustomer(t *testing.T) {
	orders := []models.Order{
		{TotalAmount: decimal.NewFromInt(20)},
	}

	stats := Aggregate(orders)
	if stats.TotalOrders != 1 {
		t.Errorf("TotalOrders = %d, want 1", stats.TotalOrders)
	}
	if stats.TopCity != UnknownCity {
		t.Errorf("TopCity = %q, want %q", stats.TopCity, UnknownCity)
	}
}

func TestAggregate_TopCityTieBreak(t *testing.T) {
	orders := []models.Order{
		order(1, models.StatusPending, "Garoua"),
		order(1, models.StatusPending, "Bamenda"),
		order(1, models.StatusPending, "Bamenda"),
		order(1, models.StatusPending, "Garoua"),
	}

	stats := Aggregate(orders)
	if stats.TopCity != "Garoua" {
		t.Errorf("TopCity = %q, want first-seen %q on tie", stats.TopCity, "Garoua")
	}
}

func TestAggregate_TopProducts(t *testing.T) {
	item := func(name string, price int64, qty int) models.OrderItem {
		return models.OrderItem{Name: name, Price: decimal.NewFromInt(price), Quantity: qty}
	}

	orders := []models.Order{
		{Items: []models.OrderItem{item("Shoe A", 10, 3), item("Shoe B", 5, 2)}},
		{Items: []models.OrderItem{item("Shoe B", 5, 3)}},
	}

	stats := Aggregate(orders)

	if len(stats.TopProducts) != 2 {
		t.Fatalf("TopProducts length = %d, want 2", len(stats.TopProducts))
	}
	if stats.TopProducts[0].Name != "Shoe B" || stats.TopProducts[0].Count != 5 {
		t.Errorf("TopProducts[0] = %+v, want Shoe B with count 5", stats.TopProducts[0])
	}
	if !stats.TopProducts[0].Revenue.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Shoe B revenue = %s, want 25", stats.TopProducts[0].Revenue)
	}
	if stats.TopProducts[1].Name != "Shoe A" || stats.TopProducts[1].Count != 3 {
		t.Errorf("TopProducts[1] = %+v, want Shoe A with count 3", stats.TopProducts[1])
	}
	if !stats.TopProducts[1].Revenue.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Shoe A revenue = %s, want 30", stats.TopProducts[1].Revenue)
	}
}

func TestAggregate_TopProductsLimit(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 7; i++ {
		orders = append(orders, models.Order{Items: []models.OrderItem{{
			Name:     string(rune('A' + i)),
			Price:    decimal.NewFromInt(1),
			Quantity: i + 1,
		}}})
	}

	stats := Aggregate(orders)
	if len(stats.TopProducts) != 5 {
		t.Fatalf("TopProducts length = %d, want 5", len(stats.TopProducts))
	}
	if stats.TopProducts[0].Count != 7 {
		t.Errorf("TopProducts[0].Count = %d, want 7", stats.TopProducts[0].Count)
	}
}
