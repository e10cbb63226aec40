package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/currency"
	"github.com/winshop/winshop/internal/dashboard"
	"github.com/winshop/winshop/internal/models"
	"github.com/winshop/winshop/internal/storage"
)

var (
	ErrInvalidCustomer = errors.New("customer name, phone and city are required")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidStatus   = errors.New("unknown order status")
)

// OrderService defines the order operations exposed to handlers.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (string, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	Dashboard(ctx context.Context, criteria dashboard.Criteria, unit currency.Unit) (*DashboardData, error)
}

// DashboardData is everything the admin dashboard renders: statistics over
// the full snapshot, the filtered order list and the city dropdown values.
type DashboardData struct {
	Stats  StatsView               `json:"stats"`
	Orders []*models.OrderResponse `json:"orders"`
	Cities []string                `json:"cities"`
}

// StatsView is the wire form of the dashboard statistics. Raw amounts stay
// in the reference unit; the display fields carry the requested currency.
type StatsView struct {
	TotalRevenue      float64           `json:"totalRevenue"`
	TotalOrders       int               `json:"totalOrders"`
	PendingOrders     int               `json:"pendingOrders"`
	AverageOrderValue float64           `json:"averageOrderValue"`
	TopCity           string            `json:"topCity"`
	TopProducts       []ProductStatView `json:"topProducts"`
	DisplayCurrency   string            `json:"displayCurrency"`
	RevenueDisplay    string            `json:"revenueDisplay"`
	AverageDisplay    string            `json:"averageDisplay"`
}

// ProductStatView is the wire form of one top-product row.
type ProductStatView struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	orderStorage OrderStorage
	converter    *currency.Converter
}

// NewOrderService creates a new order service.
func NewOrderService(orderStorage OrderStorage, converter *currency.Converter) *OrderServiceImpl {
	if converter == nil {
		converter = currency.NewConverter(nil)
	}
	return &OrderServiceImpl{orderStorage: orderStorage, converter: converter}
}

// CreateOrder records a checkout and returns the generated order number.
// New orders always start pending.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (string, error) {
	customer := models.Customer{
		Name:  strings.TrimSpace(req.Customer.Name),
		Phone: strings.TrimSpace(req.Customer.Phone),
		City:  strings.TrimSpace(req.Customer.City),
	}
	if customer.Name == "" || customer.Phone == "" || customer.City == "" {
		return "", ErrInvalidCustomer
	}
	if len(req.Items) == 0 {
		return "", ErrEmptyOrder
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentWhatsApp
	}

	order := &models.Order{
		Customer:      customer,
		Items:         req.Items,
		TotalAmount:   decimal.NewFromFloat(req.TotalAmount),
		Currency:      "EUR",
		PaymentMethod: method,
		Status:        models.StatusPending,
		Notes:         req.Notes,
	}
	// A missing or placeholder total is recomputed from the items.
	order.Normalize()

	// Order numbers derive from the creation timestamp. On the rare
	// same-millisecond collision we perturb and retry.
	for attempt := 0; ; attempt++ {
		order.OrderNumber = generateOrderNumber(attempt)
		err := s.orderStorage.Create(ctx, order)
		if err == nil {
			return order.OrderNumber, nil
		}
		if !errors.Is(err, storage.ErrOrderAlreadyExists) || attempt >= 2 {
			return "", fmt.Errorf("create order: %w", err)
		}
	}
}

// ListOrders returns the full order snapshot with totals normalized.
func (s *OrderServiceImpl) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderStorage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range orders {
		orders[i].Normalize()
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status. The raw value may be any
// member of the status enum, including the legacy pending alias.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) error {
	status, ok := models.ParseStatus(rawStatus)
	if !ok {
		return ErrInvalidStatus
	}

	if err := s.orderStorage.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// DeleteOrder removes an order entirely.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderStorage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// Dashboard loads the snapshot once and computes statistics and the
// filtered view over it. Statistics always cover the whole snapshot, not
// the filtered subset.
func (s *OrderServiceImpl) Dashboard(ctx context.Context, criteria dashboard.Criteria, unit currency.Unit) (*DashboardData, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Stats:  s.statsView(dashboard.Aggregate(orders), unit),
		Orders: models.OrdersToResponse(dashboard.Filter(orders, criteria)),
		Cities: dashboard.Cities(orders),
	}, nil
}

func (s *OrderServiceImpl) statsView(stats dashboard.Stats, unit currency.Unit) StatsView {
	revenue, _ := stats.TotalRevenue.Float64()
	average, _ := stats.AverageOrderValue.Float64()

	top := make([]ProductStatView, 0, len(stats.TopProducts))
	for _, p := range stats.TopProducts {
		rev, _ := p.Revenue.Float64()
		top = append(top, ProductStatView{Name: p.Name, Count: p.Count, Revenue: rev})
	}

	return StatsView{
		TotalRevenue:      revenue,
		TotalOrders:       stats.TotalOrders,
		PendingOrders:     stats.PendingOrders,
		AverageOrderValue: average,
		TopCity:           stats.TopCity,
		TopProducts:       top,
		DisplayCurrency:   string(unit),
		RevenueDisplay:    s.converter.Format(stats.TotalRevenue, unit),
		AverageDisplay:    s.converter.Format(stats.AverageOrderValue, unit),
	}
}

// generateOrderNumber builds the human-readable "WIN" code from the last
// six digits of the current millisecond timestamp.
func generateOrderNumber(attempt int) string {
	millis := time.Now().UnixMilli() + int64(attempt)
	return fmt.Sprintf("WIN%06d", millis%1000000)
}
