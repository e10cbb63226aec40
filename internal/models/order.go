package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status describes where an order sits in its lifecycle. Transitions are
// unrestricted: the admin may move an order from any status to any other.
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusPaid      Status = "paid"
	StatusOrdered   Status = "ordered"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"

	// StatusLegacyPending is the old French spelling still present in
	// stored orders. It is folded to StatusPending at parse time.
	StatusLegacyPending = "en attente"
)

// PaymentMethod is how the customer chose to settle the order.
type PaymentMethod string

const (
	PaymentWhatsApp PaymentMethod = "whatsapp"
	PaymentCard     PaymentMethod = "stripe"
)

// ParseStatus validates a wire-level status value and folds the legacy
// alias onto the canonical set. The bool reports whether the value was
// recognised.
func ParseStatus(raw string) (Status, bool) {
	if raw == StatusLegacyPending {
		return StatusPending, true
	}
	switch s := Status(raw); s {
	case StatusPending, StatusContacted, StatusPaid, StatusOrdered, StatusShipped, StatusDelivered:
		return s, true
	}
	return "", false
}

// IsPending reports whether a stored status means "awaiting contact",
// accepting both the canonical and the legacy spelling.
func IsPending(raw string) bool {
	return raw == string(StatusPending) || raw == StatusLegacyPending
}

// Customer holds the contact details captured at checkout. Immutable after
// order creation.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// OrderItem is one line of an order. Price is the unit price in the
// reference currency (EUR).
type OrderItem struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image,omitempty"`
}

// Order represents one customer purchase intent.
type Order struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	OrderNumber   string          `db:"order_number" json:"orderNumber"`
	Customer      Customer        `json:"customer"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Currency      string          `db:"currency" json:"currency"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	Status        Status          `db:"status" json:"status"`
	Notes         string          `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}

// ItemsTotal sums price*quantity over the line items.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Normalize repairs a stored total that looks like a placeholder. Older
// records were written with totalAmount 0 or 1; any value <= 1 is not
// trusted and is recomputed from the line items. Applied at every store
// read so the rest of the system only sees consistent totals.
func (o *Order) Normalize() {
	if o.TotalAmount.LessThanOrEqual(decimal.NewFromInt(1)) {
		o.TotalAmount = o.ItemsTotal()
	}
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Customer      Customer      `json:"customer"`
	Items         []OrderItem   `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes"`
}

// CreateOrderResponse returns the generated human-readable order number.
type CreateOrderResponse struct {
	OrderNumber string `json:"orderNumber"`
}

// UpdateStatusRequest carries a status change for an order.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse is the wire form of a line item. Amounts go out as
// plain JSON numbers.
type OrderItemResponse struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Customer      Customer            `json:"customer"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   float64             `json:"totalAmount"`
	Currency      string              `json:"currency"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	Status        Status              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     string              `json:"createdAt"`
}

// ToResponse maps an order to its wire form.
func (o *Order) ToResponse() *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		price, _ := it.Price.Float64()
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			Name:        it.Name,
			Description: it.Description,
			Price:       price,
			Quantity:    it.Quantity,
			Image:       it.Image,
		})
	}

	total, _ := o.TotalAmount.Float64()
	return &OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Customer:      o.Customer,
		Items:         items,
		TotalAmount:   total,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}

// OrdersToResponse maps a snapshot to its wire form.
func OrdersToResponse(orders []Order) []*OrderResponse {
	resp := make([]*OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orders[i].ToResponse())
	}
	return resp
}
