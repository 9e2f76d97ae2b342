package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "Pending"
	// StatusDelivered keeps the backend's spelling.
	StatusDelivered OrderStatus = "Delievered"
	StatusRefunded  OrderStatus = "Refunded"
	StatusCancelled OrderStatus = "Cancelled"
)

// StatusAll is the filter value that selects every order.
const StatusAll OrderStatus = ""

var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusDelivered,
	StatusRefunded,
	StatusCancelled,
}

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusDelivered, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatusFilter accepts a wire value, a display label or "" for all orders.
func ParseStatusFilter(raw string) (OrderStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return StatusAll, nil
	}
	for _, s := range OrderStatuses {
		if raw == string(s) || raw == s.Label() {
			return s, nil
		}
	}
	return StatusAll, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusDelivered:
		return "Delivered"
	case StatusAll:
		return "All"
	default:
		return string(s)
	}
}

// Tone is the colour class a status badge is drawn with.
func (s OrderStatus) Tone() string {
	switch s {
	case StatusDelivered:
		return "success"
	case StatusPending:
		return "warning"
	default:
		return "danger"
	}
}

type OrderItem struct {
	Quantity           int             `json:"quantity"`
	ProductTitle       string          `json:"productTitle"`
	ProductDescription string          `json:"productDescription"`
	ProductImage       string          `json:"productImage"`
	ProductCategory    string          `json:"productCategory"`
	ProductPrice       decimal.Decimal `json:"productPrice"`
}

// Order mirrors the backend record. The backend names the line items "quantity".
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	OrderStatus OrderStatus     `json:"orderStatus"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	Items       []OrderItem     `json:"quantity"`
}

// FilterByStatus returns the orders whose status equals status, or all of
// them for StatusAll. The result never aliases the input slice.
func FilterByStatus(orders []Order, status OrderStatus) []Order {
	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if status == StatusAll || o.OrderStatus == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
