package order

import "time"

// Status is the canonical order lifecycle state. The two backends spell these
// differently on the wire; the mapper translates in both directions.
type Status string

const (
	StatusProcessing     Status = "PROCESSING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
)

// Buyer identifies the customer an order belongs to. The envelope backend
// only sends an id; Name and Email stay empty there.
type Buyer struct {
	ID    string
	Name  string
	Email string
}

// Item is one line of an order: a food reference frozen at the price it was
// bought for.
type Item struct {
	FoodID    string
	Name      string
	UnitPrice float64
	Quantity  int
}

type Order struct {
	ID              string
	Buyer           Buyer
	Items           []Item
	TotalAmount     float64
	Status          Status
	CreatedAt       time.Time
	DeliveryAddress string
	Phone           string
}

// PlaceParams is the checkout submission. TotalAmount comes from the cart's
// own arithmetic; the server recomputes and owns the final value.
type PlaceParams struct {
	Items           []Item
	TotalAmount     float64
	DeliveryAddress string
	Phone           string
}
