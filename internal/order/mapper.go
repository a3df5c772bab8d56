package order

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fooddash-client/internal/api"
)

// wireOrder tolerates both backends in one struct: the admin backend sends a
// user object, totalAmount and a bare createdAt; the envelope backend sends
// userId, amount, date and an address object.
type wireOrder struct {
	MongoID     string          `json:"_id"`
	ID          string          `json:"id"`
	User        json.RawMessage `json:"user"`
	UserID      string          `json:"userId"`
	Items       []wireOrderItem `json:"items"`
	TotalAmount *float64        `json:"totalAmount"`
	Amount      *float64        `json:"amount"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	Date        string          `json:"date"`
	Address     json.RawMessage `json:"address"`
	Phone       string          `json:"phone"`
}

type wireOrderItem struct {
	Food     *wireFoodRef `json:"food"`
	Name     string       `json:"name"`
	Price    *float64     `json:"price"`
	Quantity int          `json:"quantity"`
}

type wireFoodRef struct {
	MongoID string  `json:"_id"`
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
}

type wireBuyer struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func (w wireOrder) toOrder() (Order, error) {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}
	if id == "" {
		return Order{}, fmt.Errorf("order missing id: %w", api.ErrData)
	}

	status, err := ParseStatus(w.Status)
	if err != nil {
		return Order{}, fmt.Errorf("order %s: %w", id, err)
	}

	createdAt, err := parseTimestamp(w.CreatedAt, w.Date)
	if err != nil {
		return Order{}, fmt.Errorf("order %s: %w", id, err)
	}

	var total float64
	switch {
	case w.TotalAmount != nil:
		total = *w.TotalAmount
	case w.Amount != nil:
		total = *w.Amount
	default:
		return Order{}, fmt.Errorf("order %s missing total: %w", id, api.ErrData)
	}

	buyer, err := parseBuyer(w.User, w.UserID)
	if err != nil {
		return Order{}, fmt.Errorf("order %s: %w", id, err)
	}

	items := make([]Item, 0, len(w.Items))
	for _, wi := range w.Items {
		item, err := wi.toItem()
		if err != nil {
			return Order{}, fmt.Errorf("order %s: %w", id, err)
		}
		items = append(items, item)
	}

	address, addrPhone := parseAddress(w.Address)
	phone := w.Phone
	if phone == "" {
		phone = addrPhone
	}

	return Order{
		ID:              id,
		Buyer:           buyer,
		Items:           items,
		TotalAmount:     total,
		Status:          status,
		CreatedAt:       createdAt,
		DeliveryAddress: address,
		Phone:           phone,
	}, nil
}

func (wi wireOrderItem) toItem() (Item, error) {
	if wi.Quantity < 1 {
		return Item{}, fmt.Errorf("order item quantity %d: %w", wi.Quantity, api.ErrData)
	}

	// Nested food object (admin shape) wins; otherwise the line itself
	// carries name and price (envelope shape).
	if wi.Food != nil {
		foodID := wi.Food.MongoID
		if foodID == "" {
			foodID = wi.Food.ID
		}
		return Item{
			FoodID:    foodID,
			Name:      wi.Food.Name,
			UnitPrice: wi.Food.Price,
			Quantity:  wi.Quantity,
		}, nil
	}

	if wi.Name == "" || wi.Price == nil {
		return Item{}, fmt.Errorf("order item missing name or price: %w", api.ErrData)
	}
	return Item{
		Name:      wi.Name,
		UnitPrice: *wi.Price,
		Quantity:  wi.Quantity,
	}, nil
}

func parseBuyer(raw json.RawMessage, userID string) (Buyer, error) {
	if len(raw) > 0 {
		trimmed := strings.TrimSpace(string(raw))
		if strings.HasPrefix(trimmed, "{") {
			var wb wireBuyer
			if err := json.Unmarshal(raw, &wb); err != nil {
				return Buyer{}, fmt.Errorf("decode order user: %w", api.ErrData)
			}
			id := wb.MongoID
			if id == "" {
				id = wb.ID
			}
			return Buyer{ID: id, Name: wb.Name, Email: wb.Email}, nil
		}
		// "user" as a plain id string.
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			return Buyer{ID: id}, nil
		}
	}
	return Buyer{ID: userID}, nil
}

func parseTimestamp(candidates ...string) (time.Time, error) {
	for _, s := range candidates {
		if s == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, nil
		}
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, api.ErrData)
	}
	return time.Time{}, fmt.Errorf("missing timestamp: %w", api.ErrData)
}

// parseAddress flattens either a plain string or the envelope backend's
// address object into one display line, and pulls out a phone if the object
// carried one.
func parseAddress(raw json.RawMessage) (address, phone string) {
	if len(raw) == 0 {
		return "", ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, ""
	}

	var obj struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zipcode string `json:"zipcode"`
		Country string `json:"country"`
		Phone   string `json:"phone"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", ""
	}

	parts := make([]string, 0, 5)
	for _, p := range []string{obj.Street, obj.City, obj.State, obj.Zipcode, obj.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", "), obj.Phone
}

func mapOrders(wire []wireOrder) ([]Order, error) {
	orders := make([]Order, 0, len(wire))
	for _, w := range wire {
		o, err := w.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// ParseStatus normalizes either status vocabulary into the canonical one.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "processing", "food processing":
		return StatusProcessing, nil
	case "confirmed", "out for delivery":
		return StatusOutForDelivery, nil
	case "delivered":
		return StatusDelivered, nil
	default:
		return "", fmt.Errorf("unknown order status %q: %w", s, api.ErrData)
	}
}

// wireStatus renders a canonical status in the vocabulary the configured
// backend expects.
func wireStatus(variant string, st Status) string {
	if variant == api.VariantEnvelope {
		switch st {
		case StatusProcessing:
			return "Food Processing"
		case StatusOutForDelivery:
			return "Out for delivery"
		default:
			return "Delivered"
		}
	}
	switch st {
	case StatusProcessing:
		return "pending"
	case StatusOutForDelivery:
		return "confirmed"
	default:
		return "delivered"
	}
}
