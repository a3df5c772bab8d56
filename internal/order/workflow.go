package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fooddash-client/internal/api"
	"fooddash-client/internal/logger"

	"go.uber.org/zap"
)

// Filter narrows a listing client-side: by status, and by a free-text match
// over order id and buyer name/email.
type Filter struct {
	Status *Status
	Search string
}

// Workflow exposes the order lifecycle to the apps. It keeps the last
// successfully fetched listing so a failed refresh can fall back to
// stale-but-valid data, and so Transition can validate and optimistically
// update against known state.
type Workflow struct {
	client  api.Doer
	variant string

	mu       sync.Mutex
	snapshot []Order
}

func NewWorkflow(client api.Doer, variant string) *Workflow {
	return &Workflow{client: client, variant: variant}
}

// List fetches all orders, newest first regardless of server ordering, and
// replaces the snapshot on success. On any error the snapshot is untouched.
func (w *Workflow) List(ctx context.Context, f Filter) ([]Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "order.List"))

	path := "/orders"
	if w.variant == api.VariantEnvelope {
		path = "/order/list"
	}

	var wire []wireOrder
	if err := w.client.Get(ctx, path, &wire); err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	orders, err := mapOrders(wire)
	if err != nil {
		log.Error("failed to map orders", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	w.mu.Lock()
	w.snapshot = orders
	w.mu.Unlock()

	return applyFilter(orders, f), nil
}

// Snapshot returns the last successfully fetched listing, filtered. The UI
// uses it to keep showing data after a failed refresh.
func (w *Workflow) Snapshot(f Filter) []Order {
	w.mu.Lock()
	orders := make([]Order, len(w.snapshot))
	copy(orders, w.snapshot)
	w.mu.Unlock()

	return applyFilter(orders, f)
}

// Get fetches a single order. The envelope backend has no single-order
// endpoint, so there it refreshes the listing and searches it.
func (w *Workflow) Get(ctx context.Context, id string) (Order, error) {
	if w.variant == api.VariantEnvelope {
		orders, err := w.List(ctx, Filter{})
		if err != nil {
			return Order{}, err
		}
		for _, o := range orders {
			if o.ID == id {
				return o, nil
			}
		}
		return Order{}, fmt.Errorf("order %s: %w", id, api.ErrNotFound)
	}

	var wire wireOrder
	if err := w.client.Get(ctx, "/orders/"+id, &wire); err != nil {
		return Order{}, err
	}
	return wire.toOrder()
}

// Place submits a checkout. The caller clears the cart only after this
// returns nil.
func (w *Workflow) Place(ctx context.Context, p PlaceParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "order.Place"),
		zap.Int("items", len(p.Items)),
		zap.Float64("total", p.TotalAmount),
	)

	if len(p.Items) == 0 {
		return fmt.Errorf("empty order: %w", api.ErrValidation)
	}

	type wireItem struct {
		FoodID   string  `json:"foodId,omitempty"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}
	items := make([]wireItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, wireItem{
			FoodID:   it.FoodID,
			Name:     it.Name,
			Price:    it.UnitPrice,
			Quantity: it.Quantity,
		})
	}

	body := map[string]any{
		"items":           items,
		"totalAmount":     p.TotalAmount,
		"deliveryAddress": p.DeliveryAddress,
		"phone":           p.Phone,
	}

	path := "/orders"
	if w.variant == api.VariantEnvelope {
		path = "/order/place"
	}

	if err := w.client.Post(ctx, path, body, nil); err != nil {
		log.Error("failed to place order", zap.Error(err))
		return err
	}
	log.Info("order placed")
	return nil
}

// Transition asks the server to move an order to next. The move must be the
// single valid successor of the order's current status; that is checked
// locally before any request goes out. The snapshot is updated optimistically
// and rolled back if the request fails.
func (w *Workflow) Transition(ctx context.Context, orderID string, next Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "order.Transition"),
		zap.String("order_id", orderID),
		zap.String("next", string(next)),
	)

	current, idx, err := w.currentStatus(ctx, orderID)
	if err != nil {
		return err
	}

	if !CanTransition(current, next) {
		log.Warn("transition refused locally", zap.String("current", string(current)))
		return fmt.Errorf("cannot move %s from %s to %s: %w",
			orderID, current, next, api.ErrOperationRejected)
	}

	w.setSnapshotStatus(idx, next)

	if err := w.requestTransition(ctx, orderID, next); err != nil {
		w.setSnapshotStatus(idx, current)
		log.Error("transition failed, rolled back", zap.Error(err))

		if errors.Is(err, api.ErrNetwork) {
			return err
		}
		return fmt.Errorf("%v: %w", err, api.ErrOperationRejected)
	}

	log.Info("order transitioned")
	return nil
}

func (w *Workflow) requestTransition(ctx context.Context, orderID string, next Status) error {
	if w.variant == api.VariantEnvelope {
		body := map[string]string{
			"orderId": orderID,
			"status":  wireStatus(w.variant, next),
		}
		return w.client.Post(ctx, "/order/status", body, nil)
	}
	body := map[string]string{"status": wireStatus(w.variant, next)}
	return w.client.Put(ctx, "/orders/"+orderID, body, nil)
}

// currentStatus resolves the order's status from the snapshot, falling back
// to a fetch when the order was never listed. idx is -1 when the order is not
// in the snapshot.
func (w *Workflow) currentStatus(ctx context.Context, orderID string) (Status, int, error) {
	w.mu.Lock()
	for i := range w.snapshot {
		if w.snapshot[i].ID == orderID {
			st := w.snapshot[i].Status
			w.mu.Unlock()
			return st, i, nil
		}
	}
	w.mu.Unlock()

	o, err := w.Get(ctx, orderID)
	if err != nil {
		return "", -1, err
	}
	// Get may have refreshed the snapshot; find the index again.
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.snapshot {
		if w.snapshot[i].ID == orderID {
			return o.Status, i, nil
		}
	}
	return o.Status, -1, nil
}

func (w *Workflow) setSnapshotStatus(idx int, st Status) {
	if idx < 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx < len(w.snapshot) {
		w.snapshot[idx].Status = st
	}
}

func applyFilter(orders []Order, f Filter) []Order {
	if f.Status == nil && f.Search == "" {
		return orders
	}

	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if query != "" && !matches(o, query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o Order, query string) bool {
	return strings.Contains(strings.ToLower(o.ID), query) ||
		strings.Contains(strings.ToLower(o.Buyer.Name), query) ||
		strings.Contains(strings.ToLower(o.Buyer.Email), query)
}
