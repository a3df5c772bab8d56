// Package stats computes the admin dashboard numbers by joining the order
// and food listings.
package stats

import (
	"context"

	"fooddash-client/internal/food"
	"fooddash-client/internal/logger"
	"fooddash-client/internal/order"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Summary struct {
	TotalOrders      int
	ProcessingOrders int
	TotalFoods       int
	TotalRevenue     float64
}

type Service struct {
	orders *order.Workflow
	foods  food.Service
}

func NewService(orders *order.Workflow, foods food.Service) *Service {
	return &Service{orders: orders, foods: foods}
}

// Summary fetches orders and foods concurrently and aggregates them. The two
// branches write to disjoint variables and the result is only assembled after
// both finished; if either fails, nothing is published.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "stats.Summary"))

	var (
		orders []order.Order
		foods  []food.Food
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx, order.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		foods, err = s.foods.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to gather dashboard data", zap.Error(err))
		return Summary{}, err
	}

	sum := Summary{
		TotalOrders: len(orders),
		TotalFoods:  len(foods),
	}
	for _, o := range orders {
		if o.Status == order.StatusProcessing {
			sum.ProcessingOrders++
		}
		sum.TotalRevenue += o.TotalAmount
	}

	log.Info("dashboard summary computed",
		zap.Int("orders", sum.TotalOrders),
		zap.Int("foods", sum.TotalFoods),
	)
	return sum, nil
}
