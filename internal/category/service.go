package category

import (
	"context"
	"fmt"

	"fooddash-client/internal/api"
	"fooddash-client/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Category, error)
}

type service struct {
	client api.Doer
}

func NewService(client api.Doer) Service {
	return &service{client: client}
}

type wireCategory struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

// List returns all categories. Both backends serve the same shape here, so
// there is no variant switch.
func (s *service) List(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "category.List"))

	var wire []wireCategory
	if err := s.client.Get(ctx, "/categories", &wire); err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	categories := make([]Category, 0, len(wire))
	for _, w := range wire {
		id := w.MongoID
		if id == "" {
			id = w.ID
		}
		if id == "" || w.Name == "" {
			return nil, fmt.Errorf("category missing id or name: %w", api.ErrData)
		}
		categories = append(categories, Category{ID: id, Name: w.Name})
	}
	return categories, nil
}
