package food

import (
	"context"
	"fmt"

	"fooddash-client/internal/api"
	"fooddash-client/internal/logger"

	"go.uber.org/zap"
)

// Service covers the menu operations of both apps: listing for the customer
// app, full CRUD for the admin app.
type Service interface {
	List(ctx context.Context) ([]Food, error)
	Get(ctx context.Context, id string) (Food, error)
	Create(ctx context.Context, form FormData) error
	Update(ctx context.Context, id string, form FormData) error
	Remove(ctx context.Context, id string) error
}

type service struct {
	client  api.Doer
	variant string
}

// NewService creates a food service for the given API variant.
func NewService(client api.Doer, variant string) Service {
	return &service{client: client, variant: variant}
}

func (s *service) List(ctx context.Context) ([]Food, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "food.List"))

	path := "/foods"
	if s.variant == api.VariantEnvelope {
		path = "/food/list"
	}

	var wire []wireFood
	if err := s.client.Get(ctx, path, &wire); err != nil {
		log.Error("failed to list foods", zap.Error(err))
		return nil, err
	}

	foods, err := mapFoods(wire)
	if err != nil {
		log.Error("failed to map foods", zap.Error(err))
		return nil, err
	}
	return foods, nil
}

func (s *service) Get(ctx context.Context, id string) (Food, error) {
	if s.variant == api.VariantEnvelope {
		// The envelope backend has no single-item endpoint.
		foods, err := s.List(ctx)
		if err != nil {
			return Food{}, err
		}
		for _, f := range foods {
			if f.ID == id {
				return f, nil
			}
		}
		return Food{}, fmt.Errorf("food %s: %w", id, api.ErrNotFound)
	}

	var wire wireFood
	if err := s.client.Get(ctx, "/foods/"+id, &wire); err != nil {
		return Food{}, err
	}
	return wire.toFood()
}

func (s *service) Create(ctx context.Context, form FormData) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "food.Create"),
		zap.String("name", form.Name),
	)

	path := "/foods"
	if s.variant == api.VariantEnvelope {
		path = "/food/add"
	}

	if err := s.client.Post(ctx, path, form, nil); err != nil {
		log.Error("failed to create food", zap.Error(err))
		return err
	}
	log.Info("food created")
	return nil
}

func (s *service) Update(ctx context.Context, id string, form FormData) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "food.Update"),
		zap.String("food_id", id),
	)

	var err error
	if s.variant == api.VariantEnvelope {
		body := struct {
			ID string `json:"id"`
			FormData
		}{ID: id, FormData: form}
		err = s.client.Post(ctx, "/food/edit", body, nil)
	} else {
		err = s.client.Put(ctx, "/foods/"+id, form, nil)
	}
	if err != nil {
		log.Error("failed to update food", zap.Error(err))
		return err
	}
	log.Info("food updated")
	return nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "food.Remove"),
		zap.String("food_id", id),
	)

	var err error
	if s.variant == api.VariantEnvelope {
		err = s.client.Post(ctx, "/food/remove", map[string]string{"id": id}, nil)
	} else {
		err = s.client.Delete(ctx, "/foods/"+id, nil)
	}
	if err != nil {
		log.Error("failed to remove food", zap.Error(err))
		return err
	}
	log.Info("food removed")
	return nil
}
