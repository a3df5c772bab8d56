package food

import (
	"fmt"

	"fooddash-client/internal/api"
)

// wireFood tolerates both backends: the legacy one uses Mongo-style "_id",
// newer payloads use "id".
type wireFood struct {
	MongoID     string  `json:"_id"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

func (w wireFood) toFood() (Food, error) {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}
	if id == "" || w.Name == "" {
		return Food{}, fmt.Errorf("food missing id or name: %w", api.ErrData)
	}
	if w.Price < 0 {
		return Food{}, fmt.Errorf("food %s has negative price: %w", id, api.ErrData)
	}

	return Food{
		ID:          id,
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Image:       w.Image,
		Category:    w.Category,
	}, nil
}

func mapFoods(wire []wireFood) ([]Food, error) {
	foods := make([]Food, 0, len(wire))
	for _, w := range wire {
		f, err := w.toFood()
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, nil
}
