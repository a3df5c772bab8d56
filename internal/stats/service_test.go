package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fooddash-client/internal/api"
	"fooddash-client/internal/food"
	"fooddash-client/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, api.VariantEnvelope, nil)
	return NewService(
		order.NewWorkflow(client, api.VariantEnvelope),
		food.NewService(client, api.VariantEnvelope),
	)
}

func TestSummary(t *testing.T) {
	t.Run("Aggregates both listings", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/order/list":
				w.Write([]byte(`{"success":true,"data":[
					{"_id":"o1","userId":"u1","items":[],"amount":12.5,"status":"Food Processing","date":"2024-05-01T08:00:00Z"},
					{"_id":"o2","userId":"u1","items":[],"amount":7.5,"status":"Delivered","date":"2024-05-02T08:00:00Z"},
					{"_id":"o3","userId":"u2","items":[],"amount":5,"status":"Food Processing","date":"2024-05-03T08:00:00Z"}
				]}`))
			case "/food/list":
				w.Write([]byte(`{"success":true,"data":[
					{"_id":"f1","name":"Pizza","price":9.5},
					{"_id":"f2","name":"Burger","price":6}
				]}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		})

		sum, err := svc.Summary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, sum.TotalOrders)
		assert.Equal(t, 2, sum.ProcessingOrders)
		assert.Equal(t, 2, sum.TotalFoods)
		assert.InDelta(t, 25.0, sum.TotalRevenue, 1e-9)
	})

	t.Run("Either branch failing fails the whole summary", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/order/list":
				w.WriteHeader(http.StatusInternalServerError)
			case "/food/list":
				w.Write([]byte(`{"success":true,"data":[]}`))
			}
		})

		sum, err := svc.Summary(context.Background())

		assert.ErrorIs(t, err, api.ErrNetwork)
		assert.Equal(t, Summary{}, sum)
	})
}
