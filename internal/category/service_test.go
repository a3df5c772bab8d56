package category

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fooddash-client/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryList(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/categories", r.URL.Path)
			w.Write([]byte(`[{"_id":"c1","name":"Italian"},{"_id":"c2","name":"Desserts"}]`))
		}))
		defer srv.Close()

		svc := NewService(api.NewClient(srv.URL, api.VariantBare, nil))

		categories, err := svc.List(context.Background())

		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Italian", categories[0].Name)
	})

	t.Run("Missing name is a data error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"_id":"c1"}]`))
		}))
		defer srv.Close()

		svc := NewService(api.NewClient(srv.URL, api.VariantBare, nil))

		_, err := svc.List(context.Background())

		assert.ErrorIs(t, err, api.ErrData)
	})
}
