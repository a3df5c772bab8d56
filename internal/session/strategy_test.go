package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fooddash-client/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIAuthenticatorLogin(t *testing.T) {
	t.Run("Flat admin response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "root@example.com", body["email"])

			w.Write([]byte(`{"_id":"a1","name":"Root","email":"root@example.com","token":"tok-admin"}`))
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantBare, nil), RoleAdmin)

		creds, err := auth.Login(context.Background(), "root@example.com", "pw")

		require.NoError(t, err)
		assert.Equal(t, "tok-admin", creds.Token)
		assert.Equal(t, Identity{ID: "a1", Name: "Root", Email: "root@example.com"}, creds.Identity)
	})

	t.Run("Envelope response falls back to profile fetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/user/login":
				w.Write([]byte(`{"success":true,"token":"tok-env"}`))
			case "/users/profile":
				assert.Equal(t, "Bearer tok-env", r.Header.Get("Authorization"))
				w.Write([]byte(`{"success":true,"data":{"_id":"u9","name":"Eve","email":"eve@example.com"}}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantEnvelope, nil), RoleCustomer)

		creds, err := auth.Login(context.Background(), "eve@example.com", "pw")

		require.NoError(t, err)
		assert.Equal(t, "tok-env", creds.Token)
		assert.Equal(t, "Eve", creds.Identity.Name)
	})

	t.Run("401 is invalid credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid email or password"}`))
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantBare, nil), RoleCustomer)

		_, err := auth.Login(context.Background(), "a@b.com", "wrong")

		assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	})

	t.Run("Envelope declared failure is invalid credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"invalid email or password"}`))
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantEnvelope, nil), RoleCustomer)

		_, err := auth.Login(context.Background(), "a@b.com", "wrong")

		assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	})

	t.Run("Missing token is a data error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"_id":"u1","name":"Ada"}`))
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantBare, nil), RoleCustomer)

		_, err := auth.Login(context.Background(), "a@b.com", "pw")

		assert.ErrorIs(t, err, api.ErrData)
	})
}

func TestAPIAuthenticatorRegister(t *testing.T) {
	t.Run("Customer registration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user/register", r.URL.Path)
			w.Write([]byte(`{"_id":"u2","name":"Bob","email":"bob@example.com","token":"tok-new"}`))
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantBare, nil), RoleCustomer)

		creds, err := auth.Register(context.Background(), "Bob", "bob@example.com", "pw")

		require.NoError(t, err)
		assert.Equal(t, "tok-new", creds.Token)
	})

	t.Run("Admin role is refused locally", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantBare, nil), RoleAdmin)

		_, err := auth.Register(context.Background(), "Bob", "bob@example.com", "pw")

		assert.ErrorIs(t, err, ErrRegistrationUnsupported)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("Server rejection is a validation error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"email already registered"}`))
		}))
		defer srv.Close()

		auth := NewAPIAuthenticator(api.NewClient(srv.URL, api.VariantBare, nil), RoleCustomer)

		_, err := auth.Register(context.Background(), "Bob", "taken@example.com", "pw")

		assert.ErrorIs(t, err, api.ErrValidation)
	})
}

func TestMockAuthenticator(t *testing.T) {
	auth := NewMockAuthenticator()

	t.Run("Login resolves without any HTTP call", func(t *testing.T) {
		creds, err := auth.Login(context.Background(), "whoever@example.com", "whatever")

		require.NoError(t, err)
		assert.NotEmpty(t, creds.Token)
		assert.NotEmpty(t, creds.Identity.ID)
	})

	t.Run("Profile matches the fixed identity", func(t *testing.T) {
		creds, _ := auth.Login(context.Background(), "a@b.com", "pw")

		ident, err := auth.Profile(context.Background(), creds.Token)

		require.NoError(t, err)
		assert.Equal(t, creds.Identity, ident)
	})
}

func TestTokenExpired(t *testing.T) {
	t.Run("Opaque token is never treated as expired", func(t *testing.T) {
		assert.False(t, tokenExpired("not-a-jwt"))
	})
}
