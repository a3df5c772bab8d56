package session

import (
	"context"
	"errors"
	"fmt"

	"fooddash-client/internal/api"
)

// Authenticator is the strategy behind the session manager. The real one
// talks to the backend; the mock one fabricates a fixed identity so the apps
// run without any network. Picking one happens once, at construction.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Register(ctx context.Context, name, email, password string) (Credentials, error)
	Profile(ctx context.Context, token string) (Identity, error)
}

type apiAuthenticator struct {
	client api.Doer
	role   Role
}

// NewAPIAuthenticator returns the network-backed strategy for the given role.
func NewAPIAuthenticator(client api.Doer, role Role) Authenticator {
	return &apiAuthenticator{client: client, role: role}
}

// wireAuth covers both login response shapes: the admin backend answers with
// a flat identity plus token, the envelope backend with {success, token}.
type wireAuth struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

func (w wireAuth) identity() Identity {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}
	return Identity{ID: id, Name: w.Name, Email: w.Email}
}

func (a *apiAuthenticator) Login(ctx context.Context, email, password string) (Credentials, error) {
	path := "/user/login"
	if a.role == RoleAdmin {
		path = "/admin/login"
	}

	body := map[string]string{"email": email, "password": password}

	var wire wireAuth
	if err := a.client.Post(ctx, path, body, &wire); err != nil {
		return Credentials{}, asCredentialError(err)
	}
	if wire.Token == "" {
		return Credentials{}, fmt.Errorf("login response carries no token: %w", api.ErrData)
	}

	ident := wire.identity()
	if ident.ID == "" {
		// The envelope backend returns only a token; the identity comes
		// from the profile endpoint.
		var err error
		ident, err = a.Profile(ctx, wire.Token)
		if err != nil {
			return Credentials{}, err
		}
	}
	return Credentials{Token: wire.Token, Identity: ident}, nil
}

func (a *apiAuthenticator) Register(ctx context.Context, name, email, password string) (Credentials, error) {
	if a.role == RoleAdmin {
		return Credentials{}, ErrRegistrationUnsupported
	}

	body := map[string]string{"name": name, "email": email, "password": password}

	var wire wireAuth
	if err := a.client.Post(ctx, "/user/register", body, &wire); err != nil {
		if errors.Is(err, api.ErrNetwork) || errors.Is(err, api.ErrValidation) {
			return Credentials{}, err
		}
		return Credentials{}, fmt.Errorf("%v: %w", err, api.ErrValidation)
	}
	if wire.Token == "" {
		return Credentials{}, fmt.Errorf("register response carries no token: %w", api.ErrData)
	}

	ident := wire.identity()
	if ident.ID == "" {
		var err error
		ident, err = a.Profile(ctx, wire.Token)
		if err != nil {
			return Credentials{}, err
		}
	}
	return Credentials{Token: wire.Token, Identity: ident}, nil
}

func (a *apiAuthenticator) Profile(ctx context.Context, token string) (Identity, error) {
	path := "/users/profile"
	if a.role == RoleAdmin {
		path = "/admin/profile"
	}

	var wire wireAuth
	if err := a.client.Get(api.WithToken(ctx, token), path, &wire); err != nil {
		return Identity{}, err
	}

	ident := wire.identity()
	if ident.ID == "" {
		return Identity{}, fmt.Errorf("profile response missing id: %w", api.ErrData)
	}
	return ident, nil
}

// asCredentialError folds every server-side login refusal into the invalid
// credentials kind; transport failures stay network errors.
func asCredentialError(err error) error {
	if errors.Is(err, api.ErrNetwork) || errors.Is(err, api.ErrInvalidCredentials) {
		return err
	}
	return fmt.Errorf("%v: %w", err, api.ErrInvalidCredentials)
}

// Fixed identity handed out by the mock strategy, mirroring the admin build's
// auth-disabled mode.
var mockIdentity = Identity{
	ID:    "mock-admin-1",
	Name:  "Dev Admin",
	Email: "dev@fooddash.local",
}

const mockToken = "mock-bypass-token"

type mockAuthenticator struct{}

// NewMockAuthenticator returns the bypass strategy: every operation succeeds
// immediately with a fixed identity and token, no network involved.
func NewMockAuthenticator() Authenticator {
	return mockAuthenticator{}
}

func (mockAuthenticator) Login(_ context.Context, _, _ string) (Credentials, error) {
	return Credentials{Token: mockToken, Identity: mockIdentity}, nil
}

func (mockAuthenticator) Register(_ context.Context, name, email, _ string) (Credentials, error) {
	ident := mockIdentity
	if name != "" {
		ident.Name = name
	}
	if email != "" {
		ident.Email = email
	}
	return Credentials{Token: mockToken, Identity: ident}, nil
}

func (mockAuthenticator) Profile(_ context.Context, _ string) (Identity, error) {
	return mockIdentity, nil
}
