package session

// Role selects which app's auth surface the manager talks to. The admin and
// customer backends expose separate login/profile endpoints and the token is
// stored under a different key for each.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// State is the session lifecycle. A fresh manager is Unknown until Bootstrap
// resolves the persisted token one way or the other.
type State string

const (
	StateUnknown       State = "UNKNOWN"
	StateLoading       State = "LOADING"
	StateAuthenticated State = "AUTHENTICATED"
	StateAnonymous     State = "ANONYMOUS"
)

// Identity is the logged-in user or admin as the backend reports it.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Credentials pairs a bearer token with the identity it proves.
type Credentials struct {
	Token    string
	Identity Identity
}
