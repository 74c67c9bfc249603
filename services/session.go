package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/blissorganic/storefront/clients"
	"github.com/blissorganic/storefront/database"
	"github.com/blissorganic/storefront/models"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Result is the outcome of a credential operation. Expected failures
// (bad credentials, network errors) come back here instead of as an
// error, so callers always inspect Success.
type Result struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SessionStore owns the authenticated identity for one visitor. It is
// the only writer of the persisted "token" and "user" keys; views read
// state through it and mutate it only via Login/Register/Logout.
//
// Invariant: token is non-empty iff user is non-nil, except before
// Hydrate completes.
type SessionStore struct {
	mu      sync.Mutex
	kv      database.KV
	api     *clients.APIClient
	user    *models.User
	token   string
	loading bool
	gen     uint64
}

func NewSessionStore(kv database.KV, api *clients.APIClient) *SessionStore {
	return &SessionStore{kv: kv, api: api, loading: true}
}

// Hydrate loads the persisted token and user record. A corrupt user
// record clears both persisted keys and resolves to "no session"; this
// never fails outward.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	token, err := s.kv.Get(ctx, tokenKey)
	if err != nil || token == "" {
		return
	}
	raw, err := s.kv.Get(ctx, userKey)
	if err != nil || raw == "" {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.kv.Delete(ctx, tokenKey)
		s.kv.Delete(ctx, userKey)
		return
	}

	s.token = token
	s.user = &user
}

// Login authenticates against the admin endpoint when role is "admin",
// otherwise the user endpoint. State and storage are only touched on
// success; the storage write happens before the in-memory update so a
// reader never observes an authenticated user without a persisted
// token. A login that completes after an interleaved Logout (or a
// newer credential operation) is discarded.
func (s *SessionStore) Login(ctx context.Context, email, password, role string) Result {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	var resp *clients.AuthResponse
	var err error
	if role == models.RoleAdmin {
		resp, err = s.api.AdminLogin(ctx, email, password)
	} else {
		resp, err = s.api.Login(ctx, email, password)
	}
	if err != nil {
		return Result{Success: false, Error: failureMessage(err, "Login failed")}
	}

	user := resp.Identity()
	if user == nil || resp.Token == "" {
		return Result{Success: false, Error: "Login failed"}
	}

	return s.commit(ctx, gen, user, resp.Token)
}

// Register creates a new account; new accounts are always ordinary
// users.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) Result {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return Result{Success: false, Error: failureMessage(err, "Registration failed")}
	}

	user := resp.Identity()
	if user == nil || resp.Token == "" {
		return Result{Success: false, Error: "Registration failed"}
	}

	return s.commit(ctx, gen, user, resp.Token)
}

// commit persists then applies a successful credential response, unless
// a newer operation has bumped the generation in the meantime.
func (s *SessionStore) commit(ctx context.Context, gen uint64, user *models.User, token string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return Result{Success: false, Error: "Session changed before sign-in completed"}
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return Result{Success: false, Error: "Login failed"}
	}
	// The user record goes first: hydration ignores a user without a
	// token, so a crash between the two writes resolves to signed out.
	if err := s.kv.Set(ctx, userKey, string(raw)); err != nil {
		return Result{Success: false, Error: "Login failed"}
	}
	if err := s.kv.Set(ctx, tokenKey, token); err != nil {
		s.kv.Delete(ctx, userKey)
		return Result{Success: false, Error: "Login failed"}
	}

	s.gen++
	s.token = token
	s.user = user
	return Result{Success: true, User: user}
}

// Logout clears persisted and in-memory state. It never fails; storage
// delete errors are ignored because the in-memory clear alone already
// ends the session for this process.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kv.Delete(ctx, tokenKey)
	s.kv.Delete(ctx, userKey)

	s.gen++
	s.token = ""
	s.user = nil
}

func (s *SessionStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token implements clients.TokenSource.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Loading reports whether the initial hydration has not completed yet.
func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionStore) IsAuthenticated() bool {
	return s.User() != nil
}

func (s *SessionStore) IsAdmin() bool {
	return s.User().IsAdmin()
}

// failureMessage prefers the server's message over the fallback. A
// transport error carries no server message, so the fallback is used.
func failureMessage(err error, fallback string) string {
	if apiErr, ok := err.(*clients.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
