package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flicky/go-storefront/internal/model"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Store holds the authenticated session: bearer token, user profile, and
// the auth-modal visibility flag presentation consumes. The in-memory copy
// and the persisted copy always move together; a corrupted persisted user
// demotes the whole session to logged-out, never to a half-restored one.
type Store struct {
	storage Storage

	mu            sync.RWMutex
	token         string
	user          *model.User
	authenticated bool
	showAuthModal bool
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Initialize restores the persisted session. It runs once at startup,
// before any consumer reads the store.
func (s *Store) Initialize() {
	token, _ := s.storage.Get(tokenKey)
	userJSON, _ := s.storage.Get(userKey)
	if token == "" || userJSON == "" {
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		s.Logout()
		return
	}
	if tokenExpired(token) {
		s.Logout()
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()
}

// Login overwrites the stored credentials unconditionally and closes any
// open auth prompt.
func (s *Store) Login(token string, user model.User) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = s.storage.Set(tokenKey, token)
	_ = s.storage.Set(userKey, string(userJSON))

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.authenticated = true
	s.showAuthModal = false
	s.mu.Unlock()
}

// Logout clears credentials everywhere. It never fails.
func (s *Store) Logout() {
	_ = s.storage.Delete(tokenKey)
	_ = s.storage.Delete(userKey)

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) OpenAuthModal() {
	s.mu.Lock()
	s.showAuthModal = true
	s.mu.Unlock()
}

func (s *Store) CloseAuthModal() {
	s.mu.Lock()
	s.showAuthModal = false
	s.mu.Unlock()
}

func (s *Store) AuthModalVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showAuthModal
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// The credential is opaque to the client, so anything that does not parse
// as a JWT is kept and left for the backend to judge.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
