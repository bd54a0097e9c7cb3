// Package session holds the single persisted identity the gateway acts
// as. It is the only durable client-side state: one JSON file with the
// user, the bearer token and the authenticated flag.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

var ErrNotAuthenticated = errors.New("session: not authenticated")

type state struct {
	User            *models.User `json:"user,omitempty"`
	Token           string       `json:"token,omitempty"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

// Store is read by many handlers but mutated only through Login, Logout
// and UpdateUser. Rehydration from disk is lazy and happens once.
type Store struct {
	mu     sync.RWMutex
	path   string
	loaded bool
	state  state
	now    func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Login persists the token and user and marks the session authenticated.
func (s *Store) Login(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	s.state = state{
		User:            &user,
		Token:           token,
		IsAuthenticated: true,
	}
	return s.persist()
}

// Logout clears both the in-memory and the persisted identity.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	s.state = state{}
	return s.persist()
}

// UpdateUser merges the non-nil fields of the patch into the stored
// user. It is a no-op when nobody is logged in.
func (s *Store) UpdateUser(patch models.UpdateProfileRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	if !s.state.IsAuthenticated || s.state.User == nil {
		return nil
	}

	if patch.FullName != nil {
		s.state.User.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		s.state.User.Phone = *patch.Phone
	}
	if patch.Avatar != nil {
		s.state.User.Avatar = *patch.Avatar
	}
	return s.persist()
}

// Current returns a copy of the stored user. ok is false for guests.
func (s *Store) Current() (user *models.User, token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	if !s.state.IsAuthenticated || s.state.User == nil {
		return nil, "", false
	}
	u := *s.state.User
	return &u, s.state.Token, true
}

// Token is the bearer token source handed to the API client.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.state.Token
}

func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return
	}

	// A persisted token that has already expired is dropped rather than
	// rehydrated; the server would reject it anyway.
	if st.IsAuthenticated && tokenExpired(st.Token, s.now()) {
		st = state{}
	}
	s.state = st
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// tokenExpired reads the exp claim without verifying the signature. The
// platform is the authority on token validity; this check only avoids
// booting into a session that is guaranteed stale.
func tokenExpired(tokenString string, now time.Time) bool {
	if tokenString == "" {
		return true
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		// An opaque token we cannot parse is left for the server to judge.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
