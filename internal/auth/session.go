// Package auth keeps the client-side session: the persisted bearer token
// and the identity claims decoded from it. The token is decoded, not
// verified; verification is the backend's job and the claims only steer
// which views this client offers.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diyeddin/delivery-ui/internal/domain"
	"github.com/diyeddin/delivery-ui/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Identity is what the token's claims say about the current user.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    domain.Role
}

type Session struct {
	mu       sync.RWMutex
	token    string
	identity *Identity

	store  storage.Store
	logger *zap.Logger
}

func NewSession(store storage.Store, logger *zap.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Load restores the session from storage. A malformed or expired token is
// discarded and the session stays logged out; that is a normal state, not
// an error.
func (s *Session) Load() {
	data, err := s.store.Get(storage.KeyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read saved token", zap.Error(err))
		}
		return
	}

	token := string(data)
	identity, err := decodeIdentity(token)
	if err != nil {
		s.logger.Warn("discarding unusable saved token", zap.Error(err))
		if errDel := s.store.Delete(storage.KeyToken); errDel != nil {
			s.logger.Warn("failed to remove token", zap.Error(errDel))
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()
}

// Login decodes and persists a freshly issued token.
func (s *Session) Login(token string) error {
	identity, err := decodeIdentity(token)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()

	if err := s.store.Set(storage.KeyToken, []byte(token)); err != nil {
		s.logger.Warn("failed to persist token", zap.Error(err))
	}
	return nil
}

// Logout clears the session state and the stored token.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if err := s.store.Delete(storage.KeyToken); err != nil {
		s.logger.Warn("failed to remove token", zap.Error(err))
	}
}

// Token returns the raw bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Identity returns the decoded claims, or ErrNotLoggedIn.
func (s *Session) Identity() (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, ErrNotLoggedIn
	}
	return *s.identity, nil
}

// decodeIdentity extracts identity claims without verifying the signature.
// Expiry is still honored: an expired token is as good as none.
func decodeIdentity(token string) (*Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp != nil && exp.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	identity := &Identity{
		Subject: stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Role:    domain.Role(stringClaim(claims, "role")),
	}
	if identity.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
