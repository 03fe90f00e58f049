package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/diyeddin/delivery-ui/internal/domain"
	"github.com/diyeddin/delivery-ui/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (s *memStore) Get(key string) ([]byte, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(key string, value []byte) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	// The signing key is irrelevant; the session decodes without verifying.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_LoginDecodesAndPersists(t *testing.T) {
	store := newMemStore()
	s := NewSession(store, zap.NewNop())

	token := signToken(t, jwt.MapClaims{
		"sub":   "alice@example.com",
		"email": "alice@example.com",
		"name":  "Alice",
		"role":  "store_owner",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, s.Login(token))

	assert.True(t, s.Authenticated())
	assert.Equal(t, token, s.Token())

	id, err := s.Identity()
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStoreOwner, id.Role)
	assert.Equal(t, "Alice", id.Name)

	// A fresh session picks the token back up from storage.
	restored := NewSession(store, zap.NewNop())
	restored.Load()
	assert.True(t, restored.Authenticated())
}

func TestSession_MalformedTokenRejectedOnLogin(t *testing.T) {
	s := NewSession(newMemStore(), zap.NewNop())

	err := s.Login("not-a-jwt")
	assert.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestSession_LoadDiscardsMalformedToken(t *testing.T) {
	store := newMemStore()
	store.values[storage.KeyToken] = []byte("garbage")

	s := NewSession(store, zap.NewNop())
	s.Load()

	assert.False(t, s.Authenticated())
	_, err := s.Identity()
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
	// The bad token is removed, not left to fail again next start.
	_, err = store.Get(storage.KeyToken)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestSession_LoadDiscardsExpiredToken(t *testing.T) {
	store := newMemStore()
	store.values[storage.KeyToken] = []byte(signToken(t, jwt.MapClaims{
		"sub":  "bob@example.com",
		"role": "customer",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}))

	s := NewSession(store, zap.NewNop())
	s.Load()

	assert.False(t, s.Authenticated())
	_, err := store.Get(storage.KeyToken)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestSession_TokenWithoutExpiryIsAccepted(t *testing.T) {
	s := NewSession(newMemStore(), zap.NewNop())
	token := signToken(t, jwt.MapClaims{"sub": "carol", "role": "driver"})

	require.NoError(t, s.Login(token))
	id, err := s.Identity()
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, id.Role)
}

func TestSession_Logout(t *testing.T) {
	store := newMemStore()
	s := NewSession(store, zap.NewNop())
	require.NoError(t, s.Login(signToken(t, jwt.MapClaims{
		"sub": "dave", "role": "customer",
	})))

	s.Logout()

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	_, err := store.Get(storage.KeyToken)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
