package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(KeyCart)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Set(KeyCart, []byte(`[{"product_id":1}]`)))

	data, err := store.Get(KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"product_id":1}]`, string(data))

	require.NoError(t, store.Delete(KeyCart))
	_, err = store.Get(KeyCart)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStore_OverwriteReplacesValue(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDeliveryAddress, []byte(`"123 Main St"`)))
	require.NoError(t, store.Set(KeyDeliveryAddress, []byte(`"1 Rose Ave"`)))

	data, err := store.Get(KeyDeliveryAddress)
	require.NoError(t, err)
	assert.Equal(t, `"1 Rose Ave"`, string(data))
}

func TestFileStore_DeleteMissingKeyIsNoop(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never_set"))
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCart, []byte(`[]`)))
	require.NoError(t, store.Set(KeyToken, []byte(`abc`)))
	require.NoError(t, store.Delete(KeyCart))

	data, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyCart, []byte(`[{"product_id":7,"quantity":2}]`)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	data, err := reopened.Get(KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"product_id":7,"quantity":2}]`, string(data))
}
