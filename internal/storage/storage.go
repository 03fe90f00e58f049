package storage

import "errors"

var ErrNotFound = errors.New("key not found")

// Keys under which the client persists its durable state.
const (
	KeyCart            = "mall_cart"
	KeyToken           = "token"
	KeyDeliveryAddress = "delivery_address"
)

// Store is durable key/value storage on the client device.
// Consumers define this interface, not the file implementation.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
