// Package store holds the key/value slots a todo collection is persisted in
// and the codec that turns the collection into slot bytes.
package store

import "errors"

// ErrNotFound is returned by Get when nothing was ever saved under a key.
var ErrNotFound = errors.New("slot not found")

// Slot is one named durable value. Set replaces the whole value.
type Slot interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}
