// Package storage provides the local key-value store the task list is
// persisted into.
package storage

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidKey is returned for keys outside [A-Za-z0-9._-]+.
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// KV is a flat key-value store. Get reports absence with ok=false and a nil
// error.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

// ValidateKey checks that key is usable as a store key.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
