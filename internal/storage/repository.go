package storage

import (
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Backend is a durable medium for raw JSON blobs keyed by string.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverGorm   = "gorm"
	DriverMemory = "memory"
)

// OpenBackend opens the medium named by driver. Callers that cannot open a
// medium should fall back to NewMemoryBackend.
func OpenBackend(driver, path string) (Backend, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenSQLite(path)
	case DriverGorm:
		return OpenGorm(path)
	case DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, errors.New("storage: unknown driver " + driver)
	}
}
