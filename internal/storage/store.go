package storage

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
)

const DefaultPrefix = "goal-track-ai-"

// Store is a typed JSON view over a Backend. Reads never fail: a missing key,
// an undecodable value or an unavailable backend yields the caller's default.
// Writes that fail are logged and kept in an in-process overlay.
type Store struct {
	prefix  string
	backend Backend
	logger  *log.Logger

	mu      sync.RWMutex
	overlay map[string][]byte
}

func NewStore(backend Backend, prefix string, logger *log.Logger) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		prefix:  prefix,
		backend: backend,
		logger:  logger,
		overlay: make(map[string][]byte),
	}
}

// Open opens the configured medium and falls back to memory when it is
// unavailable. The returned Store is always usable.
func Open(driver, path, prefix string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	backend, err := OpenBackend(driver, path)
	if err != nil {
		logger.Printf("storage: %s backend unavailable, using memory: %v", driver, err)
		backend = NewMemoryBackend()
	}
	return NewStore(backend, prefix, logger)
}

func (s *Store) Prefix() string { return s.prefix }

func (s *Store) Close() error {
	return s.backend.Close()
}

func Get[T any](s *Store, key string, def T) T {
	raw, ok := s.load(key)
	if !ok {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Printf("storage: decode %s: %v", key, err)
		return def
	}
	return out
}

func Set[T any](s *Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Printf("storage: encode %s: %v", key, err)
		return
	}
	s.mu.Lock()
	s.overlay[key] = raw
	s.mu.Unlock()
	if err := s.backend.Save(s.prefix+key, raw); err != nil {
		s.logger.Printf("storage: write %s: %v", key, err)
	}
}

func (s *Store) load(key string) ([]byte, bool) {
	s.mu.RLock()
	raw, ok := s.overlay[key]
	s.mu.RUnlock()
	if ok {
		return raw, true
	}
	raw, err := s.backend.Load(s.prefix + key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Printf("storage: read %s: %v", key, err)
		}
		return nil, false
	}
	return raw, true
}
