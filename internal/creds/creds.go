// Package creds persists the bearer token in an embedded BadgerDB store
// under ~/.local/share/superlist/creds. Only the token is stored: the
// server never needs the raw email/password again, so neither do we.
package creds

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound reports that no token has been saved yet.
var ErrNotFound = errors.New("creds: token not found")

var tokenKey = []byte("auth/token")

// Config holds options for opening the credential store.
type Config struct {
	// Path is the directory for the store's files. Required unless InMemory.
	Path string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites forces durable writes. On by default outside tests so a
	// confirmed login survives an immediate crash.
	SyncWrites bool

	// Logger receives the store's internal log lines. Nil disables them.
	Logger *slog.Logger
}

// DefaultConfig returns the production configuration for the given directory.
func DefaultConfig(dir string) Config {
	return Config{Path: dir, SyncWrites: true}
}

// InMemoryConfig returns a configuration suitable for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store is a durable single-token credential store.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the credential store.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("creds: path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
			return nil, fmt.Errorf("create creds dir %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&storeLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open creds store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadToken returns the saved bearer token, or ErrNotFound.
func (s *Store) LoadToken() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// SaveToken durably replaces the saved bearer token.
func (s *Store) SaveToken(token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// DeleteToken removes the saved token. Deleting an absent token is not an error.
func (s *Store) DeleteToken() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tokenKey)
	})
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// storeLogger adapts slog.Logger to badger's Logger interface.
type storeLogger struct {
	logger *slog.Logger
}

func (l *storeLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *storeLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *storeLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *storeLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
