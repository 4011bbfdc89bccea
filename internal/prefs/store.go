// Package prefs persists string preferences in two scopes and resolves them
// into typed values with explicit default tracking.
package prefs

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

type Scope int

const (
	// Durable preferences survive across sessions.
	Durable Scope = iota
	// Ephemeral preferences live for one navigation session.
	Ephemeral
)

func (s Scope) String() string {
	switch s {
	case Durable:
		return "durable"
	case Ephemeral:
		return "ephemeral"
	default:
		return "unknown"
	}
}

// ErrUnavailable is logged when a scope has no backend.
var ErrUnavailable = errors.New("preference storage unavailable")

// Backend is a string key-value medium for a single scope.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Result is a resolved preference. IsDefault is true when nothing usable
// was stored and Value holds the caller's default.
type Result[T any] struct {
	Value     T
	IsDefault bool
}

// Store never returns persistence errors: failed reads resolve to the
// default and failed writes are dropped, both logged.
type Store struct {
	backends map[Scope]Backend
	logger   *slog.Logger
	timeout  time.Duration
}

func NewStore(durable, ephemeral Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	backends := make(map[Scope]Backend, 2)
	if durable != nil {
		backends[Durable] = durable
	}
	if ephemeral != nil {
		backends[Ephemeral] = ephemeral
	}
	return &Store{
		backends: backends,
		logger:   logger,
		timeout:  2 * time.Second,
	}
}

func (s *Store) Get(scope Scope, key, def string) Result[string] {
	raw, ok := s.lookup(scope, key)
	if !ok {
		return Result[string]{Value: def, IsDefault: true}
	}
	return Result[string]{Value: raw}
}

func (s *Store) Bool(scope Scope, key string, def bool) Result[bool] {
	raw, ok := s.lookup(scope, key)
	if !ok {
		return Result[bool]{Value: def, IsDefault: true}
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		s.logger.Warn("discarding malformed preference", "scope", scope, "key", key, "value", raw)
		return Result[bool]{Value: def, IsDefault: true}
	}
	return Result[bool]{Value: v}
}

func (s *Store) Int(scope Scope, key string, def int) Result[int] {
	raw, ok := s.lookup(scope, key)
	if !ok {
		return Result[int]{Value: def, IsDefault: true}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.logger.Warn("discarding malformed preference", "scope", scope, "key", key, "value", raw)
		return Result[int]{Value: def, IsDefault: true}
	}
	return Result[int]{Value: v}
}

func (s *Store) Set(scope Scope, key, value string) {
	backend, ok := s.backends[scope]
	if !ok {
		s.logger.Warn("preference write dropped", "scope", scope, "key", key, "error", ErrUnavailable)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := backend.Set(ctx, key, value); err != nil {
		s.logger.Warn("preference write dropped", "scope", scope, "key", key, "error", err)
	}
}

func (s *Store) SetBool(scope Scope, key string, value bool) {
	s.Set(scope, key, strconv.FormatBool(value))
}

func (s *Store) SetInt(scope Scope, key string, value int) {
	s.Set(scope, key, strconv.Itoa(value))
}

// Delete removes keys so later reads resolve to their defaults.
func (s *Store) Delete(scope Scope, keys ...string) {
	backend, ok := s.backends[scope]
	if !ok || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := backend.Delete(ctx, keys...); err != nil {
		s.logger.Warn("preference delete dropped", "scope", scope, "keys", keys, "error", err)
	}
}

func (s *Store) lookup(scope Scope, key string) (string, bool) {
	backend, ok := s.backends[scope]
	if !ok {
		s.logger.Debug("preference read fell back to default", "scope", scope, "key", key, "error", ErrUnavailable)
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	raw, found, err := backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("preference read fell back to default", "scope", scope, "key", key, "error", err)
		return "", false
	}
	return raw, found
}
