/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package engine provides the operations surface of the durable TTL cache.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"go.uber.org/atomic"

	"github.com/relieflink/cachestore/internal/cache/constants"
	"github.com/relieflink/cachestore/internal/cache/flight"
	"github.com/relieflink/cachestore/internal/cache/keylock"
	"github.com/relieflink/cachestore/internal/cache/model"
	"github.com/relieflink/cachestore/internal/cache/store"
	"github.com/relieflink/cachestore/internal/system/config"
	"github.com/relieflink/cachestore/internal/system/log"
)

// Operation names used in the logs and metrics.
const (
	opGet             = "get"
	opSet             = "set"
	opDelete          = "delete"
	opSetIfNotExists  = "set_if_not_exists"
	opIncrement       = "increment"
	opInvalidateByTag = "invalidate_by_tag"
	opSweep           = "sweep"
	opStatistics      = "statistics"
	opClear           = "clear"
	opListKeys        = "list_keys"
	opInspect         = "inspect"
)

// CacheEngineInterface defines the operations of the cache engine.
type CacheEngineInterface interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration, opts ...SetOption) error
	Has(ctx context.Context, key string) bool
	Delete(ctx context.Context, keys ...string) error
	SetIfNotExists(ctx context.Context, key string, value interface{}, ttl time.Duration,
		opts ...SetOption) (bool, error)
	Increment(ctx context.Context, key string, delta float64, ttl time.Duration, opts ...SetOption) (float64, error)
	GetOrSet(ctx context.Context, key string, compute ComputeFunc, ttl time.Duration,
		opts ...SetOption) (json.RawMessage, error)
	InvalidateByTag(ctx context.Context, tag string) (int64, error)
	SweepExpired(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (model.CacheStats, error)
	Clear(ctx context.Context) error
	ListKeys(ctx context.Context, pattern string) ([]string, error)
	Inspect(ctx context.Context, key string) (*model.CacheEntry, error)
	Ping(ctx context.Context) error
}

// Engine is the default implementation of CacheEngineInterface.
type Engine struct {
	store      store.CacheStoreInterface
	flights    flight.Group
	locks      *keylock.KeyLock
	metrics    *Metrics
	now        func() time.Time
	disabled   bool
	defaultTTL time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
	logger     *log.Logger
}

// NewEngine creates a new cache engine on top of the durable store.
func NewEngine(cacheStore store.CacheStoreInterface, opts ...Option) *Engine {
	e := &Engine{
		store:      cacheStore,
		locks:      keylock.New(),
		now:        time.Now,
		defaultTTL: time.Duration(config.DefaultCacheTTL) * time.Second,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, constants.EngineComponentName)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultTTL returns the TTL configured for callers that do not choose their own.
func (e *Engine) DefaultTTL() time.Duration {
	return e.defaultTTL
}

// IsDisabled reports whether the engine runs in always-miss mode.
func (e *Engine) IsDisabled() bool {
	return e.disabled
}

// Get returns the value of a live entry and records the hit. Absent, expired and unreadable
// entries are reported as a miss; an expired entry is removed on the way.
func (e *Engine) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	defer e.metrics.ObserveOperation(opGet, time.Now())

	if e.disabled || key == "" {
		e.recordLookup(false)
		return nil, false
	}

	now := e.instant()
	entry, err := e.store.ReadAndTouch(ctx, key, now)
	if err == nil {
		e.recordLookup(true)
		return entry.Value, true
	}

	e.recordLookup(false)
	if !errors.Is(err, constants.ErrEntryNotFound) {
		e.metrics.RecordStorageError(opGet)
		e.logger.Warn("Cache read failed, treating as a miss", log.String(log.LoggerKeyCacheKey, key),
			log.Error(err))
		return nil, false
	}

	evicted, err := e.store.DeleteIfExpired(ctx, key, now)
	if err != nil {
		e.metrics.RecordStorageError(opGet)
		e.logger.Debug("Failed to evict expired cache entry", log.String(log.LoggerKeyCacheKey, key),
			log.Error(err))
		return nil, false
	}
	if evicted {
		e.metrics.RecordEvictions(reasonLazy, 1)
		if e.logger.IsDebugEnabled() {
			e.logger.Debug("Evicted expired cache entry", log.String(log.LoggerKeyCacheKey, key))
		}
	}
	return nil, false
}

// Set writes the value under the key for the TTL, fully overwriting any existing entry.
func (e *Engine) Set(ctx context.Context, key string, value interface{}, ttl time.Duration,
	opts ...SetOption) error {
	defer e.metrics.ObserveOperation(opSet, time.Now())

	entry, err := e.newEntry(key, value, ttl, e.now(), opts)
	if err != nil {
		return err
	}
	if e.disabled {
		return nil
	}
	return e.upsert(ctx, opSet, entry)
}

// Has reports whether a live entry exists. It counts as an access of the entry.
func (e *Engine) Has(ctx context.Context, key string) bool {
	_, ok := e.Get(ctx, key)
	return ok
}

// Delete removes the entries stored under the keys. Missing keys are not an error.
func (e *Engine) Delete(ctx context.Context, keys ...string) error {
	defer e.metrics.ObserveOperation(opDelete, time.Now())

	if len(keys) == 0 {
		return fmt.Errorf("%w: at least one key is required", constants.ErrInvalidArgument)
	}
	for _, key := range keys {
		if key == "" {
			return fmt.Errorf("%w: key must not be empty", constants.ErrInvalidArgument)
		}
	}
	if e.disabled {
		return nil
	}

	if _, err := e.store.DeleteKeys(ctx, keys); err != nil {
		return e.storageError(opDelete, err)
	}
	return nil
}

// SetIfNotExists writes the entry only when no live entry holds the key and reports whether it did.
// The check and the write are a single conditional statement in the store.
func (e *Engine) SetIfNotExists(ctx context.Context, key string, value interface{}, ttl time.Duration,
	opts ...SetOption) (bool, error) {
	defer e.metrics.ObserveOperation(opSetIfNotExists, time.Now())

	now := e.now()
	entry, err := e.newEntry(key, value, ttl, now, opts)
	if err != nil {
		return false, err
	}
	if e.disabled {
		return true, nil
	}

	written, err := e.store.InsertIfAbsent(ctx, entry, now.Truncate(time.Millisecond))
	if err != nil {
		return false, e.storageError(opSetIfNotExists, err)
	}
	return written, nil
}

// Increment adds delta to the numeric value under the key and writes the result back with the TTL.
// Absent, expired and non-numeric values count as zero. Every increment starts a new TTL window.
func (e *Engine) Increment(ctx context.Context, key string, delta float64, ttl time.Duration,
	opts ...SetOption) (float64, error) {
	defer e.metrics.ObserveOperation(opIncrement, time.Now())

	if err := validateKeyAndTTL(key, ttl); err != nil {
		return 0, err
	}
	if e.disabled {
		return delta, nil
	}

	unlock := e.locks.Lock(key)
	defer unlock()

	now := e.now()
	current := 0.0
	entry, err := e.store.Read(ctx, key)
	switch {
	case err == nil:
		if !entry.IsExpired(now.Truncate(time.Millisecond)) {
			current = numericValue(entry.Value)
		}
	case errors.Is(err, constants.ErrEntryNotFound):
	default:
		return 0, e.storageError(opIncrement, err)
	}

	next := current + delta
	updated, err := e.newEntry(key, next, ttl, now, opts)
	if err != nil {
		return 0, err
	}
	if err := e.upsert(ctx, opIncrement, updated); err != nil {
		return 0, err
	}
	return next, nil
}

// InvalidateByTag removes every entry carrying the tag, live or expired, and returns how many were removed.
func (e *Engine) InvalidateByTag(ctx context.Context, tag string) (int64, error) {
	defer e.metrics.ObserveOperation(opInvalidateByTag, time.Now())

	if tag == "" {
		return 0, fmt.Errorf("%w: tag must not be empty", constants.ErrInvalidArgument)
	}
	if e.disabled {
		return 0, nil
	}

	removed, err := e.store.DeleteByTag(ctx, tag)
	if err != nil {
		return 0, e.storageError(opInvalidateByTag, err)
	}
	e.metrics.RecordEvictions(reasonTag, removed)
	e.logger.Debug("Invalidated cache entries by tag", log.String("tag", tag), log.Int64("removed", removed))
	return removed, nil
}

// SweepExpired removes every entry expired at the time of the call and returns how many were removed.
// Each row is re-checked at deletion, so entries refreshed while the sweep runs are kept.
func (e *Engine) SweepExpired(ctx context.Context) (int64, error) {
	defer e.metrics.ObserveOperation(opSweep, time.Now())

	if e.disabled {
		return 0, nil
	}

	removed, err := e.store.DeleteExpiredBefore(ctx, e.instant())
	if err != nil {
		return 0, e.storageError(opSweep, err)
	}
	e.metrics.RecordSweep(removed)
	return removed, nil
}

// Statistics returns the stored, live and expired entry counts with the hit and miss counters of this process.
func (e *Engine) Statistics(ctx context.Context) (model.CacheStats, error) {
	defer e.metrics.ObserveOperation(opStatistics, time.Now())

	hits := e.hits.Load()
	misses := e.misses.Load()
	stats := model.CacheStats{Hits: hits, Misses: misses}
	if hits+misses > 0 {
		stats.HitRate = float64(hits) / float64(hits+misses)
	}
	if e.disabled {
		return stats, nil
	}

	now := e.instant()
	total, err := e.store.CountAll(ctx)
	if err != nil {
		return model.CacheStats{}, e.storageError(opStatistics, err)
	}
	expired, err := e.store.CountExpiredBefore(ctx, now)
	if err != nil {
		return model.CacheStats{}, e.storageError(opStatistics, err)
	}
	// The two counts are separate reads; writes in between must not yield a negative active count.
	if expired > total {
		expired = total
	}

	stats.Total = total
	stats.Expired = expired
	stats.Active = total - expired
	return stats, nil
}

// Clear removes every entry.
func (e *Engine) Clear(ctx context.Context) error {
	defer e.metrics.ObserveOperation(opClear, time.Now())

	if e.disabled {
		return nil
	}

	removed, err := e.store.DeleteAll(ctx)
	if err != nil {
		return e.storageError(opClear, err)
	}
	e.logger.Info("Cleared the cache", log.Int64("removed", removed))
	return nil
}

// ListKeys returns the stored keys matching the pattern, expired entries included.
// % and * match any run of characters, _ and ? match a single character. An empty pattern matches all keys.
func (e *Engine) ListKeys(ctx context.Context, pattern string) ([]string, error) {
	defer e.metrics.ObserveOperation(opListKeys, time.Now())

	if e.disabled {
		return []string{}, nil
	}

	keys, err := e.store.ListKeysMatching(ctx, normalizePattern(pattern))
	if err != nil {
		return nil, e.storageError(opListKeys, err)
	}
	return keys, nil
}

// Inspect returns the stored record without recording an access or filtering on expiry.
func (e *Engine) Inspect(ctx context.Context, key string) (*model.CacheEntry, error) {
	defer e.metrics.ObserveOperation(opInspect, time.Now())

	if key == "" {
		return nil, fmt.Errorf("%w: key must not be empty", constants.ErrInvalidArgument)
	}
	if e.disabled {
		return nil, constants.ErrEntryNotFound
	}

	entry, err := e.store.Read(ctx, key)
	if err != nil {
		if errors.Is(err, constants.ErrEntryNotFound) {
			return nil, err
		}
		return nil, e.storageError(opInspect, err)
	}
	return entry, nil
}

// Ping verifies that the durable store is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

// upsert writes the entry and reports store failures as unavailable storage.
func (e *Engine) upsert(ctx context.Context, operation string, entry *model.CacheEntry) error {
	if err := e.store.Upsert(ctx, entry); err != nil {
		return e.storageError(operation, err)
	}
	return nil
}

// instant returns the clock reading at the millisecond resolution the store compares timestamps with.
func (e *Engine) instant() time.Time {
	return e.now().Truncate(time.Millisecond)
}

// ceilMillis rounds up to the next whole millisecond so an entry never expires before its TTL has passed.
func ceilMillis(t time.Time) time.Time {
	truncated := t.Truncate(time.Millisecond)
	if truncated.Before(t) {
		return truncated.Add(time.Millisecond)
	}
	return truncated
}

// newEntry validates the arguments and builds a fresh entry created at now.
func (e *Engine) newEntry(key string, value interface{}, ttl time.Duration, now time.Time,
	opts []SetOption) (*model.CacheEntry, error) {
	if err := validateKeyAndTTL(key, ttl); err != nil {
		return nil, err
	}

	options := entryOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	encoded, err := encodeJSON(value)
	if err != nil {
		return nil, fmt.Errorf("%w: value is not serializable: %w", constants.ErrInvalidArgument, err)
	}

	var metadata json.RawMessage
	if options.metadata != nil {
		metadata, err = encodeJSON(options.metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata is not serializable: %w", constants.ErrInvalidArgument, err)
		}
	}

	return &model.CacheEntry{
		Key:       key,
		Value:     encoded,
		CreatedAt: now.Truncate(time.Millisecond),
		ExpiresAt: ceilMillis(now.Add(ttl)),
		Tags:      store.NormalizeTags(options.tags),
		Metadata:  metadata,
	}, nil
}

// storageError logs and counts a store failure and wraps it as unavailable storage.
func (e *Engine) storageError(operation string, err error) error {
	e.metrics.RecordStorageError(operation)
	e.logger.Error("Cache storage operation failed", log.String("operation", operation), log.Error(err))
	return fmt.Errorf("%w: %s: %w", constants.ErrStorageUnavailable, operation, err)
}

// recordLookup counts a hit or a miss.
func (e *Engine) recordLookup(hit bool) {
	if hit {
		e.hits.Inc()
	} else {
		e.misses.Inc()
	}
	e.metrics.RecordLookup(hit)
}

// validateKeyAndTTL rejects empty keys and TTLs below the storage resolution.
func validateKeyAndTTL(key string, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("%w: key must not be empty", constants.ErrInvalidArgument)
	}
	if ttl < constants.MinTTL {
		return fmt.Errorf("%w: ttl must be at least %s, got %s", constants.ErrInvalidArgument, constants.MinTTL, ttl)
	}
	return nil
}

// encodeJSON encodes a value for storage. Raw JSON is validated and stored as is.
func encodeJSON(value interface{}) (json.RawMessage, error) {
	if raw, ok := value.(json.RawMessage); ok {
		if !gojson.Valid(raw) {
			return nil, errors.New("invalid raw JSON")
		}
		return raw, nil
	}
	encoded, err := gojson.Marshal(value)
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// numericValue reads a stored value as a number, treating anything else as zero.
func numericValue(raw json.RawMessage) float64 {
	var number float64
	if err := gojson.Unmarshal(raw, &number); err != nil {
		return 0
	}
	return number
}

// normalizePattern maps the glob style wildcards to their LIKE equivalents.
func normalizePattern(pattern string) string {
	if pattern == "" {
		return constants.WildcardAny
	}
	return strings.NewReplacer("*", constants.WildcardAny, "?", constants.WildcardOne).Replace(pattern)
}
