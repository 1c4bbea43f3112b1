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

// Package store provides the durable persistence of the cache entries.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/relieflink/cachestore/internal/cache/constants"
	"github.com/relieflink/cachestore/internal/cache/model"
	dbmodel "github.com/relieflink/cachestore/internal/system/database/model"
	"github.com/relieflink/cachestore/internal/system/database/provider"
	dbutils "github.com/relieflink/cachestore/internal/system/database/utils"
	"github.com/relieflink/cachestore/internal/system/log"
)

// CacheStoreInterface defines the durable store operations of the cache.
type CacheStoreInterface interface {
	Read(ctx context.Context, key string) (*model.CacheEntry, error)
	ReadAndTouch(ctx context.Context, key string, now time.Time) (*model.CacheEntry, error)
	Upsert(ctx context.Context, entry *model.CacheEntry) error
	InsertIfAbsent(ctx context.Context, entry *model.CacheEntry, now time.Time) (bool, error)
	DeleteKeys(ctx context.Context, keys []string) (int64, error)
	DeleteIfExpired(ctx context.Context, key string, now time.Time) (bool, error)
	DeleteExpiredBefore(ctx context.Context, instant time.Time) (int64, error)
	DeleteByTag(ctx context.Context, tag string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	ListExpiredBefore(ctx context.Context, instant time.Time) ([]string, error)
	ListKeysByTag(ctx context.Context, tag string) ([]string, error)
	ListKeysMatching(ctx context.Context, pattern string) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
	CountExpiredBefore(ctx context.Context, instant time.Time) (int64, error)
	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
}

// cacheStore is the default implementation of CacheStoreInterface.
type cacheStore struct {
	dbProvider provider.DBProviderInterface
	logger     *log.Logger
}

// NewCacheStore creates a new instance of the cache store backed by the cache datasource.
func NewCacheStore(dbProvider provider.DBProviderInterface) CacheStoreInterface {
	return &cacheStore{
		dbProvider: dbProvider,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, constants.StoreComponentName)),
	}
}

// Read retrieves a cache entry by its key without any bookkeeping.
func (s *cacheStore) Read(ctx context.Context, key string) (*model.CacheEntry, error) {
	results, err := s.query(ctx, QueryGetEntry, key)
	if err != nil {
		return nil, err
	}

	return singleEntry(results)
}

// ReadAndTouch records a hit on the entry if it is alive at the given instant and returns it.
// The expiry check and the bookkeeping update run as one statement against the same row.
func (s *cacheStore) ReadAndTouch(ctx context.Context, key string, now time.Time) (*model.CacheEntry, error) {
	results, err := s.query(ctx, QueryReadAndTouchEntry, toMillis(now), key)
	if err != nil {
		return nil, err
	}

	return singleEntry(results)
}

// Upsert inserts the entry or fully overwrites the entry stored under the same key.
func (s *cacheStore) Upsert(ctx context.Context, entry *model.CacheEntry) error {
	args, err := entryArgs(entry)
	if err != nil {
		return err
	}

	if _, err := s.execute(ctx, QueryUpsertEntry, args...); err != nil {
		return err
	}
	return nil
}

// InsertIfAbsent writes the entry only if no entry alive at the given instant holds the key.
// An expired entry under the same key is replaced. Returns true when the entry was written.
func (s *cacheStore) InsertIfAbsent(ctx context.Context, entry *model.CacheEntry, now time.Time) (bool, error) {
	args, err := entryArgs(entry)
	if err != nil {
		return false, err
	}
	args = append(args, toMillis(now))

	rowsAffected, err := s.execute(ctx, QueryInsertEntryIfAbsent, args...)
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// DeleteKeys removes the entries stored under the given keys and returns the number removed.
func (s *cacheStore) DeleteKeys(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	query, args, err := dbutils.BuildInClauseQuery(deleteEntriesQueryID, deleteEntriesBaseQuery, "CACHE_KEY", keys)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	return s.execute(ctx, query, args...)
}

// DeleteIfExpired removes the entry only if it is expired at the given instant.
func (s *cacheStore) DeleteIfExpired(ctx context.Context, key string, now time.Time) (bool, error) {
	rowsAffected, err := s.execute(ctx, QueryDeleteEntryIfExpired, key, toMillis(now))
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// DeleteExpiredBefore removes every entry expired at the given instant.
// Each row is re-checked by the statement itself, so entries refreshed concurrently survive.
func (s *cacheStore) DeleteExpiredBefore(ctx context.Context, instant time.Time) (int64, error) {
	return s.execute(ctx, QueryDeleteExpiredEntries, toMillis(instant))
}

// DeleteByTag removes every entry carrying the given tag, whether alive or expired.
func (s *cacheStore) DeleteByTag(ctx context.Context, tag string) (int64, error) {
	return s.execute(ctx, QueryDeleteEntriesByTag, tag)
}

// DeleteAll removes every entry.
func (s *cacheStore) DeleteAll(ctx context.Context) (int64, error) {
	return s.execute(ctx, QueryDeleteAllEntries)
}

// ListExpiredBefore lists the keys of the entries expired at the given instant.
func (s *cacheStore) ListExpiredBefore(ctx context.Context, instant time.Time) ([]string, error) {
	results, err := s.query(ctx, QueryListExpiredKeys, toMillis(instant))
	if err != nil {
		return nil, err
	}
	return keysFromResults(results)
}

// ListKeysByTag lists the keys of the entries carrying the given tag.
func (s *cacheStore) ListKeysByTag(ctx context.Context, tag string) ([]string, error) {
	results, err := s.query(ctx, QueryListKeysByTag, tag)
	if err != nil {
		return nil, err
	}
	return keysFromResults(results)
}

// ListKeysMatching lists the stored keys matching a LIKE style pattern, expired entries included.
func (s *cacheStore) ListKeysMatching(ctx context.Context, pattern string) ([]string, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.CacheDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	if dbClient.GetDBType() == dbmodel.DBTypeSQLite {
		// SQLite LIKE ignores case, GLOB matches exactly like the PostgreSQL LIKE.
		pattern = likeToGlob(pattern)
	}

	results, err := dbClient.Query(ctx, QueryListKeysMatching, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return keysFromResults(results)
}

// CountAll returns the number of stored entries.
func (s *cacheStore) CountAll(ctx context.Context) (int64, error) {
	results, err := s.query(ctx, QueryCountEntries)
	if err != nil {
		return 0, err
	}
	return countFromResults(results)
}

// CountExpiredBefore returns the number of entries expired at the given instant.
func (s *cacheStore) CountExpiredBefore(ctx context.Context, instant time.Time) (int64, error) {
	results, err := s.query(ctx, QueryCountExpiredEntries, toMillis(instant))
	if err != nil {
		return 0, err
	}
	return countFromResults(results)
}

// EnsureSchema creates the cache table and its indexes if they do not exist.
func (s *cacheStore) EnsureSchema(ctx context.Context) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.CacheDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, query := range schemaQueries(dbClient.GetDBType()) {
		if _, err := tx.Exec(ctx, query); err != nil {
			err = fmt.Errorf("failed to execute schema query %s: %w", query.GetID(), err)
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("Cache schema is in place", log.String("type", dbClient.GetDBType()))
	return nil
}

// Ping verifies that the cache database is reachable.
func (s *cacheStore) Ping(ctx context.Context) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.CacheDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient.Ping(ctx)
}

// query runs a select style query against the cache database.
func (s *cacheStore) query(ctx context.Context, query dbmodel.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.CacheDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return results, nil
}

// execute runs a data modifying query against the cache database and returns the affected row count.
func (s *cacheStore) execute(ctx context.Context, query dbmodel.DBQuery, args ...interface{}) (int64, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.CacheDBName)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return rowsAffected, nil
}

// entryArgs converts an entry to the ordered arguments of the insert queries.
func entryArgs(entry *model.CacheEntry) ([]interface{}, error) {
	if entry == nil || entry.Key == "" {
		return nil, errors.New("cache entry must have a key")
	}
	if len(entry.Value) == 0 {
		return nil, errors.New("cache entry must have a value")
	}

	tags, err := json.Marshal(NormalizeTags(entry.Tags))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	var lastAccessedAt interface{}
	if entry.LastAccessedAt != nil {
		lastAccessedAt = toMillis(*entry.LastAccessedAt)
	}
	var metadata interface{}
	if len(entry.Metadata) > 0 {
		metadata = string(entry.Metadata)
	}

	return []interface{}{
		entry.Key,
		string(entry.Value),
		toMillis(entry.ExpiresAt),
		toMillis(entry.CreatedAt),
		entry.AccessCount,
		lastAccessedAt,
		string(tags),
		metadata,
	}, nil
}

// NormalizeTags removes empty and duplicated tags and sorts the rest.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	sort.Strings(normalized)
	return normalized
}

// singleEntry builds the entry from a single row result set.
func singleEntry(results []map[string]interface{}) (*model.CacheEntry, error) {
	if len(results) == 0 {
		return nil, constants.ErrEntryNotFound
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	return buildEntryFromResultRow(results[0])
}

// buildEntryFromResultRow constructs a cache entry from a database result row.
func buildEntryFromResultRow(row map[string]interface{}) (*model.CacheEntry, error) {
	key, ok := row["cache_key"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse cache_key as string")
	}

	value, err := rawJSON(row["cache_value"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse cache_value: %w", err)
	}
	if value == nil {
		return nil, fmt.Errorf("cache_value is null for key %s", key)
	}

	expiresAt, err := toInt64(row["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at: %w", err)
	}
	createdAt, err := toInt64(row["created_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	accessCount, err := toInt64(row["access_count"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse access_count: %w", err)
	}

	entry := &model.CacheEntry{
		Key:         key,
		Value:       value,
		ExpiresAt:   fromMillis(expiresAt),
		CreatedAt:   fromMillis(createdAt),
		AccessCount: accessCount,
		Tags:        []string{},
	}

	if row["last_accessed_at"] != nil {
		lastAccessedAt, err := toInt64(row["last_accessed_at"])
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_accessed_at: %w", err)
		}
		t := fromMillis(lastAccessedAt)
		entry.LastAccessedAt = &t
	}

	tags, err := rawJSON(row["tags"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	if tags != nil {
		if err := json.Unmarshal(tags, &entry.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	metadata, err := rawJSON(row["metadata"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	entry.Metadata = metadata

	return entry, nil
}

// keysFromResults extracts the cache keys of a result set.
func keysFromResults(results []map[string]interface{}) ([]string, error) {
	keys := make([]string, 0, len(results))
	for _, row := range results {
		key, ok := row["cache_key"].(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse cache_key as string")
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// countFromResults extracts the total column of a count query result.
func countFromResults(results []map[string]interface{}) (int64, error) {
	if len(results) == 0 {
		return 0, nil
	}
	total, err := toInt64(results[0]["total"])
	if err != nil {
		return 0, fmt.Errorf("failed to parse total: %w", err)
	}
	return total, nil
}

// rawJSON returns a JSON column as raw bytes. Drivers return JSON either as bytes or as text.
func rawJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		raw := make([]byte, len(v))
		copy(raw, v)
		return raw, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unexpected type %T", value)
	}
}

// toInt64 converts a numeric column to int64.
func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", value)
	}
}

// toMillis converts an instant to the epoch milliseconds stored in the database.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis converts stored epoch milliseconds to a UTC instant.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// likeToGlob converts a LIKE pattern to the equivalent case sensitive GLOB pattern.
func likeToGlob(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteRune('*')
		case '_':
			b.WriteRune('?')
		case '*', '?', '[':
			b.WriteRune('[')
			b.WriteRune(r)
			b.WriteRune(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
