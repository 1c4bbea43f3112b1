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

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/relieflink/cachestore/internal/cache/constants"
	"github.com/relieflink/cachestore/internal/system/log"
)

// ComputeFunc produces the value of a missing entry. The context it receives is not cancelled
// when a waiting caller gives up.
type ComputeFunc func(ctx context.Context) (interface{}, error)

// GetOrSet returns the live value under the key, or computes, stores and returns it on a miss.
// Concurrent misses on the same key share one compute invocation and its outcome. A failed
// computation is delivered to every caller of that round and is never cached. A failure to store
// the computed value is logged and does not fail the call. The caller's context bounds only its own
// wait; the computation keeps running and still populates the cache for later callers.
func (e *Engine) GetOrSet(ctx context.Context, key string, compute ComputeFunc, ttl time.Duration,
	opts ...SetOption) (json.RawMessage, error) {
	if err := validateKeyAndTTL(key, ttl); err != nil {
		return nil, err
	}
	if compute == nil {
		return nil, fmt.Errorf("%w: compute function is required", constants.ErrInvalidArgument)
	}

	if value, ok := e.Get(ctx, key); ok {
		return value, nil
	}

	if e.disabled {
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := encodeJSON(result)
		if err != nil {
			return nil, fmt.Errorf("%w: value is not serializable: %w", constants.ErrInvalidArgument, err)
		}
		return encoded, nil
	}

	v, err, _ := e.flights.Do(ctx, key, func(fctx context.Context) (interface{}, error) {
		return e.populate(fctx, key, compute, ttl, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// populate runs one population round for the key.
func (e *Engine) populate(ctx context.Context, key string, compute ComputeFunc, ttl time.Duration,
	opts []SetOption) (json.RawMessage, error) {
	// A round that finished just before this one was registered may already have stored the value.
	if entry, err := e.store.ReadAndTouch(ctx, key, e.instant()); err == nil {
		e.recordLookup(true)
		return entry.Value, nil
	}

	start := time.Now()
	result, err := compute(ctx)
	if err != nil {
		e.metrics.RecordPopulation(false, time.Since(start))
		e.logger.Debug("Cache population failed", log.String(log.LoggerKeyCacheKey, key), log.Error(err))
		return nil, err
	}

	entry, err := e.newEntry(key, result, ttl, e.now(), opts)
	if err != nil {
		e.metrics.RecordPopulation(false, time.Since(start))
		return nil, err
	}
	e.metrics.RecordPopulation(true, time.Since(start))

	if err := e.store.Upsert(ctx, entry); err != nil {
		e.metrics.RecordStorageError(opSet)
		e.logger.Warn("Failed to store the computed value, returning it uncached",
			log.String(log.LoggerKeyCacheKey, key), log.Error(err))
	}
	return entry.Value, nil
}
