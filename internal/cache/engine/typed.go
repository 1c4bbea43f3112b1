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
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/relieflink/cachestore/internal/cache/keys"
	"github.com/relieflink/cachestore/internal/system/log"
)

// TypedCache is a value typed view over the engine for one key namespace.
// Every entry written through it is tagged with the namespace.
type TypedCache[T any] struct {
	engine    CacheEngineInterface
	namespace string
	ttl       time.Duration
	opts      []SetOption
	logger    *log.Logger
}

// NewTypedCache creates a typed view writing entries under namespace with the TTL.
// A zero TTL falls back to the engine default.
func NewTypedCache[T any](engine *Engine, namespace string, ttl time.Duration, opts ...SetOption) *TypedCache[T] {
	if ttl <= 0 {
		ttl = engine.DefaultTTL()
	}
	return newTypedCache[T](engine, namespace, ttl, opts...)
}

func newTypedCache[T any](engine CacheEngineInterface, namespace string, ttl time.Duration,
	opts ...SetOption) *TypedCache[T] {
	options := make([]SetOption, 0, len(opts)+1)
	options = append(options, WithTags(namespace))
	options = append(options, opts...)
	return &TypedCache[T]{
		engine:    engine,
		namespace: namespace,
		ttl:       ttl,
		opts:      options,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TypedCache"),
			log.String("namespace", namespace)),
	}
}

// Key returns the full cache key of an identifier and its params.
func (c *TypedCache[T]) Key(identifier string, params map[string]interface{}) (string, error) {
	return keys.Build(c.namespace, identifier, params)
}

// Get returns the live value under the key. A value that no longer decodes as T is a miss.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	raw, ok := c.engine.Get(ctx, key)
	if !ok {
		return value, false
	}
	if err := gojson.Unmarshal(raw, &value); err != nil {
		c.logger.Warn("Cached value does not match the expected type", log.String(log.LoggerKeyCacheKey, key),
			log.Error(err))
		var zero T
		return zero, false
	}
	return value, true
}

// Set writes the value under the key.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	return c.engine.Set(ctx, key, value, c.ttl, c.opts...)
}

// SetIfNotExists writes the value only when no live entry holds the key.
func (c *TypedCache[T]) SetIfNotExists(ctx context.Context, key string, value T) (bool, error) {
	return c.engine.SetIfNotExists(ctx, key, value, c.ttl, c.opts...)
}

// GetOrSet returns the live value under the key or computes and stores it once for all concurrent callers.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string,
	compute func(ctx context.Context) (T, error)) (T, error) {
	var value T
	raw, err := c.engine.GetOrSet(ctx, key, func(ctx context.Context) (interface{}, error) {
		return compute(ctx)
	}, c.ttl, c.opts...)
	if err != nil {
		return value, err
	}
	if err := gojson.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Delete removes the entries under the keys.
func (c *TypedCache[T]) Delete(ctx context.Context, keys ...string) error {
	return c.engine.Delete(ctx, keys...)
}

// Keys lists the stored keys of this view's namespace.
func (c *TypedCache[T]) Keys(ctx context.Context) ([]string, error) {
	return c.engine.ListKeys(ctx, keys.Pattern(c.namespace))
}

// InvalidateAll removes every entry written through this view.
func (c *TypedCache[T]) InvalidateAll(ctx context.Context) (int64, error) {
	return c.engine.InvalidateByTag(ctx, c.namespace)
}
