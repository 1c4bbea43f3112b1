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
	"time"

	"github.com/relieflink/cachestore/internal/system/config"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used to read now once per call.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMetrics attaches Prometheus metrics to the engine.
func WithMetrics(metrics *Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithDisabled switches the engine to always-miss mode with no-op writes.
func WithDisabled(disabled bool) Option {
	return func(e *Engine) {
		e.disabled = disabled
	}
}

// WithConfig applies the cache configuration section.
func WithConfig(cfg config.CacheConfig) Option {
	return func(e *Engine) {
		e.disabled = cfg.Disabled
		if cfg.DefaultTTL > 0 {
			e.defaultTTL = time.Duration(cfg.DefaultTTL) * time.Second
		}
	}
}

// entryOptions holds the optional attributes of a written entry.
type entryOptions struct {
	tags     []string
	metadata interface{}
}

// SetOption configures an entry written by Set, SetIfNotExists, Increment or GetOrSet.
type SetOption func(*entryOptions)

// WithTags labels the entry with tags for bulk invalidation.
func WithTags(tags ...string) SetOption {
	return func(o *entryOptions) {
		o.tags = append(o.tags, tags...)
	}
}

// WithMetadata attaches a free form annotation to the entry. The engine never interprets it.
func WithMetadata(metadata interface{}) SetOption {
	return func(o *entryOptions) {
		o.metadata = metadata
	}
}
