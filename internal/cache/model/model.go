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

// Package model defines the data structures of the durable cache.
package model

import (
	"encoding/json"
	"time"
)

// CacheEntry represents one record of the durable cache.
type CacheEntry struct {
	Key            string          `json:"key"`
	Value          json.RawMessage `json:"value"`
	ExpiresAt      time.Time       `json:"expiresAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	AccessCount    int64           `json:"accessCount"`
	LastAccessedAt *time.Time      `json:"lastAccessedAt,omitempty"`
	Tags           []string        `json:"tags"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
}

// IsExpired reports whether the entry is logically absent at the given instant.
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// HasTag reports whether the entry carries the given tag.
func (e *CacheEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CacheStats holds the statistics of the durable cache.
type CacheStats struct {
	Total   int64   `json:"total"`
	Active  int64   `json:"active"`
	Expired int64   `json:"expired"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hitRate"`
}
