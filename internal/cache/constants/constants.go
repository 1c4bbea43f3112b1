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

// Package constants defines constants and errors shared by the cache packages.
package constants

import (
	"errors"
	"time"
)

const (
	// MinTTL is the smallest TTL accepted by the engine, matching the millisecond storage resolution.
	MinTTL = time.Millisecond

	// WildcardAny matches any run of characters in a key pattern.
	WildcardAny = "%"
	// WildcardOne matches exactly one character in a key pattern.
	WildcardOne = "_"
)

// Component names used in the logs.
const (
	StoreComponentName   = "CacheStore"
	EngineComponentName  = "CacheEngine"
	SweeperComponentName = "CacheSweeper"
	HandlerComponentName = "CacheHandler"
)

var (
	// ErrEntryNotFound is returned when no record exists for the requested key.
	ErrEntryNotFound = errors.New("cache entry not found")

	// ErrInvalidArgument is returned when a call is rejected before reaching the store.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageUnavailable is returned when the durable store could not complete an operation.
	ErrStorageUnavailable = errors.New("cache storage unavailable")
)
