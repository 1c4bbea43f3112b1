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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/relieflink/cachestore/internal/system/config"
)

type nearbyResult struct {
	Resources []string `json:"resources"`
	Radius    float64  `json:"radius"`
}

type TypedCacheTestSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *fakeClock
	engine *Engine
	cache  *TypedCache[nearbyResult]
}

func TestTypedCacheSuite(t *testing.T) {
	suite.Run(t, new(TypedCacheTestSuite))
}

func (suite *TypedCacheTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = newFakeClock()
	cacheStore, _ := openTestStore(suite.T())
	suite.engine = NewEngine(cacheStore, WithClock(suite.clock.Now))
	suite.cache = NewTypedCache[nearbyResult](suite.engine, "geo", 5*time.Minute)
}

func (suite *TypedCacheTestSuite) TestSetAndGet() {
	key, err := suite.cache.Key("nearby", map[string]interface{}{"lat": 6.9, "lng": 79.8})
	require.NoError(suite.T(), err)
	value := nearbyResult{Resources: []string{"shelter-1", "clinic-4"}, Radius: 2.5}

	require.NoError(suite.T(), suite.cache.Set(suite.ctx, key, value))

	got, ok := suite.cache.Get(suite.ctx, key)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), value, got)

	entry, err := suite.engine.Inspect(suite.ctx, key)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"geo"}, entry.Tags)
	assert.Equal(suite.T(), suite.clock.Now().Add(5*time.Minute), entry.ExpiresAt)
}

func (suite *TypedCacheTestSuite) TestGetMismatchedTypeIsAMiss() {
	require.NoError(suite.T(), suite.engine.Set(suite.ctx, "geo:broken", "plain string", time.Minute))

	_, ok := suite.cache.Get(suite.ctx, "geo:broken")
	assert.False(suite.T(), ok)
}

func (suite *TypedCacheTestSuite) TestGetOrSet() {
	var invocations int32
	compute := func(ctx context.Context) (nearbyResult, error) {
		atomic.AddInt32(&invocations, 1)
		return nearbyResult{Resources: []string{"depot-2"}, Radius: 10}, nil
	}

	first, err := suite.cache.GetOrSet(suite.ctx, "geo:nearby:x", compute)
	require.NoError(suite.T(), err)
	second, err := suite.cache.GetOrSet(suite.ctx, "geo:nearby:x", compute)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), first, second)
	assert.Equal(suite.T(), []string{"depot-2"}, second.Resources)
	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&invocations))
}

func (suite *TypedCacheTestSuite) TestSetIfNotExistsAndInvalidateAll() {
	written, err := suite.cache.SetIfNotExists(suite.ctx, "geo:a", nearbyResult{Radius: 1})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), written)
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "geo:b", nearbyResult{Radius: 2}))
	require.NoError(suite.T(), suite.engine.Set(suite.ctx, "stats:daily", 1, time.Minute))

	removed, err := suite.cache.InvalidateAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), removed)
	assert.True(suite.T(), suite.engine.Has(suite.ctx, "stats:daily"))
}

func (suite *TypedCacheTestSuite) TestKeysListsOnlyTheNamespace() {
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "geo:a", nearbyResult{Radius: 1}))
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "geo:b", nearbyResult{Radius: 2}))
	require.NoError(suite.T(), suite.engine.Set(suite.ctx, "geography:c", 1, time.Minute))
	require.NoError(suite.T(), suite.engine.Set(suite.ctx, "stats:daily", 1, time.Minute))

	listed, err := suite.cache.Keys(suite.ctx)
	require.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{"geo:a", "geo:b"}, listed)
}

func (suite *TypedCacheTestSuite) TestDelete() {
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, "geo:a", nearbyResult{Radius: 1}))

	require.NoError(suite.T(), suite.cache.Delete(suite.ctx, "geo:a"))
	_, ok := suite.cache.Get(suite.ctx, "geo:a")
	assert.False(suite.T(), ok)
}

func (suite *TypedCacheTestSuite) TestZeroTTLUsesEngineDefault() {
	engine := NewEngine(nil, WithConfig(config.CacheConfig{DefaultTTL: 120}))
	cache := NewTypedCache[int](engine, "n", 0)

	assert.Equal(suite.T(), 2*time.Minute, cache.ttl)
}
