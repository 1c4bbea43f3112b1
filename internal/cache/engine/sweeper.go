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

	"github.com/relieflink/cachestore/internal/cache/constants"
	"github.com/relieflink/cachestore/internal/system/log"
)

// Sweeper periodically removes the expired entries of the cache.
type Sweeper struct {
	engine   CacheEngineInterface
	interval time.Duration
	logger   *log.Logger
}

// NewSweeper creates a sweeper running on the interval.
func NewSweeper(engine CacheEngineInterface, interval time.Duration) *Sweeper {
	return &Sweeper{
		engine:   engine,
		interval: interval,
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, constants.SweeperComponentName)),
	}
}

// Run sweeps on every tick until the context is done. Sweep failures are logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("Cache sweeper started", log.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Cache sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.engine.SweepExpired(ctx)
	if err != nil {
		s.logger.Warn("Expired cache entry sweep failed", log.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Swept expired cache entries", log.Int64("removed", removed))
	}
}
