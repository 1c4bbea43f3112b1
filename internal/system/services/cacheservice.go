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

package services

import (
	"net/http"

	"github.com/relieflink/cachestore/internal/cache/engine"
	"github.com/relieflink/cachestore/internal/cache/handler"
	"github.com/relieflink/cachestore/internal/system/middleware"
)

// CacheService exposes the cache administration API.
type CacheService struct {
	cacheHandler *handler.CacheHandler
}

// NewCacheService creates a new instance of CacheService and registers its routes.
func NewCacheService(mux *http.ServeMux, cacheEngine engine.CacheEngineInterface) ServiceInterface {
	instance := &CacheService{
		cacheHandler: handler.NewCacheHandler(cacheEngine),
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the CacheService.
func (s *CacheService) RegisterRoutes(mux *http.ServeMux) {
	readOpts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	writeOpts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /cache/sweep", middleware.PreflightHandler, writeOpts))
	mux.HandleFunc(middleware.WithCORS("POST /cache/sweep", s.cacheHandler.HandleSweepRequest, writeOpts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /cache/statistics", middleware.PreflightHandler, readOpts))
	mux.HandleFunc(middleware.WithCORS("GET /cache/statistics", s.cacheHandler.HandleStatisticsRequest, readOpts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /cache/keys", middleware.PreflightHandler, readOpts))
	mux.HandleFunc(middleware.WithCORS("GET /cache/keys", s.cacheHandler.HandleListKeysRequest, readOpts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /cache/entries", middleware.PreflightHandler, writeOpts))
	mux.HandleFunc(middleware.WithCORS("DELETE /cache/entries", s.cacheHandler.HandleClearRequest, writeOpts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /cache/entries/{key}", middleware.PreflightHandler, writeOpts))
	mux.HandleFunc(middleware.WithCORS("GET /cache/entries/{key}", s.cacheHandler.HandleGetEntryRequest, writeOpts))
	mux.HandleFunc(middleware.WithCORS("DELETE /cache/entries/{key}",
		s.cacheHandler.HandleDeleteEntryRequest, writeOpts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /cache/tags/{tag}", middleware.PreflightHandler, writeOpts))
	mux.HandleFunc(middleware.WithCORS("DELETE /cache/tags/{tag}",
		s.cacheHandler.HandleInvalidateTagRequest, writeOpts))
}
