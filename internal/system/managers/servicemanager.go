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

// Package managers provides functionality for managing and registering system services.
package managers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/relieflink/cachestore/internal/cache/engine"
	"github.com/relieflink/cachestore/internal/system/services"
)

// ServiceManagerInterface defines the interface for managing services.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// ServiceManager implements the ServiceManagerInterface and is responsible for registering services.
type ServiceManager struct {
	mux         *http.ServeMux
	cacheEngine engine.CacheEngineInterface
	gatherer    prometheus.Gatherer
}

// NewServiceManager creates a new instance of ServiceManager.
// A nil gatherer leaves the metrics endpoint unregistered.
func NewServiceManager(mux *http.ServeMux, cacheEngine engine.CacheEngineInterface,
	gatherer prometheus.Gatherer) ServiceManagerInterface {
	return &ServiceManager{
		mux:         mux,
		cacheEngine: cacheEngine,
		gatherer:    gatherer,
	}
}

// RegisterServices registers all the services with the provided HTTP multiplexer.
func (sm *ServiceManager) RegisterServices() error {
	// Register the health service.
	services.NewHealthCheckService(sm.mux)

	// Register the cache administration service.
	services.NewCacheService(sm.mux, sm.cacheEngine)

	// Register the metrics service.
	if sm.gatherer != nil {
		services.NewMetricsService(sm.mux, sm.gatherer)
	}

	return nil
}
