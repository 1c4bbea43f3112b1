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

// Package service provides health check-related business logic and operations.
package service

import (
	"context"
	"sync"
	"time"

	dbmodel "github.com/relieflink/cachestore/internal/system/database/model"
	"github.com/relieflink/cachestore/internal/system/database/provider"
	"github.com/relieflink/cachestore/internal/system/healthcheck/model"
	"github.com/relieflink/cachestore/internal/system/log"
)

const (
	cacheDBServiceName = "CacheDB"
	readinessTimeout   = 5 * time.Second
)

var (
	instance *HealthCheckService
	once     sync.Once
)

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) model.ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
type HealthCheckService struct {
	DBProvider provider.DBProviderInterface
}

// GetHealthCheckService returns a singleton instance of HealthCheckService.
func GetHealthCheckService() HealthCheckServiceInterface {
	once.Do(func() {
		instance = &HealthCheckService{
			DBProvider: provider.GetDBProvider(),
		}
	})
	return instance
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *HealthCheckService) CheckReadiness(ctx context.Context) model.ServerStatus {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	cacheDBStatus := model.ServiceStatus{
		ServiceName: cacheDBServiceName,
		Status:      hcs.checkDatabaseStatus(ctx, provider.CacheDBName, queryCacheDBTable),
	}

	return model.ServerStatus{
		Status:        cacheDBStatus.Status,
		ServiceStatus: []model.ServiceStatus{cacheDBStatus},
	}
}

// checkDatabaseStatus checks the status of the specified database with the specified query.
// The client is owned by the provider and stays open.
func (hcs *HealthCheckService) checkDatabaseStatus(ctx context.Context, dbName string,
	query dbmodel.DBQuery) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.DBProvider.GetDBClient(dbName)
	if err != nil {
		logger.Error("Failed to get database client", log.String("database", dbName), log.Error(err))
		return model.StatusDown
	}

	if _, err := dbClient.Query(ctx, query); err != nil {
		logger.Error("Failed to execute query", log.String("database", dbName), log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}
