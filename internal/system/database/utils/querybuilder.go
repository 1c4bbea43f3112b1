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

// Package utils provides utility functions for database operations.
package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/relieflink/cachestore/internal/system/database/model"
)

// BuildInClauseQuery appends an IN clause on the given column to the base query, with one
// placeholder per value in the dialect specific form.
func BuildInClauseQuery(
	queryID string,
	baseQuery string,
	columnName string,
	values []string,
) (model.DBQuery, []interface{}, error) {
	if err := validateKey(columnName); err != nil {
		return model.DBQuery{}, nil, fmt.Errorf("invalid column name: %w", err)
	}
	if len(values) == 0 {
		return model.DBQuery{}, nil, errors.New("at least one value is required for an IN clause")
	}

	args := make([]interface{}, 0, len(values))
	postgresHolders := make([]string, 0, len(values))
	sqliteHolders := make([]string, 0, len(values))
	for i, value := range values {
		postgresHolders = append(postgresHolders, fmt.Sprintf("$%d", i+1))
		sqliteHolders = append(sqliteHolders, "?")
		args = append(args, value)
	}

	postgresQuery := fmt.Sprintf("%s %s IN (%s)", baseQuery, columnName, strings.Join(postgresHolders, ", "))
	sqliteQuery := fmt.Sprintf("%s %s IN (%s)", baseQuery, columnName, strings.Join(sqliteHolders, ", "))

	resultQuery := model.DBQuery{
		ID:            queryID,
		Query:         postgresQuery,
		PostgresQuery: postgresQuery,
		SQLiteQuery:   sqliteQuery,
	}

	return resultQuery, args, nil
}

// validateKey ensures that the provided key contains only safe characters (alphanumeric and underscores).
func validateKey(key string) error {
	if key == "" {
		return errors.New("key must not be empty")
	}
	for _, char := range key {
		if !(char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' ||
			char >= '0' && char <= '9' || char == '_' || char == '.') {
			return fmt.Errorf("key '%s' contains invalid characters", key)
		}
	}
	return nil
}
