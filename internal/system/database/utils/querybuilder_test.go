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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/relieflink/cachestore/internal/system/database/model"
)

const testBaseQuery = "DELETE FROM CACHE_ENTRY WHERE"

type QueryBuilderTestSuite struct {
	suite.Suite
}

func TestQueryBuilderSuite(t *testing.T) {
	suite.Run(t, new(QueryBuilderTestSuite))
}

func (suite *QueryBuilderTestSuite) TestBuildInClauseQuery() {
	query, args, err := BuildInClauseQuery("CCH-TEST", testBaseQuery, "CACHE_KEY", []string{"a", "b", "c"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CCH-TEST", query.ID)
	assert.Equal(suite.T(), []interface{}{"a", "b", "c"}, args)
	assert.Equal(suite.T(), "DELETE FROM CACHE_ENTRY WHERE CACHE_KEY IN ($1, $2, $3)",
		query.GetQuery(model.DBTypePostgres))
	assert.Equal(suite.T(), "DELETE FROM CACHE_ENTRY WHERE CACHE_KEY IN (?, ?, ?)",
		query.GetQuery(model.DBTypeSQLite))
}

func (suite *QueryBuilderTestSuite) TestBuildInClauseQuerySingleValue() {
	query, args, err := BuildInClauseQuery("CCH-TEST", testBaseQuery, "CACHE_KEY", []string{"only"})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), args, 1)
	assert.Equal(suite.T(), "DELETE FROM CACHE_ENTRY WHERE CACHE_KEY IN (?)", query.SQLiteQuery)
}

func (suite *QueryBuilderTestSuite) TestBuildInClauseQueryNoValues() {
	_, args, err := BuildInClauseQuery("CCH-TEST", testBaseQuery, "CACHE_KEY", nil)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), args)
}

func (suite *QueryBuilderTestSuite) TestBuildInClauseQueryInvalidColumn() {
	_, _, err := BuildInClauseQuery("CCH-TEST", testBaseQuery, "CACHE_KEY; DROP TABLE x", []string{"a"})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "invalid column name")
}

func (suite *QueryBuilderTestSuite) TestValidateKey() {
	testCases := []struct {
		key     string
		wantErr bool
	}{
		{"CACHE_KEY", false},
		{"tags.value", false},
		{"col1", false},
		{"", true},
		{"key-with-dash", true},
		{"key'quote", true},
	}

	for _, tc := range testCases {
		err := validateKey(tc.key)
		if tc.wantErr {
			assert.Error(suite.T(), err, tc.key)
		} else {
			assert.NoError(suite.T(), err, tc.key)
		}
	}
}
