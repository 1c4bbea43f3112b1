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

package client

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/relieflink/cachestore/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
	ctx      context.Context
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.MonitorPingsOption(true),
	)
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	suite.dbClient = NewDBClient(model.NewDB(suite.mockDB), model.DBTypePostgres)
	suite.ctx = context.Background()
}

func (suite *DBClientTestSuite) TearDownTest() {
	if err := suite.mock.ExpectationsWereMet(); err != nil {
		suite.T().Fatalf("There were unfulfilled expectations: %v", err)
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "TST-00001",
		Query: "SELECT CACHE_KEY, ACCESS_COUNT FROM CACHE_ENTRY WHERE CACHE_KEY = $1",
	}

	rows := sqlmock.NewRows([]string{"CACHE_KEY", "ACCESS_COUNT"}).
		AddRow("geo:1", int64(3)).
		AddRow("geo:2", int64(0))
	suite.mock.ExpectQuery(testQuery.Query).WithArgs("geo:1").WillReturnRows(rows)

	results, err := suite.dbClient.Query(suite.ctx, testQuery, "geo:1")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	// Column names are normalized to lowercase.
	assert.Equal(suite.T(), "geo:1", results[0]["cache_key"])
	assert.Equal(suite.T(), int64(3), results[0]["access_count"])
	assert.Equal(suite.T(), "geo:2", results[1]["cache_key"])
}

func (suite *DBClientTestSuite) TestQueryUsesDialectVariant() {
	testQuery := model.DBQuery{
		ID:            "TST-00002",
		Query:         "SELECT 1",
		PostgresQuery: "SELECT CACHE_KEY FROM CACHE_ENTRY WHERE TAGS ? $1",
		SQLiteQuery:   "SELECT CACHE_KEY FROM CACHE_ENTRY, json_each(TAGS) WHERE json_each.value = ?",
	}

	suite.mock.ExpectQuery(testQuery.PostgresQuery).WithArgs("geo").
		WillReturnRows(sqlmock.NewRows([]string{"cache_key"}).AddRow("geo:1"))

	results, err := suite.dbClient.Query(suite.ctx, testQuery, "geo")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{ID: "TST-00003", Query: "SELECT CACHE_KEY FROM CACHE_ENTRY WHERE CACHE_KEY = $1"}
	suite.mock.ExpectQuery(testQuery.Query).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"cache_key"}))

	results, err := suite.dbClient.Query(suite.ctx, testQuery, "missing")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryDatabaseError() {
	testQuery := model.DBQuery{ID: "TST-00004", Query: "SELECT CACHE_KEY FROM NON_EXISTENT"}
	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery(testQuery.Query).WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(suite.ctx, testQuery)

	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryRowError() {
	testQuery := model.DBQuery{ID: "TST-00005", Query: "SELECT CACHE_KEY FROM CACHE_ENTRY"}
	rows := sqlmock.NewRows([]string{"cache_key"}).
		AddRow("geo:1").
		RowError(0, errors.New("row error"))
	suite.mock.ExpectQuery(testQuery.Query).WillReturnRows(rows)

	results, err := suite.dbClient.Query(suite.ctx, testQuery)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{ID: "TST-00006", Query: "DELETE FROM CACHE_ENTRY WHERE EXPIRES_AT <= $1"}
	suite.mock.ExpectExec(testQuery.Query).WithArgs(int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 5))

	rowsAffected, err := suite.dbClient.Execute(suite.ctx, testQuery, int64(1000))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), rowsAffected)
}

func (suite *DBClientTestSuite) TestExecuteDatabaseError() {
	testQuery := model.DBQuery{ID: "TST-00007", Query: "DELETE FROM CACHE_ENTRY"}
	expectedErr := errors.New("connection refused")
	suite.mock.ExpectExec(testQuery.Query).WillReturnError(expectedErr)

	rowsAffected, err := suite.dbClient.Execute(suite.ctx, testQuery)

	assert.Equal(suite.T(), expectedErr, err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
}

func (suite *DBClientTestSuite) TestExecuteRowsAffectedError() {
	testQuery := model.DBQuery{ID: "TST-00008", Query: "DELETE FROM CACHE_ENTRY"}
	suite.mock.ExpectExec(testQuery.Query).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected error")))

	rowsAffected, err := suite.dbClient.Execute(suite.ctx, testQuery)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "rows affected error")
	assert.Equal(suite.T(), int64(0), rowsAffected)
}

func (suite *DBClientTestSuite) TestBeginTxAndExec() {
	testQuery := model.DBQuery{
		ID:            "TST-00009",
		Query:         "CREATE TABLE T (ID INT)",
		PostgresQuery: "CREATE TABLE IF NOT EXISTS T (ID INT)",
	}
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(testQuery.PostgresQuery).WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	tx, err := suite.dbClient.BeginTx(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Implements(suite.T(), (*model.TxInterface)(nil), tx)

	_, err = tx.Exec(suite.ctx, testQuery)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), tx.Commit())
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	expectedErr := errors.New("transaction error")
	suite.mock.ExpectBegin().WillReturnError(expectedErr)

	tx, err := suite.dbClient.BeginTx(suite.ctx)

	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), tx)
}

func (suite *DBClientTestSuite) TestPing() {
	suite.mock.ExpectPing()
	assert.NoError(suite.T(), suite.dbClient.Ping(suite.ctx))

	suite.mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(suite.T(), suite.dbClient.Ping(suite.ctx))
}

func (suite *DBClientTestSuite) TestGetDBType() {
	assert.Equal(suite.T(), model.DBTypePostgres, suite.dbClient.GetDBType())
}

func (suite *DBClientTestSuite) TestCloseSuccess() {
	suite.mock.ExpectClose()

	assert.NoError(suite.T(), suite.dbClient.Close())
}
