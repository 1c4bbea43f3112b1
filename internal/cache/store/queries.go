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

package store

import (
	dbmodel "github.com/relieflink/cachestore/internal/system/database/model"
)

const entryColumns = "CACHE_KEY, CACHE_VALUE, EXPIRES_AT, CREATED_AT, ACCESS_COUNT, LAST_ACCESSED_AT, TAGS, METADATA"

var (
	// QueryCreateCacheTable is the query to create the cache entry table.
	QueryCreateCacheTable = dbmodel.DBQuery{
		ID: "CCH-CACHE_SCHEMA-01",
		Query: `CREATE TABLE IF NOT EXISTS CACHE_ENTRY (` +
			`CACHE_KEY VARCHAR(512) PRIMARY KEY, ` +
			`CACHE_VALUE JSONB NOT NULL, ` +
			`EXPIRES_AT BIGINT NOT NULL, ` +
			`CREATED_AT BIGINT NOT NULL, ` +
			`ACCESS_COUNT BIGINT NOT NULL DEFAULT 0, ` +
			`LAST_ACCESSED_AT BIGINT, ` +
			`TAGS JSONB NOT NULL DEFAULT '[]', ` +
			`METADATA JSONB, ` +
			`CHECK (EXPIRES_AT > CREATED_AT))`,
		SQLiteQuery: `CREATE TABLE IF NOT EXISTS CACHE_ENTRY (` +
			`CACHE_KEY TEXT PRIMARY KEY, ` +
			`CACHE_VALUE TEXT NOT NULL, ` +
			`EXPIRES_AT INTEGER NOT NULL, ` +
			`CREATED_AT INTEGER NOT NULL, ` +
			`ACCESS_COUNT INTEGER NOT NULL DEFAULT 0, ` +
			`LAST_ACCESSED_AT INTEGER, ` +
			`TAGS TEXT NOT NULL DEFAULT '[]', ` +
			`METADATA TEXT, ` +
			`CHECK (EXPIRES_AT > CREATED_AT))`,
	}

	// QueryCreateExpiresAtIndex is the query to index the cache entries by expiry.
	QueryCreateExpiresAtIndex = dbmodel.DBQuery{
		ID:    "CCH-CACHE_SCHEMA-02",
		Query: `CREATE INDEX IF NOT EXISTS IDX_CACHE_ENTRY_EXPIRES_AT ON CACHE_ENTRY (EXPIRES_AT)`,
	}

	// QueryCreateTagsIndex is the query to index the cache entries for tag containment lookups.
	QueryCreateTagsIndex = dbmodel.DBQuery{
		ID:    "CCH-CACHE_SCHEMA-03",
		Query: `CREATE INDEX IF NOT EXISTS IDX_CACHE_ENTRY_TAGS ON CACHE_ENTRY USING GIN (TAGS)`,
	}

	// QueryGetEntry is the query to read a cache entry by key.
	QueryGetEntry = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-01",
		Query: `SELECT ` + entryColumns + ` FROM CACHE_ENTRY WHERE CACHE_KEY = $1`,
	}

	// QueryUpsertEntry is the query to insert or fully overwrite a cache entry.
	QueryUpsertEntry = dbmodel.DBQuery{
		ID: "CCH-CACHE_STORE-02",
		Query: `INSERT INTO CACHE_ENTRY (` + entryColumns + `) ` +
			`VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ` +
			`ON CONFLICT (CACHE_KEY) DO UPDATE SET ` +
			`CACHE_VALUE = EXCLUDED.CACHE_VALUE, EXPIRES_AT = EXCLUDED.EXPIRES_AT, ` +
			`CREATED_AT = EXCLUDED.CREATED_AT, ACCESS_COUNT = EXCLUDED.ACCESS_COUNT, ` +
			`LAST_ACCESSED_AT = EXCLUDED.LAST_ACCESSED_AT, TAGS = EXCLUDED.TAGS, METADATA = EXCLUDED.METADATA`,
	}

	// QueryInsertEntryIfAbsent is the query to write a cache entry only when no live entry holds the key.
	QueryInsertEntryIfAbsent = dbmodel.DBQuery{
		ID: "CCH-CACHE_STORE-03",
		Query: `INSERT INTO CACHE_ENTRY (` + entryColumns + `) ` +
			`VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ` +
			`ON CONFLICT (CACHE_KEY) DO UPDATE SET ` +
			`CACHE_VALUE = EXCLUDED.CACHE_VALUE, EXPIRES_AT = EXCLUDED.EXPIRES_AT, ` +
			`CREATED_AT = EXCLUDED.CREATED_AT, ACCESS_COUNT = EXCLUDED.ACCESS_COUNT, ` +
			`LAST_ACCESSED_AT = EXCLUDED.LAST_ACCESSED_AT, TAGS = EXCLUDED.TAGS, METADATA = EXCLUDED.METADATA ` +
			`WHERE CACHE_ENTRY.EXPIRES_AT <= $9`,
	}

	// QueryReadAndTouchEntry is the query to record a hit on a live cache entry and return it.
	QueryReadAndTouchEntry = dbmodel.DBQuery{
		ID: "CCH-CACHE_STORE-04",
		Query: `UPDATE CACHE_ENTRY SET ACCESS_COUNT = ACCESS_COUNT + 1, LAST_ACCESSED_AT = $1 ` +
			`WHERE CACHE_KEY = $2 AND EXPIRES_AT > $1 RETURNING ` + entryColumns,
	}

	// QueryDeleteEntryIfExpired is the query to lazily evict a cache entry that is expired.
	QueryDeleteEntryIfExpired = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-05",
		Query: `DELETE FROM CACHE_ENTRY WHERE CACHE_KEY = $1 AND EXPIRES_AT <= $2`,
	}

	// QueryListExpiredKeys is the query to list the keys of the entries expired at an instant.
	QueryListExpiredKeys = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-06",
		Query: `SELECT CACHE_KEY FROM CACHE_ENTRY WHERE EXPIRES_AT <= $1 ORDER BY CACHE_KEY`,
	}

	// QueryCountEntries is the query to count all stored cache entries.
	QueryCountEntries = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-07",
		Query: `SELECT COUNT(*) AS total FROM CACHE_ENTRY`,
	}

	// QueryCountExpiredEntries is the query to count the entries expired at an instant.
	QueryCountExpiredEntries = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-08",
		Query: `SELECT COUNT(*) AS total FROM CACHE_ENTRY WHERE EXPIRES_AT <= $1`,
	}

	// QueryListKeysByTag is the query to list the keys of the entries carrying a tag.
	QueryListKeysByTag = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-09",
		Query: `SELECT CACHE_KEY FROM CACHE_ENTRY WHERE TAGS @> jsonb_build_array($1::text) ORDER BY CACHE_KEY`,
		SQLiteQuery: `SELECT CACHE_KEY FROM CACHE_ENTRY WHERE EXISTS ` +
			`(SELECT 1 FROM json_each(CACHE_ENTRY.TAGS) WHERE json_each.value = $1) ORDER BY CACHE_KEY`,
	}

	// QueryListKeysMatching is the query to list the keys matching a pattern.
	QueryListKeysMatching = dbmodel.DBQuery{
		ID:          "CCH-CACHE_STORE-10",
		Query:       `SELECT CACHE_KEY FROM CACHE_ENTRY WHERE CACHE_KEY LIKE $1 ORDER BY CACHE_KEY`,
		SQLiteQuery: `SELECT CACHE_KEY FROM CACHE_ENTRY WHERE CACHE_KEY GLOB $1 ORDER BY CACHE_KEY`,
	}

	// QueryDeleteExpiredEntries is the query to delete every entry expired at an instant.
	QueryDeleteExpiredEntries = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-11",
		Query: `DELETE FROM CACHE_ENTRY WHERE EXPIRES_AT <= $1`,
	}

	// QueryDeleteEntriesByTag is the query to delete every entry carrying a tag.
	QueryDeleteEntriesByTag = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-12",
		Query: `DELETE FROM CACHE_ENTRY WHERE TAGS @> jsonb_build_array($1::text)`,
		SQLiteQuery: `DELETE FROM CACHE_ENTRY WHERE EXISTS ` +
			`(SELECT 1 FROM json_each(CACHE_ENTRY.TAGS) WHERE json_each.value = $1)`,
	}

	// QueryDeleteAllEntries is the query to delete every cache entry.
	QueryDeleteAllEntries = dbmodel.DBQuery{
		ID:    "CCH-CACHE_STORE-13",
		Query: `DELETE FROM CACHE_ENTRY`,
	}
)

const (
	// deleteEntriesQueryID is the ID of the query deleting a set of keys.
	deleteEntriesQueryID = "CCH-CACHE_STORE-14"
	// deleteEntriesBaseQuery is the prefix of the query deleting a set of keys.
	deleteEntriesBaseQuery = `DELETE FROM CACHE_ENTRY WHERE`
)

// schemaQueries returns the schema bootstrap queries for a database type, in execution order.
func schemaQueries(dbType string) []dbmodel.DBQuery {
	queries := []dbmodel.DBQuery{QueryCreateCacheTable, QueryCreateExpiresAtIndex}
	if dbType == dbmodel.DBTypePostgres {
		queries = append(queries, QueryCreateTagsIndex)
	}
	return queries
}
