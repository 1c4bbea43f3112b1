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

// Package handler provides the HTTP handlers of the cache administration API.
package handler

import (
	"errors"
	"net/http"

	"github.com/relieflink/cachestore/internal/cache/constants"
	"github.com/relieflink/cachestore/internal/cache/engine"
	"github.com/relieflink/cachestore/internal/cache/keys"
	"github.com/relieflink/cachestore/internal/system/error/serviceerror"
	"github.com/relieflink/cachestore/internal/system/log"
	"github.com/relieflink/cachestore/internal/system/utils"
)

// CacheHandler handles the cache administration requests.
type CacheHandler struct {
	engine engine.CacheEngineInterface
}

// NewCacheHandler creates a new instance of CacheHandler.
func NewCacheHandler(cacheEngine engine.CacheEngineInterface) *CacheHandler {
	return &CacheHandler{
		engine: cacheEngine,
	}
}

// HandleSweepRequest removes the expired entries and reports the statistics after the sweep.
func (ch *CacheHandler) HandleSweepRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	removed, err := ch.engine.SweepExpired(r.Context())
	if err != nil {
		ch.handleError(w, logger, err)
		return
	}

	stats, err := ch.engine.Statistics(r.Context())
	if err != nil {
		ch.handleError(w, logger, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, SweepResponse{Removed: removed, Statistics: stats})
	logger.Debug("Swept expired cache entries", log.Int64("removed", removed))
}

// HandleStatisticsRequest returns the cache statistics.
func (ch *CacheHandler) HandleStatisticsRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	stats, err := ch.engine.Statistics(r.Context())
	if err != nil {
		ch.handleError(w, logger, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, stats)
}

// HandleClearRequest removes every cache entry.
func (ch *CacheHandler) HandleClearRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	if err := ch.engine.Clear(r.Context()); err != nil {
		ch.handleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleInvalidateTagRequest removes every entry carrying the tag in the path.
func (ch *CacheHandler) HandleInvalidateTagRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	tag := r.PathValue("tag")
	removed, err := ch.engine.InvalidateByTag(r.Context(), tag)
	if err != nil {
		ch.handleError(w, logger, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, InvalidationResponse{Tag: tag, Removed: removed})
	logger.Debug("Invalidated cache entries by tag", log.String("tag", tag), log.Int64("removed", removed))
}

// HandleListKeysRequest lists the stored keys matching the pattern query parameter.
func (ch *CacheHandler) HandleListKeysRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	pattern := r.URL.Query().Get("pattern")
	listed, err := ch.engine.ListKeys(r.Context(), pattern)
	if err != nil {
		ch.handleError(w, logger, err)
		return
	}

	namespaces := make(map[string]int)
	for _, key := range listed {
		namespaces[keys.Namespace(key)]++
	}

	utils.WriteJSONResponse(w, http.StatusOK, KeyListResponse{
		Pattern:    pattern,
		Count:      len(listed),
		Keys:       listed,
		Namespaces: namespaces,
	})
}

// HandleGetEntryRequest returns the stored record of the key in the path without counting an access.
func (ch *CacheHandler) HandleGetEntryRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	entry, err := ch.engine.Inspect(r.Context(), r.PathValue("key"))
	if err != nil {
		ch.handleError(w, logger, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, entry)
}

// HandleDeleteEntryRequest removes the entry of the key in the path.
func (ch *CacheHandler) HandleDeleteEntryRequest(w http.ResponseWriter, r *http.Request) {
	logger := handlerLogger()

	if err := ch.engine.Delete(r.Context(), r.PathValue("key")); err != nil {
		ch.handleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleError maps an engine error to its service error and writes it.
func (ch *CacheHandler) handleError(w http.ResponseWriter, logger *log.Logger, err error) {
	svcErr, statusCode := toServiceError(err)
	if svcErr.IsClientError() {
		logger.Debug("Rejected cache administration request", log.Error(err))
	}
	utils.WriteJSONError(w, svcErr.Code, svcErr.ErrorDescription, statusCode, nil)
}

// toServiceError returns the service error and HTTP status for an engine error.
func toServiceError(err error) (*serviceerror.ServiceError, int) {
	switch {
	case errors.Is(err, constants.ErrInvalidArgument):
		return ErrorInvalidRequest.WithDescription(err.Error()), http.StatusBadRequest
	case errors.Is(err, constants.ErrEntryNotFound):
		return &ErrorEntryNotFound, http.StatusNotFound
	default:
		return &ErrorStorageFailure, http.StatusInternalServerError
	}
}

func handlerLogger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, constants.HandlerComponentName))
}
