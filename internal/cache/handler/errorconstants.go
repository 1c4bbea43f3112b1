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

package handler

import "github.com/relieflink/cachestore/internal/system/error/serviceerror"

// Client errors for the cache administration API.
var (
	// ErrorInvalidRequest is the error returned when a request carries invalid arguments.
	ErrorInvalidRequest = serviceerror.ServiceError{
		Code:             "CCH-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request",
		ErrorDescription: "The request contains invalid arguments",
	}
	// ErrorEntryNotFound is the error returned when a cache entry does not exist.
	ErrorEntryNotFound = serviceerror.ServiceError{
		Code:             "CCH-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Cache entry not found",
		ErrorDescription: "No cache entry exists for the given key",
	}
)

// Server errors for the cache administration API.
var (
	// ErrorStorageFailure is the error returned when the durable store cannot serve the request.
	ErrorStorageFailure = serviceerror.ServiceError{
		Code:             "CCH-5001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Cache storage failure",
		ErrorDescription: "The cache storage is currently unavailable",
	}
)
