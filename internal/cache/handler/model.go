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

import "github.com/relieflink/cachestore/internal/cache/model"

// SweepResponse is the response of a manual sweep.
type SweepResponse struct {
	Removed    int64            `json:"removed"`
	Statistics model.CacheStats `json:"statistics"`
}

// InvalidationResponse is the response of a tag invalidation.
type InvalidationResponse struct {
	Tag     string `json:"tag"`
	Removed int64  `json:"removed"`
}

// KeyListResponse is the response of a key listing.
type KeyListResponse struct {
	Pattern    string         `json:"pattern"`
	Count      int            `json:"count"`
	Keys       []string       `json:"keys"`
	Namespaces map[string]int `json:"namespaces"`
}
