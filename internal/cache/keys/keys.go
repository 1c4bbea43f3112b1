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

// Package keys builds cache keys following the namespace:identifier[:hash] convention.
package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// Separator joins the parts of a cache key.
const Separator = ":"

// Build returns namespace:identifier, suffixed with a hash of the params when any are given.
// The hash does not depend on the order the params were added in.
func Build(namespace, identifier string, params map[string]interface{}) (string, error) {
	key := namespace + Separator + identifier
	if len(params) == 0 {
		return key, nil
	}
	digest, err := HashParams(params)
	if err != nil {
		return "", err
	}
	return key + Separator + digest, nil
}

// HashParams returns a stable hexadecimal xxhash digest of the JSON encoding of the params.
// Map keys are encoded in sorted order and values keep their JSON type, so 1 and "1" hash apart.
func HashParams(params map[string]interface{}) (string, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode key params: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(encoded), 16), nil
}

// Namespace returns the namespace part of a key, or the empty string when the key has none.
func Namespace(key string) string {
	namespace, _, found := strings.Cut(key, Separator)
	if !found {
		return ""
	}
	return namespace
}

// Pattern returns the LIKE pattern matching every key of a namespace.
func Pattern(namespace string) string {
	return namespace + Separator + "%"
}
