// Copyright 2025 The Storeprovd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"github.com/storeops/storeprovd/internal/store"
)

// CreateStoreRequest is the POST /stores/{name} body. An absent or empty
// engine defaults to woocommerce.
type CreateStoreRequest struct {
	Engine store.Engine `json:"engine"`
}

// DeleteStoreResponse confirms a delete, including the idempotent no-op
// on an already-absent store.
type DeleteStoreResponse struct {
	Store  string `json:"store"`
	Status string `json:"status"`
}

// ErrorResponse carries a failure's diagnostic text.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}
