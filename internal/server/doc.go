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

// Package server binds the provisioning engine to its HTTP surface:
//
//	GET    /health          liveness probe
//	GET    /stores          list stores, newest first
//	POST   /stores/{name}   create a store (body: {"engine": "..."})
//	DELETE /stores/{name}   delete a store (idempotent)
//
// The layer is a thin translation: engine errors map to status codes
// (invalid input 400, recognized-but-unimplemented engine 501 by
// default, backend failures 500 with the diagnostic text in the
// "detail" field) and nothing else lives here. The status code for an
// unimplemented engine is configurable because reasonable APIs disagree
// on whether it is a client error.
//
// CORS is enabled for the bundled dashboard's development origins.
package server
