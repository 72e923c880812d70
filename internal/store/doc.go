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

// Package store implements the provisioning engine: the create, list,
// and delete operations for store instances, each backed by a dedicated
// Kubernetes namespace and a Helm release.
//
// # Derived state
//
// The engine holds no database. The namespace is the record: its name is
// the store's identity, its store-engine label records the engine, its
// creation timestamp is the store's creation time, and its pods are the
// store's health. Every read recomputes from the cluster, so listing is
// always fresh and never stale, at the price of non-monotonic status
// between consecutive reads.
//
// # Failure policy
//
// Mutating steps (namespace create, release install, namespace delete)
// fail hard with the backend's diagnostic text. Per-entry reads during
// listing fail soft: a missing engine label defaults to woocommerce, a
// missing creation timestamp sorts last, and a failed pod snapshot
// reports the entry as Failed. A single flaky namespace never aborts a
// listing. Release uninstall during delete is explicitly best-effort;
// the namespace deletion that follows reclaims everything regardless.
package store
