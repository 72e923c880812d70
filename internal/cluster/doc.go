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

// Package cluster provides a thin facade over the Kubernetes control plane
// for the operations the provisioning engine needs: namespace lifecycle,
// namespace labels and creation timestamps, and pod status snapshots.
//
// The facade distinguishes two kinds of reads:
//
//   - Hard operations (create, delete, list) return errors that callers
//     must handle.
//   - Soft reads (NamespaceExists, GetNamespaceLabel,
//     GetNamespaceCreatedAt) never return errors; absence and read
//     failures both collapse to a negative result so that a flaky read
//     can be downgraded to a default by the caller.
//
// All mutations are idempotent: creating a namespace that already exists
// and deleting one that is already gone are benign outcomes, mirroring
// the eventual-consistency contract of the control plane itself.
package cluster
