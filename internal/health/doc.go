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

// Package health collapses raw pod and container state into the three
// lifecycle states a store's user can act on: Provisioning, Ready, and
// Failed.
//
// The evaluation is a pure function over a snapshot. Nothing is cached
// between calls, so status can move backwards (Ready to Provisioning
// after a container restart) between consecutive reads; that is the
// intended behavior of a derived-state design, not a bug.
//
// Failed dominates every other signal, and Ready requires unanimous
// readiness across all pods and containers, so partial progress never
// reports as healthy.
package health
