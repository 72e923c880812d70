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

// Package release provides a facade over the Helm CLI for installing and
// removing store workloads.
//
// Install is expressed as "upgrade --install", which makes the call
// idempotent: invoking it twice with the same release name updates the
// release in place instead of duplicating it. Installs block with
// --wait until the workload is available or the configured timeout
// elapses.
//
// Failures surface as a CommandError carrying the tool's diagnostic
// output verbatim, so operators see exactly what helm reported.
package release
