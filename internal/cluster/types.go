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

package cluster

import (
	corev1 "k8s.io/api/core/v1"
)

// PodStatus is the projection of a pod's live state that health
// evaluation consumes: the scheduling phase plus per-container readiness.
type PodStatus struct {
	Phase      corev1.PodPhase
	Containers []ContainerStatus
}

// ContainerStatus reports whether a single container passed its
// readiness probe.
type ContainerStatus struct {
	Ready bool
}
