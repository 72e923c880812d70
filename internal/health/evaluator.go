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

package health

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/storeops/storeprovd/internal/cluster"
)

// Status is the user-facing lifecycle state of a store.
type Status string

const (
	// StatusProvisioning means the workload is still coming up: no pods
	// observed yet, or pods running with containers not yet ready.
	StatusProvisioning Status = "Provisioning"
	// StatusReady means every pod is Running and every container across
	// all pods reports ready.
	StatusReady Status = "Ready"
	// StatusFailed means at least one pod entered the Failed phase.
	StatusFailed Status = "Failed"
)

// Evaluate maps a pod status snapshot to a lifecycle state.
//
// Rules, in precedence order:
//  1. No pods observed yet: Provisioning.
//  2. Any pod in phase Failed: Failed.
//  3. Every pod Running, at least one container observed, and every
//     container ready: Ready.
//  4. Anything else (Pending, Unknown, unready containers): Provisioning.
//
// Evaluate never fails; an error while acquiring the snapshot is the
// caller's to map (the engine treats it as Failed).
func Evaluate(pods []cluster.PodStatus) Status {
	if len(pods) == 0 {
		return StatusProvisioning
	}

	allRunning := true
	for _, pod := range pods {
		switch pod.Phase {
		case corev1.PodFailed:
			return StatusFailed
		case corev1.PodRunning:
		default:
			allRunning = false
		}
	}

	if !allRunning {
		return StatusProvisioning
	}

	// Readiness is flattened across pods: at least one container must
	// have been observed, and none may be unready.
	observed := 0
	for _, pod := range pods {
		for _, container := range pod.Containers {
			if !container.Ready {
				return StatusProvisioning
			}
			observed++
		}
	}

	if observed == 0 {
		return StatusProvisioning
	}

	return StatusReady
}
