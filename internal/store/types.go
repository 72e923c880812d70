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

package store

import (
	"errors"
	"fmt"

	"github.com/storeops/storeprovd/internal/health"
)

const (
	// NamePrefix is the reserved prefix that scopes store namespaces
	// apart from unrelated namespaces in the cluster.
	NamePrefix = "store-"

	// EngineLabelKey is the namespace label recording which engine
	// backs a store.
	EngineLabelKey = "store-engine"

	// DefaultBaseDomain is the wildcard domain store hostnames are
	// derived under when none is configured.
	DefaultBaseDomain = "localtest.me"
)

// Engine identifies the application stack backing a store.
type Engine string

const (
	// EngineWooCommerce is the fully supported engine.
	EngineWooCommerce Engine = "woocommerce"
	// EngineMedusa is recognized but not yet provisionable.
	EngineMedusa Engine = "medusa"
)

// Known reports whether e is a recognized engine variant.
func (e Engine) Known() bool {
	switch e {
	case EngineWooCommerce, EngineMedusa:
		return true
	}
	return false
}

// Supported reports whether e can actually be provisioned.
func (e Engine) Supported() bool {
	return e == EngineWooCommerce
}

var (
	// ErrInvalidName rejects store names without the reserved prefix.
	// No backend call is made for such names.
	ErrInvalidName = fmt.Errorf("store name must start with %q", NamePrefix)

	// ErrUnknownEngine rejects engine values outside the recognized set.
	ErrUnknownEngine = errors.New("unknown store engine")

	// ErrEngineNotSupported marks a recognized engine whose
	// provisioning is not built yet. It is deliberately distinct from
	// ErrUnknownEngine so callers can tell "not yet implemented" from
	// "bad input".
	ErrEngineNotSupported = errors.New("engine provisioning is not implemented yet, use engine=woocommerce")
)

// Store is the user-visible entity. Every field is derived from the
// backing namespace; none of it is persisted by this system.
type Store struct {
	Name      string        `json:"name"`
	Engine    Engine        `json:"engine"`
	Status    health.Status `json:"status"`
	URL       string        `json:"url"`
	CreatedAt string        `json:"created_at,omitempty"`
}
