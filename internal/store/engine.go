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
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/storeops/storeprovd/internal/cluster"
	"github.com/storeops/storeprovd/internal/health"
	"github.com/storeops/storeprovd/internal/release"
)

// ClusterClient is the slice of the cluster facade the engine consumes.
type ClusterClient interface {
	NamespaceExists(ctx context.Context, name string) bool
	CreateNamespace(ctx context.Context, name string) error
	LabelNamespace(ctx context.Context, name, key, value string) error
	ListNamespaceNames(ctx context.Context) ([]string, error)
	GetNamespaceLabel(ctx context.Context, name, key string) (string, bool)
	GetNamespaceCreatedAt(ctx context.Context, name string) (string, bool)
	DeleteNamespace(ctx context.Context, name string) error
	GetPodStatuses(ctx context.Context, namespace string) ([]cluster.PodStatus, error)
}

// ReleaseClient is the slice of the release facade the engine consumes.
type ReleaseClient interface {
	InstallOrUpgrade(ctx context.Context, opts release.InstallOptions) error
	Uninstall(ctx context.Context, releaseName, namespace string) error
}

// Provisioner orchestrates the cluster and release clients into the
// create, list, and delete operations for stores.
type Provisioner struct {
	cluster    ClusterClient
	release    ReleaseClient
	baseDomain string
}

// NewProvisioner creates a provisioning engine. An empty baseDomain
// falls back to DefaultBaseDomain.
func NewProvisioner(clusterClient ClusterClient, releaseClient ReleaseClient, baseDomain string) *Provisioner {
	if baseDomain == "" {
		baseDomain = DefaultBaseDomain
	}
	return &Provisioner{
		cluster:    clusterClient,
		release:    releaseClient,
		baseDomain: baseDomain,
	}
}

// Host derives the ingress hostname for a store name. The derivation is
// deterministic: the same name always yields the same hostname.
func (p *Provisioner) Host(name string) string {
	return fmt.Sprintf("%s.%s", name, p.baseDomain)
}

// URL derives the user-facing URL for a store name.
func (p *Provisioner) URL(name string) string {
	return "http://" + p.Host(name)
}

// Create provisions a store: validates name and engine, ensures the
// backing namespace exists and is labeled, and installs the workload
// release with freshly generated credentials.
//
// The returned store reports Provisioning without re-polling the
// cluster, and CreatedAt is the current instant rather than the
// namespace timestamp; the next listing re-derives both.
func (p *Provisioner) Create(ctx context.Context, name string, engine Engine) (*Store, error) {
	log := logf.FromContext(ctx)

	if !strings.HasPrefix(name, NamePrefix) {
		return nil, ErrInvalidName
	}
	if !engine.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	if !engine.Supported() {
		return nil, fmt.Errorf("%w (requested %q)", ErrEngineNotSupported, engine)
	}

	// CreateNamespace tolerates the exists-race, so the pre-check only
	// saves a redundant create call.
	if !p.cluster.NamespaceExists(ctx, name) {
		if err := p.cluster.CreateNamespace(ctx, name); err != nil {
			return nil, err
		}
		log.Info("created store namespace", "store", name)
	}

	if err := p.cluster.LabelNamespace(ctx, name, EngineLabelKey, string(engine)); err != nil {
		return nil, err
	}

	dbPassword, err := newSecret()
	if err != nil {
		return nil, err
	}
	adminPassword, err := newSecret()
	if err != nil {
		return nil, err
	}

	err = p.release.InstallOrUpgrade(ctx, release.InstallOptions{
		ReleaseName: name,
		Namespace:   name,
		Values: map[string]string{
			"db.rootPassword":         dbPassword,
			"wordpress.adminPassword": adminPassword,
			"ingress.host":            p.Host(name),
		},
	})
	if err != nil {
		return nil, err
	}

	log.Info("installed store release", "store", name, "engine", engine)

	return &Store{
		Name:      name,
		Engine:    engine,
		Status:    health.StatusProvisioning,
		URL:       p.URL(name),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// List returns every store in the cluster, newest first. Each entry is
// derived fresh from its namespace; a failure reading any one field
// degrades that field to its default instead of dropping the entry or
// aborting the listing.
func (p *Provisioner) List(ctx context.Context) ([]Store, error) {
	names, err := p.cluster.ListNamespaceNames(ctx)
	if err != nil {
		return nil, err
	}

	stores := make([]Store, 0, len(names))
	for _, name := range names {
		if !strings.HasPrefix(name, NamePrefix) {
			continue
		}
		stores = append(stores, p.describe(ctx, name))
	}

	// Newest first; entries with no readable timestamp compare as ""
	// and therefore sort last.
	sort.SliceStable(stores, func(i, j int) bool {
		return stores[i].CreatedAt > stores[j].CreatedAt
	})

	return stores, nil
}

// describe derives a single store entry from its namespace, applying
// the soft-fail defaults for each field.
func (p *Provisioner) describe(ctx context.Context, name string) Store {
	engine := EngineWooCommerce
	if label, ok := p.cluster.GetNamespaceLabel(ctx, name, EngineLabelKey); ok {
		engine = Engine(label)
	}

	status := health.StatusFailed
	if pods, err := p.cluster.GetPodStatuses(ctx, name); err == nil {
		status = health.Evaluate(pods)
	} else {
		logf.FromContext(ctx).Error(err, "failed to read pod statuses", "store", name)
	}

	createdAt, _ := p.cluster.GetNamespaceCreatedAt(ctx, name)

	return Store{
		Name:      name,
		Engine:    engine,
		Status:    status,
		URL:       p.URL(name),
		CreatedAt: createdAt,
	}
}

// Delete removes a store: best-effort release uninstall followed by a
// blocking namespace deletion. Deleting a store that does not exist is
// a success, so the operation is idempotent.
func (p *Provisioner) Delete(ctx context.Context, name string) error {
	log := logf.FromContext(ctx)

	if !p.cluster.NamespaceExists(ctx, name) {
		return nil
	}

	// The namespace deletion below reclaims everything the release
	// owns, so an uninstall failure is logged and ignored.
	if err := p.release.Uninstall(ctx, name, name); err != nil {
		log.Error(err, "release uninstall failed, continuing with namespace deletion", "store", name)
	}

	if err := p.cluster.DeleteNamespace(ctx, name); err != nil {
		return err
	}

	log.Info("deleted store", "store", name)
	return nil
}
