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
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
)

const (
	// defaultDeletePollInterval is how often DeleteNamespace re-checks
	// whether the control plane has finished removing the namespace.
	defaultDeletePollInterval = 2 * time.Second

	// DefaultDeleteTimeout bounds how long DeleteNamespace waits for
	// the control plane to finish removing a namespace. A namespace
	// stuck in Terminating must fail the request, not hang it.
	DefaultDeleteTimeout = 5 * time.Minute
)

// Client wraps a controller-runtime client with the namespace and pod
// operations the provisioning engine needs.
type Client struct {
	client        client.Client
	pollInterval  time.Duration
	deleteTimeout time.Duration
}

// NewClient creates a cluster client backed by the given Kubernetes
// client. If deleteTimeout is zero, DefaultDeleteTimeout is used.
func NewClient(c client.Client, deleteTimeout time.Duration) *Client {
	if deleteTimeout <= 0 {
		deleteTimeout = DefaultDeleteTimeout
	}
	return &Client{
		client:        c,
		pollInterval:  defaultDeletePollInterval,
		deleteTimeout: deleteTimeout,
	}
}

// NamespaceExists reports whether the named namespace exists. Absence is
// a normal false; so is any read failure, since the caller's next step
// (an idempotent create) is safe either way.
func (c *Client) NamespaceExists(ctx context.Context, name string) bool {
	ns := &corev1.Namespace{}
	return c.client.Get(ctx, types.NamespacedName{Name: name}, ns) == nil
}

// CreateNamespace creates the named namespace. A namespace that already
// exists is a benign outcome, not an error, so a create racing with a
// concurrent caller degrades to a no-op.
func (c *Client) CreateNamespace(ctx context.Context, name string) error {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}

	if err := c.client.Create(ctx, ns); err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create namespace %s: %w", name, err)
	}

	return nil
}

// LabelNamespace sets key=value on the named namespace, overwriting any
// existing value. The namespace is created if it does not exist yet.
func (c *Client) LabelNamespace(ctx context.Context, name, key, value string) error {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}

	_, err := controllerutil.CreateOrUpdate(ctx, c.client, ns, func() error {
		if ns.Labels == nil {
			ns.Labels = make(map[string]string)
		}
		ns.Labels[key] = value
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to label namespace %s: %w", name, err)
	}

	return nil
}

// ListNamespaceNames returns the names of all namespaces in the cluster.
// Filtering by the reserved store prefix is the caller's responsibility.
func (c *Client) ListNamespaceNames(ctx context.Context) ([]string, error) {
	var nsList corev1.NamespaceList
	if err := c.client.List(ctx, &nsList); err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(nsList.Items))
	for i := range nsList.Items {
		names = append(names, nsList.Items[i].Name)
	}

	return names, nil
}

// GetNamespaceLabel reads a label from the named namespace. An absent
// namespace, an absent label, and a read failure all report false,
// letting the caller substitute a default for namespaces created by
// older versions that never set the label.
func (c *Client) GetNamespaceLabel(ctx context.Context, name, key string) (string, bool) {
	ns := &corev1.Namespace{}
	if err := c.client.Get(ctx, types.NamespacedName{Name: name}, ns); err != nil {
		return "", false
	}

	value, ok := ns.Labels[key]
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// GetNamespaceCreatedAt reads the control plane's creation timestamp for
// the named namespace, formatted as RFC 3339 UTC. Any read failure
// reports false rather than an error.
func (c *Client) GetNamespaceCreatedAt(ctx context.Context, name string) (string, bool) {
	ns := &corev1.Namespace{}
	if err := c.client.Get(ctx, types.NamespacedName{Name: name}, ns); err != nil {
		return "", false
	}

	if ns.CreationTimestamp.IsZero() {
		return "", false
	}

	return ns.CreationTimestamp.UTC().Format(time.RFC3339), true
}

// DeleteNamespace deletes the named namespace and blocks until the
// control plane confirms removal, the configured deletion timeout
// elapses, or ctx expires. A namespace that is already absent is a
// success.
func (c *Client) DeleteNamespace(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.deleteTimeout)
	defer cancel()

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}

	if err := c.client.Delete(ctx, ns); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete namespace %s: %w", name, err)
	}

	// Namespace deletion is asynchronous: the object lingers in
	// Terminating until its resources are reclaimed. Poll until gone.
	for {
		err := c.client.Get(ctx, types.NamespacedName{Name: name}, &corev1.Namespace{})
		if apierrors.IsNotFound(err) {
			return nil
		}
		if err != nil && ctx.Err() != nil {
			return fmt.Errorf("timed out waiting for namespace %s deletion: %w", name, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for namespace %s deletion: %w", name, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

// GetPodStatuses returns a snapshot of pod phase and container readiness
// for every pod in the namespace. An empty namespace yields an empty
// slice, which the health evaluator treats as still provisioning.
func (c *Client) GetPodStatuses(ctx context.Context, namespace string) ([]PodStatus, error) {
	var podList corev1.PodList
	if err := c.client.List(ctx, &podList, client.InNamespace(namespace)); err != nil {
		return nil, fmt.Errorf("failed to list pods in %s: %w", namespace, err)
	}

	statuses := make([]PodStatus, 0, len(podList.Items))
	for i := range podList.Items {
		pod := &podList.Items[i]

		containers := make([]ContainerStatus, 0, len(pod.Status.ContainerStatuses))
		for _, cs := range pod.Status.ContainerStatuses {
			containers = append(containers, ContainerStatus{Ready: cs.Ready})
		}

		statuses = append(statuses, PodStatus{
			Phase:      pod.Status.Phase,
			Containers: containers,
		})
	}

	return statuses, nil
}
