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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/storeops/storeprovd/internal/cluster"
	"github.com/storeops/storeprovd/internal/health"
)

// The lifecycle suite drives the engine through the real cluster facade
// against a fake API server, so the namespace-as-record behavior is
// exercised end to end: create writes the record, list re-derives from
// it, delete removes it.
var _ = Describe("Store lifecycle", func() {
	var (
		ctx         context.Context
		provisioner *Provisioner
		releases    *fakeRelease
	)

	BeforeEach(func() {
		ctx = context.Background()

		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())

		c := fake.NewClientBuilder().
			WithScheme(scheme).
			Build()

		releases = &fakeRelease{}
		provisioner = NewProvisioner(cluster.NewClient(c, 0), releases, "localtest.me")
	})

	It("round-trips create, list, delete", func() {
		By("creating a store")
		created, err := provisioner.Create(ctx, "store-demo", EngineWooCommerce)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Status).To(Equal(health.StatusProvisioning))
		Expect(created.URL).To(Equal("http://store-demo.localtest.me"))

		By("finding it in the listing with its engine label")
		stores, err := provisioner.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stores).To(HaveLen(1))
		Expect(stores[0].Name).To(Equal("store-demo"))
		Expect(stores[0].Engine).To(Equal(EngineWooCommerce))

		By("deleting it")
		Expect(provisioner.Delete(ctx, "store-demo")).To(Succeed())
		Expect(releases.uninstalls).To(ConsistOf("store-demo"))

		By("confirming it no longer lists")
		stores, err = provisioner.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stores).To(BeEmpty())
	})

	It("treats a concurrent namespace creation as benign", func() {
		_, err := provisioner.Create(ctx, "store-raced", EngineWooCommerce)
		Expect(err).NotTo(HaveOccurred())

		// The loser of a create race sees an existing namespace; its
		// install upgrades the release in place.
		_, err = provisioner.Create(ctx, "store-raced", EngineWooCommerce)
		Expect(err).NotTo(HaveOccurred())
		Expect(releases.installs).To(HaveLen(2))

		stores, err := provisioner.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stores).To(HaveLen(1))
	})

	It("sorts listings newest first with unreadable timestamps last", func() {
		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())

		older := metav1.NewTime(time.Now().Add(-2 * time.Hour))
		newer := metav1.NewTime(time.Now().Add(-time.Hour))

		c := fake.NewClientBuilder().
			WithScheme(scheme).
			WithObjects(
				&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "store-older", CreationTimestamp: older}},
				&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "store-newer", CreationTimestamp: newer}},
				&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "store-unknown"}},
			).
			Build()

		p := NewProvisioner(cluster.NewClient(c, 0), &fakeRelease{}, "localtest.me")

		stores, err := p.List(ctx)
		Expect(err).NotTo(HaveOccurred())

		names := make([]string, 0, len(stores))
		for _, s := range stores {
			names = append(names, s.Name)
		}
		Expect(names).To(Equal([]string{"store-newer", "store-older", "store-unknown"}))
	})
})
