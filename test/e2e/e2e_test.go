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

//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os/exec"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storeops/storeprovd/test/utils"
)

const testStore = "store-e2e"

var _ = Describe("storeprovd", Ordered, func() {
	AfterAll(func() {
		// Reclaim the namespace even if an assertion failed mid-flight.
		cmd := exec.Command("kubectl", "delete", "namespace", testStore, "--ignore-not-found", "--wait=true")
		_, _ = utils.Run(cmd)
	})

	It("answers the liveness probe", func() {
		resp, err := http.Get(utils.APIBase() + "/health")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})

	It("provisions a store and reports it ready", func() {
		By("creating the store")
		body := bytes.NewBufferString(`{"engine": "woocommerce"}`)
		resp, err := http.Post(utils.APIBase()+"/stores/"+testStore, "application/json", body)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		By("waiting for the listing to report Ready")
		Eventually(func(g Gomega) {
			listResp, err := http.Get(utils.APIBase() + "/stores")
			g.Expect(err).NotTo(HaveOccurred())
			defer listResp.Body.Close()

			var stores []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			}
			g.Expect(json.NewDecoder(listResp.Body).Decode(&stores)).To(Succeed())

			found := false
			for _, s := range stores {
				if s.Name == testStore {
					found = true
					g.Expect(s.Status).To(Equal("Ready"))
				}
			}
			g.Expect(found).To(BeTrue())
		}, 10*time.Minute, 15*time.Second).Should(Succeed())
	})

	It("deletes the store idempotently", func() {
		for i := 0; i < 2; i++ {
			req, err := http.NewRequest(http.MethodDelete, utils.APIBase()+"/stores/"+testStore, nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		}
	})
})
