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

// storeprovd is the store provisioning daemon: a stateless HTTP API
// that provisions isolated store instances as Kubernetes namespaces,
// each running a Helm-installed workload.
package main

import (
	"flag"
	"os"
	"time"

	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/storeops/storeprovd/internal/cluster"
	"github.com/storeops/storeprovd/internal/release"
	"github.com/storeops/storeprovd/internal/server"
	"github.com/storeops/storeprovd/internal/store"
)

var setupLog = ctrl.Log.WithName("setup")

func main() {
	var (
		bindAddr                string
		port                    int
		baseDomain              string
		chartRef                string
		installTimeout          time.Duration
		deleteTimeout           time.Duration
		unsupportedEngineStatus int
	)

	flag.StringVar(&bindAddr, "bind-address", "0.0.0.0", "Address the API server binds to.")
	flag.IntVar(&port, "port", 8000, "Port the API server listens on.")
	flag.StringVar(&baseDomain, "base-domain", store.DefaultBaseDomain,
		"Base domain store hostnames are derived under.")
	flag.StringVar(&chartRef, "chart", "./store-chart", "Chart reference installed for each store.")
	flag.DurationVar(&installTimeout, "install-timeout", release.DefaultInstallTimeout,
		"How long a blocking release install may take before failing.")
	flag.DurationVar(&deleteTimeout, "delete-timeout", cluster.DefaultDeleteTimeout,
		"How long to wait for a namespace deletion to complete before failing.")
	flag.IntVar(&unsupportedEngineStatus, "unsupported-engine-status", 0,
		"HTTP status for a recognized but unimplemented engine (default 501).")

	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	cfg, err := ctrl.GetConfig()
	if err != nil {
		setupLog.Error(err, "unable to load kubeconfig")
		os.Exit(1)
	}

	k8sClient, err := client.New(cfg, client.Options{Scheme: clientgoscheme.Scheme})
	if err != nil {
		setupLog.Error(err, "unable to create cluster client")
		os.Exit(1)
	}

	provisioner := store.NewProvisioner(
		cluster.NewClient(k8sClient, deleteTimeout),
		release.NewClient(chartRef, installTimeout),
		baseDomain,
	)

	srv := server.NewServer(server.Config{
		Addr:                    bindAddr,
		Port:                    port,
		UnsupportedEngineStatus: unsupportedEngineStatus,
	}, provisioner)

	ctx := ctrl.SetupSignalHandler()
	if err := srv.Start(ctx); err != nil {
		setupLog.Error(err, "API server failed")
		os.Exit(1)
	}
}
