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

package release

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// DefaultInstallTimeout bounds how long a blocking install waits for the
// workload to become available before helm gives up.
const DefaultInstallTimeout = 10 * time.Minute

// CommandError reports a non-zero exit from the release tool, carrying
// its diagnostic output verbatim.
type CommandError struct {
	Output string
}

func (e *CommandError) Error() string {
	return e.Output
}

// Runner executes an external command and returns its combined standard
// output. It exists so tests can substitute a fake for the helm binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = strings.TrimSpace(stdout.String())
		}
		if diag == "" {
			diag = err.Error()
		}
		return "", &CommandError{Output: diag}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// InstallOptions parameterizes an install-or-upgrade of a single release.
type InstallOptions struct {
	// ReleaseName is the helm release name, one per store.
	ReleaseName string
	// Namespace is the namespace the release is installed into.
	Namespace string
	// Values are chart values passed as --set-string flags. Secrets
	// travel through here and are never logged.
	Values map[string]string
}

// Client drives the helm binary for chart installs and uninstalls.
type Client struct {
	runner   Runner
	chartRef string
	timeout  time.Duration
}

// NewClient creates a release client for the given chart reference.
// If timeout is zero, DefaultInstallTimeout is used.
func NewClient(chartRef string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultInstallTimeout
	}
	return &Client{
		runner:   execRunner{},
		chartRef: chartRef,
		timeout:  timeout,
	}
}

// InstallOrUpgrade installs the release, or upgrades it in place if it
// already exists. The call blocks until helm reports the workload
// available or the timeout elapses; either failure mode surfaces as a
// CommandError with helm's diagnostic text.
func (c *Client) InstallOrUpgrade(ctx context.Context, opts InstallOptions) error {
	args := []string{
		"upgrade",
		"--install",
		opts.ReleaseName,
		c.chartRef,
		"-n", opts.Namespace,
		"--wait",
		"--timeout", c.timeout.String(),
	}

	// Sorted key order keeps the invocation deterministic across calls.
	keys := make([]string, 0, len(opts.Values))
	for key := range opts.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "--set-string", fmt.Sprintf("%s=%s", key, opts.Values[key]))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.runner.Run(ctx, "helm", args...); err != nil {
		return fmt.Errorf("helm install of %s failed: %w", opts.ReleaseName, err)
	}

	return nil
}

// Uninstall removes the named release from its namespace, bounded by
// the same timeout as installs. Callers on the delete path treat a
// failure here as non-fatal: deleting the namespace reclaims everything
// the release owned regardless.
func (c *Client) Uninstall(ctx context.Context, releaseName, namespace string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.runner.Run(ctx, "helm", "uninstall", releaseName, "-n", namespace); err != nil {
		return fmt.Errorf("helm uninstall of %s failed: %w", releaseName, err)
	}

	return nil
}
