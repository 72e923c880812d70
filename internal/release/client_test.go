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
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	return "", nil
}

func TestClient_InstallOrUpgrade_BuildsDeterministicCommand(t *testing.T) {
	runner := &fakeRunner{}
	c := NewClient("./store-chart", 10*time.Minute)
	c.runner = runner

	opts := InstallOptions{
		ReleaseName: "store-demo",
		Namespace:   "store-demo",
		Values: map[string]string{
			"wordpress.adminPassword": "wp-secret",
			"db.rootPassword":         "db-secret",
			"ingress.host":            "store-demo.localtest.me",
		},
	}

	if err := c.InstallOrUpgrade(context.Background(), opts); err != nil {
		t.Fatalf("InstallOrUpgrade() error = %v", err)
	}

	want := []string{
		"helm", "upgrade", "--install", "store-demo", "./store-chart",
		"-n", "store-demo",
		"--wait",
		"--timeout", "10m0s",
		"--set-string", "db.rootPassword=db-secret",
		"--set-string", "ingress.host=store-demo.localtest.me",
		"--set-string", "wordpress.adminPassword=wp-secret",
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 helm invocation, got %d", len(runner.calls))
	}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("helm invocation mismatch:\n got  %v\n want %v", runner.calls[0], want)
	}

	// Value flags must come out identically on every call.
	if err := c.InstallOrUpgrade(context.Background(), opts); err != nil {
		t.Fatalf("second InstallOrUpgrade() error = %v", err)
	}
	if !reflect.DeepEqual(runner.calls[0], runner.calls[1]) {
		t.Errorf("helm invocation is not deterministic:\n first  %v\n second %v", runner.calls[0], runner.calls[1])
	}
}

func TestClient_InstallOrUpgrade_SurfacesDiagnostics(t *testing.T) {
	runner := &fakeRunner{err: &CommandError{Output: "Error: timed out waiting for the condition"}}
	c := NewClient("./store-chart", time.Minute)
	c.runner = runner

	err := c.InstallOrUpgrade(context.Background(), InstallOptions{ReleaseName: "store-x", Namespace: "store-x"})
	if err == nil {
		t.Fatal("expected an error from a failing install")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected a CommandError in the chain, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "timed out waiting for the condition") {
		t.Errorf("diagnostic text not preserved: %v", err)
	}
}

func TestClient_Uninstall(t *testing.T) {
	runner := &fakeRunner{}
	c := NewClient("./store-chart", time.Minute)
	c.runner = runner

	if err := c.Uninstall(context.Background(), "store-demo", "store-demo"); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}

	want := []string{"helm", "uninstall", "store-demo", "-n", "store-demo"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("uninstall invocation mismatch:\n got  %v\n want %v", runner.calls[0], want)
	}
}

// deadlineRunner records whether the helm invocation ran under a
// deadline-bearing context.
type deadlineRunner struct {
	hadDeadline bool
}

func (d *deadlineRunner) Run(ctx context.Context, _ string, _ ...string) (string, error) {
	_, d.hadDeadline = ctx.Deadline()
	return "", nil
}

func TestClient_CommandsAreBounded(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{
			name: "install runs under a deadline",
			call: func(c *Client) error {
				return c.InstallOrUpgrade(context.Background(), InstallOptions{ReleaseName: "store-x", Namespace: "store-x"})
			},
		},
		{
			name: "uninstall runs under a deadline",
			call: func(c *Client) error {
				return c.Uninstall(context.Background(), "store-x", "store-x")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &deadlineRunner{}
			c := NewClient("./store-chart", time.Minute)
			c.runner = runner

			if err := tt.call(c); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if !runner.hadDeadline {
				t.Error("helm must never run on an unbounded context")
			}
		})
	}
}

func TestClient_DefaultTimeout(t *testing.T) {
	c := NewClient("./store-chart", 0)
	if c.timeout != DefaultInstallTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultInstallTimeout, c.timeout)
	}
}
