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

// Package utils provides helpers for the e2e suite: running commands
// from the project root and locating the daemon under test.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/onsi/ginkgo/v2"
)

// DefaultAPIBase is where the e2e suite expects a running daemon when
// STOREPROVD_URL is not set.
const DefaultAPIBase = "http://127.0.0.1:8000"

// APIBase returns the base URL of the daemon under test.
func APIBase() string {
	if base := os.Getenv("STOREPROVD_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return DefaultAPIBase
}

// Run executes the provided command from the project root and returns
// its combined output.
func Run(cmd *exec.Cmd) (string, error) {
	dir, err := GetProjectDir()
	if err != nil {
		return "", fmt.Errorf("failed to get project directory: %w", err)
	}
	cmd.Dir = dir

	command := strings.Join(cmd.Args, " ")
	if _, writeErr := fmt.Fprintf(ginkgo.GinkgoWriter, "running: %q\n", command); writeErr != nil {
		return "", fmt.Errorf("failed to write command to GinkgoWriter: %w", writeErr)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%q failed with error %q: %w", command, string(output), err)
	}

	return string(output), nil
}

// GetProjectDir returns the project root, assuming the suite runs from
// a subdirectory of it.
func GetProjectDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return wd, fmt.Errorf("failed to get current working directory: %w", err)
	}
	wd = strings.ReplaceAll(wd, "/test/e2e", "")
	return wd, nil
}
