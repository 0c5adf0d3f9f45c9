//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Lint checks formatting, runs go vet and then golangci-lint.
func Lint() error {
	unformatted, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return err
	}
	if unformatted != "" {
		return fmt.Errorf("gofmt needed:\n%s", unformatted)
	}
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV(binLint, "run", "./...")
}
