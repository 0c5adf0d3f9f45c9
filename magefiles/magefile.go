//go:build mage

// Package main provides build targets for diamond-intel using Mage.
//
// Usage:
//
//	mage build       Compile diamond-intel to bin/
//	mage test:all    Run every test
//	mage test:race   Run every test with the race detector
//	mage test:cover  Write coverage.out and print per-function coverage
//	mage lint        Check gofmt, go vet and golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install diamond-intel to GOPATH/bin
//	mage serve       Build and run the server against ./data
package main
