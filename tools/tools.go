//go:build tools
// +build tools

// Package tools documents development tool dependencies. They are installed
// with `go install` and are not part of go.mod since nothing at runtime
// imports them.
package tools

// Air - live reload during local development
//   go install github.com/air-verse/air@v1.63.0
//
// mockgen - regenerates internal/mocks (see internal/mocks/generate.go)
//   go install go.uber.org/mock/mockgen@v0.6.0
