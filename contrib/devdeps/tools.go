//go:build tools

// Package devdeps pins the versions of the development tools used to
// regenerate mocks, lint and format the stealth module.
package devdeps

import (
	_ "github.com/golang/mock/mockgen"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "mvdan.cc/gofumpt"
)
