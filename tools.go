//go:build tools

package tools

// Build tooling tracked as module dependencies.
import (
	_ "github.com/go-task/task/v3/cmd/task"
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
)
