//go:build tools
// +build tools

// tools.go pins mockgen, run by `go generate`, in go.mod.
package campus_chat

import (
	_ "go.uber.org/mock/mockgen"
)
