//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"
)

// pprofConfig is empty when built without the pprof tag; the flag group
// disappears from the CLI entirely.
type pprofConfig struct{}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) group() kong.Group { return kong.Group{} }

// start is a no-op when built without the pprof tag.
func (pprofConfig) start(context.Context) (stop func()) { return func() {} }
