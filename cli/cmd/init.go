package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/halmstraw/finance-app-dsl/log"
	"github.com/halmstraw/finance-app-dsl/profile"
)

// Init writes a configuration file seeded with the current flag values, so
// the flags given alongside init become the new defaults.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.Marshal(i.flagValues(ktx.Model.Flags))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// flagValues collects the configurable flags and their current values.
// Help and profiling flags are excluded: the former is not configuration,
// and the latter only exists under the pprof build tag.
func (i *Init) flagValues(flags []*kong.Flag) map[string]any {
	prefixIgnore := []string{"help", profile.Tag}

	values := make(map[string]any)

	for _, flag := range flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if !flag.Target.IsValid() {
			continue
		}

		values[flag.Name] = flag.Target.Interface()
	}

	return values
}
