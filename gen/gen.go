package gen

import (
	"context"
	"log/slog"
	"sort"

	"github.com/halmstraw/finance-app-dsl/lang"
	"github.com/halmstraw/finance-app-dsl/log"
)

var (
	// ErrNoApplication reports generation without a reconciled tree.
	ErrNoApplication = lang.NewError("no application to generate from")

	// ErrUnknownPlatform reports a platform no emitter is registered for.
	ErrUnknownPlatform = lang.NewError("unknown target platform")
)

// Output maps relative file paths to generated content.
type Output map[string]string

// Paths returns the output file paths in lexical order.
func (o Output) Paths() []string {
	paths := make([]string, 0, len(o))

	for path := range o {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}

// Emitter produces the scaffold file set for a single platform. Emit must
// accept any reconciled Application, including one missing optional
// sections, and only fails on conditions the validator cannot catch.
type Emitter interface {
	Platform() lang.Platform
	Emit(app *lang.Application) (Output, error)
}

// For returns the emitter registered for the platform.
func For(platform lang.Platform) (Emitter, error) {
	switch platform {
	case lang.PlatformWeb:
		return &webEmitter{}, nil
	case lang.PlatformIOS:
		return &iosEmitter{}, nil
	case lang.PlatformAndroid:
		return &androidEmitter{}, nil
	}

	return nil, ErrUnknownPlatform.With(slog.String("platform", string(platform)))
}

// Generate runs one emitter per requested platform and merges the results,
// each platform under its own top-level directory. With no explicit
// platforms, the application's declared platforms are used; an application
// declaring none yields web alone.
func Generate(
	ctx context.Context,
	app *lang.Application,
	platforms []lang.Platform,
	opts ...Option,
) (Output, error) {
	if app == nil {
		return nil, ErrNoApplication
	}

	o := makeOptions(opts...)

	if len(platforms) == 0 {
		platforms = app.Platforms
	}

	if len(platforms) == 0 {
		platforms = []lang.Platform{lang.PlatformWeb}
	}

	merged := make(Output)

	for _, platform := range platforms {
		emitter, err := For(platform)
		if err != nil {
			return nil, err
		}

		files, err := emitter.Emit(app)
		if err != nil {
			return nil, err
		}

		for path, content := range files {
			merged[string(platform)+"/"+path] = content
		}

		o.logger.DebugContext(ctx, "platform emitted",
			slog.String("platform", string(platform)),
			slog.Int("files", len(files)))
	}

	return merged, nil
}

type options struct {
	logger log.Logger
}

// Option configures generation.
type Option func(*options)

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger routes generation progress to the given logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}
