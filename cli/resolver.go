package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML config files.
//
// The file is a flat mapping of flag names to values. Flag names may be
// spelled with hyphens as on the command line or with underscores:
//
//	log-level: debug
//	log_format: json
//	log-pretty: true
//
// Command-line flags override config file values. A missing or malformed
// file yields an empty configuration rather than an error, so a stale
// config never blocks the CLI.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return yamlConfig{}, nil
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return yamlConfig{}, nil
	}

	config := make(yamlConfig, len(values))

	for key, value := range values {
		// Kong parses numbers from their string form.
		switch v := value.(type) {
		case int:
			config[key] = strconv.Itoa(v)
		case int64:
			config[key] = strconv.FormatInt(v, 10)
		case uint64:
			config[key] = strconv.FormatUint(v, 10)
		case float64:
			config[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			config[key] = value
		}
	}

	return config, nil
}

// yamlConfig implements [kong.Resolver] for YAML configs.
type yamlConfig map[string]any

// Validate implements [kong.Resolver].
func (yamlConfig) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c yamlConfig) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Accept the underscore spelling of hyphenated flag names.
	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
