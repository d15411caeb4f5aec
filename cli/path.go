package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/halmstraw/finance-app-dsl/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode for created runtime directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the prefix used to construct runtime directory paths.
//
// By default, basePrefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with pkg.Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string { return runtimeDir(os.UserConfigDir, ".config") },
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string { return runtimeDir(os.UserCacheDir, ".cache") },
)

// runtimeDir resolves a per-user base directory, falling back to a dot
// directory under $HOME and finally the working directory.
func runtimeDir(user func() (string, error), dot string) string {
	dir, err := user()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, dot)
		} else {
			dir, err = os.Getwd()
			if err != nil {
				dir = "."
			}
		}
	}

	return filepath.Join(dir, basePrefix())
}

// configPath returns the absolute path formed by joining the configuration
// directory path with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
