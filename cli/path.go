package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/twig/pkg"
)

// baseConfig is the base name of the configuration files. Each supported
// format adds its own extension: config.json, config.toml, config.twig.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the name used for the configuration and cache
// directories: the base name of the executable without extension, except that
// a dlv debug binary maps to [pkg.Name] and leading dots are removed.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			return pkg.Name
		}

		return id
	},
)

// userDir returns basePrefix joined to the directory reported by dir. When
// dir fails, hidden is used under the home directory, and failing that, the
// working directory.
func userDir(dir func() (string, error), hidden string) string {
	root, err := dir()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			root = filepath.Join(home, hidden)
		} else if root, err = os.Getwd(); err != nil {
			root = "."
		}
	}

	return filepath.Join(root, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the directory for REPL history and profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem to the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
