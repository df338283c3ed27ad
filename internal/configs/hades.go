package configs

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed schema.cue
var Schema string

const FileName = "hades.cue"

type Config struct {
	LogLevel string
	Format   FormatConfig
	Sources  []string
	Color    string

	// Files lists the files that were read, highest precedence first.
	Files []string
	// Shadowed lists the paths set in more than one file; only the first
	// file's value is used.
	Shadowed []string
}

type FormatConfig struct {
	Indent         string
	CheckRoundtrip bool
}

func Default() Config {
	return Config{
		LogLevel: "warn",
		Format: FormatConfig{
			Indent:         "    ",
			CheckRoundtrip: true,
		},
		Color: "auto",
	}
}

// SearchPaths lists the config files to load, highest precedence first.
// An explicit path is always included so a missing file is reported;
// the well-known locations are included only when they exist.
func SearchPaths(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}

	candidates := []string{FileName, "." + FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "hades", FileName))
	}
	candidates = append(candidates, filepath.Join("/etc", FileName))

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}

// keys are the config paths Load reads.
var keys = []string{"log_level", "format.indent", "format.check_roundtrip", "sources", "color"}

// Load reads the configuration from the given files, filling unset
// values from Default.
func Load(paths []string) (Config, error) {
	loader := NewLoader(paths, Schema)
	cfg := Default()

	files, err := loader.Files()
	if err != nil {
		return Default(), err
	}
	cfg.Files = files

	for _, key := range keys {
		defined := 0
		for _, err := range loader.IterCueValues(key) {
			if err != nil {
				return Default(), err
			}
			defined++
		}
		if defined > 1 {
			cfg.Shadowed = append(cfg.Shadowed, key)
		}
	}

	var errs []error
	cfg.LogLevel, err = First(loader, "log_level", cfg.LogLevel)
	errs = append(errs, err)
	cfg.Format.Indent, err = First(loader, "format.indent", cfg.Format.Indent)
	errs = append(errs, err)
	cfg.Format.CheckRoundtrip, err = First(loader, "format.check_roundtrip", cfg.Format.CheckRoundtrip)
	errs = append(errs, err)
	cfg.Sources, err = First(loader, "sources", cfg.Sources)
	errs = append(errs, err)
	cfg.Color, err = First(loader, "color", cfg.Color)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// IsNotExist reports whether err comes from a missing config file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
