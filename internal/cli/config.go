package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/go-line-cardinality/cuniq/internal/fs"
)

// fileConfig is the shape of an optional HuJSON config file supplying
// default flag values. CLI flags actually passed on the command line
// always win; this only fills in defaults for flags the user left
// untouched.
type fileConfig struct {
	Mode   string `json:"mode,omitempty"`
	Trim   *bool  `json:"trim,omitempty"`
	Lower  *bool  `json:"lower,omitempty"`
	Size   *uint64 `json:"size,omitempty"`
	Memmap *bool  `json:"memmap,omitempty"`
}

// configFileName is the implicit project-local config file name, checked
// when -C/--config is not given.
const configFileName = ".cuniq.json"

// loadConfig resolves the config file to use (explicit path, else
// ./.cuniq.json, else $XDG_CONFIG_HOME/cuniq/config.json) and parses it
// as HuJSON (JSON with comments and trailing commas allowed). Returns a
// zero fileConfig, nil if no config file applies.
func loadConfig(filesys fs.FS, explicitPath string, env map[string]string) (fileConfig, error) {
	path := explicitPath

	if path == "" {
		if ok, _ := filesys.Exists(configFileName); ok {
			path = configFileName
		}
	}

	if path == "" {
		if dir := globalConfigDir(env); dir != "" {
			candidate := filepath.Join(dir, "cuniq", "config.json")
			if ok, _ := filesys.Exists(candidate); ok {
				path = candidate
			}
		}
	}

	if path == "" {
		return fileConfig{}, nil
	}

	raw, err := filesys.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return fileConfig{}, err
	}

	var cfg fileConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, err
	}

	return cfg, nil
}

// globalConfigDir mirrors the XDG base-directory fallback chain: prefer
// XDG_CONFIG_HOME, fall back to $HOME/.config.
func globalConfigDir(env map[string]string) string {
	if v := env["XDG_CONFIG_HOME"]; v != "" {
		return v
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// applyConfigDefaults fills in opts fields left at their flag defaults
// with values from cfg, for every flag the user did not pass explicitly
// on the command line (fs.Changed reports that).
func applyConfigDefaults(opts *options, fs interface{ Changed(string) bool }, cfg fileConfig) {
	if cfg.Mode != "" && !fs.Changed("mode") {
		opts.mode = mode(cfg.Mode)
	}

	if cfg.Trim != nil && !fs.Changed("trim") {
		opts.trim = *cfg.Trim
	}

	if cfg.Lower != nil && !fs.Changed("lower") {
		opts.lower = *cfg.Lower
	}

	if cfg.Size != nil && !fs.Changed("size") {
		opts.size = *cfg.Size
	}

	if cfg.Memmap != nil && !fs.Changed("memmap") {
		opts.memmap = *cfg.Memmap
	}
}
