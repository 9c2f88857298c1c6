package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all tool configuration options.
type Config struct {
	// File is the config file commands operate on by default.
	File string `json:"file,omitempty"`

	// MaxLineSize / MaxLineCount bound the line loop; zero means "use
	// the package default".
	MaxLineSize  int `json:"max_line_size,omitempty"`  //nolint:tagliatelle // snake_case for config file
	MaxLineCount int `json:"max_line_count,omitempty"` //nolint:tagliatelle // snake_case for config file

	// Scale is the default base-10 exponent for numeric parsing.
	Scale int `json:"scale,omitempty"`
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".confkit.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/confkit/config.json if set, otherwise
// ~/.config/confkit/config.json. Empty if no home directory exists.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "confkit", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "confkit", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults (zero values, package defaults apply downstream)
// 2. Global user config
// 3. Project config file at default location (.confkit.json, if exists)
// 4. Explicit config file via configPath (if non-empty).
func LoadConfig(workDir, configPath string, env map[string]string) (Config, error) {
	var cfg Config

	globalCfg, _, err := loadConfigFile(getGlobalConfigPath(env), false)
	if err != nil {
		return Config{}, err
	}

	cfg = mergeConfig(cfg, globalCfg)

	projectPath := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	projectCfg, _, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	cfg = mergeConfig(cfg, projectCfg)

	if cfg.MaxLineSize < 0 || cfg.MaxLineCount < 0 {
		return Config{}, fmt.Errorf("%w: size=%d count=%d", errLineLimitInvalid, cfg.MaxLineSize, cfg.MaxLineCount)
	}

	return cfg, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing
// files return a zero config.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	if path == "" {
		return Config{}, false, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if mustExist {
			if os.IsNotExist(err) {
				return Config{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
			}

			return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

// mergeConfig overlays non-zero fields of overlay onto base.
func mergeConfig(base, overlay Config) Config {
	if overlay.File != "" {
		base.File = overlay.File
	}

	if overlay.MaxLineSize != 0 {
		base.MaxLineSize = overlay.MaxLineSize
	}

	if overlay.MaxLineCount != 0 {
		base.MaxLineCount = overlay.MaxLineCount
	}

	if overlay.Scale != 0 {
		base.Scale = overlay.Scale
	}

	return base
}
