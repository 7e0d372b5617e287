package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dshills/diffreview/internal/providers"
)

// Config represents the diffreview configuration. It never holds API keys.
type Config struct {
	Provider         string          `json:"provider"`
	UseProModel      bool            `json:"useProModel"`
	Preset           string          `json:"preset"`
	InstructionsFile string          `json:"instructionsFile,omitempty"`
	Format           string          `json:"format"`
	Exclude          []string        `json:"exclude,omitempty"`
	MaxDiffBytes     int             `json:"maxDiffBytes"`
	LogLevel         string          `json:"logLevel"`
	Server           ServerConfig    `json:"server"`
	Endpoints        EndpointsConfig `json:"endpoints"`
}

// ServerConfig controls the HTTP/WebSocket service.
type ServerConfig struct {
	Addr          string `json:"addr"`
	AllowedOrigin string `json:"allowedOrigin"`
}

// EndpointsConfig overrides vendor endpoints, e.g. for OpenAI-compatible
// gateways or a remote Ollama host.
type EndpointsConfig struct {
	Anthropic string `json:"anthropic,omitempty"`
	OpenAI    string `json:"openai,omitempty"`
	Gemini    string `json:"gemini,omitempty"`
	Ollama    string `json:"ollama,omitempty"`
}

// For returns the configured endpoint for p, or "" for the vendor default.
func (e EndpointsConfig) For(p providers.Provider) string {
	switch p {
	case providers.Anthropic:
		return e.Anthropic
	case providers.OpenAI:
		return e.OpenAI
	case providers.Gemini:
		return e.Gemini
	case providers.Ollama:
		return e.Ollama
	default:
		return ""
	}
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider: string(providers.Gemini),
		Preset:   "default",
		Format:   "markdown",
		LogLevel: "info",
		Server: ServerConfig{
			Addr:          "127.0.0.1:8787",
			AllowedOrigin: "*",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for diffreview.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "diffreview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "diffreview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "diffreview"), nil
	default:
		return filepath.Join(home, ".config", "diffreview"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadStored returns the config file merged over the defaults, ignoring env
// and flags. A missing file yields the defaults; a corrupt one is an error.
func LoadStored() (Config, error) {
	cfg := Default()
	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	// false is indistinguishable from unset, and the default is false.
	if src.UseProModel {
		dst.UseProModel = true
	}
	if src.Preset != "" {
		dst.Preset = src.Preset
	}
	if src.InstructionsFile != "" {
		dst.InstructionsFile = src.InstructionsFile
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if src.MaxDiffBytes > 0 {
		dst.MaxDiffBytes = src.MaxDiffBytes
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
	if src.Server.AllowedOrigin != "" {
		dst.Server.AllowedOrigin = src.Server.AllowedOrigin
	}
	if src.Endpoints.Anthropic != "" {
		dst.Endpoints.Anthropic = src.Endpoints.Anthropic
	}
	if src.Endpoints.OpenAI != "" {
		dst.Endpoints.OpenAI = src.Endpoints.OpenAI
	}
	if src.Endpoints.Gemini != "" {
		dst.Endpoints.Gemini = src.Endpoints.Gemini
	}
	if src.Endpoints.Ollama != "" {
		dst.Endpoints.Ollama = src.Endpoints.Ollama
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("DIFFREVIEW_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("DIFFREVIEW_PRO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DIFFREVIEW_PRO must be a boolean: %w", err)
		}
		cfg.UseProModel = b
	}
	if v := os.Getenv("DIFFREVIEW_PRESET"); v != "" {
		cfg.Preset = v
	}
	if v := os.Getenv("DIFFREVIEW_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("DIFFREVIEW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DIFFREVIEW_MAX_DIFF_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DIFFREVIEW_MAX_DIFF_BYTES must be an integer: %w", err)
		}
		cfg.MaxDiffBytes = n
	}
	if v := os.Getenv("DIFFREVIEW_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DIFFREVIEW_OPENAI_BASE_URL"); v != "" {
		cfg.Endpoints.OpenAI = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Endpoints.Ollama = v
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	if overrides == nil {
		return nil
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["useProModel"]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("useProModel must be a boolean: %w", err)
		}
		cfg.UseProModel = b
	}
	if v, ok := overrides["preset"]; ok && v != "" {
		cfg.Preset = v
	}
	if v, ok := overrides["instructionsFile"]; ok && v != "" {
		cfg.InstructionsFile = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["exclude"]; ok && v != "" {
		cfg.Exclude = append(cfg.Exclude, splitList(v)...)
	}
	if v, ok := overrides["maxDiffBytes"]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("maxDiffBytes must be an integer: %w", err)
		}
		cfg.MaxDiffBytes = n
	}
	if v, ok := overrides["logLevel"]; ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := overrides["addr"]; ok && v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		p, err := providers.ParseProvider(value)
		if err != nil {
			return err
		}
		cfg.Provider = string(p)
	case "useProModel":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("useProModel must be a boolean: %w", err)
		}
		cfg.UseProModel = b
	case "preset":
		cfg.Preset = value
	case "instructionsFile":
		cfg.InstructionsFile = value
	case "format":
		cfg.Format = value
	case "exclude":
		cfg.Exclude = splitList(value)
	case "maxDiffBytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxDiffBytes must be an integer: %w", err)
		}
		cfg.MaxDiffBytes = n
	case "logLevel":
		cfg.LogLevel = value
	case "server.addr":
		cfg.Server.Addr = value
	case "server.allowedOrigin":
		cfg.Server.AllowedOrigin = value
	case "endpoints.anthropic":
		cfg.Endpoints.Anthropic = value
	case "endpoints.openai":
		cfg.Endpoints.OpenAI = value
	case "endpoints.gemini":
		cfg.Endpoints.Gemini = value
	case "endpoints.ollama":
		cfg.Endpoints.Ollama = value
	case "apiKey", "api_key", "apikey":
		return fmt.Errorf("API keys are not stored in the config file; pass --api-key or set %s", strings.Join(APIKeyEnv(providers.Provider(cfg.Provider)), " / "))
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
