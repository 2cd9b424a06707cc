package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything lantern needs to reach the CMS and pace the
// startup sequence.
type Config struct {
	APIURL           string
	APIToken         string
	ExpectedResponse time.Duration
	IntroTimeout     time.Duration
	LogLevel         string
	LogFormat        string // "console" or "json"
	LogDir           string
}

var (
	// ErrMissingBaseURL is returned when no CMS base URL is configured.
	ErrMissingBaseURL = errors.New("api_url is required")
	// ErrMissingToken is returned when no CMS bearer token is configured.
	ErrMissingToken = errors.New("api_token is required")
)

const (
	defaultConfigPath       = "~/.config/lantern/config.toml"
	defaultLogDir           = "~/.local/state/lantern"
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultExpectedResponse = 60 * time.Second
	defaultIntroTimeout     = 10 * time.Second

	envAPIURL   = "LANTERN_API_URL"
	envAPIToken = "LANTERN_API_TOKEN"
)

// Load locates and parses the lantern config, falling back to defaults when
// the file is missing. Environment variables override file values. The
// returned config has not been validated.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ExpectedResponse: defaultExpectedResponse,
		IntroTimeout:     defaultIntroTimeout,
		LogLevel:         defaultLogLevel,
		LogFormat:        defaultLogFormat,
		LogDir:           mustExpand(defaultLogDir),
	}

	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	if bytes != nil {
		var raw struct {
			APIURL             string `toml:"api_url"`
			APIToken           string `toml:"api_token"`
			ExpectedResponseMS *int   `toml:"expected_response_ms"`
			IntroTimeoutMS     *int   `toml:"intro_timeout_ms"`
			LogLevel           string `toml:"log_level"`
			LogFormat          string `toml:"log_format"`
			LogDir             string `toml:"log_dir"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		cfg.APIURL = strings.TrimSpace(raw.APIURL)
		cfg.APIToken = strings.TrimSpace(raw.APIToken)
		if raw.ExpectedResponseMS != nil {
			cfg.ExpectedResponse = time.Duration(*raw.ExpectedResponseMS) * time.Millisecond
		}
		if raw.IntroTimeoutMS != nil {
			cfg.IntroTimeout = time.Duration(*raw.IntroTimeoutMS) * time.Millisecond
		}
		if level := strings.TrimSpace(raw.LogLevel); level != "" {
			cfg.LogLevel = level
		}
		cfg.LogFormat = normalizeLogFormat(raw.LogFormat)
		if dir := strings.TrimSpace(raw.LogDir); dir != "" {
			cfg.LogDir = mustExpand(dir)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate reports configuration problems that must stop the process before
// any network call is attempted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("%w: set %s or edit %s", ErrMissingBaseURL, envAPIURL, defaultConfigPath)
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return fmt.Errorf("%w: set %s or edit %s", ErrMissingToken, envAPIToken, defaultConfigPath)
	}
	if c.ExpectedResponse <= 0 {
		return errors.New("expected_response_ms must be positive")
	}
	if c.IntroTimeout < 0 {
		return errors.New("intro_timeout_ms must not be negative")
	}
	return nil
}

// LogPath returns the path of the lantern log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/lantern.log")
	}
	return filepath.Join(c.LogDir, "lantern.log")
}

func normalizeLogFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "json":
		return f
	default:
		return defaultLogFormat
	}
}

func applyEnv(cfg *Config) {
	if value, ok := os.LookupEnv(envAPIURL); ok && strings.TrimSpace(value) != "" {
		cfg.APIURL = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAPIToken); ok && strings.TrimSpace(value) != "" {
		cfg.APIToken = strings.TrimSpace(value)
	}
}

// readFile returns nil bytes when the file does not exist.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
