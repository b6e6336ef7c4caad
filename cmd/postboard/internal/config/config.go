// Package config resolves postboard settings from postboard.yaml, the
// environment and the enclosing Go module.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"go-simpler.org/env"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/posts"
	"github.com/go-drift/postboard/pkg/postsapi"
)

// FileName is the project configuration file.
const FileName = "postboard.yaml"

// DefaultListen is the fixture server address when none is configured.
const DefaultListen = "127.0.0.1:8080"

// Config represents the optional postboard.yaml configuration.
type Config struct {
	App   AppConfig   `yaml:"app"`
	API   APIConfig   `yaml:"api"`
	Log   LogConfig   `yaml:"log"`
	Serve ServeConfig `yaml:"serve"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// APIConfig configures the posts client.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	InitialLimit int           `yaml:"initial_limit,omitempty"`
	RefreshLimit int           `yaml:"refresh_limit,omitempty"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ServeConfig configures the fixture server.
type ServeConfig struct {
	Listen string `yaml:"listen,omitempty"`
	Seed   *int   `yaml:"seed,omitempty"`
	Data   string `yaml:"data,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ConfigFile string
	ModulePath string
	AppName    string
	AppID      string

	BaseURL      string
	Timeout      time.Duration
	InitialLimit int
	RefreshLimit int
	LogLevel     string

	Listen   string
	Seed     int
	DataFile string
}

// LoadOptional reads postboard.yaml from dir, falling back to the XDG
// config directories. It returns an empty config and no path when neither
// exists.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		path, err = xdg.SearchConfigFile(filepath.Join("postboard", FileName))
		if err != nil {
			return &Config{}, "", nil
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, path, nil
}

// Resolve loads postboard.yaml (if present), applies environment overrides
// read from source (the process environment when nil) and fills defaults.
func Resolve(dir string, source env.Source) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, path, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	vars, err := LoadEnv(source)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	r := &Resolved{
		Root:         dir,
		ConfigFile:   path,
		ModulePath:   modulePath,
		AppName:      appName,
		AppID:        appID,
		BaseURL:      firstNonEmpty(vars.BaseURL, cfg.API.BaseURL, posts.DefaultBaseURL),
		Timeout:      firstPositive(vars.Timeout, cfg.API.Timeout, posts.DefaultTimeout),
		InitialLimit: cfg.API.InitialLimit,
		RefreshLimit: cfg.API.RefreshLimit,
		LogLevel:     firstNonEmpty(vars.LogLevel, cfg.Log.Level, "info"),
		Listen:       firstNonEmpty(vars.Listen, cfg.Serve.Listen, DefaultListen),
		Seed:         postsapi.DefaultSeed,
		DataFile:     firstNonEmpty(vars.Data, cfg.Serve.Data),
	}
	if r.InitialLimit == 0 {
		r.InitialLimit = posts.InitialLimit
	}
	if r.RefreshLimit == 0 {
		r.RefreshLimit = posts.RefreshLimit
	}
	if cfg.Serve.Seed != nil {
		r.Seed = *cfg.Serve.Seed
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks values that may have been overridden after Resolve.
func (r *Resolved) Validate() error {
	u, err := url.Parse(r.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL (got %q)", r.BaseURL)
	}
	if r.InitialLimit < 0 || r.RefreshLimit < 0 {
		return fmt.Errorf("api limits cannot be negative (got %d, %d)", r.InitialLimit, r.RefreshLimit)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive (got %s)", r.Timeout)
	}
	if r.Seed < 0 {
		return fmt.Errorf("serve.seed cannot be negative (got %d)", r.Seed)
	}
	if _, err := log.ParseLevel(r.LogLevel); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
// Outside a module it returns the current directory.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "postboard"
	}
	return base
}

func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	var pathParts []string
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		pathParts = append(pathParts, p)
	}

	segments := append(host, pathParts...)
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment)
	}

	return strings.Join(segments, ".")
}

// sanitizeSegment lowercases segment and keeps only letters and digits.
// A leading digit gets an 'a' prefix so the result passes validateAppID.
func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		segment = "app"
	}

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= '0' && r <= '9':
			out = append(out, r)
		}
	}

	if len(out) == 0 {
		out = []rune("app")
	}

	if out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'a'}, out...)
	}

	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
