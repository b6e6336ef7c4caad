package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/go-drift/postboard/pkg/posts"
	"github.com/go-drift/postboard/pkg/postsapi"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// Keep the XDG search away from the developer's own config.
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "xdg-dirs"))
	xdg.Reload()
	return dir
}

func TestResolve_Defaults(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "go.mod", "module github.com/acme/post-board\n\ngo 1.24\n")

	r, err := Resolve(dir, MapSource{})
	if err != nil {
		t.Fatal(err)
	}
	if r.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", r.ConfigFile)
	}
	if r.AppName != "post-board" {
		t.Errorf("AppName = %q", r.AppName)
	}
	if r.AppID != "com.github.acme.postboard" {
		t.Errorf("AppID = %q", r.AppID)
	}
	if r.BaseURL != posts.DefaultBaseURL {
		t.Errorf("BaseURL = %q", r.BaseURL)
	}
	if r.Timeout != posts.DefaultTimeout {
		t.Errorf("Timeout = %s", r.Timeout)
	}
	if r.InitialLimit != posts.InitialLimit || r.RefreshLimit != posts.RefreshLimit {
		t.Errorf("limits = %d, %d", r.InitialLimit, r.RefreshLimit)
	}
	if r.LogLevel != "info" || r.Listen != DefaultListen || r.Seed != postsapi.DefaultSeed {
		t.Errorf("unexpected defaults: %+v", r)
	}
}

func TestResolve_WithoutGoMod(t *testing.T) {
	dir := isolate(t)
	r, err := Resolve(dir, MapSource{})
	if err != nil {
		t.Fatal(err)
	}
	if r.ModulePath != "" {
		t.Errorf("ModulePath = %q, want empty", r.ModulePath)
	}
	if !strings.HasPrefix(r.AppID, "com.example.") || validateAppID(r.AppID) != nil {
		t.Errorf("AppID = %q", r.AppID)
	}
}

func TestResolve_File(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, FileName, `
app:
  name: Board
  id: dev.board.app
api:
  base_url: http://127.0.0.1:9000
  timeout: 3s
  initial_limit: 5
  refresh_limit: 7
log:
  level: debug
serve:
  listen: 127.0.0.1:9000
  seed: 0
  data: posts.zst
`)

	r, err := Resolve(dir, MapSource{})
	if err != nil {
		t.Fatal(err)
	}
	if r.ConfigFile != filepath.Join(dir, FileName) {
		t.Errorf("ConfigFile = %q", r.ConfigFile)
	}
	if r.AppName != "Board" || r.AppID != "dev.board.app" {
		t.Errorf("app = %q %q", r.AppName, r.AppID)
	}
	if r.BaseURL != "http://127.0.0.1:9000" || r.Timeout != 3*time.Second {
		t.Errorf("api = %q %s", r.BaseURL, r.Timeout)
	}
	if r.InitialLimit != 5 || r.RefreshLimit != 7 {
		t.Errorf("limits = %d, %d", r.InitialLimit, r.RefreshLimit)
	}
	if r.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", r.LogLevel)
	}
	// An explicit zero seed is kept.
	if r.Seed != 0 || r.DataFile != "posts.zst" || r.Listen != "127.0.0.1:9000" {
		t.Errorf("serve = %+v", r)
	}
}

func TestResolve_XDGFallback(t *testing.T) {
	dir := isolate(t)
	xdgDir := filepath.Join(dir, "xdg", "postboard")
	if err := os.MkdirAll(xdgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, xdgDir, FileName, "log:\n  level: trace\n")

	project := filepath.Join(dir, "project")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, path, err := LoadOptional(project)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(xdgDir, FileName) {
		t.Errorf("path = %q", path)
	}
	if cfg.Log.Level != "trace" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
}

func TestResolve_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, FileName, "api:\n  base_url: http://file.example\nlog:\n  level: warn\n")

	r, err := Resolve(dir, MapSource{
		"POSTBOARD_BASE_URL":  "http://env.example",
		"POSTBOARD_TIMEOUT":   "250ms",
		"POSTBOARD_LOG_LEVEL": "error",
		"POSTBOARD_LISTEN":    ":7000",
		"POSTBOARD_DATA":      "/tmp/posts.zst",
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.BaseURL != "http://env.example" || r.Timeout != 250*time.Millisecond {
		t.Errorf("api = %q %s", r.BaseURL, r.Timeout)
	}
	if r.LogLevel != "error" || r.Listen != ":7000" || r.DataFile != "/tmp/posts.zst" {
		t.Errorf("overrides not applied: %+v", r)
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"scheme", "api:\n  base_url: ftp://x\n", "base_url"},
		{"limit", "api:\n  initial_limit: -1\n", "negative"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"app id", "app:\n  id: board\n", "app.id"},
		{"app id digit", "app:\n  id: com.1board\n", "digit"},
		{"seed", "serve:\n  seed: -3\n", "seed"},
		{"yaml", "api: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, dir, FileName, tt.content)
			_, err := Resolve(dir, MapSource{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultAppID(t *testing.T) {
	tests := []struct {
		module, name, want string
	}{
		{"github.com/acme/board", "board", "com.github.acme.board"},
		{"example.com/x/9lives", "9lives", "com.example.x.a9lives"},
		{"localboard", "localboard", "com.example.localboard"},
		{"", "My App", "com.example.myapp"},
	}
	for _, tt := range tests {
		if got := defaultAppID(tt.module, tt.name); got != tt.want {
			t.Errorf("defaultAppID(%q, %q) = %q, want %q", tt.module, tt.name, got, tt.want)
		}
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	for _, name := range []string{"POSTBOARD_BASE_URL", "POSTBOARD_LOG_LEVEL", "POSTBOARD_DATA"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("usage missing %s:\n%s", name, buf.String())
		}
	}
}
