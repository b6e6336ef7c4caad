package config

import (
	"io"
	"time"

	"go-simpler.org/env"
)

// Env holds the environment overrides. Unset variables leave the file and
// default values in place.
type Env struct {
	BaseURL  string        `env:"POSTBOARD_BASE_URL" usage:"posts API base URL"`
	Timeout  time.Duration `env:"POSTBOARD_TIMEOUT" usage:"per-request timeout, e.g. 10s"`
	LogLevel string        `env:"POSTBOARD_LOG_LEVEL" usage:"log level: off fatal error warn info debug trace"`
	Listen   string        `env:"POSTBOARD_LISTEN" usage:"fixture server listen address"`
	Data     string        `env:"POSTBOARD_DATA" usage:"fixture server snapshot file"`
}

// MapSource is an env.Source backed by a map, for tests and .env files.
type MapSource map[string]string

// LookupEnv implements env.Source.
func (m MapSource) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// LoadEnv reads the overrides from source, or from the process environment
// when source is nil.
func LoadEnv(source env.Source) (Env, error) {
	var vars Env
	var opts *env.Options
	if source != nil {
		opts = &env.Options{Source: source}
	}
	if err := env.Load(&vars, opts); err != nil {
		return Env{}, err
	}
	return vars, nil
}

// PrintUsage writes the environment variables and their meaning to w.
func PrintUsage(w io.Writer) {
	env.Usage(&Env{}, w, nil)
}
