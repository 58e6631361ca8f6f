package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Settings are engine-wide defaults, loaded from a YAML file and CONDUIT_*
// environment variables (env wins). They apply where a pipeline config does
// not say otherwise.
type Settings struct {
	// LogOnHalt: default halt-log level for built pipelines ("" disables).
	LogOnHalt string `koanf:"log_on_halt"`

	// AwaitTimeout: default timeout stages should pass to AwaitAssign.
	AwaitTimeout time.Duration `koanf:"await_timeout"`
}

// LoadSettings loads Settings. path may be empty (env and defaults only).
// Environment variables use the CONDUIT_ prefix with underscores for nesting,
// e.g. CONDUIT_LOG_ON_HALT=warn.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load settings %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("CONDUIT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CONDUIT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load settings from env: %w", err)
	}

	if !k.Exists("await_timeout") {
		k.Set("await_timeout", "5s")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if s.LogOnHalt != "" {
		if _, err := ParseLevel(s.LogOnHalt); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
