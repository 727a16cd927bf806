package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultConfigDir = "configs"
	defaultEnvFile   = ".env"
)

// Option adjusts where Load looks for its inputs.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
	envFile   string
}

// WithConfigDir reads base.yaml and the profile file from dir instead of
// ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.configDir = dir }
}

// WithEnvFile reads dotenv variables from path instead of ./.env. Variables
// already present in the environment win. An empty path skips the file.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// layer is one source in the merge order.
type layer struct {
	name   string
	loader func(k *koanf.Koanf) error
}

// Load merges, lowest precedence first, the built-in defaults,
// {dir}/base.yaml, {dir}/{profile}.yaml and APP_* environment variables
// (with .env folded in), then validates the result.
//
//	APP_SERVER_PORT                            -> server.port
//	APP_SERVER_READ_TIMEOUT                    -> server.read_timeout
//	APP_STORE_POSTGRES_DSN                     -> store.postgres.dsn
//	APP_STORE_CIRCUIT_BREAKER_HALF_OPEN_LIMIT  -> store.circuit_breaker.half_open_limit
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	o := loadOptions{configDir: defaultConfigDir, envFile: defaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}

	layers := []layer{
		{name: "defaults", loader: func(k *koanf.Koanf) error {
			return k.Load(confmap.Provider(defaults(), "."), nil)
		}},
		yamlLayer(filepath.Join(o.configDir, "base.yaml")),
		yamlLayer(filepath.Join(o.configDir, profile+".yaml")),
		{name: "environment", loader: func(k *koanf.Koanf) error {
			return loadEnv(k, o.envFile)
		}},
	}

	k := koanf.New(".")
	for _, l := range layers {
		if err := l.loader(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	cfg := new(Config)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}
	return cfg, nil
}

func yamlLayer(path string) layer {
	return layer{name: path, loader: func(k *koanf.Koanf) error {
		return k.Load(file.Provider(path), yaml.Parser())
	}}
}

// checkProfile rejects names that would escape the config directory.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("config profile is empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("config profile %q must be a plain file name", profile)
	}
	return nil
}
