package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "APP_"

// loadEnv merges the dotenv file into the process environment and then
// overlays every APP_* variable onto k. Keys are matched against the ones
// already loaded, so an underscore inside a field name is not mistaken for
// nesting.
func loadEnv(k *koanf.Koanf, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	keys := envKeys(k.Keys())
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			return keys.resolve(name), value
		},
	}), nil)
}

// envKeyMap maps "server_read_timeout" to "server.read_timeout".
type envKeyMap map[string]string

func envKeys(known []string) envKeyMap {
	m := make(envKeyMap, len(known))
	for _, key := range known {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

// resolve turns APP_SERVER_READ_TIMEOUT into server.read_timeout. Names with
// no known key fall back to treating every underscore as a separator.
func (m envKeyMap) resolve(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if key, ok := m[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "_", ".")
}
