package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvKeyMap_Resolve(t *testing.T) {
	t.Parallel()

	m := envKeys([]string{"server.port", "server.read_timeout", "store.circuit_breaker.half_open_limit"})

	tests := []struct {
		name string
		want string
	}{
		{name: "APP_SERVER_PORT", want: "server.port"},
		{name: "APP_SERVER_READ_TIMEOUT", want: "server.read_timeout"},
		{name: "APP_STORE_CIRCUIT_BREAKER_HALF_OPEN_LIMIT", want: "store.circuit_breaker.half_open_limit"},
		{name: "APP_NEW_THING", want: "new.thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.resolve(tt.name))
		})
	}
}
