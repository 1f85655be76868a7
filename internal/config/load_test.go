package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  addr: ":9000"
store:
  backend: redis
  redis:
    address: redis.internal:6379
    ttl: 30m
azure:
  default_subscription: 00000000-0000-0000-0000-000000000001
`))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Store.Redis.Address)
	assert.Equal(t, 30*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", cfg.Azure.DefaultSubscription)

	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "provisio:session:", cfg.Store.Redis.Prefix)
	assert.True(t, cfg.Server.Metrics)
}

func TestParse_EmptyFileIsAllDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

func TestParse_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "bad backend",
			yaml: "store:\n  backend: dynamo\n",
			want: "invalid store backend",
		},
		{
			name: "bad log level",
			yaml: "log:\n  level: loud\n",
			want: "invalid log level",
		},
		{
			name: "bad log format",
			yaml: "log:\n  format: xml\n",
			want: "invalid log format",
		},
		{
			name: "redis without address",
			yaml: "store:\n  backend: redis\n  redis:\n    address: \"\"\n",
			want: "store.redis.address is required",
		},
		{
			name: "short encryption key",
			yaml: "store:\n  encryption_key: c2hvcnQ=\n",
			want: "must decode to 32 bytes",
		},
		{
			name: "malformed yaml",
			yaml: "server: [",
			want: "failed to unmarshal yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provisio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7070\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PROVISIO_ADDR", ":6060")
	t.Setenv("PROVISIO_REDIS_ADDR", "override:6379")
	t.Setenv("PROVISIO_DEFAULT_SUBSCRIPTION", "11111111-1111-1111-1111-111111111111")

	cfg, err := Parse([]byte("server:\n  addr: \":9000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.Server.Addr, "env wins over file")
	assert.Equal(t, "override:6379", cfg.Store.Redis.Address)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", cfg.Azure.DefaultSubscription)
}

func TestDecodeEncryptionKey(t *testing.T) {
	s := StoreConfig{}
	key, err := s.DecodeEncryptionKey()
	require.NoError(t, err)
	assert.Nil(t, key, "empty setting disables encryption")

	s.EncryptionKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAQUE=" // 32 bytes
	key, err = s.DecodeEncryptionKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	s.EncryptionKey = "%%%not-base64%%%"
	_, err = s.DecodeEncryptionKey()
	assert.Error(t, err)
}
