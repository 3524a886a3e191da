package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "ATI_PORTAL_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "modules", "leave")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(sub))

	_ = os.Unsetenv("ATI_PORTAL_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ok", os.Getenv("ATI_PORTAL_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()
	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env.does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAPIOptions_Validate(t *testing.T) {
	opts := APIOptions{BaseURL: "http://localhost:3001/", Timeout: time.Second}
	require.NoError(t, opts.Validate())
	assert.Equal(t, "http://localhost:3001", opts.BaseURL)

	bad := APIOptions{BaseURL: "localhost:3001", Timeout: time.Second}
	require.Error(t, bad.Validate())

	noTimeout := APIOptions{BaseURL: "https://api.example.com", Timeout: 0}
	require.Error(t, noTimeout.Validate())
}

func TestRateLimitOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    RateLimitOptions
		wantErr bool
	}{
		{name: "defaults", opts: RateLimitOptions{GlobalRPS: 1000, LoginPerMinute: 10, Storage: "memory"}},
		{name: "negative rps", opts: RateLimitOptions{GlobalRPS: -1, Storage: "memory"}, wantErr: true},
		{name: "unknown storage", opts: RateLimitOptions{GlobalRPS: 1, Storage: "disk"}, wantErr: true},
		{name: "redis without url", opts: RateLimitOptions{GlobalRPS: 1, Storage: "redis"}, wantErr: true},
		{name: "redis with url", opts: RateLimitOptions{GlobalRPS: 1, Storage: "redis", RedisURL: "localhost:6379"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileCacheOptions_Validate(t *testing.T) {
	assert.NoError(t, (&ProfileCacheOptions{Storage: "memory"}).Validate(""))
	assert.NoError(t, (&ProfileCacheOptions{Storage: "none"}).Validate(""))
	assert.Error(t, (&ProfileCacheOptions{Storage: "redis"}).Validate(""))
	assert.NoError(t, (&ProfileCacheOptions{Storage: "redis"}).Validate("localhost:6379"))
	assert.Error(t, (&ProfileCacheOptions{Storage: "file"}).Validate(""))
}

func TestAuditLogOptions_Validate(t *testing.T) {
	assert.NoError(t, (&AuditLogOptions{Storage: "memory", Capacity: 10}).Validate(""))
	assert.Error(t, (&AuditLogOptions{Storage: "memory", Capacity: 0}).Validate(""))
	assert.Error(t, (&AuditLogOptions{Storage: "redis", Capacity: 10}).Validate(""))
	assert.NoError(t, (&AuditLogOptions{Storage: "redis", Capacity: 10}).Validate("localhost:6379"))
	assert.Error(t, (&AuditLogOptions{Storage: "s3", Capacity: 10}).Validate(""))
}

func TestCorsOrigins(t *testing.T) {
	c := &Configuration{CorsAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CorsOrigins())
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
