package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RepoFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join("..", "..", ".gocleanarch.yml"))
	require.NoError(t, err)
	assert.Equal(t, "modules", cfg.Root)
	assert.True(t, cfg.IgnoreTests)
	assert.Contains(t, cfg.SharedModules, "core")

	layers := cfg.layers()
	assert.Equal(t, cleanarch.LayerApplication, layers["services"])
	assert.Equal(t, cleanarch.LayerInterfaces, layers["presentation"])
}

func TestLoadConfig_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: 2\n"), 0o644))
	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLayers_Defaults(t *testing.T) {
	layers := (&config{}).layers()
	assert.Equal(t, cleanarch.LayerDomain, layers["entities"])
	assert.Equal(t, cleanarch.LayerInfrastructure, layers["infrastructure"])
}

func TestSharedModuleImport(t *testing.T) {
	cfg := &config{SharedModules: []string{"core"}}
	assert.True(t, cfg.sharedModuleImport("cannot import between leave and core modules"))
	assert.False(t, cfg.sharedModuleImport("cannot import between leave and hrm modules"))
	assert.False(t, cfg.sharedModuleImport("domain imports infrastructure"))
}

func TestAllowed(t *testing.T) {
	cfg := &config{AllowedViolations: []string{"", "modules/jobs"}}
	assert.True(t, cfg.allowed("modules/jobs/services imports presentation"))
	assert.False(t, cfg.allowed("modules/leave/services imports presentation"))
}
