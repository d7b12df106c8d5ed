package wiring_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/app"
	"go.trai.ch/railfare/internal/core/domain"
	_ "go.trai.ch/railfare/internal/wiring"
)

func TestGraph_BuildsComponents(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: \"1\"\ndata_dir: data\n"), 0o600))
	t.Setenv(domain.ConfigEnvVar, cfgPath)

	components, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)

	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	assert.Equal(t, filepath.Join(dir, "data"), components.Config.DataDir)
	assert.DirExists(t, components.Config.DataDir)
}
