package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "table", c.DefaultFormat)
	assert.Equal(t, "auto", c.Color)
	assert.Equal(t, 5, c.TopK)
	assert.Equal(t, 5, c.SampleValues)
	assert.Equal(t, 0, c.MaxRows)
	assert.False(t, c.ParallelFinalize)
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Set("default_format", "JSON"))
	require.NoError(t, c.Set("top_k", "3"))
	require.NoError(t, c.Set("parallel_finalize", "true"))
	require.NoError(t, c.Set("delimiter", "semicolon"))
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, Dir, "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", got.DefaultFormat)
	assert.Equal(t, 3, got.TopK)
	assert.True(t, got.ParallelFinalize)
	assert.Equal(t, "semicolon", got.Get("delimiter"))

	t.Setenv("CSVP_TOP_K", "9")
	got, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, got.TopK)
}

func TestExplicitConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("color: never\nmax_rows: 100\n"), 0o644))
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "never", c.Color)
	assert.Equal(t, 100, c.MaxRows)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
}

func TestSetRejectsBadValues(t *testing.T) {
	c := &Global{Color: "auto"}
	assert.Error(t, c.Set("color", "sometimes"))
	assert.Error(t, c.Set("top_k", "-1"))
	assert.Error(t, c.Set("quiet", "maybe"))
	assert.Error(t, c.Set("api_key", "x"))
	for _, k := range Keys {
		assert.NotPanics(t, func() { c.Get(k) })
	}
}
