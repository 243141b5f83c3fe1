package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/adventurer/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOutDir(t *testing.T) {
	resolve := assets.FromOutDir("/srv/game")
	assert.Equal(t, filepath.Join("/srv/game", "res", "assets", "a.yaml"), resolve("res/assets/a.yaml"))
	assert.Equal(t, "/abs/path.png", resolve("/abs/path.png"))
}

func TestRootFallsBackToEnv(t *testing.T) {
	t.Setenv(assets.EnvOutDir, "/from/env")
	assert.Equal(t, "/from/env", assets.Root(""))
	assert.Equal(t, "/explicit", assets.Root("/explicit"))

	t.Setenv(assets.EnvOutDir, "")
	assert.NotEmpty(t, assets.Root(""))
}

func TestMirrorSkipsExisting(t *testing.T) {
	src := filepath.Join(t.TempDir(), "res")
	dst := filepath.Join(t.TempDir(), "out", "res")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "assets", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "assets", "a.txt"), []byte("fresh"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "assets", "deep", "b.txt"), []byte("b"), 0o644))

	stats, err := assets.Mirror(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Copied)
	assert.Equal(t, 3, stats.Dirs)
	assert.Equal(t, 0, stats.Skipped)

	data, err := os.ReadFile(filepath.Join(dst, "assets", "deep", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	// an edited destination file survives a second mirror
	require.NoError(t, os.WriteFile(filepath.Join(dst, "assets", "a.txt"), []byte("local"), 0o644))
	stats, err = assets.Mirror(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Copied)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 0, stats.Dirs)

	data, err = os.ReadFile(filepath.Join(dst, "assets", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "local", string(data))
}

func TestMirrorMissingSource(t *testing.T) {
	_, err := assets.Mirror(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
