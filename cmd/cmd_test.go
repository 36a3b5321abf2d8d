package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/config"
	"github.com/whiterosearts/petalsite/internal/content"
)

// writeProject lays out a config and content file in a temp dir and returns
// the config path.
func writeProject(t *testing.T, c *content.Content) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.ContentFile = filepath.Join(dir, "content.yml")
	cfg.OutputDir = filepath.Join(dir, "public")
	cfg.AssetsDir = filepath.Join(dir, "assets")
	cfgPath := filepath.Join(dir, ".petalsite.yml")
	require.NoError(t, cfg.Save(cfgPath))
	require.NoError(t, c.Save(cfg.ContentFile))
	return cfgPath, cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CI", "1")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	cfgPath, cfg := writeProject(t, content.Default())

	out, err := execute(t, "build", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 pages)")

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "shows", "divine-machinery-ex-machina", "index.html"))
	assert.NoError(t, err)
}

func TestBuildCommandInvalidContent(t *testing.T) {
	c := content.Default()
	c.Shows = append(c.Shows, c.Shows[0])
	cfgPath, _ := writeProject(t, c)

	_, err := execute(t, "build", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestCheckCommandOffline(t *testing.T) {
	c := content.Default()
	c.Shows[0].PetalPositions[0].LinkIndex = 5
	cfgPath, _ := writeProject(t, c)

	out, err := execute(t, "check", "--offline", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 shows, 1 soundtracks")
	assert.Contains(t, out, "petal 0 links to missing sheet 5")
	assert.Contains(t, out, "is not a direct media file")
	assert.NotContains(t, out, "Checking")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "petalsite dev\n", out)
}

func TestRebuildKeepsFlagOverrides(t *testing.T) {
	cfgPath, cfg := writeProject(t, content.Default())
	prev := cfgFile
	cfgFile = cfgPath
	t.Cleanup(func() { cfgFile = prev })

	// As after `build --serve --output <dir> --live`.
	effective := *cfg
	effective.OutputDir = filepath.Join(t.TempDir(), "override")

	edited := content.Default()
	edited.Site.Title = "White Rose Arts (edited)"
	require.NoError(t, edited.Save(cfg.ContentFile))

	c, pages, err := rebuildSite(context.Background(), &effective, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Equal(t, "White Rose Arts (edited)", c.Site.Title)

	index, err := os.ReadFile(filepath.Join(effective.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "White Rose Arts (edited)")
	assert.Contains(t, string(index), `data-live="/ws/scroll"`)

	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err), "config output_dir must stay untouched")
}
