package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.toml")
	content := `
input = "sprites"
width = 512
height = 256
trim = false
order = "maxside"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	opts := defaultOptions()
	require.NoError(t, loadConfig(path, &opts))

	assert.Equal(t, "sprites", opts.InputDir)
	assert.Equal(t, 512, opts.AtlasMaxWidth)
	assert.Equal(t, 256, opts.AtlasMaxHeight)
	assert.False(t, opts.TrimTransparent)
	assert.Equal(t, "maxside", opts.Order)
	// 未出现在文件中的字段保持默认值。
	assert.Equal(t, "output", opts.OutputDir)
	assert.Equal(t, "BestShortSideFit", opts.Heuristic)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	opts := defaultOptions()
	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "nope.toml"), &opts))
}

func testFlagSet() *pflag.FlagSet {
	fl := pflag.NewFlagSet("pack", pflag.ContinueOnError)
	def := defaultOptions()
	fl.String("input", def.InputDir, "")
	fl.String("output", def.OutputDir, "")
	fl.Int("width", def.AtlasMaxWidth, "")
	fl.Int("height", def.AtlasMaxHeight, "")
	fl.Int("padding", def.SpritePadding, "")
	fl.Bool("trim", def.TrimTransparent, "")
	fl.Uint("threshold", def.AlphaThreshold, "")
	fl.Bool("sort", def.SortFiles, "")
	fl.String("order", def.Order, "")
	fl.String("heuristic", def.Heuristic, "")
	fl.Bool("pow-of-two", def.PowerOfTwo, "")
	return fl
}

func TestApplyFlagOverrides(t *testing.T) {
	// 配置文件给出的值只被显式出现的命令行参数覆盖。
	opts := defaultOptions()
	opts.AtlasMaxWidth = 512
	opts.Order = "maxside"

	fl := testFlagSet()
	require.NoError(t, fl.Set("width", "1024"))
	require.NoError(t, fl.Set("padding", "2"))

	applyFlagOverrides(&opts, fl)

	assert.Equal(t, 1024, opts.AtlasMaxWidth)
	assert.Equal(t, 2, opts.SpritePadding)
	assert.Equal(t, "maxside", opts.Order)
}

func TestResolveOrder(t *testing.T) {
	for _, name := range []string{"area", "perimeter", "maxside", "minside", "diff", "ratio"} {
		fn, err := resolveOrder(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn, name)
	}

	fn, err := resolveOrder("none")
	require.NoError(t, err)
	assert.Nil(t, fn)

	_, err = resolveOrder("biggest")
	assert.Error(t, err)
}
