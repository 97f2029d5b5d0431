package main

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAtlasJSON(t *testing.T, path string) MultiAtlasData {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var data MultiAtlasData
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}

func TestPackUnpackRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	inDir := filepath.Join(tmp, "in")
	outDir := filepath.Join(tmp, "out")
	require.NoError(t, os.MkdirAll(inDir, 0o755))

	// b.png 带透明边缘，打包时会被裁切，解包时应当还原。
	require.NoError(t, imaging.Save(opaqueImage(8, 8), filepath.Join(inDir, "a.png")))
	require.NoError(t, imaging.Save(borderedImage(8, 8, image.Rect(2, 2, 6, 6)), filepath.Join(inDir, "b.png")))
	require.NoError(t, imaging.Save(opaqueImage(16, 4), filepath.Join(inDir, "c.png")))

	opts := defaultOptions()
	opts.InputDir = inDir
	opts.OutputDir = outDir
	opts.AtlasMaxWidth = 64
	opts.AtlasMaxHeight = 64
	require.NoError(t, runPack(opts))

	jsonPath := filepath.Join(outDir, "atlases.json")
	data := readAtlasJSON(t, jsonPath)
	require.Len(t, data.Atlases, 1)
	entry := data.Atlases[0]
	assert.Equal(t, "atlas.png", entry.AtlasName)
	require.Len(t, entry.SpriteList, 3)

	atlasImg, err := imaging.Open(filepath.Join(outDir, entry.AtlasName))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(entry.TotalSize.W, entry.TotalSize.H), atlasImg.Bounds().Size())

	b := entry.SpriteList["b.png"]
	assert.True(t, b.Trimmed)
	assert.Equal(t, SizeInfo{W: 8, H: 8}, b.SourceSize)
	assert.Equal(t, 4, b.Region.W)
	assert.Equal(t, 4, b.Region.H)
	assert.Equal(t, RegionInfo{X: 2, Y: 2, W: 4, H: 4}, b.SourceRect)

	a := entry.SpriteList["a.png"]
	assert.False(t, a.Trimmed)
	assert.Equal(t, SizeInfo{W: 8, H: 8}, a.SourceSize)

	restoredDir := filepath.Join(tmp, "restored")
	require.NoError(t, runUnpack(jsonPath, restoredDir))

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		_, err := os.Stat(filepath.Join(restoredDir, name))
		assert.NoError(t, err, name)
	}

	// 裁切过的精灵解包后恢复原始尺寸，内容回到原来的位置。
	restored, err := imaging.Open(filepath.Join(restoredDir, "b.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 8), restored.Bounds().Size())
	_, _, _, alpha := restored.At(3, 3).RGBA()
	assert.NotZero(t, alpha)
	_, _, _, alpha = restored.At(0, 0).RGBA()
	assert.Zero(t, alpha)
}

func TestRunPack_MultiAtlasOutput(t *testing.T) {
	tmp := t.TempDir()
	inDir := filepath.Join(tmp, "in")
	outDir := filepath.Join(tmp, "out")
	require.NoError(t, os.MkdirAll(inDir, 0o755))

	for _, name := range []string{"s1.png", "s2.png", "s3.png"} {
		require.NoError(t, imaging.Save(opaqueImage(8, 8), filepath.Join(inDir, name)))
	}

	// 画布一次只装得下一张精灵，必须拆成三张图集。
	opts := defaultOptions()
	opts.InputDir = inDir
	opts.OutputDir = outDir
	opts.AtlasMaxWidth = 8
	opts.AtlasMaxHeight = 8
	require.NoError(t, runPack(opts))

	data := readAtlasJSON(t, filepath.Join(outDir, "atlases.json"))
	require.Len(t, data.Atlases, 3)
	for i, entry := range data.Atlases {
		assert.Len(t, entry.SpriteList, 1, "atlas %d", i)
		_, err := os.Stat(filepath.Join(outDir, entry.AtlasName))
		assert.NoError(t, err, entry.AtlasName)
	}
}

func TestRunPack_OversizedSprite(t *testing.T) {
	tmp := t.TempDir()
	inDir := filepath.Join(tmp, "in")
	require.NoError(t, os.MkdirAll(inDir, 0o755))
	require.NoError(t, imaging.Save(opaqueImage(32, 32), filepath.Join(inDir, "big.png")))

	opts := defaultOptions()
	opts.InputDir = inDir
	opts.OutputDir = filepath.Join(tmp, "out")
	opts.AtlasMaxWidth = 16
	opts.AtlasMaxHeight = 16
	assert.Error(t, runPack(opts))
}
