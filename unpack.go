package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

func newUnpackCmd() *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "unpack <atlases.json>",
		Short: "把图集还原成单独的精灵图",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(args[0], outputDir)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "unpacked", "输出目录")
	return cmd
}

// runUnpack 根据 JSON 元数据把图集中的每个精灵切出来，恢复裁切
// 掉的透明边缘，保存成单独的 PNG 文件。图集图片按元数据中的名称
// 在 JSON 文件所在目录中查找。
func runUnpack(jsonPath, outputDir string) error {
	total := startPhase("unpack")
	defer total.done()

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("读取图集元数据失败: %w", err)
	}
	var data MultiAtlasData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("解析图集元数据失败: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	atlasDir := filepath.Dir(jsonPath)
	count := 0
	for _, entry := range data.Atlases {
		atlasImg, err := imaging.Open(filepath.Join(atlasDir, entry.AtlasName))
		if err != nil {
			return fmt.Errorf("打开图集图片 %s 失败: %w", entry.AtlasName, err)
		}
		for name, sprite := range entry.SpriteList {
			region := image.Rect(sprite.Region.X, sprite.Region.Y,
				sprite.Region.X+sprite.Region.W, sprite.Region.Y+sprite.Region.H)
			out := imaging.Crop(atlasImg, region)
			if sprite.Trimmed {
				// 把裁切保留的内容放回原图中的位置，周围补透明。
				full := imaging.New(sprite.SourceSize.W, sprite.SourceSize.H, color.NRGBA{})
				out = imaging.Paste(full, out, image.Pt(sprite.SourceRect.X, sprite.SourceRect.Y))
			}
			outPath := filepath.Join(outputDir, name)
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("创建输出子目录失败: %w", err)
			}
			if err := imaging.Save(out, outPath); err != nil {
				return fmt.Errorf("保存精灵图 %s 失败: %w", outPath, err)
			}
			count++
		}
	}
	logger.Info("图集解包完成", "sprites", count, "dir", outputDir)
	return nil
}
