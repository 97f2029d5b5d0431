package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

const VERSION = "0.2.0"

// logger 是整个命令行工具共用的日志器，--verbose 时降到 debug 级别。
var logger = newLogger(os.Stderr, charmlog.InfoLevel)

func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// phase 记录一个阶段的开始时间，结束时按 debug 级别输出耗时。
type phase struct {
	name  string
	start time.Time
}

func startPhase(name string) *phase {
	return &phase{name: name, start: time.Now()}
}

func (p *phase) done() {
	logger.Debug(p.name, "elapsed", time.Since(p.start).Round(time.Microsecond))
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "maxpack",
		Short:        "maxpack 把精灵图打包成纹理图集",
		Long:         "maxpack 使用 MAXRECTS 最大自由矩形算法把一组 PNG 精灵图紧凑地排入一个或多个图集画布，输出图集图片和 JSON 元数据。",
		Version:      VERSION,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	root.AddCommand(newPackCmd())
	root.AddCommand(newUnpackCmd())
	return root
}

func newPackCmd() *cobra.Command {
	opts := defaultOptions()
	var configPath string

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "把输入目录中的 PNG 打包成图集",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				// 配置文件覆盖默认值，再由显式给出的命令行参数覆盖配置文件。
				opts = defaultOptions()
				if err := loadConfig(configPath, &opts); err != nil {
					return err
				}
				applyFlagOverrides(&opts, cmd.Flags())
			}
			return runPack(opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.InputDir, "input", "i", opts.InputDir, "输入目录")
	fl.StringVarP(&opts.OutputDir, "output", "o", opts.OutputDir, "输出目录")
	fl.IntVar(&opts.AtlasMaxWidth, "width", opts.AtlasMaxWidth, "画布最大宽度")
	fl.IntVar(&opts.AtlasMaxHeight, "height", opts.AtlasMaxHeight, "画布最大高度")
	fl.IntVar(&opts.SpritePadding, "padding", opts.SpritePadding, "精灵之间预留的间距")
	fl.BoolVar(&opts.TrimTransparent, "trim", opts.TrimTransparent, "裁切完全透明的边缘")
	fl.UintVar(&opts.AlphaThreshold, "threshold", opts.AlphaThreshold, "透明度阈值(0-255)")
	fl.BoolVar(&opts.SortFiles, "sort", opts.SortFiles, "按文件名自然排序")
	fl.StringVar(&opts.Order, "order", opts.Order, "打包前的尺寸排序方式 (area, perimeter, maxside, minside, diff, ratio, none)")
	fl.StringVar(&opts.Heuristic, "heuristic", opts.Heuristic, "打分启发式 (BestShortSideFit, BestLongSideFit, BestAreaFit)")
	fl.BoolVar(&opts.PowerOfTwo, "pow-of-two", opts.PowerOfTwo, "图集尺寸向上取 2 的幂")
	fl.StringVarP(&configPath, "config", "c", "", "TOML 配置文件")
	return cmd
}

// runPack 执行完整的打包流水线：读取精灵图、打包、生成图集图片
// 和 JSON 元数据。
func runPack(opts Options) error {
	total := startPhase("total")
	defer total.done()

	scan := startPhase("read sprites")
	sources, err := findSprites(opts)
	if err != nil {
		return err
	}
	scan.done()
	logger.Info("找到精灵图", "count", len(sources), "dir", opts.InputDir)

	packPhase := startPhase("pack")
	atlases, err := packAtlases(sources, opts)
	if err != nil {
		return err
	}
	packPhase.done()

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	compose := startPhase("compose atlases")
	data := newMultiAtlasData()
	for i, a := range atlases {
		name := "atlas.png"
		if len(atlases) > 1 {
			name = fmt.Sprintf("atlas_%d.png", i)
		}
		img, mapping, err := composeAtlas(a, sources)
		if err != nil {
			return fmt.Errorf("生成图集 %s 失败: %w", name, err)
		}
		outPath := filepath.Join(opts.OutputDir, name)
		if err := imaging.Save(img, outPath); err != nil {
			return fmt.Errorf("保存图集 %s 失败: %w", outPath, err)
		}
		data.append(name, a, mapping)
		logger.Info("图集已生成",
			"file", outPath,
			"size", fmt.Sprintf("%dx%d", a.size.Width, a.size.Height),
			"sprites", len(a.placed),
			"used", fmt.Sprintf("%.1f%%", a.used*100))
	}
	compose.done()

	jsonPath := filepath.Join(opts.OutputDir, "atlases.json")
	if err := writeAtlasJSON(data, jsonPath); err != nil {
		return err
	}
	logger.Info("图集元数据已生成", "file", jsonPath)
	return nil
}
