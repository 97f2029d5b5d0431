package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"maxrects2d/maxrects"
)

// DefaultSize 定义图集画布的默认最大宽度/高度值，
// 基于现代 GPU 的最大纹理尺寸。
const DefaultSize = 4096

// Options 汇总 pack 命令的全部配置项。
// 取值优先级：内置默认值 < TOML 配置文件 < 显式给出的命令行参数。
type Options struct {
	InputDir        string `toml:"input"`       // 输入目录
	OutputDir       string `toml:"output"`      // 输出目录
	AtlasMaxWidth   int    `toml:"width"`       // 画布最大宽度
	AtlasMaxHeight  int    `toml:"height"`      // 画布最大高度
	SpritePadding   int    `toml:"padding"`     // 精灵之间预留的间距
	TrimTransparent bool   `toml:"trim"`        // 是否裁切透明边缘
	AlphaThreshold  uint   `toml:"threshold"`   // 透明度阈值
	SortFiles       bool   `toml:"sort"`        // 是否按文件名自然排序
	Order           string `toml:"order"`       // 打包前的尺寸排序方式
	Heuristic       string `toml:"heuristic"`   // 打分启发式
	PowerOfTwo      bool   `toml:"pow_of_two"`  // 图集尺寸是否向上取 2 的幂
}

// defaultOptions 返回内置默认配置。
func defaultOptions() Options {
	return Options{
		InputDir:        "input",
		OutputDir:       "output",
		AtlasMaxWidth:   DefaultSize,
		AtlasMaxHeight:  DefaultSize,
		TrimTransparent: true,
		SortFiles:       true,
		Order:           "area",
		Heuristic:       "BestShortSideFit",
	}
}

// loadConfig 读取 TOML 配置文件并覆盖 opts 中出现的字段。
func loadConfig(path string, opts *Options) error {
	if _, err := toml.DecodeFile(path, opts); err != nil {
		return fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	return nil
}

// applyFlagOverrides 把命令行上显式给出的参数覆盖到 opts 上，
// 用于在加载配置文件之后恢复命令行的优先级。
func applyFlagOverrides(opts *Options, flags *pflag.FlagSet) {
	if flags.Changed("input") {
		opts.InputDir, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		opts.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("width") {
		opts.AtlasMaxWidth, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		opts.AtlasMaxHeight, _ = flags.GetInt("height")
	}
	if flags.Changed("padding") {
		opts.SpritePadding, _ = flags.GetInt("padding")
	}
	if flags.Changed("trim") {
		opts.TrimTransparent, _ = flags.GetBool("trim")
	}
	if flags.Changed("threshold") {
		opts.AlphaThreshold, _ = flags.GetUint("threshold")
	}
	if flags.Changed("sort") {
		opts.SortFiles, _ = flags.GetBool("sort")
	}
	if flags.Changed("order") {
		opts.Order, _ = flags.GetString("order")
	}
	if flags.Changed("heuristic") {
		opts.Heuristic, _ = flags.GetString("heuristic")
	}
	if flags.Changed("pow-of-two") {
		opts.PowerOfTwo, _ = flags.GetBool("pow-of-two")
	}
}

// resolveOrder 把排序方式名称解析为比较函数。
// "none" 表示保持输入顺序，返回 nil。
func resolveOrder(name string) (maxrects.SortFunc[int], error) {
	switch name {
	case "area":
		return maxrects.SortArea[int], nil
	case "perimeter":
		return maxrects.SortPerimeter[int], nil
	case "maxside":
		return maxrects.SortMaxSide[int], nil
	case "minside":
		return maxrects.SortMinSide[int], nil
	case "diff":
		return maxrects.SortDiff[int], nil
	case "ratio":
		return maxrects.SortRatio[int], nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("未知的排序方式 %q (可选: area, perimeter, maxside, minside, diff, ratio, none)", name)
}
