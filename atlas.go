package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"time"

	"maxrects2d/maxrects"
)

// spriteSource 保存一张精灵图在打包前收集到的信息。
type spriteSource struct {
	// Path 是图片文件的路径。
	Path string
	// Size 是参与打包的尺寸（裁切之后、不含间距）。
	Size maxrects.Size[int]
	// Source 是裁切后保留的区域在原图中的位置。
	Source image.Rectangle
	// Bounds 是原图的完整边界。
	Bounds image.Rectangle
}

// trimmed 判断精灵图是否被裁切过。
func (s *spriteSource) trimmed() bool {
	return s.Source != s.Bounds
}

// atlas 保存一轮打包的结果。placed 的 Item 是精灵图在 sources
// 切片中的下标。
type atlas struct {
	placed []maxrects.Placed[int, int]
	size   maxrects.Size[int]
	used   float64
}

// paddedSize 返回加上间距之后参与打包的尺寸。间距只加在右侧和
// 下侧，成为相邻精灵之间的空隙。
func paddedSize(src *spriteSource, padding int) maxrects.Size[int] {
	sz := src.Size
	if padding > 0 {
		sz.Width += padding
		sz.Height += padding
	}
	return sz
}

// packAtlases 把全部精灵图打包进一个或多个画布。每轮用一个新的
// 打包器做全局打包；放不下的剩余条目直接作为下一轮的输入，直到
// 全部放置完成。单张图片超过画布尺寸是硬错误。
func packAtlases(sources []spriteSource, opts Options) ([]*atlas, error) {
	h, err := maxrects.ResolveHeuristic(opts.Heuristic)
	if err != nil {
		return nil, err
	}
	order, err := resolveOrder(opts.Order)
	if err != nil {
		return nil, err
	}

	sizeOf := func(i int) maxrects.Size[int] {
		return paddedSize(&sources[i], opts.SpritePadding)
	}

	indices := make([]int, len(sources))
	for i := range indices {
		indices[i] = i
	}
	// 全局打包只在分数并列时依赖输入顺序。预先排序让并列时的
	// 选择在多次运行之间保持稳定，与文件系统返回的顺序无关。
	if order != nil {
		slices.SortStableFunc(indices, func(a, b int) int {
			if c := order(sizeOf(a), sizeOf(b)); c != 0 {
				return c
			}
			return cmp.Compare(sources[a].Path, sources[b].Path)
		})
	}

	var atlases []*atlas
	remaining := indices
	for len(remaining) > 0 {
		p := maxrects.New[int]()
		if err := p.SetHeuristic(h); err != nil {
			return nil, err
		}
		if err := p.RegisterFree(maxrects.Pt(0, 0), maxrects.Pt(opts.AtlasMaxWidth, opts.AtlasMaxHeight)); err != nil {
			return nil, err
		}

		placed, err := maxrects.PackGlobal(p, remaining, sizeOf)
		if err != nil {
			var fail *maxrects.PackFailure[int, int]
			if !errors.As(err, &fail) {
				return nil, err
			}
			if len(fail.Placed) == 0 {
				i := fail.Unplaced[0]
				return nil, fmt.Errorf("图片 %s 的尺寸 %v 超过画布 %dx%d",
					filepath.Base(sources[i].Path), sizeOf(i), opts.AtlasMaxWidth, opts.AtlasMaxHeight)
			}
			placed = fail.Placed
			remaining = fail.Unplaced
			logger.Debug("画布已满，继续下一张图集", "placed", len(placed), "remaining", len(remaining))
		} else {
			remaining = nil
		}
		atlases = append(atlases, newAtlas(placed, sources, opts))
	}
	return atlases, nil
}

// newAtlas 计算一轮打包结果的画布尺寸（包含全部精灵的最小边界，
// 可选向上取 2 的幂）和空间利用率。
func newAtlas(placed []maxrects.Placed[int, int], sources []spriteSource, opts Options) *atlas {
	a := &atlas{placed: placed}
	area := 0
	for _, pl := range placed {
		src := &sources[pl.Item]
		a.size.Width = max(a.size.Width, pl.Pos.X+src.Size.Width)
		a.size.Height = max(a.size.Height, pl.Pos.Y+src.Size.Height)
		area += src.Size.Area()
	}
	if opts.PowerOfTwo {
		a.size.Width = nextPowerOfTwo(a.size.Width)
		a.size.Height = nextPowerOfTwo(a.size.Height)
	}
	if total := a.size.Area(); total > 0 {
		a.used = float64(area) / float64(total)
	}
	return a
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// RegionInfo 描述 JSON 元数据中的一个矩形区域。
type RegionInfo struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// SizeInfo 描述 JSON 元数据中的一个尺寸。
type SizeInfo struct {
	W int `json:"w"`
	H int `json:"h"`
}

// SpriteInfo 存储单张精灵图在图集中的信息。
type SpriteInfo struct {
	Filename string `json:"filename"`
	// Region 是精灵在图集中占用的区域。
	Region RegionInfo `json:"region"`
	// SourceSize 是原图的完整尺寸。
	SourceSize SizeInfo `json:"sourceSize"`
	// SourceRect 是裁切保留的区域在原图中的位置，仅在 Trimmed 时有意义。
	SourceRect RegionInfo `json:"sourceRect"`
	Trimmed    bool       `json:"trimmed"`
}

// AtlasEntry 存储单张图集的信息。
type AtlasEntry struct {
	AtlasName  string                `json:"atlasName"`
	SpriteList map[string]SpriteInfo `json:"spriteList"`
	TotalSize  SizeInfo              `json:"totalSize"`
}

// MultiAtlasData 存储多张图集的元数据，是 atlases.json 的根结构。
type MultiAtlasData struct {
	Meta struct {
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
	Atlases []AtlasEntry `json:"atlases"`
}

func newMultiAtlasData() *MultiAtlasData {
	var data MultiAtlasData
	data.Meta.Version = VERSION
	data.Meta.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	return &data
}

// append 追加一张图集的元数据。
func (d *MultiAtlasData) append(name string, a *atlas, sprites map[string]SpriteInfo) {
	d.Atlases = append(d.Atlases, AtlasEntry{
		AtlasName:  name,
		SpriteList: sprites,
		TotalSize:  SizeInfo{W: a.size.Width, H: a.size.Height},
	})
}

// writeAtlasJSON 把图集元数据编码为 JSON 并写入文件。
func writeAtlasJSON(data *MultiAtlasData, path string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("生成 JSON 元数据失败: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("写入 JSON 元数据失败: %w", err)
	}
	return nil
}
