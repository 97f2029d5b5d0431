package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"

	"maxrects2d/maxrects"
)

// findSprites 收集输入目录中的全部 PNG 精灵图。
func findSprites(opts Options) ([]spriteSource, error) {
	if _, err := os.Stat(opts.InputDir); err != nil {
		return nil, fmt.Errorf("输入目录 %s 不可用: %w", opts.InputDir, err)
	}
	paths, err := filepath.Glob(filepath.Join(opts.InputDir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("输入目录 %s 中没有找到任何 PNG 图片", opts.InputDir)
	}
	// 按文件名自然排序，让 sprite_2.png 排在 sprite_10.png 前面。
	if opts.SortFiles {
		sort.Sort(natural.StringSlice(paths))
	}
	return loadSprites(paths, opts)
}

// loadSprites 并行解码每张图片，收集参与打包的尺寸信息。
// 解码是流水线中最重的一步，按 CPU 核心数并行。
func loadSprites(paths []string, opts Options) ([]spriteSource, error) {
	sources := make([]spriteSource, len(paths))
	errChan := make(chan error, len(paths))
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			src, err := loadSprite(path, opts)
			if err != nil {
				errChan <- err
				return
			}
			sources[i] = src
		}(i, path)
	}
	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// loadSprite 读取单张图片的尺寸信息。开启裁切时需要完整解码以
// 分析透明区域，否则只解码图片头部。
func loadSprite(path string, opts Options) (spriteSource, error) {
	if opts.TrimTransparent {
		img, err := imaging.Open(path)
		if err != nil {
			return spriteSource{}, fmt.Errorf("无法解码图片 %s: %w", path, err)
		}
		bounds := img.Bounds()
		trim := imageBBox(img, uint8(opts.AlphaThreshold))
		return spriteSource{
			Path:   path,
			Size:   maxrects.NewSize(trim.Dx(), trim.Dy()),
			Source: trim,
			Bounds: bounds,
		}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return spriteSource{}, err
	}
	cfg, _, err := image.DecodeConfig(file)
	file.Close()
	if err != nil {
		return spriteSource{}, fmt.Errorf("无法解码图片 %s: %w", path, err)
	}
	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	return spriteSource{
		Path:   path,
		Size:   maxrects.NewSize(cfg.Width, cfg.Height),
		Source: bounds,
		Bounds: bounds,
	}, nil
}

// imageBBox 检测图像中非透明内容的边界。完全透明的图像返回完整
// 边界，按未裁切处理。
func imageBBox(img image.Image, threshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return bounds
	}
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false
	grow := func(x, y int) {
		found = true
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	switch src := img.(type) {
	case *image.NRGBA:
		// 直接访问 alpha 通道，避免逐像素的接口调用。
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > threshold {
					grow(x, y)
				}
				i += 4
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				// RGBA() 返回 16 位分量，转换为 8 位再比较。
				if uint8(a>>8) > threshold {
					grow(x, y)
				}
			}
		}
	}
	if !found {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// composeAtlas 把一轮打包的全部精灵绘制到一张图集图像上，并生成
// 每个精灵的元数据。解码并行执行，绘制由互斥锁保护。
func composeAtlas(a *atlas, sources []spriteSource) (*image.NRGBA, map[string]SpriteInfo, error) {
	dst := imaging.New(a.size.Width, a.size.Height, color.NRGBA{})
	mapping := make(map[string]SpriteInfo, len(a.placed))
	errChan := make(chan error, len(a.placed))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())
	for _, pl := range a.placed {
		wg.Add(1)
		sem <- struct{}{}
		go func(pl maxrects.Placed[int, int]) {
			defer wg.Done()
			defer func() { <-sem }()
			src := &sources[pl.Item]
			img, err := imaging.Open(src.Path)
			if err != nil {
				errChan <- fmt.Errorf("%s: %w", src.Path, err)
				return
			}

			info := SpriteInfo{
				Filename:   filepath.Base(src.Path),
				Region:     RegionInfo{X: pl.Pos.X, Y: pl.Pos.Y, W: src.Size.Width, H: src.Size.Height},
				SourceSize: SizeInfo{W: src.Bounds.Dx(), H: src.Bounds.Dy()},
			}
			if src.trimmed() {
				info.Trimmed = true
				info.SourceRect = RegionInfo{
					X: src.Source.Min.X, Y: src.Source.Min.Y,
					W: src.Source.Dx(), H: src.Source.Dy(),
				}
			}

			dstRect := image.Rect(pl.Pos.X, pl.Pos.Y, pl.Pos.X+src.Size.Width, pl.Pos.Y+src.Size.Height)
			mu.Lock()
			draw.Draw(dst, dstRect, img, src.Source.Min, draw.Src)
			mapping[info.Filename] = info
			mu.Unlock()
		}(pl)
	}
	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, nil, err
		}
	}
	return dst, mapping, nil
}
