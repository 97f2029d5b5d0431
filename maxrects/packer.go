// Package maxrects 实现 MAXRECTS 系列的二维矩形打包算法，
// 基于 Jukka Jylänki 的 "A Thousand Ways to Pack the Bin"。
//
// 打包器把画布中尚未占用的区域维护为一组最大自由矩形，每次放置
// 都选取启发式打分最优的位置，因此只是该 NP 难问题的一个实用的
// 贪心近似，不保证最优结果，也不支持矩形旋转。
package maxrects

import (
	"errors"
	"fmt"
)

// ErrInvalidRegion 表示注册的自由区域边界翻转（min 在某个轴上
// 大于 max）。这是调用方的程序缺陷，打包器不做任何修正。
var ErrInvalidRegion = errors.New("maxrects: invalid free region")

// Packer 包含一个二维矩形打包器的全部状态。打包器从空的自由
// 集合开始，通过 RegisterFree 注册可用区域，之后每次成功的放置
// 都会就地更新自由集合。
//
// Packer 不做任何内部同步，所有操作都应由同一个 goroutine 执行。
// 零值等价于 New 的返回值。
type Packer[S Scalar] struct {
	free      freeList[S]
	heuristic Heuristic
}

// New 创建一个自由区域为空的打包器，默认使用 BestShortSideFit 打分。
func New[S Scalar]() *Packer[S] {
	return &Packer[S]{}
}

// SetHeuristic 设置候选自由矩形的打分方式。
// 传入未定义的值时返回错误，原有设置保持不变。
func (p *Packer[S]) SetHeuristic(h Heuristic) error {
	switch h {
	case BestShortSideFit, BestLongSideFit, BestAreaFit:
		p.heuristic = h
		return nil
	}
	return fmt.Errorf("maxrects: invalid heuristic %d", uint8(h))
}

// RegisterFree 注册一块自由区域，供后续打包使用。区间是半开的：
// min 在区域内，max 不在。新区域不要求与已有自由区域不相交，
// 也可以是先前打包过的区域，但那样就不再保证后续打包结果最优。
// 单纯的注册不触发任何剪除；重叠产生的冗余由后续放置时的包含
// 剪除逐步吸收。
//
// 当 min 在任一轴上大于 max 时返回 ErrInvalidRegion，自由集合
// 保持不变。
func (p *Packer[S]) RegisterFree(min, max Point[S]) error {
	if min.X > max.X || min.Y > max.Y {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidRegion, min, max)
	}
	p.free.add(Rect[S]{Min: min, Max: max})
	return nil
}

// Pack 为尺寸 width×height 的矩形寻找放置位置，保证它不与任何
// 先前成功放置的矩形相交。成功时返回放置位置（放置矩形的最小角），
// 占用区域为 [position, position+size)。没有任何自由矩形能容纳该
// 尺寸时返回 false，打包器状态不发生变化。
//
// 负的宽度或高度属于调用方错误，打包器不做符号检查。
func (p *Packer[S]) Pack(width, height S) (Point[S], bool) {
	size := Size[S]{Width: width, Height: height}
	pos, _, ok := p.free.bestFit(size, scorer[S](p.heuristic))
	if !ok {
		return Point[S]{}, false
	}
	p.free.subtract(Rect[S]{
		Min: pos,
		Max: Point[S]{X: pos.X + width, Y: pos.Y + height},
	})
	return pos, true
}

// Placed 记录批量打包中一个已放置的条目及其位置。
type Placed[T any, S Scalar] struct {
	// Item 是调用方提供的原始条目。
	Item T
	// Pos 是条目占用矩形的最小角。
	Pos Point[S]
}

// PackFailure 表示批量打包只完成了一部分。Placed 是已放置的条目
// 及其位置，Unplaced 是没有任何可行放置的剩余条目。两者合计是
// 输入的一个任意排列，不保持输入顺序。
//
// PackFailure 是预期中的、依赖于数据的结果，与 ErrInvalidRegion
// 所代表的调用方缺陷无关；调用方可以用 Restore 取回全部条目后
// 在更大的画布上重试。
type PackFailure[T any, S Scalar] struct {
	Placed   []Placed[T, S]
	Unplaced []T
}

// Error 实现 error 接口。
func (f *PackFailure[T, S]) Error() string {
	return fmt.Sprintf("maxrects: no viable placement for %d of %d items",
		len(f.Unplaced), len(f.Unplaced)+len(f.Placed))
}

// Restore 归还批量打包收到的全部原始条目（已放置与未放置），
// 顺序任意。
func (f *PackFailure[T, S]) Restore() []T {
	items := make([]T, 0, len(f.Unplaced)+len(f.Placed))
	items = append(items, f.Unplaced...)
	for _, p := range f.Placed {
		items = append(items, p.Item)
	}
	return items
}

// PackGlobal 对 items 做全局贪心打包：通过 sizeOf 得到每个条目的
// 尺寸，每一轮在所有剩余条目中求出各自的最优放置，然后只提交
// 全局打分最优的那一对（条目, 位置），再重新评估剩下的条目。
// 没有任何剩余条目能放下时结束。
//
// 全部条目放置成功时返回条目与位置的配对，它是输入的一个任意
// 排列。只要有条目放不下，返回的 error 是 *PackFailure[T, S]，
// 其中携带已放置的部分和未放置的剩余条目；已提交的放置不回滚。
//
// 与逐个调用 Pack 相比，全局打包每轮的开销是
// O(条目数 × 自由矩形数)，但通常能得到更紧凑的结果，因为它不会
// 过早提交一个平庸的放置而挡住后面更合适的条目。
func PackGlobal[T any, S Scalar](p *Packer[S], items []T, sizeOf func(T) Size[S]) ([]Placed[T, S], error) {
	remaining := make([]T, len(items))
	copy(remaining, items)
	packed := make([]Placed[T, S], 0, len(items))
	score := scorer[S](p.heuristic)

	for len(remaining) > 0 {
		var (
			bestIndex = -1
			bestPos   Point[S]
			bestSize  Size[S]
			bestScore S
		)
		for i, item := range remaining {
			size := sizeOf(item)
			pos, s, ok := p.free.bestFit(size, score)
			if !ok {
				continue
			}
			if bestIndex < 0 || s < bestScore {
				bestIndex = i
				bestPos = pos
				bestSize = size
				bestScore = s
			}
		}
		if bestIndex < 0 {
			return nil, &PackFailure[T, S]{Placed: packed, Unplaced: remaining}
		}

		item := remaining[bestIndex]
		last := len(remaining) - 1
		remaining[bestIndex] = remaining[last]
		remaining = remaining[:last]

		p.free.subtract(Rect[S]{
			Min: bestPos,
			Max: Point[S]{X: bestPos.X + bestSize.Width, Y: bestPos.Y + bestSize.Height},
		})
		packed = append(packed, Placed[T, S]{Item: item, Pos: bestPos})
	}
	return packed, nil
}
