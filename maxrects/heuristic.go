package maxrects

import "fmt"

// Heuristic 指定为候选自由矩形打分的方式。所有打分都是越小越好；
// 分数并列时保留扫描中先遇到的候选。这只是一个任意且每次调用内
// 稳定的选择，不构成次级启发式。
type Heuristic uint8

const (
	// BestShortSideFit 取放置后两轴剩余量中较小者作为分数（BSSF）。
	// 剩余的短边越紧，浪费的相邻空间越少。
	BestShortSideFit Heuristic = iota
	// BestLongSideFit 取放置后两轴剩余量中较大者作为分数（BLSF）。
	BestLongSideFit
	// BestAreaFit 取放置后剩余的面积作为分数（BAF）。
	BestAreaFit
)

// String 返回启发式的名称。
func (h Heuristic) String() string {
	switch h {
	case BestShortSideFit:
		return "BestShortSideFit"
	case BestLongSideFit:
		return "BestLongSideFit"
	case BestAreaFit:
		return "BestAreaFit"
	}
	return fmt.Sprintf("Heuristic(%d)", uint8(h))
}

// ResolveHeuristic 将启发式名称解析为 Heuristic 值。
// 名称无效时返回错误。
func ResolveHeuristic(name string) (Heuristic, error) {
	switch name {
	case "BestShortSideFit":
		return BestShortSideFit, nil
	case "BestLongSideFit":
		return BestLongSideFit, nil
	case "BestAreaFit":
		return BestAreaFit, nil
	}
	return 0, fmt.Errorf("maxrects: unknown heuristic %q", name)
}

// scoreFunc 对能够完整容纳 size 的自由矩形打分。
// ok 为 false 表示 free 在至少一个轴上放不下 size，没有分数。
type scoreFunc[S Scalar] func(free, size Size[S]) (score S, ok bool)

func scoreBestShort[S Scalar](free, size Size[S]) (S, bool) {
	if !free.CanHold(size) {
		var zero S
		return zero, false
	}
	return min(free.Width-size.Width, free.Height-size.Height), true
}

func scoreBestLong[S Scalar](free, size Size[S]) (S, bool) {
	if !free.CanHold(size) {
		var zero S
		return zero, false
	}
	return max(free.Width-size.Width, free.Height-size.Height), true
}

func scoreBestArea[S Scalar](free, size Size[S]) (S, bool) {
	if !free.CanHold(size) {
		var zero S
		return zero, false
	}
	return free.Area() - size.Area(), true
}

// scorer 返回启发式对应的打分函数。未知值回退到 BSSF。
func scorer[S Scalar](h Heuristic) scoreFunc[S] {
	switch h {
	case BestLongSideFit:
		return scoreBestLong[S]
	case BestAreaFit:
		return scoreBestArea[S]
	default:
		return scoreBestShort[S]
	}
}
