package maxrects

// freeList 维护当前未被占用的画布区域，元素没有顺序要求。
// 集合中的矩形允许相互重叠；但在每次 subtract 之后，不会存在
// 一个矩形是另一个矩形真子集的情况（被包含者会被剪除）。
type freeList[S Scalar] struct {
	rects []Rect[S]
}

// add 追加一个自由矩形。不做任何去重或合并。
func (f *freeList[S]) add(r Rect[S]) {
	f.rects = append(f.rects, r)
}

// bestFit 扫描全部自由矩形，对能容纳 size 的候选按 score 打分，
// 返回分数最小者的放置位置（候选矩形的最小角）。
// 分数并列时保留扫描中先遇到的候选。
func (f *freeList[S]) bestFit(size Size[S], score scoreFunc[S]) (Point[S], S, bool) {
	var (
		bestPos   Point[S]
		bestScore S
		found     bool
	)
	for _, free := range f.rects {
		s, ok := score(free.Size(), size)
		if !ok {
			continue
		}
		if !found || s < bestScore {
			bestPos = free.Min
			bestScore = s
			found = true
		}
	}
	return bestPos, bestScore, found
}

// subtract 把 occupied 从自由集合中剔除：每个与其相交的自由矩形
// 被最多四个残余矩形取代（maximal rectangles 切分），残余矩形只在
// occupied 对应的边没有贴住原矩形的边时产生。残余矩形在角上互相
// 重叠是切分方式的固有结果，由随后的包含剪除统一处理。
func (f *freeList[S]) subtract(occupied Rect[S]) {
	// derived 记录本轮追加到末尾的残余矩形数量。残余矩形由构造
	// 保证不与 occupied 相交，扫描时跳过它们，避免无谓的再检测。
	derived := 0
	for i := 0; i < len(f.rects)-derived; {
		free := f.rects[i]
		if !free.Intersects(occupied) {
			i++
			continue
		}

		// 左侧残余
		if occupied.Min.X > free.Min.X {
			f.add(Rect[S]{Min: free.Min, Max: Point[S]{X: occupied.Min.X, Y: free.Max.Y}})
			derived++
		}
		// 下侧残余
		if occupied.Min.Y > free.Min.Y {
			f.add(Rect[S]{Min: free.Min, Max: Point[S]{X: free.Max.X, Y: occupied.Min.Y}})
			derived++
		}
		// 右侧残余
		if occupied.Max.X < free.Max.X {
			f.add(Rect[S]{Min: Point[S]{X: occupied.Max.X, Y: free.Min.Y}, Max: free.Max})
			derived++
		}
		// 上侧残余
		if occupied.Max.Y < free.Max.Y {
			f.add(Rect[S]{Min: Point[S]{X: free.Min.X, Y: occupied.Max.Y}, Max: free.Max})
			derived++
		}

		// swap-with-last 删除当前矩形，不保持集合的遍历顺序。
		last := len(f.rects) - 1
		f.rects[i] = f.rects[last]
		f.rects = f.rects[:last]

		// 如果换到当前位置的是一个残余矩形，它不与 occupied 相交，
		// 直接跳过；否则停在原位，重新检查换过来的旧矩形。
		if derived > 0 {
			derived--
			i++
		}
	}

	f.prune()
}

// prune 对自由集合做一次穷举的两两比较，删除被其他矩形完全包含
// 的矩形。包含是非严格的：相等的矩形互为包含，任删其一。
// 此过程对当前自由矩形数量是 O(n²) 的，必须在每次 subtract 之后
// 执行，否则集合会随冗余重叠碎片无限增长。
func (f *freeList[S]) prune() {
	for i := 0; i < len(f.rects); i++ {
		for j := i + 1; j < len(f.rects); {
			a, b := f.rects[i], f.rects[j]
			if a.ContainsRect(b) {
				last := len(f.rects) - 1
				f.rects[j] = f.rects[last]
				f.rects = f.rects[:last]
			} else if b.ContainsRect(a) {
				last := len(f.rects) - 1
				f.rects[i] = f.rects[last]
				f.rects = f.rects[:last]
				j = i + 1
			} else {
				j++
			}
		}
	}
}
