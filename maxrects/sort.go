package maxrects

import "cmp"

// SortFunc 定义尺寸比较函数的原型，供调用方在批量打包前对输入
// 排序使用。全局打包的结果只在分数并列时依赖输入顺序，预先排序
// 可以让并列时的选择在多次运行之间保持稳定。
// 返回值:
//
//	-1: a 排在 b 前
//	 0: a 与 b 等价
//	 1: a 排在 b 后
type SortFunc[S Scalar] func(a, b Size[S]) int

// SortArea 按矩形面积降序排序(从大到小)。
func SortArea[S Scalar](a, b Size[S]) int {
	return cmp.Compare(b.Area(), a.Area())
}

// SortPerimeter 按矩形周长降序排序(从大到小)。
func SortPerimeter[S Scalar](a, b Size[S]) int {
	return cmp.Compare(b.Perimeter(), a.Perimeter())
}

// SortDiff 按矩形宽高之差降序排序(从大到小)。
func SortDiff[S Scalar](a, b Size[S]) int {
	return cmp.Compare(b.MaxSide()-b.MinSide(), a.MaxSide()-a.MinSide())
}

// SortMinSide 按矩形最短边降序排序(从大到小)。
func SortMinSide[S Scalar](a, b Size[S]) int {
	return cmp.Compare(b.MinSide(), a.MinSide())
}

// SortMaxSide 按矩形最长边降序排序(从大到小)。
func SortMaxSide[S Scalar](a, b Size[S]) int {
	return cmp.Compare(b.MaxSide(), a.MaxSide())
}

// SortRatio 按矩形宽高比降序排序(从大到小)。
func SortRatio[S Scalar](a, b Size[S]) int {
	return cmp.Compare(float64(b.Width)/float64(b.Height), float64(a.Width)/float64(a.Height))
}
