package maxrects

import "fmt"

// Scalar 约束打包器可用的标量类型：具有全序关系和加减运算的
// 整数或浮点类型。减法存在舍入误差的使用方式（例如经过大量
// 累计运算的浮点值）不在保证范围内，调用方应避免。
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Point 描述了二维空间中的一个位置。
type Point[S Scalar] struct {
	// X 是在水平 x 轴上的位置。
	X S `json:"x"`
	// Y 是在垂直 y 轴上的位置。
	Y S `json:"y"`
}

// Pt 初始化一个具有指定坐标的新点。
func Pt[S Scalar](x, y S) Point[S] {
	return Point[S]{X: x, Y: y}
}

// String 返回点的字符串表示形式。
func (p Point[S]) String() string {
	return fmt.Sprintf("[%v, %v]", p.X, p.Y)
}

// Size 描述了二维空间中实体的尺寸。
type Size[S Scalar] struct {
	// Width 是在水平 x 轴上的尺寸。
	Width S `json:"width"`
	// Height 是在垂直 y 轴上的尺寸。
	Height S `json:"height"`
}

// NewSize 创建具有指定尺寸的新尺寸对象。
func NewSize[S Scalar](width, height S) Size[S] {
	return Size[S]{Width: width, Height: height}
}

// String 返回尺寸的字符串表示形式。
func (sz Size[S]) String() string {
	return fmt.Sprintf("[%v, %v]", sz.Width, sz.Height)
}

// Area 返回总面积（宽度 * 高度）。
func (sz Size[S]) Area() S {
	return sz.Width * sz.Height
}

// Perimeter 返回所有边的总长度。
func (sz Size[S]) Perimeter() S {
	return (sz.Width + sz.Height) + (sz.Width + sz.Height)
}

// MaxSide 返回较大边的值。
func (sz Size[S]) MaxSide() S {
	return max(sz.Width, sz.Height)
}

// MinSide 返回较小边的值。
func (sz Size[S]) MinSide() S {
	return min(sz.Width, sz.Height)
}

// CanHold 判断接收者在两个轴上都不小于 other，即 other 可以被
// 放入接收者所描述的区域。
func (sz Size[S]) CanHold(other Size[S]) bool {
	return sz.Width >= other.Width && sz.Height >= other.Height
}

// Rect 描述了二维空间中的一个轴对齐矩形，由最小角和最大角定义。
// 区间是半开的：等于 Min 的点在矩形内，等于 Max 的点不在。
type Rect[S Scalar] struct {
	// Min 是矩形的最小角（含）。
	Min Point[S] `json:"min"`
	// Max 是矩形的最大角（不含）。
	Max Point[S] `json:"max"`
}

// NewRect 初始化一个使用指定最小角和最大角的新矩形。
func NewRect[S Scalar](min, max Point[S]) Rect[S] {
	return Rect[S]{Min: min, Max: max}
}

// String 返回描述矩形的字符串。
func (r Rect[S]) String() string {
	return fmt.Sprintf("[%v, %v)", r.Min, r.Max)
}

// Dx 返回矩形在 x 轴上的尺寸。
func (r Rect[S]) Dx() S {
	return r.Max.X - r.Min.X
}

// Dy 返回矩形在 y 轴上的尺寸。
func (r Rect[S]) Dy() S {
	return r.Max.Y - r.Min.Y
}

// Size 返回矩形的尺寸。
func (r Rect[S]) Size() Size[S] {
	return Size[S]{Width: r.Dx(), Height: r.Dy()}
}

// IsEmpty 测试矩形在任一轴上是否没有正的跨度。
func (r Rect[S]) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Intersects 测试接收者是否与指定的矩形有任何重叠。
// 相交是严格的：仅共享一条边不算重叠（与半开语义一致）。
func (r Rect[S]) Intersects(rect Rect[S]) bool {
	return r.Min.X < rect.Max.X &&
		r.Min.Y < rect.Max.Y &&
		r.Max.X > rect.Min.X &&
		r.Max.Y > rect.Min.Y
}

// ContainsRect 测试指定的矩形是否完全处于接收者的边界内。
// 包含是非严格的：相等的矩形互相包含。
func (r Rect[S]) ContainsRect(rect Rect[S]) bool {
	return r.Min.X <= rect.Min.X &&
		r.Min.Y <= rect.Min.Y &&
		r.Max.X >= rect.Max.X &&
		r.Max.Y >= rect.Max.Y
}
