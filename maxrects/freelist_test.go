package maxrects

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertNonRedundant 检查自由集合中不存在真子集关系。
func assertNonRedundant(t *testing.T, f *freeList[int]) {
	t.Helper()
	for i, a := range f.rects {
		for j, b := range f.rects {
			if i == j {
				continue
			}
			if a.ContainsRect(b) && !b.ContainsRect(a) {
				t.Fatalf("free rect %v is a proper subset of %v", b, a)
			}
		}
	}
}

func TestSubtract_MiddleSplitsFour(t *testing.T) {
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))

	f.subtract(NewRect(Pt(3, 3), Pt(6, 6)))

	// 四条边都没有贴住原矩形，应产生四个残余矩形。
	assert.ElementsMatch(t, []Rect[int]{
		NewRect(Pt(0, 0), Pt(3, 10)),  // left
		NewRect(Pt(0, 0), Pt(10, 3)),  // bottom
		NewRect(Pt(6, 0), Pt(10, 10)), // right
		NewRect(Pt(0, 6), Pt(10, 10)), // top
	}, f.rects)
}

func TestSubtract_CornerFlushSplitsTwo(t *testing.T) {
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))

	f.subtract(NewRect(Pt(0, 0), Pt(5, 5)))

	assert.ElementsMatch(t, []Rect[int]{
		NewRect(Pt(5, 0), Pt(10, 10)),
		NewRect(Pt(0, 5), Pt(10, 10)),
	}, f.rects)
}

func TestSubtract_ExactCoverRemoves(t *testing.T) {
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))

	f.subtract(NewRect(Pt(0, 0), Pt(10, 10)))

	assert.Empty(t, f.rects)
}

func TestSubtract_TouchingEdgeIsUntouched(t *testing.T) {
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))

	// 只共享一条边，不算相交，自由矩形保持原样。
	f.subtract(NewRect(Pt(10, 0), Pt(20, 10)))

	require.Len(t, f.rects, 1)
	assert.Equal(t, NewRect(Pt(0, 0), Pt(10, 10)), f.rects[0])
}

func TestSubtract_OverlappingFreeRects(t *testing.T) {
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))
	f.add(NewRect(Pt(5, 0), Pt(15, 10)))

	occupied := NewRect(Pt(0, 0), Pt(10, 10))
	f.subtract(occupied)

	// 第一个矩形被完整覆盖，第二个只剩右侧残余。
	require.Len(t, f.rects, 1)
	assert.Equal(t, NewRect(Pt(10, 0), Pt(15, 10)), f.rects[0])
	for _, r := range f.rects {
		assert.False(t, r.Intersects(occupied))
	}
}

func TestPrune_RemovesSubsetsAndDuplicates(t *testing.T) {
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))
	f.add(NewRect(Pt(2, 2), Pt(4, 4)))
	f.add(NewRect(Pt(0, 0), Pt(10, 10)))
	f.prune()

	require.Len(t, f.rects, 1)
	assert.Equal(t, NewRect(Pt(0, 0), Pt(10, 10)), f.rects[0])
}

func TestSubtract_RandomizedInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(0x5EED))
	var f freeList[int]
	f.add(NewRect(Pt(0, 0), Pt(256, 256)))

	for i := 0; i < 200; i++ {
		x, y := r.Intn(250), r.Intn(250)
		w, h := 1+r.Intn(255-x), 1+r.Intn(255-y)
		occupied := NewRect(Pt(x, y), Pt(x+w, y+h))
		f.subtract(occupied)

		assertNonRedundant(t, &f)
		for _, free := range f.rects {
			if free.Intersects(occupied) {
				t.Fatalf("free rect %v intersects subtracted %v", free, occupied)
			}
		}
	}
}
