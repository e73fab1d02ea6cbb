package stream

import (
	"cmp"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/durduff/pkg/models"
)

func TestSliceIterator(t *testing.T) {
	it := FromSlice([]int{1, 2, 3})
	assert.Equal(t, 3, it.Remaining())

	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, it.Remaining())

	assert.Equal(t, []int{2, 3}, Collect[int](it))

	_, ok = it.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, it.Remaining())
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count[int](FromSlice[int](nil)))
	assert.Equal(t, 4, Count[string](FromSlice([]string{"a", "b", "c", "d"})))
}

func TestRemainingWithoutHint(t *testing.T) {
	assert.Equal(t, 0, Remaining(struct{}{}))
}

// ============== OkIter ==============

func TestOkIter_ForwardsValues(t *testing.T) {
	src := FromSlice([]Result[string]{Ok("a"), Ok("b")})
	ok := NewOkIter[string](src)

	assert.Equal(t, 2, ok.Remaining())
	assert.Equal(t, []string{"a", "b"}, Collect[string](ok))
	assert.NoError(t, ok.Err())
}

func TestOkIter_LatchesFirstError(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	src := FromSlice([]Result[string]{Ok("a"), Fail[string](first), Ok("b"), Fail[string](second), Ok("c")})
	ok := NewOkIter[string](src)

	v, more := ok.Next()
	require.True(t, more)
	assert.Equal(t, "a", v)
	assert.NoError(t, ok.Err())

	_, more = ok.Next()
	assert.False(t, more)
	assert.ErrorIs(t, ok.Err(), first)

	// The sequence stays terminated and the slot is never overwritten
	for i := 0; i < 3; i++ {
		_, more = ok.Next()
		assert.False(t, more)
	}
	assert.ErrorIs(t, ok.Err(), first)
	assert.Equal(t, 0, ok.Remaining())
	assert.Equal(t, 3, src.Remaining(), "source must not be drained past the error")
}

func TestIgnoreErrors(t *testing.T) {
	src := FromSlice([]Result[int]{Ok(1), Fail[int](errors.New("x")), Ok(2)})
	assert.Equal(t, []int{1, 2}, Collect[int](IgnoreErrors[int](src)))
}

// ============== Merge ==============

func TestMerge_Basic(t *testing.T) {
	left := FromSlice([]int{1, 3, 5, 7})
	right := FromSlice([]int{2, 3, 6, 7, 8})

	got := Collect[Tagged[int]](Merge[int](left, right, cmp.Compare[int]))

	want := []Tagged[int]{
		{models.OriginLeft, 1},
		{models.OriginRight, 2},
		{models.OriginBoth, 3},
		{models.OriginLeft, 5},
		{models.OriginRight, 6},
		{models.OriginBoth, 7},
		{models.OriginRight, 8},
	}
	assert.Equal(t, want, got)
}

func TestMerge_EmptySides(t *testing.T) {
	t.Run("BothEmpty", func(t *testing.T) {
		m := Merge[int](FromSlice[int](nil), FromSlice[int](nil), cmp.Compare[int])
		_, ok := m.Next()
		assert.False(t, ok)
		_, ok = m.Next()
		assert.False(t, ok)
	})

	t.Run("LeftOnly", func(t *testing.T) {
		m := Merge[int](FromSlice([]int{1, 2}), FromSlice[int](nil), cmp.Compare[int])
		got := Collect[Tagged[int]](m)
		assert.Equal(t, []Tagged[int]{{models.OriginLeft, 1}, {models.OriginLeft, 2}}, got)
	})

	t.Run("RightOnly", func(t *testing.T) {
		m := Merge[int](FromSlice[int](nil), FromSlice([]int{4}), cmp.Compare[int])
		got := Collect[Tagged[int]](m)
		assert.Equal(t, []Tagged[int]{{models.OriginRight, 4}}, got)
	})
}

func TestMerge_Remaining(t *testing.T) {
	m := Merge[int](FromSlice([]int{1, 2, 3}), FromSlice([]int{2}), cmp.Compare[int])
	assert.Equal(t, 3, m.Remaining())

	_, _ = m.Next() // left 1, right 2 stays peeked
	assert.Equal(t, 2, m.Remaining())
}

// sortedSet returns n distinct sorted values from [0, limit)
func sortedSet(r *rand.Rand, n, limit int) []int {
	seen := map[int]bool{}
	var out []int
	for len(out) < n {
		v := r.Intn(limit)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

func TestMerge_SortedUnionProperty(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		a := sortedSet(r, r.Intn(30), 60)
		b := sortedSet(r, r.Intn(30), 60)

		inA := map[int]bool{}
		for _, v := range a {
			inA[v] = true
		}
		inB := map[int]bool{}
		for _, v := range b {
			inB[v] = true
		}

		got := Collect[Tagged[int]](Merge[int](FromSlice(a), FromSlice(b), cmp.Compare[int]))

		union := append(slices.Clone(a), b...)
		slices.Sort(union)
		union = slices.Compact(union)

		require.Len(t, got, len(union), "round %d", round)
		for i, tg := range got {
			assert.Equal(t, union[i], tg.Item)
			switch {
			case inA[tg.Item] && inB[tg.Item]:
				assert.Equal(t, models.OriginBoth, tg.Origin)
			case inA[tg.Item]:
				assert.Equal(t, models.OriginLeft, tg.Origin)
			default:
				assert.Equal(t, models.OriginRight, tg.Origin)
			}
		}
	}
}

func TestMerge_OverOkIter(t *testing.T) {
	boom := errors.New("boom")
	left := NewOkIter[string](FromSlice([]Result[string]{Ok("a"), Ok("c"), Fail[string](boom), Ok("d")}))
	right := NewOkIter[string](FromSlice([]Result[string]{Ok("b"), Ok("d")}))

	got := Collect[Tagged[string]](Merge[string](left, right, cmp.Compare[string]))

	assert.Equal(t, []Tagged[string]{
		{models.OriginLeft, "a"},
		{models.OriginRight, "b"},
		{models.OriginLeft, "c"},
		{models.OriginRight, "d"},
	}, got)
	assert.ErrorIs(t, left.Err(), boom)
	assert.NoError(t, right.Err())
}
