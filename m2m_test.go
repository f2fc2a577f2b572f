package m2m_test

import (
	"context"
	"testing"

	"github.com/denismitr/m2m"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairOf(left int, right string) m2m.Pair[int, string] {
	return m2m.Pair[int, string]{Left: left, Right: right}
}

func TestM2M_New(t *testing.T) {
	t.Run("a new collection is empty", func(t *testing.T) {
		m := m2m.New[int, string]()

		assert.True(t, m.IsEmpty())
		assert.Equal(t, 0, m.Len())

		lefts, ok := m.Lefts()
		assert.False(t, ok)
		assert.Nil(t, lefts)

		rights, ok := m.Rights()
		assert.False(t, ok)
		assert.Nil(t, rights)
	})

	t.Run("the zero value is usable", func(t *testing.T) {
		var m m2m.M2M[int, string]

		assert.True(t, m.Insert(1, "a"))
		assert.Equal(t, 1, m.Len())
		assert.True(t, m.Contains(1, "a"))
	})
}

func TestM2M_From(t *testing.T) {
	t.Run("build and query both directions", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"), pairOf(2, "b"),
		})

		require.Equal(t, 4, m.Len())

		rights, ok := m.RightsOf(1)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, rights)

		lefts, ok := m.LeftsOf("a")
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, lefts)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "a"), pairOf(1, "b"),
		})

		assert.Equal(t, 2, m.Len())
		assert.True(t, m.Contains(1, "a"))
		assert.True(t, m.Contains(1, "b"))
	})

	t.Run("unsorted input comes out sorted", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(2, "b"), pairOf(1, "b"), pairOf(2, "a"), pairOf(1, "a"),
		})

		assert.Equal(t, []m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"), pairOf(2, "b"),
		}, m.ToPairs())
	})

	t.Run("empty and nil input", func(t *testing.T) {
		assert.True(t, m2m.From([]m2m.Pair[int, string]{}).IsEmpty())
		assert.True(t, m2m.From[int, string](nil).IsEmpty())
	})

	t.Run("construction is deterministic", func(t *testing.T) {
		pairs := []m2m.Pair[int, string]{
			pairOf(2, "b"), pairOf(1, "a"), pairOf(2, "b"), pairOf(1, "c"),
		}

		assert.Equal(t, m2m.From(pairs).ToPairs(), m2m.From(pairs).ToPairs())
	})

	t.Run("the input slice is not retained", func(t *testing.T) {
		input := []m2m.Pair[int, string]{pairOf(1, "a"), pairOf(2, "b")}
		m := m2m.From(input)

		input[0] = pairOf(99, "zz")

		assert.True(t, m.Contains(1, "a"))
		assert.False(t, m.Contains(99, "zz"))
	})
}

func TestM2M_Insert(t *testing.T) {
	t.Run("insert reports novelty", func(t *testing.T) {
		m := m2m.New[int, string]()

		assert.True(t, m.Insert(1, "a"))
		assert.True(t, m.Insert(1, "b"))
		assert.False(t, m.Insert(1, "a"))
		assert.Equal(t, 2, m.Len())
	})

	t.Run("iteration stays sorted as pairs arrive out of order", func(t *testing.T) {
		m := m2m.New[int, string]()
		m.Insert(2, "b")
		m.Insert(1, "b")
		m.Insert(2, "a")
		m.Insert(1, "a")
		m.Insert(1, "c")

		assert.Equal(t, []m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(1, "c"), pairOf(2, "a"), pairOf(2, "b"),
		}, m.ToPairs())
	})

	t.Run("insert after remove", func(t *testing.T) {
		m := m2m.New[int, string]()
		m.Insert(1, "a")

		_, ok := m.Remove(1)
		require.True(t, ok)

		assert.True(t, m.Insert(1, "a"))
		assert.Equal(t, 1, m.Len())
	})
}

func TestM2M_Remove(t *testing.T) {
	t.Run("remove returns rights in stored order", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "c"),
		})

		removed, ok := m.Remove(1)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, removed)

		assert.Equal(t, 1, m.Len())
		assert.False(t, m.ContainsLeft(1))
		assert.True(t, m.Contains(2, "c"))
	})

	t.Run("removing an absent left reports false", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})

		removed, ok := m.Remove(42)
		assert.False(t, ok)
		assert.Nil(t, removed)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("remove on an empty collection", func(t *testing.T) {
		m := m2m.New[int, string]()

		removed, ok := m.Remove(1)
		assert.False(t, ok)
		assert.Nil(t, removed)
	})
}

func TestM2M_RemoveRight(t *testing.T) {
	t.Run("remove returns lefts in stored order", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"),
		})

		removed, ok := m.RemoveRight("a")
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, removed)

		assert.Equal(t, 1, m.Len())
		assert.False(t, m.ContainsRight("a"))
	})

	t.Run("absent right reports false", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})

		removed, ok := m.RemoveRight("zz")
		assert.False(t, ok)
		assert.Nil(t, removed)
	})
}

func TestM2M_Contains(t *testing.T) {
	t.Run("pair left and right membership", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(2, "b"),
		})

		assert.True(t, m.Contains(1, "a"))
		assert.False(t, m.Contains(1, "b"))

		assert.True(t, m.ContainsLeft(2))
		assert.False(t, m.ContainsLeft(3))

		assert.True(t, m.ContainsRight("b"))
		assert.False(t, m.ContainsRight("c"))
	})
}

func TestM2M_RightsOfLeftsOf(t *testing.T) {
	t.Run("lookups come back in stored order", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "b"), pairOf(1, "a"), pairOf(2, "a"),
		})

		rights, ok := m.RightsOf(1)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, rights)

		lefts, ok := m.LeftsOf("a")
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, lefts)
	})

	t.Run("absent values report false", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})

		rights, ok := m.RightsOf(9)
		assert.False(t, ok)
		assert.Nil(t, rights)

		lefts, ok := m.LeftsOf("x")
		assert.False(t, ok)
		assert.Nil(t, lefts)
	})
}

func TestM2M_UpdateRights(t *testing.T) {
	t.Run("updates every right of the left value", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, int]{
			{Left: 1, Right: 11}, {Left: 1, Right: 111},
			{Left: 2, Right: 22}, {Left: 2, Right: 222},
		})

		found := m.UpdateRights(1, func(v *int) { *v *= 3 })
		require.True(t, found)

		rights, ok := m.Rights()
		require.True(t, ok)
		assert.Equal(t, []int{22, 33, 222, 333}, rights)
	})

	t.Run("absent left reports false", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, int]{{Left: 1, Right: 11}})

		assert.False(t, m.UpdateRights(5, func(v *int) { *v = 0 }))

		rights, ok := m.RightsOf(1)
		require.True(t, ok)
		assert.Equal(t, []int{11}, rights)
	})
}

func TestM2M_UpdateLefts(t *testing.T) {
	t.Run("updates every left of the right value", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"), pairOf(2, "b"),
		})

		found := m.UpdateLefts("a", func(v *int) { *v *= 3 })
		require.True(t, found)

		lefts, ok := m.Lefts()
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 3, 6}, lefts)
	})

	t.Run("absent right reports false", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})
		assert.False(t, m.UpdateLefts("zz", func(v *int) { *v = 0 }))
	})
}

func TestM2M_LeftsRights(t *testing.T) {
	t.Run("distinct values ascending", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(3, "a"), pairOf(1, "a"), pairOf(4, "b"), pairOf(2, "b"), pairOf(1, "a"),
		})

		lefts, ok := m.Lefts()
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 3, 4}, lefts)

		rights, ok := m.Rights()
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, rights)
	})
}

func TestM2M_RetainReject(t *testing.T) {
	t.Run("retain keeps only approved pairs", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"), pairOf(2, "b"),
		})

		m.Retain(func(left int, right string) bool { return left%2 == 0 })

		assert.Equal(t, []m2m.Pair[int, string]{
			pairOf(2, "a"), pairOf(2, "b"),
		}, m.ToPairs())
	})

	t.Run("reject drops matching pairs", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"), pairOf(2, "b"),
		})

		m.Reject(func(left int, right string) bool { return right == "a" })

		assert.Equal(t, []m2m.Pair[int, string]{
			pairOf(1, "b"), pairOf(2, "b"),
		}, m.ToPairs())
	})

	t.Run("reject mirrors retain", func(t *testing.T) {
		pairs := []m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(2, "b"), pairOf(3, "c"), pairOf(4, "d"),
		}
		pred := func(left int, right string) bool { return left > 2 }

		retained := m2m.From(pairs)
		retained.Retain(pred)

		rejected := m2m.From(pairs)
		rejected.Reject(func(left int, right string) bool { return !pred(left, right) })

		assert.Equal(t, retained.ToPairs(), rejected.ToPairs())
	})

	t.Run("retain everything and nothing", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a"), pairOf(2, "b")})

		m.Retain(func(int, string) bool { return true })
		assert.Equal(t, 2, m.Len())

		m.Retain(func(int, string) bool { return false })
		assert.True(t, m.IsEmpty())
	})

	t.Run("retain is idempotent", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(2, "b"), pairOf(3, "c"),
		})
		pred := func(left int, right string) bool { return left != 2 }

		m.Retain(pred)
		once := m.ToPairs()

		m.Retain(pred)
		assert.Equal(t, once, m.ToPairs())
	})
}

func TestM2M_Flip(t *testing.T) {
	t.Run("flip swaps both directions", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"), pairOf(2, "b"),
		})

		flipped := m.Flip()
		require.Equal(t, 4, flipped.Len())

		rights, ok := flipped.RightsOf("a")
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, rights)

		lefts, ok := flipped.LeftsOf(2)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, lefts)
	})

	t.Run("flipping twice restores the collection", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(2, "x"), pairOf(1, "y"), pairOf(1, "x"),
		})

		assert.Equal(t, m.ToPairs(), m.Flip().Flip().ToPairs())
	})

	t.Run("flip does not touch the original", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})
		f := m.Flip()
		f.Insert("b", 2)

		assert.Equal(t, 1, m.Len())
		assert.True(t, m.Contains(1, "a"))
	})
}

func TestM2M_Views(t *testing.T) {
	t.Run("as slice is a live view", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a"), pairOf(2, "b")})

		view := m.AsSlice()
		require.Len(t, view, 2)
		view[0].Right = "z"

		rights, ok := m.RightsOf(1)
		require.True(t, ok)
		assert.Equal(t, []string{"z"}, rights)
	})

	t.Run("to pairs is a snapshot", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})

		snapshot := m.ToPairs()
		snapshot[0].Right = "z"

		assert.True(t, m.Contains(1, "a"))
		assert.False(t, m.Contains(1, "z"))
	})

	t.Run("to map groups rights by left", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"),
		})

		assert.Equal(t, map[int][]string{
			1: {"a", "b"},
			2: {"a"},
		}, m.ToMap())
	})

	t.Run("from map round trips through to map", func(t *testing.T) {
		adjacency := map[int][]string{
			1: {"a", "b"},
			2: {"a"},
		}

		m := m2m.FromMap(adjacency)
		require.Equal(t, 3, m.Len())
		assert.Equal(t, adjacency, m.ToMap())
	})
}

func TestM2M_Clear(t *testing.T) {
	t.Run("clear empties and the collection stays usable", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a"), pairOf(2, "b")})

		m.Clear()
		assert.True(t, m.IsEmpty())
		assert.Equal(t, 0, m.Len())

		assert.True(t, m.Insert(3, "c"))
		assert.Equal(t, 1, m.Len())
	})
}

func TestM2M_Clone(t *testing.T) {
	t.Run("clone is independent", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "a")})

		c := m.Clone()
		c.Insert(2, "b")

		assert.Equal(t, 1, m.Len())
		assert.Equal(t, 2, c.Len())
	})
}

func TestM2M_ForEach(t *testing.T) {
	t.Run("iterate over an empty collection", func(t *testing.T) {
		iterations := 0
		m := m2m.New[int, string]()
		m.ForEach(func(left int, right string) {
			iterations++
		})
		assert.Equal(t, 0, iterations)
	})

	t.Run("iterate in sorted order", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(2, "a"), pairOf(1, "b"), pairOf(1, "a"),
		})

		var visited []m2m.Pair[int, string]
		m.ForEach(func(left int, right string) {
			visited = append(visited, pairOf(left, right))
		})

		assert.Equal(t, []m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(1, "b"), pairOf(2, "a"),
		}, visited)
	})
}

func TestM2M_Pairs(t *testing.T) {
	t.Run("channel yields every pair in sorted order", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{
			pairOf(2, "b"), pairOf(1, "a"), pairOf(2, "a"),
		})

		var received []m2m.Pair[int, string]
		for p := range m.Pairs(context.Background()) {
			received = append(received, p)
		}

		assert.Equal(t, []m2m.Pair[int, string]{
			pairOf(1, "a"), pairOf(2, "a"), pairOf(2, "b"),
		}, received)
	})

	t.Run("cancellation stops the channel early", func(t *testing.T) {
		m := m2m.New[int, int]()
		for i := 0; i < 100; i++ {
			m.Insert(i, i)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		received := 0
		for range m.Pairs(ctx) {
			received++
			if received == 3 {
				cancel()
			}
		}

		assert.Less(t, received, 100)
	})
}

func TestM2M_String(t *testing.T) {
	t.Run("renders pairs in stored order", func(t *testing.T) {
		m := m2m.From([]m2m.Pair[int, string]{pairOf(1, "b"), pairOf(1, "a")})
		assert.Equal(t, "[(1, a) (1, b)]", m.String())
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.Equal(t, "[]", m2m.New[int, string]().String())
	})
}
