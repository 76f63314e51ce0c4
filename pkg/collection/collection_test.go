package collection_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockly/pkg/collection"
)

// ─── Transformations ───

func TestMap(t *testing.T) {
	got := collection.Map([]int{1, 2, 3}, func(n int) string { return strconv.Itoa(n * 2) })
	assert.Equal(t, []string{"2", "4", "6"}, got)
}

func TestFilterKeepsOrder(t *testing.T) {
	got := collection.Filter([]int{5, 2, 8, 1, 9}, func(n int) bool { return n > 2 })
	assert.Equal(t, []int{5, 8, 9}, got)
}

func TestFirst(t *testing.T) {
	v, ok := collection.First([]string{"a", "bb", "ccc"}, func(s string) bool { return len(s) == 2 })
	assert.True(t, ok)
	assert.Equal(t, "bb", v)

	_, ok = collection.First([]string{"a"}, func(s string) bool { return len(s) == 2 })
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, collection.Contains([]int{1, 2, 3}, func(n int) bool { return n == 2 }))
	assert.False(t, collection.Contains([]int{1, 3}, func(n int) bool { return n == 2 }))
}

// ─── Grouping ───

func TestGroupBy(t *testing.T) {
	got := collection.GroupBy([]string{"ant", "bee", "ape"}, func(s string) string { return s[:1] })
	assert.Equal(t, []string{"ant", "ape"}, got["a"])
	assert.Equal(t, []string{"bee"}, got["b"])
}

func TestCountBy(t *testing.T) {
	got := collection.CountBy([]int{1, 2, 2, 3, 3, 3}, strconv.Itoa)
	assert.Equal(t, map[string]int{"1": 1, "2": 2, "3": 3}, got)
}

func TestKeyByLastWins(t *testing.T) {
	type row struct{ K, V string }
	got := collection.KeyBy([]row{{"a", "first"}, {"a", "second"}}, func(r row) string { return r.K })
	assert.Equal(t, "second", got["a"].V)
}

// ─── Ordering and windows ───

func TestSortByDoesNotMutate(t *testing.T) {
	in := []int{3, 1, 2}
	out := collection.SortBy(in, func(a, b int) bool { return a < b })
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestSortByIsStable(t *testing.T) {
	type row struct {
		Key  int
		Name string
	}
	in := []row{{1, "x"}, {0, "a"}, {1, "y"}, {0, "b"}}
	out := collection.SortBy(in, func(a, b row) bool { return a.Key < b.Key })
	assert.Equal(t, []row{{0, "a"}, {0, "b"}, {1, "x"}, {1, "y"}}, out)
}

func TestTake(t *testing.T) {
	assert.Equal(t, []int{1, 2}, collection.Take([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2, 3}, collection.Take([]int{1, 2, 3}, 9))
	assert.Empty(t, collection.Take([]int{1, 2, 3}, 0))
}

func TestPage(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, collection.Page(s, 0, 2))
	assert.Equal(t, []int{3, 4}, collection.Page(s, 1, 2))
	assert.Equal(t, []int{5}, collection.Page(s, 2, 2))
	assert.Empty(t, collection.Page(s, 3, 2))
	assert.Empty(t, collection.Page(s, -1, 2))
}

// ─── Folds ───

func TestReduce(t *testing.T) {
	got := collection.Reduce([]int{1, 2, 3}, 10, func(acc, n int) int { return acc + n })
	assert.Equal(t, 16, got)
}

func TestSum(t *testing.T) {
	got := collection.Sum([]float64{1.5, 2.5}, func(v float64) float64 { return v })
	assert.Equal(t, 4.0, got)
}
