package todos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAppendsWithoutMutatingInput(t *testing.T) {
	before := sampleTodos()[:2]
	snapshot := clone(before)

	after := Add(before, Todo{ID: 9, Title: "new"})

	require.Len(t, after, 3)
	require.Equal(t, int64(9), after[2].ID)
	require.Equal(t, snapshot, before)
}

func TestUpdateReplacesTextFieldsOnly(t *testing.T) {
	before := sampleTodos()
	after := Update(before, 2, TextFields{Title: "TWO", Description: "changed", EndDate: "2025-05-05"})

	got := after[1]
	require.Equal(t, "TWO", got.Title)
	require.Equal(t, "changed", got.Description)
	require.Equal(t, "2025-05-05", got.EndDate)
	require.Equal(t, before[1].Image, got.Image)
	require.Equal(t, before[1].IsCompleted, got.IsCompleted)

	require.Equal(t, "two", before[1].Title, "input must not be mutated")
}

func TestMissesAreNoOps(t *testing.T) {
	before := sampleTodos()

	require.Equal(t, before, Update(before, 42, TextFields{Title: "x"}))
	require.Equal(t, before, UpdateImage(before, 42, "data:image/gif;base64,AA=="))
	require.Equal(t, before, ToggleStatus(before, 7))
	require.Equal(t, before, Delete(before, 42))
}

func TestUpdateImageReplacesOnlyImage(t *testing.T) {
	before := sampleTodos()
	after := UpdateImage(before, 1, "data:image/gif;base64,R0lG")

	want := before[0]
	want.Image = "data:image/gif;base64,R0lG"
	require.Equal(t, want, after[0])
	require.Equal(t, before[1:], after[1:])
}

func TestToggleStatusTwiceRestores(t *testing.T) {
	before := sampleTodos()

	once := ToggleStatus(before, 1)
	require.True(t, once[0].IsCompleted)

	twice := ToggleStatus(once, 1)
	require.Equal(t, before, twice)
}

func TestDeleteKeepsOrderOfOthers(t *testing.T) {
	before := sampleTodos()
	after := Delete(before, 2)

	require.Len(t, after, 2)
	require.Equal(t, []int64{1, 3}, ids(after))
	require.Len(t, before, 3)
}

func TestIndexOf(t *testing.T) {
	list := sampleTodos()
	require.Equal(t, 2, IndexOf(list, 3))
	require.Equal(t, -1, IndexOf(list, 99))
	require.Equal(t, -1, IndexOf(nil, 1))
}

func ids(list []Todo) []int64 {
	out := make([]int64, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}
