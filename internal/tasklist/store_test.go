package tasklist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns a generator producing t1, t2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func descriptions(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Description)
	}
	return out
}

func TestStore_AddAppendsIncompleteTask(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))

	for i, text := range []string{"Buy milk", "  padded  ", "x", "Buy milk"} {
		task, ok := s.Add(text)
		require.True(t, ok)
		assert.Equal(t, i+1, s.Len())

		snap := s.Snapshot()
		last := snap[len(snap)-1]
		assert.Equal(t, text, last.Description)
		assert.False(t, last.Completed)
		assert.Equal(t, task, last)
	}
}

func TestStore_AddBlankIsIgnored(t *testing.T) {
	s := New()
	s.Add("keep")

	for _, text := range []string{"", " ", "\t", "\n", "  \t\r\n "} {
		_, ok := s.Add(text)
		assert.False(t, ok, "Add(%q)", text)
	}

	assert.Equal(t, []string{"keep"}, descriptions(s.Snapshot()))
}

func TestStore_DuplicateDescriptionsAreDistinct(t *testing.T) {
	s := New()

	a, _ := s.Add("same")
	b, _ := s.Add("same")
	require.NotEqual(t, a.ID, b.ID)

	require.True(t, s.Toggle(b.ID, true))

	snap := s.Snapshot()
	assert.False(t, snap[0].Completed)
	assert.True(t, snap[1].Completed)

	require.True(t, s.Delete(a.ID))
	snap = s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, b.ID, snap[0].ID)
}

func TestStore_ToggleOnlyAffectsTarget(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))
	s.Add("a")
	s.Add("b")
	s.Add("c")

	require.True(t, s.Toggle("t2", true))
	snap := s.Snapshot()
	assert.Equal(t, []bool{false, true, false}, []bool{snap[0].Completed, snap[1].Completed, snap[2].Completed})

	require.True(t, s.Toggle("t2", false))
	for _, task := range s.Snapshot() {
		assert.False(t, task.Completed)
	}
}

func TestStore_ToggleMissingOrUnchanged(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))
	s.Add("a")

	assert.False(t, s.Toggle("nope", true))
	assert.False(t, s.Toggle("t1", false))

	task, ok := s.Get("t1")
	require.True(t, ok)
	assert.False(t, task.Completed)
}

func TestStore_DeleteKeepsOrder(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))
	for _, text := range []string{"a", "b", "c", "d"} {
		s.Add(text)
	}

	require.True(t, s.Delete("t2"))
	assert.Equal(t, []string{"a", "c", "d"}, descriptions(s.Snapshot()))

	require.True(t, s.Delete("t4"))
	assert.Equal(t, []string{"a", "c"}, descriptions(s.Snapshot()))
}

func TestStore_DeleteAbsentIsNoop(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))
	s.Add("a")
	s.Add("b")
	before := s.Snapshot()

	assert.False(t, s.Delete("missing"))
	require.True(t, s.Delete("t1"))
	assert.False(t, s.Delete("t1"))

	assert.Equal(t, before[1:], s.Snapshot())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := New()
	s.Add("a")

	snap := s.Snapshot()
	snap[0].Description = "changed"
	snap[0].Completed = true
	_ = append(snap, Task{ID: "x"})

	assert.Equal(t, []string{"a"}, descriptions(s.Snapshot()))
	assert.False(t, s.Snapshot()[0].Completed)
}

func TestStore_SnapshotSurvivesDelete(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))
	s.Add("a")
	s.Add("b")
	s.Add("c")

	snap := s.Snapshot()
	s.Delete("t1")

	assert.Equal(t, []string{"a", "b", "c"}, descriptions(snap))
}

func TestStore_At(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))
	s.Add("a")
	s.Add("b")

	task, ok := s.At(2)
	require.True(t, ok)
	assert.Equal(t, "b", task.Description)

	for _, pos := range []int{-1, 0, 3} {
		_, ok := s.At(pos)
		assert.False(t, ok, "At(%d)", pos)
	}
}

func TestStore_Scenario(t *testing.T) {
	s := New()
	assert.Empty(t, s.Snapshot())

	task0, ok := s.Add("Buy milk")
	require.True(t, ok)
	assert.Equal(t, []Task{{ID: task0.ID, Description: "Buy milk"}}, s.Snapshot())

	s.Add("  ")
	assert.Equal(t, []Task{{ID: task0.ID, Description: "Buy milk"}}, s.Snapshot())

	s.Toggle(task0.ID, true)
	assert.Equal(t, []Task{{ID: task0.ID, Description: "Buy milk", Completed: true}}, s.Snapshot())

	s.Delete(task0.ID)
	assert.Empty(t, s.Snapshot())
}

func TestStore_ObserversSeeEffectiveMutations(t *testing.T) {
	s := New(WithIDGenerator(sequentialIDs()))

	var changes []Change
	cancel := s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Add("a")
	s.Add("   ")
	s.Toggle("t1", true)
	s.Toggle("t1", true)
	s.Toggle("missing", true)
	s.Delete("missing")
	s.Delete("t1")

	require.Len(t, changes, 3)
	assert.Equal(t, Added, changes[0].Kind)
	assert.Equal(t, "a", changes[0].Task.Description)
	assert.Len(t, changes[0].Snapshot, 1)

	assert.Equal(t, Toggled, changes[1].Kind)
	assert.True(t, changes[1].Task.Completed)
	assert.True(t, changes[1].Snapshot[0].Completed)

	assert.Equal(t, Deleted, changes[2].Kind)
	assert.Equal(t, "t1", changes[2].Task.ID)
	assert.Empty(t, changes[2].Snapshot)

	cancel()
	cancel()
	s.Add("b")
	assert.Len(t, changes, 3)
}

func TestStore_ObserverOrderAndSelfCancel(t *testing.T) {
	s := New()

	var calls []string
	var cancelFirst func()
	cancelFirst = s.Subscribe(func(Change) {
		calls = append(calls, "first")
		cancelFirst()
	})
	s.Subscribe(func(Change) { calls = append(calls, "second") })

	s.Add("a")
	s.Add("b")

	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "toggled", Toggled.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "unknown", ChangeKind(0).String())
}
