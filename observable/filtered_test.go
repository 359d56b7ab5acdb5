package observable

import (
	"testing"

	"github.com/sgostarter/libobservable/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func even(v int) bool {
	return v%2 == 0
}

func TestFilteredViewReads(t *testing.T) {
	coll := NewCollection([]int{1, 2, 3, 4}, nil)

	view := NewFilteredView[int](coll, even, nil)

	assert.Equal(t, 2, view.Len())
	assert.Equal(t, 2, view.At(0))
	assert.Equal(t, 4, view.At(1))
	assert.Equal(t, []int{2, 4}, view.Snapshot())
}

func TestFilteredViewInsertOffsetRecomputation(t *testing.T) {
	coll := NewCollection([]int{1, 2, 3, 4}, nil)

	view := NewFilteredView[int](coll, even, nil) // [2,4]

	var ds []diff.Difference[int]

	view.Subscribe(func(d diff.Difference[int]) {
		ds = append(ds, d)
	})

	// insert 0 at the front of the base
	coll.ReplaceRange(0, 0, []int{0})

	require.Len(t, ds, 1)
	assert.Len(t, ds[0].Removals(), 0)
	require.Len(t, ds[0].Insertions(), 1)
	assert.Equal(t, 0, ds[0].Insertions()[0].Offset)
	assert.Equal(t, 0, ds[0].Insertions()[0].Element)
	assert.False(t, ds[0].Insertions()[0].Paired())

	assert.Equal(t, []int{0, 2, 4}, view.Snapshot())
}

func TestFilteredViewRemoveOffsetRecomputation(t *testing.T) {
	coll := NewCollection([]int{0, 1, 2, 3, 4}, nil)

	view := NewFilteredView[int](coll, even, nil) // [0,2,4]

	var ds []diff.Difference[int]

	view.Subscribe(func(d diff.Difference[int]) {
		ds = append(ds, d)
	})

	// removing a failing element emits nothing
	coll.ReplaceRange(1, 2, nil) // drop 1

	require.Len(t, ds, 0)
	assert.Equal(t, []int{0, 2, 4}, view.Snapshot())

	// removing a passing element renumbers against the pre-mutation base
	coll.ReplaceRange(1, 2, nil) // drop 2, base becomes [0,3,4]

	require.Len(t, ds, 1)
	require.Len(t, ds[0].Removals(), 1)
	assert.Equal(t, 1, ds[0].Removals()[0].Offset)
	assert.Equal(t, 2, ds[0].Removals()[0].Element)
	assert.False(t, ds[0].Removals()[0].Paired())
	assert.Len(t, ds[0].Insertions(), 0)

	assert.Equal(t, []int{0, 4}, view.Snapshot())
}

func TestFilteredViewPairingDropped(t *testing.T) {
	coll := NewCollection([]int{1, 2, 3, 4}, nil)

	view := NewFilteredView[int](coll, even, nil) // [2,4]

	var ds []diff.Difference[int]

	view.Subscribe(func(d diff.Difference[int]) {
		ds = append(ds, d)
	})

	// overwrite passing 2 with failing 5: the paired write degenerates into
	// an independent remove from the filtered view's perspective
	coll.Set(1, 5)

	require.Len(t, ds, 1)
	require.Len(t, ds[0].Removals(), 1)
	assert.Equal(t, 0, ds[0].Removals()[0].Offset)
	assert.Equal(t, 2, ds[0].Removals()[0].Element)
	assert.False(t, ds[0].Removals()[0].Paired())
	assert.Len(t, ds[0].Insertions(), 0)

	assert.Equal(t, []int{4}, view.Snapshot())
}

func TestFilteredViewPairingKept(t *testing.T) {
	coll := NewCollection([]int{2, 1, 4, 3}, nil)

	view := NewFilteredView[int](coll, even, nil) // [2,4]

	var ds []diff.Difference[int]

	view.Subscribe(func(d diff.Difference[int]) {
		ds = append(ds, d)
	})

	// swap a passing element with a failing one: only the passing half's
	// move pair survives, renumbered into the filtered space
	coll.Swap(1, 2) // base [2,4,1,3]

	require.Len(t, ds, 1)
	require.Len(t, ds[0].Removals(), 1)
	assert.Equal(t, 1, ds[0].Removals()[0].Offset)
	assert.Equal(t, 4, ds[0].Removals()[0].Element)
	assert.Equal(t, 1, ds[0].Removals()[0].PairedOffset)
	require.Len(t, ds[0].Insertions(), 1)
	assert.Equal(t, 1, ds[0].Insertions()[0].Offset)
	assert.Equal(t, 4, ds[0].Insertions()[0].Element)
	assert.Equal(t, 1, ds[0].Insertions()[0].PairedOffset)

	assert.Equal(t, []int{2, 4}, view.Snapshot())
}

func TestFilteredViewBulkReplace(t *testing.T) {
	coll := NewCollection([]int{1, 2, 3, 4}, nil)

	view := NewFilteredView[int](coll, even, nil) // [2,4]

	var ds []diff.Difference[int]

	view.Subscribe(func(d diff.Difference[int]) {
		ds = append(ds, d)
	})

	coll.Replace([]int{7, 8, 9, 10})

	require.Len(t, ds, 1)

	removals := ds[0].Removals()
	require.Len(t, removals, 2)
	assert.Equal(t, 0, removals[0].Offset)
	assert.Equal(t, 2, removals[0].Element)
	assert.Equal(t, 1, removals[1].Offset)
	assert.Equal(t, 4, removals[1].Element)

	insertions := ds[0].Insertions()
	require.Len(t, insertions, 2)
	assert.Equal(t, 0, insertions[0].Offset)
	assert.Equal(t, 8, insertions[0].Element)
	assert.Equal(t, 1, insertions[1].Offset)
	assert.Equal(t, 10, insertions[1].Element)

	assert.Equal(t, []int{8, 10}, view.Snapshot())
}

func TestFilteredViewClose(t *testing.T) {
	coll := NewCollection([]int{2}, nil)

	view := NewFilteredView[int](coll, even, nil)

	events := 0

	view.Subscribe(func(d diff.Difference[int]) {
		events++
	})

	coll.Set(0, 4)
	view.Close()
	coll.Set(0, 6)

	assert.Equal(t, 1, events)
}
