package codec_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ndcodec"
	"github.com/wippyai/ndcodec/codec"
	"github.com/wippyai/ndcodec/errors"
	"github.com/wippyai/ndcodec/resource"
)

type releaseCounter struct {
	mu    sync.Mutex
	freed map[any]int
}

func newReleaseCounter(table *resource.Table) *releaseCounter {
	c := &releaseCounter{freed: map[any]int{}}
	table.Subscribe(c)
	return c
}

func (c *releaseCounter) OnResourceEvent(e resource.Event) {
	if e.Type != resource.EventFreed {
		return
	}
	c.mu.Lock()
	c.freed[e.Value]++
	c.mu.Unlock()
}

func (c *releaseCounter) count(v any) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freed[v]
}

type box struct{ name string }

func TestObjectRoundTrip(t *testing.T) {
	for _, ptr := range []int{4, 8} {
		table := resource.NewTable()
		reg, err := codec.NewRegistry(codec.Config{
			Sizes:   ndcodec.Sizes{Int: 4, Long: 8, LongLong: 8, Pointer: ptr},
			Handles: table,
		})
		require.NoError(t, err)

		for _, flags := range []codec.Flags{behaved, swapped} {
			a := newArray(reg.NewScalar(codec.Object), 32, flags)
			v := &box{"first"}
			require.NoError(t, reg.Encode(v, int64(ptr), a))

			got, err := reg.Decode(int64(ptr), a)
			require.NoError(t, err)
			assert.Same(t, v, got)

			require.NoError(t, reg.Encode(nil, int64(ptr), a))
		}
		assert.Equal(t, 0, table.Len(), "pointer width %d", ptr)
	}
}

func TestObjectEmptySlotDecodesNil(t *testing.T) {
	reg, err := newRegistry(resource.NewTable())
	require.NoError(t, err)

	a := newArray(reg.NewScalar(codec.Object), 8, behaved)
	v, err := reg.Decode(0, a)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestObjectOverwriteReleasesOnce(t *testing.T) {
	table := resource.NewTable()
	counter := newReleaseCounter(table)
	reg, err := newRegistry(table)
	require.NoError(t, err)

	a := newArray(reg.NewScalar(codec.Object), 8, behaved)
	first := &box{"first"}
	second := &box{"second"}

	require.NoError(t, reg.Encode(first, 0, a))
	assert.Equal(t, 1, table.Len())

	require.NoError(t, reg.Encode(second, 0, a))
	assert.Equal(t, 1, counter.count(first), "previous value released exactly once")
	assert.Equal(t, 0, counter.count(second))
	assert.Equal(t, 1, table.Len())

	got, err := reg.Decode(0, a)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestObjectDecodeDoesNotRetain(t *testing.T) {
	table := resource.NewTable()
	reg, err := newRegistry(table)
	require.NoError(t, err)

	a := newArray(reg.NewScalar(codec.Object), 8, behaved)
	require.NoError(t, reg.Encode("v", 0, a))

	for i := 0; i < 3; i++ {
		_, err := reg.Decode(0, a)
		require.NoError(t, err)
	}
	var refs uint32
	table.Each(func(h resource.Handle, _ any) bool {
		refs = table.Refs(h)
		return false
	})
	assert.Equal(t, uint32(1), refs)
}

func TestObjectDanglingHandle(t *testing.T) {
	reg, err := newRegistry(resource.NewTable())
	require.NoError(t, err)

	a := newArray(reg.NewScalar(codec.Object), 8, behaved)
	raw := &codec.Array{Buf: a.Buf, Descr: reg.NewScalar(codec.ULong), Flags: behaved}
	require.NoError(t, reg.Encode(uint64(77), 0, raw))

	_, err = reg.Decode(0, a)
	assert.ErrorIs(t, err, errors.ErrInvalidHandle)
}

func TestObjectEncodeOverDanglingHandle(t *testing.T) {
	for _, stale := range []uint64{5, 1 << 40} {
		table := resource.NewTable()
		reg, err := newRegistry(table)
		require.NoError(t, err)

		a := newArray(reg.NewScalar(codec.Object), 8, behaved)
		raw := &codec.Array{Buf: a.Buf, Descr: reg.NewScalar(codec.ULong), Flags: behaved}
		require.NoError(t, reg.Encode(stale, 0, raw))
		before := append([]byte(nil), bufBytes(a)...)

		err = reg.Encode("x", 0, a)
		require.ErrorIs(t, err, errors.ErrInvalidHandle, "slot %d", stale)
		assert.Equal(t, before, bufBytes(a), "slot %d rewritten", stale)
		assert.Zero(t, table.Len(), "slot %d leaked a reference", stale)

		err = reg.Encode(nil, 0, a)
		require.ErrorIs(t, err, errors.ErrInvalidHandle)
		assert.Equal(t, before, bufBytes(a))
	}
}

func TestObjectRecordOverDanglingHandle(t *testing.T) {
	table := resource.NewTable()
	counter := newReleaseCounter(table)
	reg, err := newRegistry(table)
	require.NoError(t, err)

	d := codec.NewRecord(
		codec.Field{Name: "n", Offset: 0, Descr: reg.NewScalar(codec.Int)},
		codec.Field{Name: "obj", Offset: 8, Descr: reg.NewScalar(codec.Object)},
	)
	a := newArray(d, 16, behaved)
	raw := &codec.Array{Buf: a.Buf, Descr: reg.NewScalar(codec.ULong), Flags: behaved}
	require.NoError(t, reg.Encode(uint64(5), 8, raw))
	before := append([]byte(nil), bufBytes(a)...)

	fresh := &box{"fresh"}
	err = reg.Encode(codec.Tuple{7, fresh}, 0, a)
	require.ErrorIs(t, err, errors.ErrInvalidHandle)
	assert.Equal(t, []string{"obj"}, err.(*errors.Error).Path)
	assert.Equal(t, before, bufBytes(a))
	assert.Equal(t, 0, counter.count(fresh))
	assert.Zero(t, table.Len())
}

func TestObjectRecordCommitAndRollback(t *testing.T) {
	table := resource.NewTable()
	counter := newReleaseCounter(table)
	reg, err := newRegistry(table)
	require.NoError(t, err)

	d := codec.NewRecord(
		codec.Field{Name: "obj", Offset: 0, Descr: reg.NewScalar(codec.Object)},
		codec.Field{Name: "n", Offset: 8, Descr: reg.NewScalar(codec.Int)},
	)
	a := newArray(d, 16, behaved)

	old := &box{"old"}
	require.NoError(t, reg.Encode(codec.Tuple{old, 1}, 0, a))
	assert.Equal(t, 1, table.Len())

	// Failure after the object field: the new value is released, the old
	// one stays referenced by the untouched slot.
	fresh := &box{"fresh"}
	err = reg.Encode(codec.Tuple{fresh, "not a number"}, 0, a)
	require.ErrorIs(t, err, errors.ErrUnsupportedConversion)
	assert.Equal(t, 1, counter.count(fresh))
	assert.Equal(t, 0, counter.count(old))
	assert.Equal(t, 1, table.Len())

	got, err := reg.Decode(0, a)
	require.NoError(t, err)
	assert.Same(t, old, got.(codec.Tuple)[0])

	// Success: the old value is released exactly once, on commit.
	next := &box{"next"}
	require.NoError(t, reg.Encode(codec.Tuple{next, 2}, 0, a))
	assert.Equal(t, 1, counter.count(old))
	assert.Equal(t, 0, counter.count(next))
	assert.Equal(t, 1, table.Len())
}

func TestObjectNestedRecordCommit(t *testing.T) {
	table := resource.NewTable()
	counter := newReleaseCounter(table)
	reg, err := newRegistry(table)
	require.NoError(t, err)

	inner := codec.NewRecord(codec.Field{Name: "o", Offset: 0, Descr: reg.NewScalar(codec.Object)})
	outer := codec.NewRecord(
		codec.Field{Name: "in", Offset: 0, Descr: inner},
		codec.Field{Name: "k", Offset: 8, Descr: reg.NewScalar(codec.Short)},
	)
	a := newArray(outer, 16, swapped)

	first := &box{"first"}
	require.NoError(t, reg.Encode(codec.Tuple{codec.Tuple{first}, 1}, 0, a))

	// The inner record commits into the outer one, which then fails.
	second := &box{"second"}
	err = reg.Encode(codec.Tuple{codec.Tuple{second}, 1 << 20}, 0, a)
	require.ErrorIs(t, err, errors.ErrUnsupportedConversion)
	assert.Equal(t, 0, counter.count(first))
	assert.Equal(t, 1, counter.count(second))

	got, err := reg.Decode(0, a)
	require.NoError(t, err)
	assert.Same(t, first, got.(codec.Tuple)[0].(codec.Tuple)[0])
}
