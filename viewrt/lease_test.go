package viewrt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	N int
}

func TestAcquire_SharedLeasesCoexist(t *testing.T) {
	r := &record{}

	a := Share(r)
	b := Share(r)

	shared, exclusive := Borrowed(r)
	assert.Equal(t, 2, shared)
	assert.False(t, exclusive)

	a.Release()
	b.Release()

	shared, exclusive = Borrowed(r)
	assert.Zero(t, shared)
	assert.False(t, exclusive)
}

func TestAcquire_ExclusiveExcludesShared(t *testing.T) {
	r := &record{}

	l := Exclusive(r)
	defer l.Release()

	_, err := TryShare(r)
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.Held)
	assert.False(t, conflict.Exclusive)
	assert.Contains(t, err.Error(), "*viewrt.record")
}

func TestAcquire_SharedExcludesExclusive(t *testing.T) {
	r := &record{}

	l := Share(r)
	defer l.Release()

	assert.PanicsWithError(t,
		"viewrt: exclusive borrow of *viewrt.record while 1 shared borrow(s) are live",
		func() { Exclusive(r) })
}

func TestAcquire_DistinctPointersIndependent(t *testing.T) {
	a, b := &record{}, &record{}

	la := Exclusive(a)
	lb := Exclusive(b)

	la.Release()
	lb.Release()
}

func TestAcquire_NotPointer(t *testing.T) {
	_, err := Acquire(record{}, false)
	assert.True(t, errors.Is(err, ErrNotPointer))

	var nilRecord *record
	_, err = Acquire(nilRecord, true)
	assert.True(t, errors.Is(err, ErrNotPointer))
}

func TestLease_ReleaseIdempotent(t *testing.T) {
	r := &record{}

	l := Exclusive(r)
	l.Release()
	l.Release()

	again := Exclusive(r)
	again.Release()

	var nilLease *Lease
	assert.NotPanics(t, nilLease.Release)
	assert.False(t, nilLease.IsExclusive())
}

func TestLease_DeferRunsOnceInReverse(t *testing.T) {
	r := &record{}
	var order []int

	l := Exclusive(r)
	assert.True(t, l.IsExclusive())
	l.Defer(func() { order = append(order, 1) })
	l.Defer(func() { order = append(order, 2) })

	l.Release()
	l.Release()

	assert.Equal(t, []int{2, 1}, order)
}

func TestResult_OkAndFail(t *testing.T) {
	ok := Ok(42)
	assert.True(t, ok.IsOk())

	v, err := ok.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	failed := Fail[int](errors.New("boom"))
	assert.False(t, failed.IsOk())

	_, err = failed.Get()
	assert.EqualError(t, err, "boom")
}
