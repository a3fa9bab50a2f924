package upload_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vramlabs/ringstage/pkg/upload"
)

type fakeBuffer struct {
	size     uint64
	data     []byte
	released bool
}

func (b *fakeBuffer) Size() uint64  { return b.size }
func (b *fakeBuffer) Bytes() []byte { return b.data }
func (b *fakeBuffer) Release() error {
	b.released = true
	return nil
}

type fakeFactory struct {
	created []*fakeBuffer
	err     error
}

func (f *fakeFactory) new(size uint64) (upload.Buffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := &fakeBuffer{size: size, data: make([]byte, size)}
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeFactory) releasedCount() int {
	n := 0
	for _, b := range f.created {
		if b.released {
			n++
		}
	}
	return n
}

func TestUploaderLazyBufferCreation(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 1024})

	// The first ring exists but has no buffer until something allocates.
	assert.EqualValues(t, 0, up.TotalAllocatedSize())
	assert.Empty(t, f.created)

	h, err := up.Allocate(100, 1, 1)
	require.NoError(t, err)
	require.Len(t, f.created, 1)
	assert.EqualValues(t, 1024, f.created[0].size)
	assert.EqualValues(t, 0, h.Offset)
	assert.EqualValues(t, 1024, up.TotalAllocatedSize())
}

func TestUploaderHandleBytes(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 1024})

	h1, err := up.Allocate(16, 1, 1)
	require.NoError(t, err)
	h2, err := up.Allocate(16, 1, 1)
	require.NoError(t, err)

	copy(h1.Bytes, "first")
	copy(h2.Bytes, "second")

	// Handles view disjoint sub-slices of the same buffer.
	require.Same(t, h1.Buffer, h2.Buffer)
	assert.EqualValues(t, 0, h1.Offset)
	assert.EqualValues(t, 16, h2.Offset)
	backing := f.created[0].data
	assert.Equal(t, "first", string(backing[0:5]))
	assert.Equal(t, "second", string(backing[16:22]))
}

func TestUploaderGrowsOnExhaustion(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 128})

	h1, err := up.Allocate(100, 1, 1)
	require.NoError(t, err)

	// 100 more bytes don't fit anywhere in the first ring: a second ring
	// appears instead of a failure.
	h2, err := up.Allocate(100, 2, 1)
	require.NoError(t, err)
	require.Len(t, f.created, 2)
	assert.NotSame(t, h1.Buffer, h2.Buffer)
	assert.EqualValues(t, 256, up.TotalAllocatedSize())
}

func TestUploaderOversizedRequest(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 128})

	h, err := up.Allocate(1000, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, h.Offset)
	assert.Len(t, h.Bytes, 1000)
	require.Len(t, f.created, 1)
	assert.EqualValues(t, 1000, f.created[0].size)

	// The dedicated buffer dies with its serial.
	up.Deallocate(1)
	assert.Equal(t, 1, f.releasedCount())
	assert.EqualValues(t, 0, up.TotalAllocatedSize())
}

func TestUploaderOversizedSizeRoundedUp(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 128})

	_, err := up.Allocate(1001, 1, 1)
	require.NoError(t, err)
	require.Len(t, f.created, 1)
	assert.EqualValues(t, 1004, f.created[0].size)
}

func TestUploaderRetiresEmptyRingsExceptLast(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 128})

	// Three allocations under one serial, each forcing a new ring.
	for i := 0; i < 3; i++ {
		_, err := up.Allocate(100, 2, 1)
		require.NoError(t, err)
	}
	require.Len(t, f.created, 3)
	assert.EqualValues(t, 3*128, up.TotalAllocatedSize())

	// Everything completes: the first two rings are released, the newest
	// survives so steady load doesn't churn buffer creation.
	up.Deallocate(2)
	assert.Equal(t, 2, f.releasedCount())
	assert.EqualValues(t, 128, up.TotalAllocatedSize())

	// The surviving ring is reusable.
	_, err := up.Allocate(100, 3, 1)
	require.NoError(t, err)
	require.Len(t, f.created, 3)
}

func TestUploaderFactoryError(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeFactory{err: boom}
	up := upload.New(f.new, upload.Options{RingSize: 128})

	_, err := up.Allocate(64, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, upload.ErrBufferCreate)
	assert.ErrorIs(t, err, boom)

	// Oversized path reports the same way.
	_, err = up.Allocate(4096, 1, 1)
	assert.ErrorIs(t, err, upload.ErrBufferCreate)
}

func TestUploaderShouldFlush(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 128, FlushThreshold: 300})

	assert.False(t, up.ShouldFlush())

	for i := 0; i < 3; i++ {
		_, err := up.Allocate(100, 1, 1)
		require.NoError(t, err)
	}
	assert.True(t, up.ShouldFlush())

	up.Deallocate(1)
	assert.False(t, up.ShouldFlush())
}

func TestUploaderReleaseStagingBuffer(t *testing.T) {
	f := &fakeFactory{}
	up := upload.New(f.new, upload.Options{RingSize: 128})

	own := &fakeBuffer{size: 512}
	up.ReleaseStagingBuffer(own, 5)

	// Pending buffers count toward staging size until their serial
	// completes.
	assert.EqualValues(t, 512, up.TotalAllocatedSize())

	up.Deallocate(4)
	assert.False(t, own.released)

	up.Deallocate(5)
	assert.True(t, own.released)
	assert.EqualValues(t, 0, up.TotalAllocatedSize())
}

func TestUploaderHostMemory(t *testing.T) {
	up := upload.New(upload.HostMemory, upload.Options{RingSize: 4096})

	h, err := up.Allocate(64, 1, 4)
	require.NoError(t, err)
	require.Len(t, h.Bytes, 64)
	copy(h.Bytes, "staged")
	assert.Equal(t, "staged", string(h.Buffer.Bytes()[h.Offset:h.Offset+6]))

	up.Deallocate(1)
}
