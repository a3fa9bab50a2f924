package upload

import (
	"fmt"

	"github.com/vramlabs/ringstage/internal/align"
	"github.com/vramlabs/ringstage/pkg/ring"
	"github.com/vramlabs/ringstage/pkg/serial"
)

// Staging buffer sizes are rounded up to 4 bytes so consumers can issue
// whole-word copies from the end of a buffer.
const bufferSizeAlignment = 4

// ringBuffer pairs an allocator with the staging memory backing it. The
// buffer is created lazily, on the first allocation served from this ring.
type ringBuffer struct {
	buffer    Buffer
	allocator *ring.Allocator
}

// Uploader hands out byte ranges of staging memory for transient writes
// and reclaims them as the caller's execution serials complete.
type Uploader struct {
	factory  BufferFactory
	rings    []*ringBuffer
	released serial.Queue[Buffer]
	opts     Options
}

// New returns an uploader that obtains staging memory from factory.
// The first ring exists from the start but its buffer is created lazily.
func New(factory BufferFactory, opts Options) *Uploader {
	u := &Uploader{
		factory: factory,
		opts:    opts.withDefaults(),
	}
	u.rings = append(u.rings, &ringBuffer{allocator: ring.New(u.opts.RingSize)})
	return u
}

// Allocate reserves size bytes of staging memory tagged with serial s.
// alignment constrains the offset within the returned buffer and must be a
// non-zero power of two.
//
// Ring exhaustion is not an error: the uploader appends a fresh ring when
// no existing ring can hold the request, and requests larger than a whole
// ring receive a dedicated buffer that is retired once s completes. The
// only failure mode is the factory failing, reported wrapped around
// ErrBufferCreate.
func (u *Uploader) Allocate(size uint64, s serial.Serial, alignment uint64) (Handle, error) {
	if size > u.opts.RingSize {
		buf, err := u.factory(align.Up(size, bufferSizeAlignment))
		if err != nil {
			return Handle{}, fmt.Errorf("%w: %w", ErrBufferCreate, err)
		}
		u.released.Enqueue(buf, s)
		return Handle{Buffer: buf, Offset: 0, Bytes: buf.Bytes()}, nil
	}

	// First fit across rings in creation order.
	var target *ringBuffer
	offset := ring.InvalidOffset
	for _, rb := range u.rings {
		offset = rb.allocator.Allocate(size, s, alignment)
		if offset != ring.InvalidOffset {
			target = rb
			break
		}
	}

	// Every ring is too full: grow by appending a fresh one. A fresh ring
	// always fits the request since size <= RingSize.
	if target == nil {
		target = &ringBuffer{allocator: ring.New(u.opts.RingSize)}
		u.rings = append(u.rings, target)
		offset = target.allocator.Allocate(size, s, alignment)
	}

	if target.buffer == nil {
		buf, err := u.factory(align.Up(target.allocator.Size(), bufferSizeAlignment))
		if err != nil {
			// The reservation stays recorded in the ring; it is reclaimed
			// normally once s completes.
			return Handle{}, fmt.Errorf("%w: %w", ErrBufferCreate, err)
		}
		target.buffer = buf
	}

	h := Handle{Buffer: target.buffer, Offset: offset}
	if data := target.buffer.Bytes(); data != nil {
		h.Bytes = data[offset : offset+size]
	}
	return h, nil
}

// Deallocate reclaims staging space for all work up to and including
// lastCompleted. Rings that empty out are released, except the most
// recently created one, which is kept so steady-state load does not churn
// buffer creation. Dedicated and caller-released buffers whose serial
// completed are released as well.
func (u *Uploader) Deallocate(lastCompleted serial.Serial) {
	kept := u.rings[:0]
	for i, rb := range u.rings {
		rb.allocator.Deallocate(lastCompleted)
		if rb.allocator.Empty() && i < len(u.rings)-1 {
			if rb.buffer != nil {
				_ = rb.buffer.Release()
			}
			continue
		}
		kept = append(kept, rb)
	}
	u.rings = kept

	u.released.IterateUpTo(lastCompleted, func(b Buffer) {
		_ = b.Release()
	})
	u.released.ClearUpTo(lastCompleted)
}

// ReleaseStagingBuffer defers releasing a caller-owned staging buffer
// until work tagged with serial s has completed.
func (u *Uploader) ReleaseStagingBuffer(b Buffer, s serial.Serial) {
	u.released.Enqueue(b, s)
}

// TotalAllocatedSize returns the staging bytes currently held: backing
// buffers of live rings plus buffers awaiting release.
func (u *Uploader) TotalAllocatedSize() uint64 {
	var total uint64
	u.released.IterateAll(func(b Buffer) {
		total += b.Size()
	})
	for _, rb := range u.rings {
		if rb.buffer != nil {
			total += rb.buffer.Size()
		}
	}
	return total
}

// ShouldFlush reports whether staging memory has grown past the flush
// threshold and the caller should submit pending work so serials can
// complete and space can be reclaimed.
func (u *Uploader) ShouldFlush() bool {
	return u.TotalAllocatedSize() > u.opts.FlushThreshold
}
