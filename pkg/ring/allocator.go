package ring

import (
	"math"

	"github.com/vramlabs/ringstage/internal/align"
	"github.com/vramlabs/ringstage/pkg/serial"
)

// InvalidOffset is returned by Allocate when the ring cannot currently
// satisfy the request.
const InvalidOffset uint64 = math.MaxUint64

// request records one sub-allocation so Deallocate can roll the used region
// forward once the request's serial completes.
type request struct {
	// endOffset is the value of the append cursor immediately after this
	// allocation; reclaiming the request moves usedStart here.
	endOffset uint64

	// size is the byte count this request charged to usedSize. It includes
	// alignment padding and, for wrapped allocations, the abandoned buffer
	// tail, so it may exceed the size the caller asked for.
	size uint64
}

// Allocator sub-allocates contiguous byte ranges from a fixed-capacity
// circular region in FIFO order.
//
// The ring is tracked with two cursors plus a used-byte count. Cursors
// alone cannot distinguish a full ring from an empty one (start == end in
// both cases), so fullness checks compare usedSize against capacity
// instead. usedSize deliberately includes padding and wrap waste; see
// request.size.
//
// An Allocator is single-writer: the caller serializes Allocate and
// Deallocate externally if multiple goroutines are involved. The zero
// value is a valid allocator with zero capacity that fails every
// positive-size allocation.
type Allocator struct {
	inflight  serial.Queue[request]
	usedEnd   uint64
	usedStart uint64
	usedSize  uint64
	capacity  uint64
}

// New returns an allocator managing a region of capacity bytes.
func New(capacity uint64) *Allocator {
	return &Allocator{capacity: capacity}
}

// Allocate reserves size contiguous bytes tagged with serial s and returns
// the byte offset of the reservation, or InvalidOffset when the request
// cannot currently be satisfied. The reservation stays live until
// Deallocate is called with a completed serial >= s.
//
// Serials across successive Allocate calls must be non-decreasing and
// alignment must be a non-zero power of two. Both are caller contracts:
// violating them corrupts the FIFO reclaim order, and neither is validated
// here.
//
// The up-front fullness check is intentionally conservative: it rejects on
// total used bytes before considering where the free space sits, so a
// request that would exactly fill a fragmented gap can still fail. That
// keeps allocation O(1) and the arithmetic below overflow-free.
func (a *Allocator) Allocate(size uint64, s serial.Serial, alignment uint64) uint64 {
	if a.usedSize >= a.capacity {
		return InvalidOffset
	}
	if size > a.capacity-a.usedSize {
		return InvalidOffset
	}

	startOffset := InvalidOffset
	var requestSize uint64

	// First aligned position at or after the append cursor.
	alignmentOffset := align.Up(a.usedEnd, alignment) - a.usedEnd
	alignedUsedEnd := a.usedEnd + alignmentOffset

	if a.usedStart <= a.usedEnd {
		// Used region is one contiguous span (or empty). Try the tail
		// before wrapping to the front: allocations must stay in FIFO
		// order left to right so the oldest request is always the one
		// adjacent to usedStart.
		switch {
		case alignedUsedEnd+size <= a.capacity:
			startOffset = alignedUsedEnd
			requestSize = size + alignmentOffset
		case size <= a.usedStart:
			// Wrap to the front. The abandoned tail [usedEnd, capacity)
			// is charged to this request so the fullness check stays
			// truthful and the tail is reclaimed together with it.
			startOffset = 0
			requestSize = (a.capacity - a.usedEnd) + size
		}
	} else if alignedUsedEnd+size <= a.usedStart {
		// Used region wraps through zero; the free space is the single
		// middle span [usedEnd, usedStart).
		startOffset = alignedUsedEnd
		requestSize = size + alignmentOffset
	}

	if startOffset == InvalidOffset {
		return InvalidOffset
	}

	a.usedEnd = startOffset + size
	a.usedSize += requestSize
	a.inflight.Enqueue(request{endOffset: a.usedEnd, size: requestSize}, s)

	return startOffset
}

// Deallocate reclaims every allocation whose serial is <= lastCompleted.
// Requests retire oldest first and each one overwrites usedStart with its
// end offset, so usedStart lands on the end of the newest reclaimed
// request. Repeating a cutoff, or passing one below everything still in
// flight, is a no-op.
func (a *Allocator) Deallocate(lastCompleted serial.Serial) {
	a.inflight.IterateUpTo(lastCompleted, func(r request) {
		a.usedStart = r.endOffset
		a.usedSize -= r.size
	})
	a.inflight.ClearUpTo(lastCompleted)
}

// Size returns the fixed capacity of the ring in bytes.
func (a *Allocator) Size() uint64 {
	return a.capacity
}

// UsedSize returns the bytes currently charged to live allocations,
// including alignment padding and wrap waste.
func (a *Allocator) UsedSize() uint64 {
	return a.usedSize
}

// Empty reports whether no allocations are in flight. Note this tracks the
// request queue, not usedSize: they converge once the caller reclaims
// completed serials.
func (a *Allocator) Empty() bool {
	return a.inflight.Empty()
}
