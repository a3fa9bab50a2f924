package upload

import "github.com/vramlabs/ringstage/internal/membuf"

// Buffer is externally-owned staging memory. The uploader only tracks
// sizes and offsets; Bytes may return nil when the memory is not
// host-visible.
type Buffer interface {
	// Size returns the buffer capacity in bytes.
	Size() uint64

	// Bytes returns the mapped contents of the buffer, or nil if the
	// buffer is not host-visible.
	Bytes() []byte

	// Release frees the buffer. The uploader calls this once a buffer is
	// no longer referenced by any in-flight serial.
	Release() error
}

// BufferFactory creates the staging memory backing a ring or an oversized
// request. The requested size is always a multiple of 4.
type BufferFactory func(size uint64) (Buffer, error)

// HostMemory is a BufferFactory over anonymous host-memory regions. Use it
// when the consumer reads staged bytes directly from process memory.
func HostMemory(size uint64) (Buffer, error) {
	return membuf.Alloc(size)
}

// Handle locates one staged reservation.
type Handle struct {
	// Buffer is the staging buffer holding the reservation.
	Buffer Buffer

	// Offset is the byte offset of the reservation within Buffer.
	Offset uint64

	// Bytes is the reserved sub-slice of Buffer's mapped memory, or nil
	// when the buffer is not host-visible.
	Bytes []byte
}
