// Package membuf allocates anonymous host-memory regions used as staging
// space for ring-buffer uploads. On unix platforms the region is an
// anonymous mmap so large staging areas live outside the Go heap; other
// platforms fall back to a plain slice.
package membuf

import "fmt"

const maxInt = int(^uint(0) >> 1)

// Region is a fixed-size block of zero-filled host memory.
type Region struct {
	data    []byte
	release func() error
}

// Alloc returns a region of exactly size bytes.
func Alloc(size uint64) (*Region, error) {
	if size > uint64(maxInt) {
		return nil, fmt.Errorf("membuf: region too large (%d bytes)", size)
	}
	data, release, err := alloc(int(size))
	if err != nil {
		return nil, fmt.Errorf("membuf: %w", err)
	}
	return &Region{data: data, release: release}, nil
}

// Size returns the region size in bytes.
func (r *Region) Size() uint64 {
	return uint64(len(r.data))
}

// Bytes returns the region contents. The slice must not be used after
// Release.
func (r *Region) Bytes() []byte {
	return r.data
}

// Release frees the region. Releasing twice is a no-op.
func (r *Region) Release() error {
	if r.release == nil {
		return nil
	}
	release := r.release
	r.release = nil
	r.data = nil
	return release()
}
