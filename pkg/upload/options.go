package upload

const (
	// DefaultRingSize is the capacity of each staging ring.
	DefaultRingSize = 4 * 1024 * 1024

	// DefaultFlushThreshold is the total staging size above which
	// ShouldFlush reports true.
	DefaultFlushThreshold = 64 * 1024 * 1024
)

// Options controls Uploader behavior. The zero value uses the defaults.
type Options struct {
	// RingSize is the capacity of each staging ring in bytes. Requests
	// larger than this bypass the rings and receive a dedicated buffer.
	// Default: DefaultRingSize.
	RingSize uint64

	// FlushThreshold is the total allocated staging size in bytes above
	// which ShouldFlush reports true. Callers use it to bound staging
	// memory growth by submitting pending work early.
	// Default: DefaultFlushThreshold.
	FlushThreshold uint64
}

func (o Options) withDefaults() Options {
	if o.RingSize == 0 {
		o.RingSize = DefaultRingSize
	}
	if o.FlushThreshold == 0 {
		o.FlushThreshold = DefaultFlushThreshold
	}
	return o
}
