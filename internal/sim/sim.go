// Package sim drives synthetic allocate/complete workloads through a
// staging uploader and collects allocation statistics. It backs the
// ringstat tool.
package sim

import (
	"errors"
	"fmt"

	"github.com/valyala/fastrand"

	"github.com/vramlabs/ringstage/internal/align"
	"github.com/vramlabs/ringstage/pkg/serial"
	"github.com/vramlabs/ringstage/pkg/upload"
)

// Config describes one synthetic workload. Each frame submits a batch of
// allocations under one serial; serials complete CompletionLag frames
// later, the way a GPU trails the recording CPU.
type Config struct {
	// RingSize is the staging ring capacity in bytes. 0 uses the uploader
	// default.
	RingSize uint64

	// Frames is the number of simulated frames. Must be > 0.
	Frames int

	// AllocsPerFrame is the number of allocations per frame. Must be > 0.
	AllocsPerFrame int

	// MinAlloc and MaxAlloc bound the random allocation size in bytes.
	// MinAlloc must be > 0 and <= MaxAlloc.
	MinAlloc uint64
	MaxAlloc uint64

	// Alignment applied to every allocation. Must be a non-zero power of
	// two.
	Alignment uint64

	// CompletionLag is how many frames a serial stays in flight before it
	// completes. 0 means work completes within its own frame.
	CompletionLag int

	// Seed seeds the workload RNG; a fixed seed gives a reproducible run.
	Seed uint32
}

// Validate reports the first problem with the config.
func (c Config) Validate() error {
	switch {
	case c.Frames <= 0:
		return errors.New("sim: frames must be positive")
	case c.AllocsPerFrame <= 0:
		return errors.New("sim: allocations per frame must be positive")
	case c.MinAlloc == 0:
		return errors.New("sim: minimum allocation size must be positive")
	case c.MinAlloc > c.MaxAlloc:
		return errors.New("sim: minimum allocation size exceeds maximum")
	case c.MaxAlloc-c.MinAlloc > 1<<31:
		return errors.New("sim: allocation size range too wide")
	case !align.IsPowerOfTwo(c.Alignment):
		return errors.New("sim: alignment must be a non-zero power of two")
	case c.CompletionLag < 0:
		return errors.New("sim: completion lag cannot be negative")
	}
	return nil
}

// Stats summarizes a completed run.
type Stats struct {
	// Allocations is the total number of successful allocations.
	Allocations uint64

	// Oversized counts allocations that bypassed the rings because they
	// exceeded the ring size.
	Oversized uint64

	// BytesRequested is the sum of requested allocation sizes, excluding
	// padding and wrap waste.
	BytesRequested uint64

	// Flushes counts frames where staging growth crossed the flush
	// threshold and the run completed all in-flight work early.
	Flushes uint64

	// PeakStaging and FinalStaging track the uploader's total allocated
	// staging size at its highest point and after the last frame.
	PeakStaging  uint64
	FinalStaging uint64
}

// FrameFunc observes the uploader after each simulated frame. completed is
// the highest serial reclaimed so far (0 if none yet).
type FrameFunc func(frame int, completed serial.Serial, staging uint64)

// Run executes the workload against a fresh uploader backed by host
// memory. observe may be nil.
func Run(cfg Config, observe FrameFunc) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	var rng fastrand.RNG
	rng.Seed(cfg.Seed)

	up := upload.New(upload.HostMemory, upload.Options{RingSize: cfg.RingSize})
	ringSize := cfg.RingSize
	if ringSize == 0 {
		ringSize = upload.DefaultRingSize
	}

	var st Stats
	var completed serial.Serial

	for frame := 1; frame <= cfg.Frames; frame++ {
		s := serial.Serial(frame)

		for i := 0; i < cfg.AllocsPerFrame; i++ {
			size := cfg.MinAlloc
			if cfg.MaxAlloc > cfg.MinAlloc {
				size += uint64(rng.Uint32n(uint32(cfg.MaxAlloc - cfg.MinAlloc + 1)))
			}

			h, err := up.Allocate(size, s, cfg.Alignment)
			if err != nil {
				return st, fmt.Errorf("frame %d: %w", frame, err)
			}
			st.Allocations++
			st.BytesRequested += size
			if size > ringSize {
				st.Oversized++
			}

			// Touch the staged range the way a producer would.
			if len(h.Bytes) > 0 {
				h.Bytes[0] = byte(frame)
				h.Bytes[len(h.Bytes)-1] = byte(i)
			}
		}

		if up.ShouldFlush() {
			// Staging grew too large: model a submit-and-wait that
			// completes everything recorded so far.
			st.Flushes++
			completed = s
			up.Deallocate(completed)
		} else if frame > cfg.CompletionLag {
			if lagged := serial.Serial(frame - cfg.CompletionLag); lagged > completed {
				completed = lagged
				up.Deallocate(completed)
			}
		}

		staging := up.TotalAllocatedSize()
		if staging > st.PeakStaging {
			st.PeakStaging = staging
		}
		if observe != nil {
			observe(frame, completed, staging)
		}
	}

	// Drain whatever the lag left in flight.
	up.Deallocate(serial.Serial(cfg.Frames))
	st.FinalStaging = up.TotalAllocatedSize()
	return st, nil
}
