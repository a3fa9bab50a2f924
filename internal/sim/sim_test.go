package sim

import (
	"testing"

	"github.com/vramlabs/ringstage/pkg/serial"
)

func validConfig() Config {
	return Config{
		RingSize:       64 * 1024,
		Frames:         20,
		AllocsPerFrame: 8,
		MinAlloc:       256,
		MaxAlloc:       1024,
		Alignment:      4,
		CompletionLag:  2,
		Seed:           1,
	}
}

func TestConfigValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.Frames = 0 },
		func(c *Config) { c.AllocsPerFrame = 0 },
		func(c *Config) { c.MinAlloc = 0 },
		func(c *Config) { c.MinAlloc = 2048 }, // exceeds MaxAlloc
		func(c *Config) { c.Alignment = 0 },
		func(c *Config) { c.Alignment = 3 },
		func(c *Config) { c.CompletionLag = -1 },
	}
	for i, mutate := range bad {
		c := validConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: invalid config accepted: %+v", i, c)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := validConfig()

	st1, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	st2, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st1 != st2 {
		t.Fatalf("same seed produced different stats:\n%+v\n%+v", st1, st2)
	}

	wantAllocs := uint64(cfg.Frames * cfg.AllocsPerFrame)
	if st1.Allocations != wantAllocs {
		t.Fatalf("Allocations = %d, want %d", st1.Allocations, wantAllocs)
	}
	if st1.BytesRequested < wantAllocs*cfg.MinAlloc || st1.BytesRequested > wantAllocs*cfg.MaxAlloc {
		t.Fatalf("BytesRequested = %d outside [%d, %d]",
			st1.BytesRequested, wantAllocs*cfg.MinAlloc, wantAllocs*cfg.MaxAlloc)
	}
	if st1.Oversized != 0 {
		t.Fatalf("Oversized = %d, want 0", st1.Oversized)
	}
	if st1.FinalStaging > st1.PeakStaging {
		t.Fatalf("FinalStaging %d exceeds PeakStaging %d", st1.FinalStaging, st1.PeakStaging)
	}
}

func TestRunObserverSeesEveryFrame(t *testing.T) {
	cfg := validConfig()
	cfg.Frames = 10

	frames := 0
	last := 0
	_, err := Run(cfg, func(frame int, _ serial.Serial, _ uint64) {
		frames++
		last = frame
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 10 || last != 10 {
		t.Fatalf("observer saw %d frames, last %d", frames, last)
	}
}

func TestRunOversized(t *testing.T) {
	cfg := validConfig()
	cfg.RingSize = 1024
	cfg.MinAlloc = 4096
	cfg.MaxAlloc = 4096

	st, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Oversized != st.Allocations {
		t.Fatalf("Oversized = %d, want %d (every request bypasses the rings)",
			st.Oversized, st.Allocations)
	}
}
