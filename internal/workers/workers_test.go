package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Parallel()

	availableCPU := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		override   int
		multiplier float64
		limit      int
		minExpect  int
		maxExpect  int
	}{
		{
			name:       "CPU-bound task (1.0x multiplier)",
			multiplier: 1.0,
			minExpect:  1,
			maxExpect:  availableCPU,
		},
		{
			name:       "I/O-bound task (2.0x multiplier)",
			multiplier: 2.0,
			minExpect:  1,
			maxExpect:  availableCPU * 2,
		},
		{
			name:       "With limit lower than calculated",
			multiplier: 2.0,
			limit:      2,
			minExpect:  1,
			maxExpect:  2,
		},
		{
			name:       "Very low multiplier never drops below one",
			multiplier: 0.01,
			minExpect:  1,
			maxExpect:  1,
		},
		{
			name:       "Override wins",
			override:   7,
			multiplier: 2.0,
			minExpect:  7,
			maxExpect:  7,
		},
		{
			name:       "Override capped by limit",
			override:   50,
			multiplier: 2.0,
			limit:      16,
			minExpect:  16,
			maxExpect:  16,
		},
		{
			name:       "Negative override ignored",
			override:   -3,
			multiplier: 1.0,
			minExpect:  1,
			maxExpect:  availableCPU,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Count(tt.override, tt.multiplier, tt.limit)

			if got < tt.minExpect {
				t.Errorf("Count(%d, %v, %d) = %d, expected >= %d", tt.override, tt.multiplier, tt.limit, got, tt.minExpect)
			}
			if got > tt.maxExpect {
				t.Errorf("Count(%d, %v, %d) = %d, expected <= %d", tt.override, tt.multiplier, tt.limit, got, tt.maxExpect)
			}
		})
	}
}

func TestForIODoublesForCPU(t *testing.T) {
	t.Parallel()

	cpu := ForCPU(0, 0)
	io := ForIO(0, 0)
	if io != cpu*2 {
		t.Errorf("ForIO = %d, want 2 x ForCPU (%d)", io, cpu)
	}
}

func TestHelpersPassOverride(t *testing.T) {
	t.Parallel()

	if got := ForCPU(3, 0); got != 3 {
		t.Errorf("ForCPU(3, 0) = %d, want 3", got)
	}
	if got := ForIO(3, 2); got != 2 {
		t.Errorf("ForIO(3, 2) = %d, want 2", got)
	}
}
