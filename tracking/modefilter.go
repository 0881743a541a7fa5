package tracking

// ModeFilter is a bounded-history majority-vote debouncer: a fixed-capacity
// ring buffer of integer samples whose mode is the filtered value. The buffer
// starts filled with -1 ("no zone") and is never reset.
type ModeFilter struct {
	samples []int
	cursor  int
}

// NewModeFilter creates a filter over a window of the given size.
func NewModeFilter(size int) *ModeFilter {
	samples := make([]int, size)
	for i := range samples {
		samples[i] = -1
	}
	return &ModeFilter{samples: samples}
}

// Push writes a sample over the oldest slot and returns the mode of the
// current window. On a tie, the value encountered first in buffer order wins;
// the tie break is deterministic and part of the observable behavior.
func (f *ModeFilter) Push(v int) int {
	f.samples[f.cursor] = v
	f.cursor = (f.cursor + 1) % len(f.samples)

	mode := f.samples[0]
	best := 0
	for i, s := range f.samples {
		count := 0
		for _, other := range f.samples[i:] {
			if other == s {
				count++
			}
		}
		// Counting only from i onward keeps earlier occurrences authoritative:
		// a value seen before i already had its full count tallied.
		if count > best {
			best = count
			mode = s
		}
	}
	return mode
}
