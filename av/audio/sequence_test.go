package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceInOrder(t *testing.T) {
	tests := []struct {
		name string
		last uint16
		next uint16
		want bool
	}{
		{"next_frame", 5, 6, true},
		{"forward_jump", 5, 500, true},
		{"duplicate", 5, 5, false},
		{"one_late", 6, 5, false},
		{"ten_late", 20, 10, false},
		{"eleven_back_is_wrap", 20, 9, true},
		{"wrap_65535_to_0", 65535, 0, true},
		{"wrap_65534_to_1", 65534, 1, true},
		{"late_across_wrap", 2, 65534, true},
		{"max_forward", 0, 65535, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SequenceInOrder(tt.last, tt.next))
		})
	}
}

func TestSequenceInOrderMatchesDefinition(t *testing.T) {
	// Sweep a spread of reference points, including both ends of the range.
	for _, a := range []uint16{0, 1, 9, 10, 11, 1000, 32767, 32768, 65525, 65534, 65535} {
		for b := 0; b <= 0xFFFF; b++ {
			next := uint16(b)
			want := next > a || uint16(a-next) > ReorderWindow
			if got := SequenceInOrder(a, next); got != want {
				t.Fatalf("SequenceInOrder(%d, %d) = %v, want %v", a, next, got, want)
			}
		}
	}
}

func TestSequenceSkipped(t *testing.T) {
	tests := []struct {
		name string
		last uint16
		next uint16
		want bool
		gap  uint16
	}{
		{"consecutive", 6, 7, false, 0},
		{"one_missing", 6, 8, true, 1},
		{"three_missing", 100, 104, true, 3},
		{"late", 6, 5, false, 0},
		{"duplicate", 6, 6, false, 0},
		{"wrap_consecutive", 65535, 0, false, 0},
		{"wrap_one_missing", 65535, 1, true, 1},
		{"wrap_five_missing", 65535, 5, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SequenceSkipped(tt.last, tt.next))
			if tt.want {
				assert.Equal(t, tt.gap, SequenceGap(tt.last, tt.next))
			}
		})
	}
}

func TestSequenceSkippedMatchesDefinition(t *testing.T) {
	for _, a := range []uint16{0, 1, 6, 32767, 65534, 65535} {
		for b := 0; b <= 0xFFFF; b++ {
			next := uint16(b)
			want := next > uint16(a+1)
			if got := SequenceSkipped(a, next); got != want {
				t.Fatalf("SequenceSkipped(%d, %d) = %v, want %v", a, next, got, want)
			}
		}
	}
}
