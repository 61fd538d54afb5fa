package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportedSampleRates(t *testing.T) {
	assert.Equal(t, []int{8000, 12000, 16000, 24000, 48000}, SupportedSampleRates())
}

func TestFormatMaxFrameSize(t *testing.T) {
	assert.Equal(t, 5760, DefaultFormat.MaxFrameSize())
	assert.Equal(t, 1920, Format{SampleRate: 16000, Channels: 1, FrameSize: 320}.MaxFrameSize())
}

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		expectErr bool
	}{
		{"default", DefaultFormat, false},
		{"valid_2_5ms", Format{SampleRate: 48000, Channels: 1, FrameSize: 120}, false},
		{"valid_10ms_16k", Format{SampleRate: 16000, Channels: 1, FrameSize: 160}, false},
		{"valid_60ms", Format{SampleRate: 48000, Channels: 2, FrameSize: 2880}, false},
		{"valid_2_5ms_8k", Format{SampleRate: 8000, Channels: 1, FrameSize: 20}, false},
		{"bad_rate", Format{SampleRate: 44100, Channels: 2, FrameSize: 441}, true},
		{"bad_channels", Format{SampleRate: 48000, Channels: 3, FrameSize: 960}, true},
		{"zero_channels", Format{SampleRate: 48000, Channels: 0, FrameSize: 960}, true},
		{"bad_frame_size", Format{SampleRate: 48000, Channels: 1, FrameSize: 500}, true},
		{"zero_frame_size", Format{SampleRate: 48000, Channels: 1, FrameSize: 0}, true},
		{"120ms_not_a_frame", Format{SampleRate: 48000, Channels: 1, FrameSize: 5760}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateTone(t *testing.T) {
	frames := GenerateTone(DefaultFormat, 440, 3)

	assert.Len(t, frames, 3)
	for _, f := range frames {
		assert.Len(t, f, DefaultFrameSize*DefaultChannels)
	}
	// Channels carry the same signal.
	assert.Equal(t, frames[1][10], frames[1][11])
	assert.Equal(t, int16(0), frames[0][0])
}

func TestGenerateToneNegativeFrames(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Empty(t, GenerateTone(DefaultFormat, 440, -1))
	})
	assert.Empty(t, GenerateTone(DefaultFormat, 440, 0))
}
