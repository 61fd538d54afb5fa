package audio

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Opus output format defaults used by voice streams: 48kHz stereo, 20ms frames.
const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2
	DefaultFrameSize  = 960

	// maxFrameDurationMs is the longest packet duration Opus can carry (RFC 6716).
	maxFrameDurationMs = 120
)

// DefaultFormat is the output format the decoder is configured with unless
// the caller asks for something else.
var DefaultFormat = Format{
	SampleRate: DefaultSampleRate,
	Channels:   DefaultChannels,
	FrameSize:  DefaultFrameSize,
}

// Format describes the linear PCM a codec session emits.
//
// FrameSize is the number of samples per channel synthesized for one
// concealed (lost) frame.
type Format struct {
	SampleRate int
	Channels   int
	FrameSize  int
}

// SupportedSampleRates returns the sample rates an Opus decoder can be opened at.
func SupportedSampleRates() []int {
	return []int{8000, 12000, 16000, 24000, 48000}
}

// MaxFrameSize returns the largest number of samples per channel a single
// decode call can produce at this format's sample rate.
func (f Format) MaxFrameSize() int {
	return f.SampleRate * maxFrameDurationMs / 1000
}

// Validate checks the format against what Opus accepts.
//
// Frame durations must be 2.5, 5, 10, 20, 40 or 60 ms.
func (f Format) Validate() error {
	supported := false
	for _, rate := range SupportedSampleRates() {
		if f.SampleRate == rate {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, f.SampleRate)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, f.Channels)
	}

	// Compare in tenths of a millisecond so 2.5ms stays exact.
	tenths := f.FrameSize * 10000 / f.SampleRate
	if f.FrameSize*10000%f.SampleRate == 0 {
		switch tenths {
		case 25, 50, 100, 200, 400, 600:
			return nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Format.Validate",
		"frame_size":  f.FrameSize,
		"sample_rate": f.SampleRate,
	}).Debug("Rejected frame size")

	return fmt.Errorf("%w: frame size %d samples at %d Hz - must be 2.5, 5, 10, 20, 40, or 60 ms",
		ErrInvalidFormat, f.FrameSize, f.SampleRate)
}

// codecSession is one stateful Opus decoder bound to a single stream.
//
// Implementations are not safe for concurrent use. decode and conceal write
// interleaved samples into pcm and return the number of samples per channel.
type codecSession interface {
	decode(payload []byte, pcm []int16) (int, error)
	conceal(pcm []int16) (int, error)
	release()
}
