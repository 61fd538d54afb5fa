//go:build cgo

package audio

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/hraban/opus.v2"
)

// maxPacketSize bounds a single encoded packet; it fits a typical MTU.
const maxPacketSize = 1500

// Encoder produces Opus packets from PCM. The receive path never needs it;
// it exists to fabricate streams for tests and demos.
type Encoder struct {
	enc    *opus.Encoder
	format Format
	buf    []byte
}

// NewEncoder creates a VoIP-tuned Opus encoder at format and bitRate (bits/s).
func NewEncoder(format Format, bitRate int) (*Encoder, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	enc, err := opus.NewEncoder(format.SampleRate, format.Channels, opus.AppVoIP)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionInit, err)
	}
	if bitRate > 0 {
		if err := enc.SetBitrate(bitRate); err != nil {
			return nil, fmt.Errorf("set bit rate %d: %w", bitRate, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewEncoder",
		"sample_rate": format.SampleRate,
		"channels":    format.Channels,
		"bit_rate":    bitRate,
	}).Info("Opus encoder created")

	return &Encoder{enc: enc, format: format, buf: make([]byte, maxPacketSize)}, nil
}

// Encode encodes exactly one frame of interleaved samples
// (Format.FrameSize * Format.Channels) into a new packet.
func (e *Encoder) Encode(pcm []int16) ([]byte, error) {
	if e.enc == nil {
		return nil, ErrEncoderClosed
	}
	if want := e.format.FrameSize * e.format.Channels; len(pcm) != want {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrInvalidFormat, len(pcm), want)
	}

	n, err := e.enc.Encode(pcm, e.buf)
	if err != nil {
		return nil, fmt.Errorf("opus encode: %w", err)
	}
	packet := make([]byte, n)
	copy(packet, e.buf[:n])
	return packet, nil
}

// Close releases the encoder. Calling it again is a no-op.
func (e *Encoder) Close() error {
	e.enc = nil
	return nil
}
