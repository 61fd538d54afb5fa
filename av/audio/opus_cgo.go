//go:build cgo

package audio

import (
	"fmt"

	"gopkg.in/hraban/opus.v2"
)

// probeNative opens and discards one decoder to prove libopus is linked and working.
func probeNative() (string, error) {
	if _, err := opus.NewDecoder(DefaultSampleRate, DefaultChannels); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCodecUnavailable, err)
	}
	return opus.Version(), nil
}

// opusSession is a libopus decoder state owned by exactly one stream.
type opusSession struct {
	dec      *opus.Decoder
	channels int
}

func newCodecSession(format Format) (codecSession, error) {
	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, err
	}
	return &opusSession{dec: dec, channels: format.Channels}, nil
}

func (s *opusSession) decode(payload []byte, pcm []int16) (int, error) {
	return s.dec.Decode(payload, pcm)
}

// conceal asks libopus to extrapolate len(pcm)/channels samples from its
// internal state.
func (s *opusSession) conceal(pcm []int16) (int, error) {
	if err := s.dec.DecodePLC(pcm); err != nil {
		return 0, err
	}
	return len(pcm) / s.channels, nil
}

// release drops the decoder state. libopus state lives in Go memory here, so
// there is no C free to call.
func (s *opusSession) release() {
	s.dec = nil
}
