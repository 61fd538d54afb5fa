package av

import (
	"errors"

	"github.com/opd-ai/voicerx/av/audio"
)

// Sentinel errors for av package operations.
// These errors enable reliable error classification using errors.Is().

// Receiver construction errors.
var (
	// ErrCodecUnavailable indicates the Opus backend cannot be used, so no
	// receiver may be built. It is the same value as audio.ErrCodecUnavailable.
	ErrCodecUnavailable = audio.ErrCodecUnavailable

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid receiver configuration")
)

// Stream registry errors.
var (
	// ErrStreamExists indicates a decoder is already open for this stream id.
	ErrStreamExists = errors.New("stream already open")

	// ErrStreamNotFound indicates no decoder is open for this stream id.
	ErrStreamNotFound = errors.New("stream not found")

	// ErrReceiverClosed indicates the receiver has been closed.
	ErrReceiverClosed = errors.New("receiver is closed")
)
