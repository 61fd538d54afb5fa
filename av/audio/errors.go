package audio

import "errors"

// Sentinel errors for audio package operations.
// Classify failures with errors.Is; codec errors are wrapped, never replaced.

// Availability and construction errors.
var (
	// ErrCodecUnavailable indicates the native Opus backend cannot be used
	// in this process (library missing, or a binary built without cgo).
	ErrCodecUnavailable = errors.New("opus codec unavailable")

	// ErrSessionInit indicates a codec session could not be created for a stream.
	ErrSessionInit = errors.New("opus session initialization failed")

	// ErrInvalidFormat indicates an unsupported sample rate, channel count or frame size.
	ErrInvalidFormat = errors.New("invalid opus format")
)

// Per-call errors.
var (
	// ErrMalformedFrame indicates the codec rejected an encoded payload.
	ErrMalformedFrame = errors.New("malformed opus frame")

	// ErrDecoderClosed indicates a decode was attempted after Close.
	ErrDecoderClosed = errors.New("decoder closed")

	// ErrEncoderClosed indicates an encode was attempted after Close.
	ErrEncoderClosed = errors.New("encoder closed")
)
