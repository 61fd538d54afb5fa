package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Frame is one received unit of Opus audio, already decrypted and de-framed.
type Frame struct {
	SequenceNumber uint16
	Timestamp      uint32
	Payload        []byte
}

// openSessions counts codec sessions created by NewDecoder and not yet closed.
var openSessions atomic.Int64

// OpenSessions returns the number of live decoder sessions in the process.
// Tests compare it against a baseline to catch a missing Close.
func OpenSessions() int64 {
	return openSessions.Load()
}

// Decoder turns the frames of one stream into linear PCM.
//
// A Decoder owns its codec session exclusively and is not safe for concurrent
// use; the goroutine that receives a stream's frames should be the only caller.
// The creator must call Close on every exit path.
type Decoder struct {
	streamID uint32
	format   Format
	session  codecSession
	last     *position
	pcm      []int16
}

// NewDecoder opens a codec session for streamID.
//
// It fails with ErrCodecUnavailable when the process-wide probe says the
// backend is unusable and with ErrSessionInit when the session itself cannot
// be created.
func NewDecoder(streamID uint32, format Format) (*Decoder, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if !EnsureAvailable() {
		return nil, ErrCodecUnavailable
	}

	session, err := newCodecSession(format)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "NewDecoder",
			"stream_id":   streamID,
			"sample_rate": format.SampleRate,
			"channels":    format.Channels,
			"error":       err.Error(),
		}).Error("Failed to create opus session")
		return nil, fmt.Errorf("%w: stream %d: %w", ErrSessionInit, streamID, err)
	}

	return newDecoder(streamID, format, session), nil
}

func newDecoder(streamID uint32, format Format, session codecSession) *Decoder {
	openSessions.Add(1)

	logrus.WithFields(logrus.Fields{
		"function":    "NewDecoder",
		"stream_id":   streamID,
		"sample_rate": format.SampleRate,
		"channels":    format.Channels,
	}).Info("Stream decoder created")

	return &Decoder{
		streamID: streamID,
		format:   format,
		session:  session,
		pcm:      make([]int16, format.MaxFrameSize()*format.Channels),
	}
}

// StreamID returns the stream this decoder was opened for.
func (d *Decoder) StreamID() uint32 {
	return d.streamID
}

// Format returns the PCM format the decoder emits.
func (d *Decoder) Format() Format {
	return d.format
}

// LastSequence returns the sequence number of the last decoded frame and
// whether one is being tracked.
func (d *Decoder) LastSequence() (uint16, bool) {
	if d.last == nil {
		return 0, false
	}
	return d.last.sequence, true
}

// LastTimestamp returns the timestamp of the last decoded frame and whether
// one is being tracked.
func (d *Decoder) LastTimestamp() (uint32, bool) {
	if d.last == nil {
		return 0, false
	}
	return d.last.timestamp, true
}

// IsInOrder reports whether a frame with sequence seq should be decoded.
// Frames that fail the check are late or duplicated and should be dropped.
func (d *Decoder) IsInOrder(seq uint16) bool {
	if d.last == nil {
		return true
	}
	return SequenceInOrder(d.last.sequence, seq)
}

// WasPacketLost reports whether at least one frame is missing between the last
// decoded frame and seq. It does not change any state.
func (d *Decoder) WasPacketLost(seq uint16) bool {
	if d.last == nil {
		return false
	}
	return SequenceSkipped(d.last.sequence, seq)
}

// Decode decodes frame into interleaved PCM.
//
// A nil frame, or one with an empty payload, is a loss signal: the codec
// conceals one frame from its internal state and the tracked position is
// cleared, since the next real frame can no longer be checked against it.
//
// The returned slice is freshly allocated and holds exactly the samples the
// codec produced. A payload the codec rejects yields an error wrapping
// ErrMalformedFrame; the frame's position is still recorded.
func (d *Decoder) Decode(frame *Frame) ([]int16, error) {
	if d.session == nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Decoder.Decode",
			"stream_id": d.streamID,
		}).Error("Decode called on closed decoder")
		return nil, fmt.Errorf("stream %d: %w", d.streamID, ErrDecoderClosed)
	}

	if frame == nil || len(frame.Payload) == 0 {
		return d.conceal()
	}

	d.last = &position{sequence: frame.SequenceNumber, timestamp: frame.Timestamp}

	n, err := d.session.decode(frame.Payload, d.pcm)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":     "Decoder.Decode",
			"stream_id":    d.streamID,
			"sequence":     frame.SequenceNumber,
			"payload_size": len(frame.Payload),
			"error":        err.Error(),
		}).Warn("Opus decode failed")
		return nil, fmt.Errorf("%w: stream %d sequence %d: %w", ErrMalformedFrame, d.streamID, frame.SequenceNumber, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Decoder.Decode",
		"stream_id":    d.streamID,
		"sequence":     frame.SequenceNumber,
		"timestamp":    frame.Timestamp,
		"sample_count": n,
	}).Debug("Decoded opus frame")

	return d.copyOut(n), nil
}

func (d *Decoder) conceal() ([]int16, error) {
	d.last = nil

	n, err := d.session.conceal(d.pcm[:d.format.FrameSize*d.format.Channels])
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Decoder.Decode",
			"stream_id": d.streamID,
			"error":     err.Error(),
		}).Error("Packet loss concealment failed")
		return nil, fmt.Errorf("stream %d: conceal lost frame: %w", d.streamID, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Decoder.Decode",
		"stream_id":    d.streamID,
		"sample_count": n,
	}).Debug("Concealed lost frame")

	return d.copyOut(n), nil
}

func (d *Decoder) copyOut(samplesPerChannel int) []int16 {
	total := samplesPerChannel * d.format.Channels
	if total > len(d.pcm) {
		total = len(d.pcm)
	}
	out := make([]int16, total)
	copy(out, d.pcm[:total])
	return out
}

// Closed reports whether Close has released the codec session.
func (d *Decoder) Closed() bool {
	return d.session == nil
}

// Close releases the codec session. Calling it again is a no-op.
func (d *Decoder) Close() error {
	if d.session == nil {
		return nil
	}
	d.session.release()
	d.session = nil
	d.last = nil
	openSessions.Add(-1)

	logrus.WithFields(logrus.Fields{
		"function":  "Decoder.Close",
		"stream_id": d.streamID,
	}).Info("Stream decoder closed")

	return nil
}
