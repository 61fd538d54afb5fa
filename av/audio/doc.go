// Package audio decodes per-stream Opus audio into PCM.
//
// # Codec Availability
//
// The native Opus backend is probed once per process. EnsureAvailable runs
// the probe on first use and caches the answer; IsSupported and
// IsInitialized read the cache without side effects. A failed probe is
// reported as false, never as a panic, and NewDecoder refuses to run with
// ErrCodecUnavailable.
//
// Builds with cgo use libopus through gopkg.in/hraban/opus.v2. Builds without
// cgo compile a stub backend that always reports the codec unavailable.
//
// # Stream Decoding
//
// Each stream gets its own Decoder:
//
//	dec, err := audio.NewDecoder(ssrc, audio.DefaultFormat)
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
//	if !dec.IsInOrder(frame.SequenceNumber) {
//	    return nil // late or duplicate
//	}
//	if dec.WasPacketLost(frame.SequenceNumber) {
//	    concealed, _ := dec.Decode(nil)
//	    play(concealed)
//	}
//	pcm, err := dec.Decode(&frame)
//
// Check order before loss. Once the last sequence is 65535, WasPacketLost is
// true for every value but 0 and 65535, stale ones included.
//
// Sequence numbers are 16-bit and wrap. SequenceInOrder accepts forward
// progress and any backward step larger than ReorderWindow, which covers the
// jump from 65535 to 0. SequenceSkipped reports a gap only when next is more
// than one ahead of last under modulo 2^16 arithmetic.
//
// A Decoder is not safe for concurrent use. Close is idempotent and
// OpenSessions counts decoders that have not been closed yet.
//
// # Test Signals
//
// Encoder and GenerateTone produce real Opus payloads for tests and demos.
package audio
