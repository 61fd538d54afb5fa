package av

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/voicerx/av/audio"
	"github.com/opd-ai/voicerx/av/rtp"
	"github.com/sirupsen/logrus"
)

// Sink receives decoded PCM for a stream. concealed is true when the samples
// were synthesized for a lost frame rather than decoded from a payload.
//
// The receiver calls the sink after releasing its lock, so a sink may call
// back into the receiver.
type Sink func(streamID uint32, pcm []int16, concealed bool)

// streamDecoder is the subset of *audio.Decoder the receiver drives.
type streamDecoder interface {
	IsInOrder(seq uint16) bool
	WasPacketLost(seq uint16) bool
	LastSequence() (uint16, bool)
	Decode(frame *audio.Frame) ([]int16, error)
	Close() error
}

type decoderFactory func(streamID uint32, format audio.Format) (streamDecoder, error)

func newAudioDecoder(streamID uint32, format audio.Format) (streamDecoder, error) {
	return audio.NewDecoder(streamID, format)
}

type stream struct {
	decoder streamDecoder
	stats   rtp.Statistics
}

type delivery struct {
	pcm       []int16
	concealed bool
}

// Receiver owns one decoder per incoming stream of a voice session and runs
// the receive path for each: reorder drop, loss detection and concealment,
// decode, then delivery to the sink.
type Receiver struct {
	mu sync.Mutex

	cfg          Config
	sink         Sink
	newDecoder   decoderFactory
	depacketizer *rtp.Depacketizer

	streams map[uint32]*stream
	closed  bool
}

// NewReceiver creates a receiver that delivers decoded audio to sink.
//
// It consults the codec availability gate first and returns
// ErrCodecUnavailable when Opus cannot be used in this process.
func NewReceiver(cfg Config, sink Sink) (*Receiver, error) {
	if !audio.EnsureAvailable() {
		logrus.WithFields(logrus.Fields{
			"function": "NewReceiver",
			"error":    fmt.Sprint(audio.ProbeError()),
		}).Warn("Refusing to create receiver without opus support")
		return nil, ErrCodecUnavailable
	}
	return newReceiver(cfg, sink, newAudioDecoder)
}

func newReceiver(cfg Config, sink Sink, factory decoderFactory) (*Receiver, error) {
	if err := cfg.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewReceiver",
			"error":    err.Error(),
		}).Error("Receiver configuration rejected")
		return nil, err
	}
	if sink == nil {
		return nil, errors.New("sink cannot be nil")
	}

	logrus.WithFields(logrus.Fields{
		"function":             "NewReceiver",
		"sample_rate":          cfg.Format.SampleRate,
		"channels":             cfg.Format.Channels,
		"frame_size":           cfg.Format.FrameSize,
		"max_concealed_frames": cfg.MaxConcealedFrames,
		"payload_type":         cfg.PayloadType,
	}).Info("Receiver created")

	return &Receiver{
		cfg:          cfg,
		sink:         sink,
		newDecoder:   factory,
		depacketizer: rtp.NewDepacketizer(cfg.PayloadType),
		streams:      make(map[uint32]*stream),
	}, nil
}

// Open creates the decoder for streamID. It fails with ErrStreamExists when a
// decoder is already open for that stream.
func (r *Receiver) Open(streamID uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrReceiverClosed
	}
	if _, ok := r.streams[streamID]; ok {
		return fmt.Errorf("stream %d: %w", streamID, ErrStreamExists)
	}
	_, err := r.openLocked(streamID)
	return err
}

func (r *Receiver) openLocked(streamID uint32) (*stream, error) {
	dec, err := r.newDecoder(streamID, r.cfg.Format)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Receiver.Open",
			"stream_id": streamID,
			"error":     err.Error(),
		}).Error("Failed to open stream decoder")
		return nil, err
	}

	st := &stream{decoder: dec}
	r.streams[streamID] = st
	OpenStreams.Inc()

	logrus.WithFields(logrus.Fields{
		"function":     "Receiver.Open",
		"stream_id":    streamID,
		"stream_count": len(r.streams),
	}).Debug("Stream opened")

	return st, nil
}

// HandleFrame runs one received frame through the stream's decoder, opening
// the decoder on first sight of streamID.
//
// Late or duplicate frames are dropped without error before anything else
// happens. A detected gap is then concealed with up to MaxConcealedFrames
// synthesized frames ahead of the new frame. An empty payload is concealed.
// A payload the codec rejects is counted and, when ConcealOnDecodeError is
// set, replaced with one concealed frame; the decode error is still returned.
func (r *Receiver) HandleFrame(streamID uint32, frame audio.Frame) error {
	out, err := r.handleFrame(streamID, frame)
	r.deliver(streamID, out)
	return err
}

func (r *Receiver) handleFrame(streamID uint32, frame audio.Frame) ([]delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrReceiverClosed
	}

	st, ok := r.streams[streamID]
	if !ok {
		var err error
		if st, err = r.openLocked(streamID); err != nil {
			return nil, err
		}
	}

	st.stats.PacketsReceived++
	PacketsReceivedTotal.Inc()

	seq := frame.SequenceNumber

	// Order first: after 65535 every stale sequence number also looks like a
	// forward skip to WasPacketLost.
	if !st.decoder.IsInOrder(seq) {
		st.stats.OutOfOrder++
		OutOfOrderTotal.Inc()

		last, _ := st.decoder.LastSequence()
		logrus.WithFields(logrus.Fields{
			"function":      "Receiver.HandleFrame",
			"stream_id":     streamID,
			"last_sequence": last,
			"sequence":      seq,
		}).Debug("Dropping late frame")
		return nil, nil
	}

	var out []delivery
	if st.decoder.WasPacketLost(seq) {
		last, _ := st.decoder.LastSequence()
		gap := audio.SequenceGap(last, seq)
		st.stats.Gaps++
		st.stats.PacketsLost += uint64(gap)
		SequenceGapsTotal.Inc()

		logrus.WithFields(logrus.Fields{
			"function":      "Receiver.HandleFrame",
			"stream_id":     streamID,
			"last_sequence": last,
			"sequence":      seq,
			"gap":           gap,
		}).Debug("Sequence gap detected")

		conceal := int(gap)
		if conceal > r.cfg.MaxConcealedFrames {
			conceal = r.cfg.MaxConcealedFrames
		}
		for i := 0; i < conceal; i++ {
			pcm, err := r.concealLocked(streamID, st)
			if err != nil {
				return out, err
			}
			out = append(out, delivery{pcm: pcm, concealed: true})
		}
	}

	if len(frame.Payload) == 0 {
		pcm, err := r.concealLocked(streamID, st)
		if err != nil {
			return out, err
		}
		return append(out, delivery{pcm: pcm, concealed: true}), nil
	}

	pcm, err := st.decoder.Decode(&frame)
	if err != nil {
		if !errors.Is(err, audio.ErrMalformedFrame) {
			return out, err
		}

		st.stats.DecodeErrors++
		DecodeErrorsTotal.Inc()

		logrus.WithFields(logrus.Fields{
			"function":     "Receiver.HandleFrame",
			"stream_id":    streamID,
			"sequence":     seq,
			"payload_size": len(frame.Payload),
			"error":        err.Error(),
		}).Warn("Discarding undecodable frame")

		if r.cfg.ConcealOnDecodeError {
			concealed, cerr := r.concealLocked(streamID, st)
			if cerr == nil {
				out = append(out, delivery{pcm: concealed, concealed: true})
			}
		}
		return out, err
	}

	st.stats.FramesDecoded++
	FramesDecodedTotal.Inc()
	return append(out, delivery{pcm: pcm}), nil
}

func (r *Receiver) concealLocked(streamID uint32, st *stream) ([]int16, error) {
	pcm, err := st.decoder.Decode(nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Receiver.conceal",
			"stream_id": streamID,
			"error":     err.Error(),
		}).Error("Failed to conceal lost frame")
		return nil, err
	}
	st.stats.FramesConcealed++
	FramesConcealedTotal.Inc()
	return pcm, nil
}

// HandlePacket parses an RTP datagram and hands its frame to HandleFrame,
// keyed by SSRC.
func (r *Receiver) HandlePacket(raw []byte) error {
	ssrc, frame, err := r.depacketizer.Parse(raw)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Receiver.HandlePacket",
			"ssrc":      ssrc,
			"data_size": len(raw),
			"error":     err.Error(),
		}).Debug("Ignoring unparseable packet")
		return err
	}
	return r.HandleFrame(ssrc, frame)
}

// HandleLoss conceals one frame for streamID. Upstream layers call it when
// they know a frame was lost, for example after a failed decryption.
func (r *Receiver) HandleLoss(streamID uint32) error {
	out, err := r.handleLoss(streamID)
	r.deliver(streamID, out)
	return err
}

func (r *Receiver) handleLoss(streamID uint32) ([]delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrReceiverClosed
	}
	st, ok := r.streams[streamID]
	if !ok {
		return nil, fmt.Errorf("stream %d: %w", streamID, ErrStreamNotFound)
	}

	pcm, err := r.concealLocked(streamID, st)
	if err != nil {
		return nil, err
	}
	return []delivery{{pcm: pcm, concealed: true}}, nil
}

func (r *Receiver) deliver(streamID uint32, out []delivery) {
	for _, d := range out {
		r.sink(streamID, d.pcm, d.concealed)
	}
}

// Stats returns a snapshot of the counters for streamID.
func (r *Receiver) Stats(streamID uint32) (rtp.Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.streams[streamID]
	if !ok {
		return rtp.Statistics{}, fmt.Errorf("stream %d: %w", streamID, ErrStreamNotFound)
	}
	return st.stats, nil
}

// StreamCount returns the number of open stream decoders.
func (r *Receiver) StreamCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.streams)
}

// CloseStream releases the decoder for streamID.
func (r *Receiver) CloseStream(streamID uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.streams[streamID]
	if !ok {
		return fmt.Errorf("stream %d: %w", streamID, ErrStreamNotFound)
	}
	delete(r.streams, streamID)
	return r.closeStreamLocked(streamID, st)
}

func (r *Receiver) closeStreamLocked(streamID uint32, st *stream) error {
	OpenStreams.Dec()

	logrus.WithFields(logrus.Fields{
		"function":         "Receiver.CloseStream",
		"stream_id":        streamID,
		"packets_received": st.stats.PacketsReceived,
		"frames_decoded":   st.stats.FramesDecoded,
		"frames_concealed": st.stats.FramesConcealed,
		"out_of_order":     st.stats.OutOfOrder,
		"decode_errors":    st.stats.DecodeErrors,
		"loss_rate":        st.stats.LossRate(),
	}).Info("Stream closed")

	return st.decoder.Close()
}

// Close releases every stream decoder. Calling it again is a no-op.
func (r *Receiver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	for id, st := range r.streams {
		if err := r.closeStreamLocked(id, st); err != nil {
			errs = append(errs, err)
		}
	}
	r.streams = make(map[uint32]*stream)

	logrus.WithFields(logrus.Fields{
		"function": "Receiver.Close",
	}).Info("Receiver closed")

	return errors.Join(errs...)
}
