package av

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	OpenStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voicerx_open_streams",
		Help: "Number of stream decoders currently open",
	})
)

// Counters
var (
	PacketsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerx_packets_received_total",
		Help: "Total audio frames handed to receivers",
	})
	FramesDecodedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerx_frames_decoded_total",
		Help: "Total frames decoded from a payload",
	})
	FramesConcealedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerx_frames_concealed_total",
		Help: "Total frames synthesized by packet loss concealment",
	})
	OutOfOrderTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerx_out_of_order_total",
		Help: "Total late or duplicate frames dropped before decode",
	})
	DecodeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerx_opus_decode_errors_total",
		Help: "Total Opus payloads rejected by the codec",
	})
	SequenceGapsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicerx_sequence_gaps_total",
		Help: "Total RTP sequence number gaps detected",
	})
)
