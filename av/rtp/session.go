package rtp

// Statistics counts what happened to one stream's packets on the receive path.
type Statistics struct {
	PacketsReceived uint64
	FramesDecoded   uint64
	FramesConcealed uint64
	OutOfOrder      uint64
	DecodeErrors    uint64
	Gaps            uint64
	PacketsLost     uint64 // sequence numbers skipped across all gaps
}

// LossRate returns the fraction of expected packets that never arrived.
func (s Statistics) LossRate() float64 {
	expected := s.PacketsReceived + s.PacketsLost
	if expected == 0 {
		return 0
	}
	return float64(s.PacketsLost) / float64(expected)
}
