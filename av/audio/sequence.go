package audio

// ReorderWindow is the largest backward sequence step still treated as a late
// or duplicate frame. A larger backward step is taken to mean the 16-bit
// counter wrapped (or the sender restarted) and the frame is accepted.
//
// The value is a heuristic: it does not tell a restart apart from a wrap.
const ReorderWindow = 10

// position is the last accepted frame of a stream. A nil *position means
// nothing has been accepted yet, so a real sequence number can never collide
// with the "unset" state.
type position struct {
	sequence  uint16
	timestamp uint32
}

// SequenceInOrder reports whether next may follow last. All arithmetic is
// modulo 2^16.
func SequenceInOrder(last, next uint16) bool {
	return next > last || last-next > ReorderWindow
}

// SequenceSkipped reports whether at least one sequence number lies strictly
// between last and next. last+1 wraps, so after 65535 the expected successor is 0.
func SequenceSkipped(last, next uint16) bool {
	return next > last+1
}

// SequenceGap returns how many sequence numbers were skipped between last and
// next. It is only meaningful when SequenceSkipped(last, next) is true.
func SequenceGap(last, next uint16) uint16 {
	return next - last - 1
}
