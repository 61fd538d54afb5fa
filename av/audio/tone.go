package audio

import "math"

// toneAmplitude leaves headroom below int16 full scale.
const toneAmplitude = 16000

// GenerateTone returns frames consecutive frames of an interleaved sine wave
// at frequency Hz, each Format.FrameSize samples per channel. Every channel
// carries the same signal. A negative frames count yields no frames.
func GenerateTone(format Format, frequency float64, frames int) [][]int16 {
	if frames < 0 {
		frames = 0
	}
	out := make([][]int16, frames)
	sample := 0
	for f := range out {
		frame := make([]int16, format.FrameSize*format.Channels)
		for i := 0; i < format.FrameSize; i++ {
			t := float64(sample) / float64(format.SampleRate)
			v := int16(toneAmplitude * math.Sin(2*math.Pi*frequency*t))
			for c := 0; c < format.Channels; c++ {
				frame[i*format.Channels+c] = v
			}
			sample++
		}
		out[f] = frame
	}
	return out
}
