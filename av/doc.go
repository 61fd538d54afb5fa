// Package av receives the audio side of a voice session.
//
// A session carries one Opus stream per speaker. The Receiver keeps exactly one
// stream decoder per stream id and runs every incoming frame through the same
// steps:
//
//  1. Reorder check: a frame at most audio.ReorderWindow sequence numbers
//     behind the last one is late or duplicated and is dropped.
//  2. Loss check: if sequence numbers were skipped since the last decoded
//     frame, up to Config.MaxConcealedFrames frames are synthesized by packet
//     loss concealment and delivered first.
//  3. Decode: the payload is decoded and the PCM is handed to the Sink.
//
// # Sub-Packages
//
//   - av/audio: codec availability gate, per-stream Decoder, sequence math
//   - av/rtp: RTP packetization and parsing with pion/rtp, stream statistics
//
// # Usage
//
//	cfg, err := av.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	receiver, err := av.NewReceiver(cfg, func(ssrc uint32, pcm []int16, concealed bool) {
//	    mixer.Write(ssrc, pcm)
//	})
//	if errors.Is(err, av.ErrCodecUnavailable) {
//	    // run without audio receive
//	}
//	defer receiver.Close()
//
//	for datagram := range packets {
//	    if err := receiver.HandlePacket(datagram); err != nil {
//	        log.Debug(err)
//	    }
//	}
//
// Layers that already demultiplex and decrypt frames call HandleFrame with the
// stream id directly, and HandleLoss when they know a frame will never arrive.
//
// # Configuration
//
// LoadConfig reads these environment variables on top of DefaultConfig:
//
//	VOICERX_SAMPLE_RATE           output sample rate (8000, 12000, 16000, 24000, 48000)
//	VOICERX_CHANNELS              1 or 2
//	VOICERX_FRAME_SIZE            samples per channel in one concealed frame
//	VOICERX_MAX_CONCEALED_FRAMES  frames synthesized per gap, 0 disables
//	VOICERX_CONCEAL_ON_ERROR      conceal after an undecodable payload
//	VOICERX_PAYLOAD_TYPE          RTP payload type accepted, 0 accepts any
//
// # Metrics
//
// Receive path counters and the open stream gauge are registered with the
// default Prometheus registry under the voicerx_ prefix.
//
// # Resource Release
//
// Every stream decoder holds a native codec session. CloseStream and Close
// release them deterministically; audio.OpenSessions reports how many are
// still live.
package av
