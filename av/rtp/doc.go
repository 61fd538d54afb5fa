// Package rtp provides RTP handling for received voice streams.
//
// It uses the pion/rtp library for standards-compliant packet parsing and
// serialization.
//
// # Parsing
//
// A Depacketizer turns a datagram into the stream's SSRC and an audio.Frame:
//
//	d := rtp.NewDepacketizer(rtp.OpusPayloadType)
//	ssrc, frame, err := d.Parse(datagram)
//
// The frame payload is copied, so the datagram buffer may be reused.
//
// # Packetization
//
// A Packetizer produces packets for one SSRC with wrapping sequence numbers
// and timestamps advancing by the frame's sample count. It can start at any
// sequence number, which makes wraparound easy to reproduce:
//
//	p, _ := rtp.NewPacketizer(0, rtp.OpusPayloadType, 65530)
//	datagram, err := p.Packetize(opusPayload, 960)
//
// # Statistics
//
// Statistics holds per-stream receive counters. LossRate relates the
// sequence numbers skipped to the number expected.
package rtp
