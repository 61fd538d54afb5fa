// Package rtp converts between RTP packets and the audio frames the stream
// decoders consume. It uses the pion/rtp library for packet handling.
package rtp

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/opd-ai/voicerx/av/audio"
	"github.com/pion/rtp"
	"github.com/sirupsen/logrus"
)

// OpusPayloadType is the dynamic payload type commonly negotiated for Opus (RFC 7587).
const OpusPayloadType = 111

var (
	// ErrEmptyPacket indicates a zero-length datagram.
	ErrEmptyPacket = errors.New("RTP data cannot be empty")

	// ErrNotAudio indicates a packet whose payload type does not match the configured one.
	ErrNotAudio = errors.New("unexpected RTP payload type")
)

// Packetizer wraps encoded audio frames into RTP packets for one SSRC.
//
// It keeps the sender side of the sequence and timestamp counters, both
// wrapping at their field width.
type Packetizer struct {
	ssrc           uint32
	payloadType    uint8
	sequenceNumber uint16
	timestamp      uint32
}

// NewPacketizer creates a packetizer whose first packet carries firstSequence.
// A zero ssrc is replaced with a random one.
func NewPacketizer(ssrc uint32, payloadType uint8, firstSequence uint16) (*Packetizer, error) {
	if ssrc == 0 {
		ssrcBytes := make([]byte, 4)
		if _, err := rand.Read(ssrcBytes); err != nil {
			return nil, fmt.Errorf("failed to generate SSRC: %w", err)
		}
		ssrc = binary.BigEndian.Uint32(ssrcBytes)
	}

	logrus.WithFields(logrus.Fields{
		"function":       "NewPacketizer",
		"ssrc":           ssrc,
		"payload_type":   payloadType,
		"first_sequence": firstSequence,
	}).Debug("Created RTP packetizer")

	return &Packetizer{
		ssrc:           ssrc,
		payloadType:    payloadType,
		sequenceNumber: firstSequence,
	}, nil
}

// SSRC returns the synchronization source of generated packets.
func (p *Packetizer) SSRC() uint32 {
	return p.ssrc
}

// Packetize marshals one encoded frame and advances the sequence number by one
// and the timestamp by sampleCount.
func (p *Packetizer) Packetize(payload []byte, sampleCount uint32) ([]byte, error) {
	packet := &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			PayloadType:    p.payloadType,
			SequenceNumber: p.sequenceNumber,
			Timestamp:      p.timestamp,
			SSRC:           p.ssrc,
		},
		Payload: payload,
	}

	data, err := packet.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RTP packet: %w", err)
	}

	p.sequenceNumber++
	p.timestamp += sampleCount
	return data, nil
}

// Depacketizer extracts audio frames from RTP packets.
type Depacketizer struct {
	payloadType uint8
	filter      bool
}

// NewDepacketizer returns a depacketizer that only accepts payloadType.
// A zero payloadType accepts every packet.
func NewDepacketizer(payloadType uint8) *Depacketizer {
	return &Depacketizer{payloadType: payloadType, filter: payloadType != 0}
}

// Parse decodes one RTP packet into its SSRC and an audio frame. The frame
// payload is a copy, so the caller may reuse raw.
func (d *Depacketizer) Parse(raw []byte) (uint32, audio.Frame, error) {
	if len(raw) == 0 {
		return 0, audio.Frame{}, ErrEmptyPacket
	}

	packet := &rtp.Packet{}
	if err := packet.Unmarshal(raw); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Depacketizer.Parse",
			"data_size": len(raw),
			"error":     err.Error(),
		}).Debug("Failed to unmarshal RTP packet")
		return 0, audio.Frame{}, fmt.Errorf("failed to unmarshal RTP packet: %w", err)
	}

	if d.filter && packet.PayloadType != d.payloadType {
		return packet.SSRC, audio.Frame{}, fmt.Errorf("%w: got %d, want %d", ErrNotAudio, packet.PayloadType, d.payloadType)
	}

	payload := make([]byte, len(packet.Payload))
	copy(payload, packet.Payload)

	return packet.SSRC, audio.Frame{
		SequenceNumber: packet.SequenceNumber,
		Timestamp:      packet.Timestamp,
		Payload:        payload,
	}, nil
}
