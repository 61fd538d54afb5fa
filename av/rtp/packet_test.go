package rtp

import (
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPacketizer(t *testing.T) {
	tests := []struct {
		name string
		ssrc uint32
	}{
		{"Fixed SSRC", 0xCAFEBABE},
		{"Random SSRC", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPacketizer(tt.ssrc, OpusPayloadType, 0)
			require.NoError(t, err)
			if tt.ssrc != 0 {
				assert.Equal(t, tt.ssrc, p.SSRC())
			}
		})
	}
}

func TestPacketizerAdvancesAndWraps(t *testing.T) {
	p, err := NewPacketizer(1234, OpusPayloadType, 65534)
	require.NoError(t, err)

	wantSeq := []uint16{65534, 65535, 0, 1}
	for i, seq := range wantSeq {
		data, err := p.Packetize([]byte{0x78, byte(i)}, 960)
		require.NoError(t, err)

		packet := &rtp.Packet{}
		require.NoError(t, packet.Unmarshal(data))
		assert.Equal(t, uint8(2), packet.Version)
		assert.Equal(t, uint8(OpusPayloadType), packet.PayloadType)
		assert.Equal(t, seq, packet.SequenceNumber)
		assert.Equal(t, uint32(i*960), packet.Timestamp)
		assert.Equal(t, uint32(1234), packet.SSRC)
		assert.Equal(t, []byte{0x78, byte(i)}, packet.Payload)
	}
}

func TestDepacketizerParse(t *testing.T) {
	p, err := NewPacketizer(99, OpusPayloadType, 500)
	require.NoError(t, err)
	raw, err := p.Packetize([]byte{1, 2, 3}, 960)
	require.NoError(t, err)

	d := NewDepacketizer(OpusPayloadType)
	ssrc, frame, err := d.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint32(99), ssrc)
	assert.Equal(t, uint16(500), frame.SequenceNumber)
	assert.Equal(t, uint32(0), frame.Timestamp)
	assert.Equal(t, []byte{1, 2, 3}, frame.Payload)

	// Payload must not alias the datagram buffer.
	raw[len(raw)-1] = 0xEE
	assert.Equal(t, byte(3), frame.Payload[2])
}

func TestDepacketizerErrors(t *testing.T) {
	d := NewDepacketizer(OpusPayloadType)

	_, _, err := d.Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyPacket)

	_, _, err = d.Parse([]byte{0x80, 0x6F})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal RTP packet")

	other, err := NewPacketizer(5, 0, 0)
	require.NoError(t, err)
	raw, err := other.Packetize([]byte{0xFF}, 160)
	require.NoError(t, err)

	ssrc, _, err := d.Parse(raw)
	assert.ErrorIs(t, err, ErrNotAudio)
	assert.Equal(t, uint32(5), ssrc)

	ssrc, frame, err := NewDepacketizer(0).Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), ssrc)
	assert.Equal(t, []byte{0xFF}, frame.Payload)
}

func TestStatisticsLossRate(t *testing.T) {
	assert.Zero(t, Statistics{}.LossRate())
	assert.InDelta(t, 0.25, Statistics{PacketsReceived: 3, PacketsLost: 1}.LossRate(), 1e-9)
}
