package av

import (
	"testing"

	"github.com/opd-ai/voicerx/av/audio"
	"github.com/opd-ai/voicerx/av/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, audio.DefaultFormat, cfg.Format)
	assert.Equal(t, 1, cfg.MaxConcealedFrames)
	assert.True(t, cfg.ConcealOnDecodeError)
	assert.Equal(t, uint8(rtp.OpusPayloadType), cfg.PayloadType)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"Bad sample rate", func(c *Config) { c.Format.SampleRate = 44100 }},
		{"Bad channels", func(c *Config) { c.Format.Channels = 0 }},
		{"Bad frame size", func(c *Config) { c.Format.FrameSize = 1000 }},
		{"Negative concealment", func(c *Config) { c.MaxConcealedFrames = -1 }},
		{"Payload type too large", func(c *Config) { c.PayloadType = 200 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("VOICERX_SAMPLE_RATE", "16000")
	t.Setenv("VOICERX_CHANNELS", "1")
	t.Setenv("VOICERX_FRAME_SIZE", "320")
	t.Setenv("VOICERX_MAX_CONCEALED_FRAMES", "4")
	t.Setenv("VOICERX_CONCEAL_ON_ERROR", "false")
	t.Setenv("VOICERX_PAYLOAD_TYPE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, audio.Format{SampleRate: 16000, Channels: 1, FrameSize: 320}, cfg.Format)
	assert.Equal(t, 4, cfg.MaxConcealedFrames)
	assert.False(t, cfg.ConcealOnDecodeError)
	assert.Zero(t, cfg.PayloadType)
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"VOICERX_SAMPLE_RATE", "fast"},
		{"VOICERX_SAMPLE_RATE", "22050"},
		{"VOICERX_CHANNELS", "6"},
		{"VOICERX_CONCEAL_ON_ERROR", "maybe"},
		{"VOICERX_PAYLOAD_TYPE", "300"},
		{"VOICERX_MAX_CONCEALED_FRAMES", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
