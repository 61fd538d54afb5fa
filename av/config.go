package av

import (
	"fmt"
	"os"
	"strconv"

	"github.com/opd-ai/voicerx/av/audio"
	"github.com/opd-ai/voicerx/av/rtp"
)

// Config controls how a Receiver decodes its streams.
type Config struct {
	// Format is the PCM format every stream decoder emits.
	Format audio.Format

	// MaxConcealedFrames caps how many lost frames are synthesized for one
	// detected sequence gap. Zero disables gap concealment.
	MaxConcealedFrames int

	// ConcealOnDecodeError makes the receiver follow a rejected payload with
	// one concealed frame instead of leaving a hole in the output.
	ConcealOnDecodeError bool

	// PayloadType filters packets handed to HandlePacket. Zero accepts any.
	PayloadType uint8
}

// DefaultConfig returns a Config for 48kHz stereo Opus voice.
func DefaultConfig() Config {
	return Config{
		Format:               audio.DefaultFormat,
		MaxConcealedFrames:   1,
		ConcealOnDecodeError: true,
		PayloadType:          rtp.OpusPayloadType,
	}
}

// LoadConfig starts from DefaultConfig and applies VOICERX_* environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.Format.SampleRate, err = getEnvInt("VOICERX_SAMPLE_RATE", cfg.Format.SampleRate); err != nil {
		return Config{}, err
	}
	if cfg.Format.Channels, err = getEnvInt("VOICERX_CHANNELS", cfg.Format.Channels); err != nil {
		return Config{}, err
	}
	if cfg.Format.FrameSize, err = getEnvInt("VOICERX_FRAME_SIZE", cfg.Format.FrameSize); err != nil {
		return Config{}, err
	}
	if cfg.MaxConcealedFrames, err = getEnvInt("VOICERX_MAX_CONCEALED_FRAMES", cfg.MaxConcealedFrames); err != nil {
		return Config{}, err
	}
	if cfg.ConcealOnDecodeError, err = getEnvBool("VOICERX_CONCEAL_ON_ERROR", cfg.ConcealOnDecodeError); err != nil {
		return Config{}, err
	}
	pt, err := getEnvInt("VOICERX_PAYLOAD_TYPE", int(cfg.PayloadType))
	if err != nil {
		return Config{}, err
	}
	if pt < 0 || pt > 127 {
		return Config{}, fmt.Errorf("%w: VOICERX_PAYLOAD_TYPE %d out of range", ErrInvalidConfig, pt)
	}
	cfg.PayloadType = uint8(pt)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values a Receiver cannot run with.
func (c *Config) Validate() error {
	if err := c.Format.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MaxConcealedFrames < 0 {
		return fmt.Errorf("%w: negative MaxConcealedFrames %d", ErrInvalidConfig, c.MaxConcealedFrames)
	}
	if c.PayloadType > 127 {
		return fmt.Errorf("%w: payload type %d out of range", ErrInvalidConfig, c.PayloadType)
	}
	return nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, key, v, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, key, v, err)
	}
	return b, nil
}
