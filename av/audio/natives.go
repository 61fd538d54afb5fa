package audio

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Gate caches whether the native Opus backend is usable.
//
// The probe runs at most once per Gate, no matter how many goroutines race on
// the first EnsureAvailable. After that every accessor is a plain atomic read.
type Gate struct {
	once        sync.Once
	probe       func() (string, error)
	initialized atomic.Bool
	supported   atomic.Bool

	// Written inside once before initialized is set; read only after.
	version  string
	probeErr error
}

// NewGate returns a gate that will run probe on first use. probe returns the
// backend version string, or an error when the backend cannot be used.
func NewGate(probe func() (string, error)) *Gate {
	return &Gate{probe: probe}
}

// EnsureAvailable runs the probe if it has not run yet and returns the cached
// result. An unavailable codec is reported as false, never as a panic.
func (g *Gate) EnsureAvailable() bool {
	g.once.Do(g.run)
	return g.supported.Load()
}

func (g *Gate) run() {
	version, err := g.probe()
	g.version = version
	g.probeErr = err
	g.supported.Store(err == nil)
	g.initialized.Store(true)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Gate.EnsureAvailable",
			"error":    err.Error(),
		}).Warn("Opus codec unavailable, audio decode disabled")
		return
	}
	logrus.WithFields(logrus.Fields{
		"function": "Gate.EnsureAvailable",
		"version":  version,
	}).Info("Opus codec available")
}

// IsSupported returns the cached probe result. It is false until the probe has run.
func (g *Gate) IsSupported() bool {
	return g.supported.Load()
}

// IsInitialized reports whether the probe has run.
func (g *Gate) IsInitialized() bool {
	return g.initialized.Load()
}

// Version returns the backend version reported by a successful probe.
func (g *Gate) Version() string {
	if !g.initialized.Load() {
		return ""
	}
	return g.version
}

// Err returns why the probe failed, or nil.
func (g *Gate) Err() error {
	if !g.initialized.Load() {
		return nil
	}
	return g.probeErr
}

var defaultGate = NewGate(probeNative)

// IsSupported reports whether the process-wide Opus probe succeeded.
func IsSupported() bool { return defaultGate.IsSupported() }

// IsInitialized reports whether the process-wide Opus probe has run.
func IsInitialized() bool { return defaultGate.IsInitialized() }

// EnsureAvailable probes the native Opus backend once per process and returns
// whether it can be used.
func EnsureAvailable() bool { return defaultGate.EnsureAvailable() }

// NativeVersion returns the libopus version string, or "" if unavailable.
func NativeVersion() string { return defaultGate.Version() }

// ProbeError returns why the process-wide probe failed.
func ProbeError() error { return defaultGate.Err() }
