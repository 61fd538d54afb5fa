//go:build !cgo

package audio

import "fmt"

func probeNative() (string, error) {
	return "", fmt.Errorf("%w: binary built without cgo", ErrCodecUnavailable)
}

func newCodecSession(Format) (codecSession, error) {
	return nil, ErrCodecUnavailable
}
