package ocr

import (
	"errors"
	"image"
	"sync"
)

// ErrUnavailable is returned by Capability.Recognize when no OCR backend
// could be initialized. Callers should fall back to geometric text location.
var ErrUnavailable = errors.New("ocr: no recognition backend available")

// Capability reports whether real text recognition is available and provides
// access to the engine when it is. The backend is probed exactly once per
// process; a failed probe does not abort analysis, it degrades it.
type Capability struct {
	engine Engine
	err    error
}

var (
	probeOnce sync.Once
	probed    *Capability
)

// Probe initializes the OCR backend on first call and returns the shared
// capability. Subsequent calls return the same value without re-probing.
func Probe() *Capability {
	probeOnce.Do(func() {
		engine, err := newEngine()
		probed = &Capability{engine: engine, err: err}
	})
	return probed
}

// Available reports whether a working recognition backend was found.
func (c *Capability) Available() bool {
	return c.err == nil && c.engine != nil
}

// Detail describes the backend, or the probe failure when unavailable.
func (c *Capability) Detail() string {
	if c.Available() {
		return c.engine.Version()
	}
	if c.err != nil {
		return c.err.Error()
	}
	return "not probed"
}

// Recognize runs text recognition over the image using the probed backend.
// Returns ErrUnavailable when no backend could be initialized.
func (c *Capability) Recognize(img image.Image) (*Result, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}
	return c.engine.Recognize(img)
}
