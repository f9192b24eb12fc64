// Package idle exposes the duration since the last user input event.
//
// A Handle owns the operating-system resources needed to answer the
// query (on macOS a Mach port and an I/O Registry entry, elsewhere the
// platform equivalent) and releases them exactly once on Close.
package idle

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnavailable indicates the idle time could not be read. Callers are
// expected to treat it as transient and re-poll later.
var ErrUnavailable = errors.New("idle time unavailable")

// ErrUnsupported indicates idle detection is not available on this system.
var ErrUnsupported = errors.New("idle detection unsupported")

// Sampler reads the raw idle duration from the operating system.
type Sampler interface {
	Sample() (time.Duration, error)
	Close() error
}

// Config contains caller-supplied options for a Handle.
type Config struct {
	// RegistryUnit is the duration of one raw registry tick on platforms
	// that report idle time as a unitless counter. macOS reports
	// nanoseconds.
	RegistryUnit time.Duration
}

// DefaultConfig returns the configuration matching the macOS registry.
func DefaultConfig() Config {
	return Config{RegistryUnit: time.Nanosecond}
}

type lifecycle int

const (
	stateUnacquired lifecycle = iota
	stateAcquired
	stateReleased
)

// Handle owns the OS resources backing idle-time queries.
//
// Queries against a shared Handle must be serialized by the caller; the
// underlying OS calls are not reentrant-safe on a shared handle. Close
// is guarded internally so duplicate releases are harmless.
type Handle struct {
	mu      sync.Mutex
	sampler Sampler
	state   lifecycle
}

// Acquire opens the platform idle sampler and returns a ready Handle.
//
// On failure the error is returned together with a sentinel-state
// Handle: every query against it reports ErrUnavailable instead of
// touching an invalid OS handle.
func Acquire(config Config) (*Handle, error) {
	if config.RegistryUnit <= 0 {
		config.RegistryUnit = time.Nanosecond
	}
	sampler, err := newSampler(config)
	if err != nil {
		return &Handle{state: stateUnacquired}, fmt.Errorf("acquire idle handle: %w", err)
	}
	return &Handle{sampler: sampler, state: stateAcquired}, nil
}

// NewWithSampler wraps an already-open sampler in a Handle.
func NewWithSampler(sampler Sampler) *Handle {
	if sampler == nil {
		return &Handle{state: stateUnacquired}
	}
	return &Handle{sampler: sampler, state: stateAcquired}
}

// IdleDuration returns the time elapsed since the last user input.
func (handle *Handle) IdleDuration() (time.Duration, error) {
	handle.mu.Lock()
	defer handle.mu.Unlock()

	if handle.state != stateAcquired {
		return 0, ErrUnavailable
	}

	duration, err := handle.sampler.Sample()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if duration < 0 {
		duration = 0
	}
	return duration, nil
}

// IdleSeconds returns the idle time truncated to whole seconds.
func (handle *Handle) IdleSeconds() (int64, error) {
	duration, err := handle.IdleDuration()
	if err != nil {
		return 0, err
	}
	return int64(duration / time.Second), nil
}

// Close releases the underlying OS resources. It is idempotent: closing
// an already-closed or never-acquired handle is a no-op, and release
// errors are swallowed so teardown never fails observably.
func (handle *Handle) Close() error {
	handle.mu.Lock()
	defer handle.mu.Unlock()

	if handle.state != stateAcquired {
		return nil
	}
	handle.state = stateReleased
	_ = handle.sampler.Close()
	handle.sampler = nil
	return nil
}
