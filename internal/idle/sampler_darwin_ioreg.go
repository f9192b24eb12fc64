//go:build darwin && !cgo

package idle

import (
	"fmt"
	"os/exec"
	"time"
)

// ioregSampler shells out to ioreg when the build cannot link IOKit
// directly. Depth 4 is enough to reach IOHIDSystem.
type ioregSampler struct {
	ioregPath string
	unit      time.Duration
}

func newSampler(config Config) (Sampler, error) {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return nil, fmt.Errorf("locate ioreg: %w", err)
	}
	return &ioregSampler{ioregPath: path, unit: config.RegistryUnit}, nil
}

func (sampler *ioregSampler) Sample() (time.Duration, error) {
	output, err := exec.Command(sampler.ioregPath, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	raw, err := parseHIDIdleTime(output)
	if err != nil {
		return 0, err
	}
	return time.Duration(raw) * sampler.unit, nil
}

func (sampler *ioregSampler) Close() error {
	return nil
}
