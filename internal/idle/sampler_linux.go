//go:build linux

package idle

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// x11Sampler reads idle milliseconds from xprintidle. Wayland sessions
// without xprintidle have no portable idle source.
type x11Sampler struct {
	xprintidlePath string
}

func newSampler(config Config) (Sampler, error) {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		sessionType := strings.ToLower(os.Getenv("XDG_SESSION_TYPE"))
		return nil, fmt.Errorf("locate xprintidle (session %q): %w", sessionType, ErrUnsupported)
	}
	return &x11Sampler{xprintidlePath: path}, nil
}

func (sampler *x11Sampler) Sample() (time.Duration, error) {
	output, err := exec.Command(sampler.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (sampler *x11Sampler) Close() error {
	return nil
}
