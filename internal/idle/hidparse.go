package idle

import (
	"fmt"
	"regexp"
	"strconv"
)

var hidIdleTimePattern = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// parseHIDIdleTime extracts the HIDIdleTime counter from ioreg output.
// The value is a raw registry count (nanoseconds on every known macOS
// release); scaling to a duration is the caller's job.
func parseHIDIdleTime(output []byte) (uint64, error) {
	match := hidIdleTimePattern.FindSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
	}
	raw, err := strconv.ParseUint(string(match[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime %q: %w", match[1], err)
	}
	return raw, nil
}
