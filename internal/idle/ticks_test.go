package idle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdleMillisFromTicks(t *testing.T) {
	assert.Equal(t, uint64(0), idleMillisFromTicks(1000, 1000))
	assert.Equal(t, uint64(250), idleMillisFromTicks(1250, 1000))
}

func TestIdleMillisFromTicksSurvivesTickWraparound(t *testing.T) {
	// Uptime past the 32-bit millisecond range: the 64-bit counter has
	// wrapped below the recorded 32-bit last-input tick.
	assert.Equal(t, uint64(1024), idleMillisFromTicks(0x100000200, 0xFFFFFE00))

	// Wrap exactly at the boundary.
	assert.Equal(t, uint64(1), idleMillisFromTicks(math.MaxUint32+1, math.MaxUint32))
}
