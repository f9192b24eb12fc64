package idle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIoregOutput = `+-o Root  <class IORegistryEntry, id 0x100000100, retain 25>
  +-o IOHIDSystem  <class IOHIDSystem, id 0x1000003c2, registered, matched, active, busy 0 (2 ms), retain 22>
    | {
    |   "IOClass" = "IOHIDSystem"
    |   "HIDIdleTime" = 136561430555
    |   "IOProviderClass" = "IOResources"
    | }
`

func TestParseHIDIdleTime(t *testing.T) {
	raw, err := parseHIDIdleTime([]byte(sampleIoregOutput))
	require.NoError(t, err)
	assert.Equal(t, uint64(136561430555), raw)
}

func TestParseHIDIdleTimeMissingKey(t *testing.T) {
	_, err := parseHIDIdleTime([]byte(`"IOClass" = "IOHIDSystem"`))
	assert.Error(t, err)
}

func TestParseHIDIdleTimeIgnoresWhitespaceVariants(t *testing.T) {
	raw, err := parseHIDIdleTime([]byte(`"HIDIdleTime"=42`))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), raw)
}
