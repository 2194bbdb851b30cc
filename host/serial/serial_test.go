package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axisrig/config"
)

func TestFromHost(t *testing.T) {
	h := config.Default().Host
	cfg := FromHost(h)
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)

	h.SerialBaud = 0
	assert.Equal(t, 115200, FromHost(h).Baud)
}

func TestOpenRejectsEmptyConfig(t *testing.T) {
	_, err := Open(nil)
	require.Error(t, err)

	_, err = Open(DefaultConfig(""))
	assert.EqualError(t, err, "serial device not set")
}
