package cubesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

func TestDecodeDeviceMoves(t *testing.T) {
	tests := []struct {
		color     protocol.Color
		clockwise bool
		want      SliceMove
	}{
		{protocol.ColorRed, true, R},
		{protocol.ColorOrange, true, L},
		{protocol.ColorWhite, false, UPrime},
		{protocol.ColorYellow, true, D},
		{protocol.ColorGreen, false, FPrime},
		{protocol.ColorBlue, true, B},
	}
	for _, tt := range tests {
		payload, err := protocol.EncodeRotation(tt.color, tt.clockwise)
		require.NoError(t, err)
		moves, err := DecodeDeviceMoves(payload)
		require.NoError(t, err)
		require.Len(t, moves, 1)
		assert.Equal(t, tt.want, moves[0], "%s clockwise=%v", tt.color, tt.clockwise)
	}
}

func TestDeviceSourceForwardsMoves(t *testing.T) {
	src := &DeviceSource{cfg: defaultConfig()}
	var got []SliceMove
	src.OnMove(func(m SliceMove) { got = append(got, m) })
	var battery int
	src.OnBattery(func(level int) { battery = level })

	payload := []byte{0x08, 0x00, 0x05, 0x00} // red CW, white CCW
	msg, err := protocol.Parse(protocol.BuildFrame(protocol.MsgTypeRotation, payload))
	require.NoError(t, err)
	src.handleMessage(msg)

	msg, err = protocol.Parse(protocol.BuildFrame(protocol.MsgTypeBattery, []byte{64}))
	require.NoError(t, err)
	src.handleMessage(msg)

	assert.Equal(t, []SliceMove{R, UPrime}, got)
	assert.Equal(t, 64, battery)
}

func TestDecodeDeviceMovesRejectsGarbage(t *testing.T) {
	_, err := DecodeDeviceMoves([]byte{0x01})
	assert.ErrorIs(t, err, protocol.ErrInvalidPayload)
}
