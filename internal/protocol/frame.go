// Package protocol implements the GoCube BLE message framing and payload
// decoding.
package protocol

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message types sent by the cube.
const (
	MsgTypeRotation     byte = 0x01
	MsgTypeState        byte = 0x02
	MsgTypeOrientation  byte = 0x03
	MsgTypeBattery      byte = 0x05
	MsgTypeOfflineStats byte = 0x07
	MsgTypeCubeType     byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery       byte = 0x32
	CmdRequestState         byte = 0x33
	CmdReboot               byte = 0x34
	CmdResetSolved          byte = 0x35
	CmdDisableOrientation   byte = 0x37
	CmdEnableOrientation    byte = 0x38
	CmdFlashBacklight       byte = 0x41
	CmdSlowFlashBacklight   byte = 0x43
	CmdToggleBacklight      byte = 0x44
	CmdRequestCubeType      byte = 0x56
	CmdCalibrateOrientation byte = 0x57
)

const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D // CR
	frameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
	ErrInvalidPayload  = errors.New("protocol: invalid payload")
)

// Message is one decoded notification frame.
type Message struct {
	Type      byte
	Payload   []byte
	RawBase64 string // full frame, for journaling
}

// TypeName returns a readable name for the message type.
func (m *Message) TypeName() string {
	return MessageTypeName(m.Type)
}

// Parse decodes a raw BLE notification.
//
// Frame: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]. The
// length byte counts everything after itself; the checksum is the byte sum of
// all bytes before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrMessageTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if len(data) < total {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, total, len(data))
	}

	sumAt := length - 1
	if sumAt < 3 {
		return nil, ErrMessageTooShort
	}
	if data[sumAt+1] != frameSuffix1 || data[sumAt+2] != frameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumAt] {
		sum += b
	}
	if sum != data[sumAt] {
		return nil, fmt.Errorf("%w: frame has 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumAt], sum)
	}

	return &Message{
		Type:      data[2],
		Payload:   data[3:sumAt],
		RawBase64: base64.StdEncoding.EncodeToString(data[:total]),
	}, nil
}

// BuildCommand frames a payload-less command. Commands carry a length byte
// of 1, unlike notifications.
func BuildCommand(cmd byte) []byte {
	length := byte(0x01)
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameSuffix1, frameSuffix2}
}

// BuildFrame frames a notification of the given type. It is the inverse of
// Parse.
func BuildFrame(msgType byte, payload []byte) []byte {
	// type + payload + checksum + CR LF
	length := byte(len(payload) + 4)
	frame := make([]byte, 0, int(length)+2)
	frame = append(frame, framePrefix, length, msgType)
	frame = append(frame, payload...)

	var sum byte
	for _, b := range frame {
		sum += b
	}
	return append(frame, sum, frameSuffix1, frameSuffix2)
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeOfflineStats:
		return "offline_stats"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
