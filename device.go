package cubesim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/cubesim/internal/ble"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

// Device is a discovered GoCube.
type Device struct {
	Name    string // e.g. "GoCube_XXXX"
	Address string
	RSSI    int16 // dBm, typically -30 to -90

	result ble.ScanResult
}

// DeviceSource mirrors the turns of a connected GoCube as slice moves.
// Callbacks run on the BLE stack's goroutine; hand the moves to the host
// loop over a channel rather than calling Puzzle methods from them.
//
//	src, err := cubesim.ConnectFirst(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	moves := make(chan cubesim.SliceMove, 64)
//	src.OnMove(func(m cubesim.SliceMove) { moves <- m })
type DeviceSource struct {
	client *ble.Client
	device Device
	cfg    *config

	mu            sync.RWMutex
	onMove        func(SliceMove)
	onOrientation func(mgl32.Quat)
	onBattery     func(int)
}

// Scan discovers nearby GoCubes.
//
// Note: on macOS, scanning sometimes needs several attempts. Make sure the
// cube is not connected to another device such as a phone.
func Scan(ctx context.Context, timeout time.Duration, opts ...Option) ([]Device, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, Address: r.Address, RSSI: r.RSSI, result: r}
	}
	return devices, nil
}

// Connect connects to a device returned by Scan.
func Connect(ctx context.Context, device Device, opts ...Option) (*DeviceSource, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := ble.NewClient(cfg.logger)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx, device.result); err != nil {
		return nil, err
	}

	src := &DeviceSource{client: client, device: device, cfg: cfg}
	client.SetMessageCallback(src.handleMessage)
	return src, nil
}

// ConnectFirst scans for ten seconds and connects to the first GoCube found.
func ConnectFirst(ctx context.Context, opts ...Option) (*DeviceSource, error) {
	devices, err := Scan(ctx, 10*time.Second, opts...)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return Connect(ctx, devices[0], opts...)
}

// Close disconnects from the cube.
func (d *DeviceSource) Close() error {
	return d.client.Disconnect()
}

// DeviceName returns the connected device name.
func (d *DeviceSource) DeviceName() string {
	return d.client.DeviceName()
}

// Battery returns the last known battery level (0-100), or -1 if unknown.
func (d *DeviceSource) Battery() int {
	return d.client.Battery()
}

// EnableOrientation asks the cube to stream its orientation.
func (d *DeviceSource) EnableOrientation() error {
	return d.client.SendCommand(protocol.CmdEnableOrientation)
}

// ResetSolved tells the cube its current physical state is solved.
func (d *DeviceSource) ResetSolved() error {
	return d.client.ResetSolved()
}

// FlashBacklight flashes the cube's backlight.
func (d *DeviceSource) FlashBacklight() error {
	return d.client.FlashBacklight()
}

// OnMove sets the callback for each turn of the physical cube.
func (d *DeviceSource) OnMove(cb func(SliceMove)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onMove = cb
}

// OnOrientation sets the callback for orientation updates.
func (d *DeviceSource) OnOrientation(cb func(mgl32.Quat)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onOrientation = cb
}

// OnBattery sets the callback for battery updates.
func (d *DeviceSource) OnBattery(cb func(int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onBattery = cb
}

func (d *DeviceSource) handleMessage(msg *protocol.Message) {
	d.mu.RLock()
	onMove, onOrientation, onBattery := d.onMove, d.onOrientation, d.onBattery
	d.mu.RUnlock()

	switch msg.Type {
	case protocol.MsgTypeRotation:
		moves, err := DecodeDeviceMoves(msg.Payload)
		if err != nil {
			d.cfg.logger.Warn("bad rotation payload", "err", err, "raw", msg.RawBase64)
			return
		}
		for _, m := range moves {
			d.cfg.logger.Debug("device move", "move", m.Notation())
			if onMove != nil {
				onMove(m)
			}
		}
	case protocol.MsgTypeOrientation:
		if q, err := protocol.DecodeOrientation(msg.Payload); err == nil && onOrientation != nil {
			onOrientation(q)
		}
	case protocol.MsgTypeBattery:
		if level, err := protocol.DecodeBattery(msg.Payload); err == nil && onBattery != nil {
			onBattery(level)
		}
	case protocol.MsgTypeOfflineStats:
		if st, err := protocol.DecodeOfflineStats(msg.Payload); err == nil {
			d.cfg.logger.Info("device offline stats", "moves", st.Moves, "seconds", st.Seconds, "solves", st.Solves)
		}
	default:
		d.cfg.logger.Debug("device message", "type", msg.TypeName(), "len", len(msg.Payload))
	}
}

// colorToFace assumes white on top and green in front.
var colorToFace = map[protocol.Color]Face{
	protocol.ColorWhite:  FaceU,
	protocol.ColorYellow: FaceD,
	protocol.ColorGreen:  FaceF,
	protocol.ColorBlue:   FaceB,
	protocol.ColorRed:    FaceR,
	protocol.ColorOrange: FaceL,
}

// DecodeDeviceMoves converts a GoCube rotation payload into slice moves.
func DecodeDeviceMoves(payload []byte) ([]SliceMove, error) {
	rotations, err := protocol.DecodeRotation(payload)
	if err != nil {
		return nil, err
	}
	moves := make([]SliceMove, 0, len(rotations))
	for _, rot := range rotations {
		face, ok := colorToFace[rot.Color]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, rot.Color)
		}
		turn := CCW
		if rot.Clockwise {
			turn = CW
		}
		m, err := Move{Face: face, Turn: turn}.SliceMove()
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
