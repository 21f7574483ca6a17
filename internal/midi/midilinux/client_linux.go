//go:build linux

package midilinux

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrNoDeviceSelected  = errors.New("no MIDI device selected")
)

// Client manages MIDI input on Linux through the rtmidi driver.
type Client struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	filter       *contracts.MIDIEventFilter

	mu       sync.Mutex
	port     drivers.In
	stopScan func()
}

// NewMIDIClient creates an rtmidi-backed input client.
func NewMIDIClient(options *contracts.BridgeOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("rtmidi client created")
	return &Client{
		logger: options.Logger,
		filter: options.MIDIEventFilter,
	}, nil
}

// ListDevices lists the available MIDI input ports.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	ports := gomidi.GetInPorts()
	if len(ports) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(ports))
	for i, port := range ports {
		devices[i] = contracts.DeviceInfo{
			Name:       port.String(),
			EntityName: port.String(),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI input port by ID. Attach failures carry the
// device identity.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ports := gomidi.GetInPorts()
	if deviceID < 0 || deviceID >= len(ports) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.stopScan != nil {
		m.stopScan()
		m.stopScan = nil
	}
	if m.port != nil {
		m.port.Close()
	}

	port := ports[deviceID]
	if err := port.Open(); err != nil {
		m.logger.Error("failed to attach to MIDI device",
			m.logger.Field().String("device", port.String()),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("%w %q: %v", contracts.ErrDeviceAttach, port.String(), err)
	}

	m.port = port
	m.logger.Info("MIDI device attached",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("device", port.String()))
	return nil
}

// StartCapture begins forwarding MIDI events into the given channel.
func (m *Client) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.port == nil {
		m.logger.Error(ErrNoDeviceSelected.Error())
		return
	}
	if m.stopScan != nil {
		m.logger.Warn("capture already started")
		return
	}

	m.eventChannel.Store(eventChannel)

	stop, err := gomidi.ListenTo(m.port, m.handleMessage)
	if err != nil {
		m.logger.Error("failed to start MIDI capture", m.logger.Field().Error("error", err))
		return
	}
	m.stopScan = stop
	m.logger.Info("MIDI capture started")
}

// handleMessage forwards one raw MIDI message as a status/note/velocity
// triple. Runs on the rtmidi delivery goroutine.
func (m *Client) handleMessage(msg gomidi.Message, timestampms int32) {
	if len(msg) < 3 {
		return
	}

	event := contracts.MIDI{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Command:   msg[0],
		Note:      msg[1],
		Velocity:  msg[2],
	}
	if !m.filter.Allows(event.Command) {
		return
	}

	eventChannel, _ := m.eventChannel.Load().(chan contracts.MIDI)
	if eventChannel == nil {
		return
	}
	select {
	case eventChannel <- event:
	default:
		m.logger.Warn("event buffer full; dropping MIDI event")
	}
}

// Stop halts capture and closes the port. Safe to call more than once.
func (m *Client) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopScan != nil {
		m.stopScan()
		m.stopScan = nil
	}
	if m.port != nil {
		m.port.Close()
		m.port = nil
	}
	m.eventChannel.Store(make(chan contracts.MIDI))
	m.logger.Info("MIDI capture stopped")
	return nil
}
