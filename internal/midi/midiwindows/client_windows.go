//go:build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// HMIDIIN is a handle to an open MIDI input device.
type HMIDIIN windows.Handle

// Constants for callback flags.
const (
	CALLBACK_FUNCTION = 0x00030000 // The callback parameter is a function.
	MIDI_IO_STATUS    = 0x00000020 // Deliver MIM_MOREDATA on overload.
)

// Constants for MIDI input messages.
const (
	MIM_OPEN      = 0x3C1 // Device opened.
	MIM_CLOSE     = 0x3C2 // Device closed.
	MIM_DATA      = 0x3C3 // Short MIDI message received.
	MIM_ERROR     = 0x3C5 // Invalid MIDI message.
	MIM_LONGERROR = 0x3C6 // Invalid system-exclusive message.
	MIM_MOREDATA  = 0x3CC // Application is not processing fast enough.
)

// midiInCaps mirrors the Win32 MIDIINCAPSW structure.
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ErrNoMIDIDevices is returned when the system reports no MIDI inputs.
var ErrNoMIDIDevices = errors.New("no MIDI devices found")

var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// Client manages MIDI input on Windows through the winmm multimedia API.
type Client struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	handle       HMIDIIN
	attached     bool
	mu           sync.Mutex
	callback     uintptr
	filter       *contracts.MIDIEventFilter
}

// NewMIDIClient creates a winmm-backed input client.
func NewMIDIClient(options *contracts.BridgeOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("winmm MIDI client created")
	return &Client{
		logger: options.Logger,
		filter: options.MIDIEventFilter,
	}, nil
}

// ListDevices lists the available MIDI input devices.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("failed to query MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI input device by ID. Attach failures carry the
// device identity.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attached {
		if err := m.detach(); err != nil {
			return fmt.Errorf("failed to stop previous MIDI capture: %w", err)
		}
	}

	m.callback = windows.NewCallback(midiInCallback)
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		m.logger.Error("failed to attach to MIDI device",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("%w %d: %v", contracts.ErrDeviceAttach, deviceID, err)
	}

	m.attached = true
	m.logger.Info("MIDI device attached", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// StartCapture begins forwarding MIDI events into the given channel.
func (m *Client) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attached {
		m.logger.Error("cannot start capture: no MIDI device selected")
		return
	}
	if _, ok := m.eventChannel.Load().(chan contracts.MIDI); ok {
		m.logger.Warn("capture already started")
		return
	}

	m.eventChannel.Store(eventChannel)

	if r1, _, err := procMidiInStart.Call(uintptr(m.handle)); r1 != 0 {
		m.logger.Error("failed to start MIDI capture", m.logger.Field().Error("error", err))
		return
	}
	m.logger.Info("MIDI capture started")
}

// midiInCallback processes incoming MIDI messages on the winmm thread.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*Client)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Info("MIDI device closed")
	case MIM_DATA:
		event := contracts.MIDI{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Command:   byte(dwParam1 & 0xFF),
			Note:      byte((dwParam1 >> 8) & 0xFF),
			Velocity:  byte((dwParam1 >> 16) & 0xFF),
		}

		if !m.filter.Allows(event.Command) {
			return 0
		}

		if ch, ok := m.eventChannel.Load().(chan contracts.MIDI); ok && ch != nil {
			select {
			case ch <- event:
			default:
				m.logger.Warn("event buffer full; dropping MIDI event")
			}
		}
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI input error", m.logger.Field().Int("message", int(wMsg)))
	case MIM_MOREDATA:
		// Backlogged; the regular MIM_DATA path will catch up.
	}

	return 0
}

// Stop terminates MIDI event capture and closes the device.
func (m *Client) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attached {
		return nil
	}
	if err := m.detach(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// detach stops the capture and closes the device handle. Callers hold m.mu.
func (m *Client) detach() error {
	if m.handle == 0 {
		return errors.New("invalid MIDI device handle")
	}

	if r1, _, err := procMidiInStop.Call(uintptr(m.handle)); r1 != 0 {
		return fmt.Errorf("midiInStop: %v", err)
	}
	if r1, _, err := procMidiInClose.Call(uintptr(m.handle)); r1 != 0 {
		return fmt.Errorf("midiInClose: %v", err)
	}

	m.handle = 0
	m.attached = false
	m.eventChannel.Store(make(chan contracts.MIDI))
	return nil
}
