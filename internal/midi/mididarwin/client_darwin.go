//go:build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/youpy/go-coremidi"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrCreateInputPort   = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Client manages MIDI input on Darwin (macOS) through CoreMIDI. Incoming
// packets are split into note triples and forwarded to the capture channel
// without blocking the CoreMIDI delivery thread.
type Client struct {
	logger       contracts.Logger
	eventChannel atomic.Value // capture channel, swapped atomically
	client       coremidi.Client
	inputPort    coremidi.InputPort
	portConn     internalPortConnection
	filter       *contracts.MIDIEventFilter
	mu           sync.Mutex
	capturing    bool
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewMIDIClient initializes a CoreMIDI-backed input client.
func NewMIDIClient(options *contracts.BridgeOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("CoreMIDI client created")

	return &Client{
		logger: options.Logger,
		client: client,
		filter: options.MIDIEventFilter,
	}, nil
}

// ListDevices retrieves the available MIDI input sources.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice attaches to a MIDI source by ID, disconnecting from any
// previously selected one first. Attach failures carry the device identity.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error("failed to attach to MIDI device",
			m.logger.Field().String("device", source.Name()),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("%w %q: %v", contracts.ErrDeviceAttach, source.Name(), err)
	}

	m.logger.Info("MIDI device attached",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("device", source.Name()))
	return nil
}

// handlePacket splits a CoreMIDI packet into status/note/velocity triples
// and forwards each one. A single packet may carry several messages.
func (m *Client) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.MIDI)
	if eventChannel == nil {
		return
	}

	data := packet.Data
	for len(data) >= 3 {
		event := contracts.MIDI{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Command:   data[0],
			Note:      data[1],
			Velocity:  data[2],
		}
		data = data[3:]

		if !m.filter.Allows(event.Command) {
			continue
		}
		select {
		case eventChannel <- event:
		default:
			m.logger.Warn("event buffer full; dropping MIDI event")
		}
	}
}

// StartCapture begins forwarding MIDI events into the given channel.
func (m *Client) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.capturing {
		m.logger.Warn("capture already started")
		return
	}

	m.logger.Info("starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
	m.capturing = true
}

// Stop disconnects from the device and waits for in-flight packet handling
// to finish. Safe to call more than once.
func (m *Client) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.capturing {
			m.capturing = false

			if m.portConn != nil {
				m.portConn.Disconnect()
				m.portConn = nil
			}

			// Swap in an unused channel so late packets write nowhere.
			m.eventChannel.Store(make(chan contracts.MIDI))
			m.wg.Wait()
		}
	})
	return nil
}
