//go:build !linux

package midilinux

import (
	"fmt"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

type dummyClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a stub on non-Linux systems.
func NewMIDIClient(options *contracts.BridgeOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("using dummy rtmidi client on a non-Linux system")
	return &dummyClient{logger: options.Logger}, nil
}

func (m *dummyClient) ListDevices() ([]contracts.DeviceInfo, error) {
	return nil, fmt.Errorf("rtmidi input is not available on this platform")
}

func (m *dummyClient) SelectDevice(deviceID int) error {
	return fmt.Errorf("rtmidi input is not available on this platform")
}

func (m *dummyClient) StartCapture(eventChannel chan contracts.MIDI) {
	m.logger.Warn("StartCapture called on dummy rtmidi client")
}

func (m *dummyClient) Stop() error {
	return nil
}
