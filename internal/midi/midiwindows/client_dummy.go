//go:build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

type dummyClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a stub on non-Windows systems.
func NewMIDIClient(options *contracts.BridgeOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("using dummy winmm client on a non-Windows system")
	return &dummyClient{logger: options.Logger}, nil
}

func (m *dummyClient) ListDevices() ([]contracts.DeviceInfo, error) {
	return nil, fmt.Errorf("winmm MIDI input is not available on this platform")
}

func (m *dummyClient) SelectDevice(deviceID int) error {
	return fmt.Errorf("winmm MIDI input is not available on this platform")
}

func (m *dummyClient) StartCapture(eventChannel chan contracts.MIDI) {
	m.logger.Warn("StartCapture called on dummy winmm client")
}

func (m *dummyClient) Stop() error {
	return nil
}
