package midikey

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikey/internal/midi/mididarwin"
	"github.com/leandrodaf/midikey/internal/midi/midilinux"
	"github.com/leandrodaf/midikey/internal/midi/midiwindows"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI
// transport.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// transportInitializers maps OS names to corresponding MIDI transport initializers.
var transportInitializers = map[string]func(*contracts.BridgeOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // macOS (Darwin) CoreMIDI transport.
	"windows": midiwindows.NewMIDIClient, // Windows winmm transport.
	"linux":   midilinux.NewMIDIClient,   // Linux rtmidi transport.
}

// newTransport initializes the MIDI input transport based on the current
// operating system, honoring an explicit override from the options.
func newTransport(opts *contracts.BridgeOptions) (contracts.ClientMIDI, error) {
	if opts.MIDIClient != nil {
		return opts.MIDIClient, nil
	}
	if initializer, exists := transportInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
