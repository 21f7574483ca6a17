// Package injector selects the keyboard-injection backend for the current
// operating system.
package injector

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikey/internal/injector/injectorlinux"
	"github.com/leandrodaf/midikey/internal/injector/injectorwindows"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// ErrUnsupportedOS is returned when no keyboard injector exists for the
// operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// injectorInitializers maps OS names to corresponding injector initializers.
var injectorInitializers = map[string]func(contracts.Logger) (contracts.KeyInjector, error){
	"linux":   injectorlinux.NewKeyInjector,   // uinput virtual keyboard.
	"windows": injectorwindows.NewKeyInjector, // SendInput synthesized events.
}

// New initializes the keyboard injector for the current operating system.
func New(logger contracts.Logger) (contracts.KeyInjector, error) {
	if initializer, exists := injectorInitializers[runtime.GOOS]; exists {
		return initializer(logger)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
