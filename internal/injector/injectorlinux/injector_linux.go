//go:build linux

package injectorlinux

import (
	"fmt"
	"sync"

	"github.com/bendahl/uinput"

	"github.com/leandrodaf/midikey/internal/keys"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// Injector delivers key events through a uinput virtual keyboard.
type Injector struct {
	logger   contracts.Logger
	keyboard uinput.Keyboard
	mu       sync.Mutex // keeps shift/base pairs contiguous
}

// NewKeyInjector creates a virtual keyboard device. Requires write access
// to /dev/uinput.
func NewKeyInjector(logger contracts.Logger) (contracts.KeyInjector, error) {
	keyboard, err := uinput.CreateKeyboard("/dev/uinput", []byte("midikey virtual keyboard"))
	if err != nil {
		return nil, fmt.Errorf("create uinput keyboard: %w", err)
	}
	logger.Info("uinput virtual keyboard created")
	return &Injector{logger: logger, keyboard: keyboard}, nil
}

// KeyDown presses the key, pressing shift first when requested.
func (i *Injector) KeyDown(code contracts.KeyCode, shift bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if shift {
		if err := i.keyboard.KeyDown(int(keys.CodeLeftShift)); err != nil {
			return fmt.Errorf("press shift: %w", err)
		}
	}
	if err := i.keyboard.KeyDown(int(code)); err != nil {
		return fmt.Errorf("press key %d: %w", code, err)
	}
	return nil
}

// KeyUp releases the key, then shift when requested.
func (i *Injector) KeyUp(code contracts.KeyCode, shift bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.keyboard.KeyUp(int(code)); err != nil {
		return fmt.Errorf("release key %d: %w", code, err)
	}
	if shift {
		if err := i.keyboard.KeyUp(int(keys.CodeLeftShift)); err != nil {
			return fmt.Errorf("release shift: %w", err)
		}
	}
	return nil
}

// Close destroys the virtual keyboard device.
func (i *Injector) Close() error {
	return i.keyboard.Close()
}
