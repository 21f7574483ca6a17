//go:build !linux

package injectorlinux

import (
	"errors"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// NewKeyInjector is unavailable off Linux.
func NewKeyInjector(logger contracts.Logger) (contracts.KeyInjector, error) {
	logger.Warn("uinput key injector requested on a non-Linux system")
	return nil, errors.New("uinput key injection is only available on Linux")
}
