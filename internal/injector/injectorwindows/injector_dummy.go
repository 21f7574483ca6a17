//go:build !windows

package injectorwindows

import (
	"errors"

	"github.com/leandrodaf/midikey/sdk/contracts"
)

// NewKeyInjector is unavailable off Windows.
func NewKeyInjector(logger contracts.Logger) (contracts.KeyInjector, error) {
	logger.Warn("SendInput key injector requested on a non-Windows system")
	return nil, errors.New("SendInput key injection is only available on Windows")
}
