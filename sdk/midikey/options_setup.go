package midikey

import (
	"os"
	"path/filepath"

	"github.com/leandrodaf/midikey/internal/logger"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// applyDefaultOptions sets default values for BridgeOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.BridgeOptions, error) {
	options := &contracts.BridgeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "midikey"}
	}
	if options.MappingPath == "" {
		path, err := defaultMappingPath()
		if err != nil {
			return contracts.BridgeOptions{}, err
		}
		options.MappingPath = path
	}
	if options.DeltaBuffer <= 0 {
		options.DeltaBuffer = 64
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}

// defaultMappingPath places the mapping document under the user's
// configuration directory.
func defaultMappingPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "midikey", "mapping.toml"), nil
}
