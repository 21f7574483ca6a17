// Package midikey assembles a MIDI input transport, the note-to-key
// translation engine, and a keyboard injector into a running bridge.
package midikey

import (
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midikey/internal/engine"
	"github.com/leandrodaf/midikey/internal/injector"
	"github.com/leandrodaf/midikey/internal/mapping"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// Table is the note-to-key mapping table handled by Remap and Mapping.
type Table = mapping.Table

// StateDelta is the UI-facing snapshot published on the Deltas channel.
type StateDelta = engine.StateDelta

// Bridge connects a MIDI input device to a synthesized keyboard. Events
// flow transport → engine → injector; the engine's state deltas are exposed
// for UI consumption.
type Bridge struct {
	logger   contracts.Logger
	client   contracts.ClientMIDI
	injector contracts.KeyInjector
	store    *mapping.Store
	engine   *engine.Engine

	events    chan contracts.MIDI
	accepting atomic.Bool
	watch     bool

	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// NewBridge creates a bridge with the specified options. The mapping table
// is loaded immediately; the transport is not attached until SelectDevice.
func NewBridge(opts ...contracts.Option) (*Bridge, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	log := options.Logger

	store := mapping.NewStore(options.MappingPath, log)

	inj := options.KeyInjector
	if inj == nil {
		inj, err = injector.New(log)
		if err != nil {
			return nil, err
		}
	}

	persist := func(table mapping.Table) {
		// Losing a custom mapping is recoverable by re-editing, so a
		// failed write is logged and otherwise ignored.
		if err := store.Save(table); err != nil {
			log.Warn("failed to persist mapping", log.Field().Error("error", err))
		}
	}
	eng := engine.New(log, inj, store.Load(), persist, options.DeltaBuffer)

	client, err := newTransport(&options)
	if err != nil {
		return nil, err
	}

	return &Bridge{
		logger:   log,
		client:   client,
		injector: inj,
		store:    store,
		engine:   eng,
		watch:    options.WatchMapping,
		events:   make(chan contracts.MIDI, 100),
		done:     make(chan struct{}),
	}, nil
}

// ListDevices lists the available MIDI input devices.
func (b *Bridge) ListDevices() ([]contracts.DeviceInfo, error) {
	return b.client.ListDevices()
}

// SelectDevice attaches to a MIDI input device by its ID.
func (b *Bridge) SelectDevice(deviceID int) error {
	return b.client.SelectDevice(deviceID)
}

// Start begins translating MIDI events into key events.
func (b *Bridge) Start() error {
	if b.watch {
		if err := b.store.Watch(b.engine.SetTable); err != nil {
			return err
		}
	}
	b.accepting.Store(true)
	b.client.StartCapture(b.events)
	go b.run()
	return nil
}

// run consumes transport events on a dedicated goroutine, which acts as the
// engine's producer context.
func (b *Bridge) run() {
	for {
		select {
		case <-b.done:
			return
		case event := <-b.events:
			if b.accepting.Load() {
				b.engine.HandleEvent(event)
			}
		}
	}
}

// Stop releases every held key, then disconnects from the transport and
// closes the injector. The drain happens first so no key is left stuck down
// in the target application. Idempotent.
func (b *Bridge) Stop() error {
	b.stopOnce.Do(func() {
		b.accepting.Store(false)
		b.engine.Stop()

		b.stopErr = b.client.Stop()
		b.store.Unwatch()
		close(b.done)

		if err := b.injector.Close(); err != nil {
			b.logger.Warn("failed to close key injector", b.logger.Field().Error("error", err))
		}
	})
	return b.stopErr
}

// Remap points a note at a new token and persists the mapping. An empty
// token unmaps the note.
func (b *Bridge) Remap(note uint8, token string) {
	b.engine.Remap(note, token)
}

// ResetToDefault restores the built-in mapping table and persists it.
func (b *Bridge) ResetToDefault() {
	b.engine.ResetToDefault()
}

// Mapping returns a copy of the current mapping table.
func (b *Bridge) Mapping() mapping.Table {
	return b.engine.Mapping()
}

// ActiveNotes returns the currently held notes in ascending order.
func (b *Bridge) ActiveNotes() []uint8 {
	return b.engine.ActiveNotes()
}

// ActiveKeys returns the tokens mapped to the currently held notes.
func (b *Bridge) ActiveKeys() []string {
	return b.engine.ActiveKeys()
}

// Deltas returns the channel of UI state snapshots.
func (b *Bridge) Deltas() <-chan engine.StateDelta {
	return b.engine.Deltas()
}
