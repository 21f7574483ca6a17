// Package engine translates MIDI note events into synthesized keyboard
// events with strict hold/release pairing.
package engine

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midikey/internal/keys"
	"github.com/leandrodaf/midikey/internal/mapping"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// StateDelta is a snapshot of the engine's observable state, published to
// the UI sink after every change. It is advisory: the keyboard emission has
// already happened by the time a delta is visible.
type StateDelta struct {
	Notes []uint8  // currently held notes, ascending
	Keys  []string // tokens those notes map to, in note order, unmapped notes skipped
}

// Engine tracks which notes are held and emits one key-down per note press
// and one key-up per note release, whatever the input stream does.
//
// HandleEvent runs on the producer goroutine (the MIDI transport's delivery
// context) and never performs I/O. Remap, ResetToDefault, and Stop run on
// the consumer side; the mapping table is published by pointer swap so the
// producer never blocks on a consumer edit.
type Engine struct {
	logger   contracts.Logger
	injector contracts.KeyInjector
	persist  func(mapping.Table)

	table atomic.Pointer[mapping.Table]

	mu   sync.Mutex
	held map[uint8]struct{}

	deltas chan StateDelta
}

// New creates an engine seeded with the given table. persist is invoked on
// its own goroutine after every mapping mutation; it may be nil.
func New(logger contracts.Logger, injector contracts.KeyInjector, table mapping.Table, persist func(mapping.Table), deltaBuffer int) *Engine {
	e := &Engine{
		logger:   logger,
		injector: injector,
		persist:  persist,
		held:     make(map[uint8]struct{}),
		deltas:   make(chan StateDelta, deltaBuffer),
	}
	e.table.Store(&table)
	return e
}

// HandleEvent consumes one raw MIDI event. Note-on with zero velocity is a
// note-off per the MIDI convention. Control changes and every other message
// category are ignored.
func (e *Engine) HandleEvent(ev contracts.MIDI) {
	switch contracts.CommandOf(ev.Command) {
	case contracts.NoteOn:
		if ev.Velocity == 0 {
			e.release(ev.Note)
			return
		}
		e.press(ev.Note)
	case contracts.NoteOff:
		e.release(ev.Note)
	default:
		// Not a note message; nothing to do.
	}
}

func (e *Engine) press(note uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, held := e.held[note]; held {
		// Retriggered or stuck hardware; the key is already down.
		e.logger.Debug("duplicate note-on dropped", e.logger.Field().Uint8("note", note))
		return
	}
	e.held[note] = struct{}{}
	e.emit(note, e.injector.KeyDown)
	e.publishDelta()
}

func (e *Engine) release(note uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, held := e.held[note]; !held {
		// Note was never pressed, or already released.
		return
	}
	delete(e.held, note)
	e.emit(note, e.injector.KeyUp)
	e.publishDelta()
}

// Stop force-releases every held note through the current mapping and
// clears the engine's state. Idempotent; the engine stays usable.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.held) == 0 {
		return
	}
	for _, note := range e.heldNotes() {
		e.emit(note, e.injector.KeyUp)
	}
	clear(e.held)
	e.publishDelta()
}

// emit resolves a note through the current table and delivers one key event.
// Unmapped notes and unsupported tokens produce nothing. Callers hold e.mu.
func (e *Engine) emit(note uint8, deliver func(contracts.KeyCode, bool) error) {
	token, ok := (*e.table.Load())[note]
	if !ok || token == "" {
		return
	}
	base, shift := keys.Split(token)
	code, ok := keys.Code(base)
	if !ok {
		e.logger.Debug("unsupported key token",
			e.logger.Field().Uint8("note", note),
			e.logger.Field().String("token", token))
		return
	}
	if err := deliver(code, shift); err != nil {
		e.logger.Warn("key event delivery failed",
			e.logger.Field().Uint8("note", note),
			e.logger.Field().String("token", token),
			e.logger.Field().Error("error", err))
	}
}

// Remap points a note at a new token and persists the result. An empty
// token unmaps the note. A note currently held is unaffected until its
// release, which will go through the new mapping.
func (e *Engine) Remap(note uint8, token string) {
	table := e.table.Load().Clone()
	if token == "" {
		delete(table, note)
	} else {
		table[note] = token
	}
	e.swapTable(table, true)
}

// ResetToDefault replaces the mapping with the built-in table and persists.
func (e *Engine) ResetToDefault() {
	e.swapTable(mapping.DefaultTable(), true)
}

// SetTable publishes an externally loaded table without persisting it, for
// example after the mapping document changed on disk.
func (e *Engine) SetTable(table mapping.Table) {
	e.swapTable(table.Clone(), false)
}

func (e *Engine) swapTable(table mapping.Table, save bool) {
	e.table.Store(&table)
	if save && e.persist != nil {
		go e.persist(table)
	}
}

// Mapping returns a copy of the current mapping table.
func (e *Engine) Mapping() mapping.Table {
	return e.table.Load().Clone()
}

// ActiveNotes returns the currently held notes in ascending order.
func (e *Engine) ActiveNotes() []uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heldNotes()
}

// ActiveKeys returns the tokens mapped to the currently held notes, in note
// order. Held notes without a mapping are omitted.
func (e *Engine) ActiveKeys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heldKeys()
}

// Deltas returns the channel of UI state snapshots. Snapshots are dropped,
// never blocked on, when the consumer lags.
func (e *Engine) Deltas() <-chan StateDelta {
	return e.deltas
}

// heldNotes returns the held set sorted. Callers hold e.mu.
func (e *Engine) heldNotes() []uint8 {
	notes := make([]uint8, 0, len(e.held))
	for note := range e.held {
		notes = append(notes, note)
	}
	slices.Sort(notes)
	return notes
}

// heldKeys returns the mapped tokens of the held set. Callers hold e.mu.
func (e *Engine) heldKeys() []string {
	table := *e.table.Load()
	tokens := make([]string, 0, len(e.held))
	for _, note := range e.heldNotes() {
		if token, ok := table[note]; ok && token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// publishDelta sends a fresh snapshot to the UI sink without blocking the
// producer. Callers hold e.mu; the key event has already been delivered.
func (e *Engine) publishDelta() {
	delta := StateDelta{Notes: e.heldNotes(), Keys: e.heldKeys()}
	select {
	case e.deltas <- delta:
	default:
		e.logger.Debug("delta buffer full; dropping state snapshot")
	}
}
