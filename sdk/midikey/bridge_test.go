package midikey

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midikey/internal/logger"
	"github.com/leandrodaf/midikey/internal/mapping"
	"github.com/leandrodaf/midikey/sdk/contracts"
)

// fakeTransport implements contracts.ClientMIDI for tests.
type fakeTransport struct {
	mu      sync.Mutex
	capture chan contracts.MIDI
	stopped bool
}

func (f *fakeTransport) ListDevices() ([]contracts.DeviceInfo, error) {
	return []contracts.DeviceInfo{{Name: "fake device"}}, nil
}

func (f *fakeTransport) SelectDevice(deviceID int) error { return nil }

func (f *fakeTransport) StartCapture(eventChannel chan contracts.MIDI) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capture = eventChannel
}

func (f *fakeTransport) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeTransport) send(ev contracts.MIDI) {
	f.mu.Lock()
	ch := f.capture
	f.mu.Unlock()
	ch <- ev
}

func (f *fakeTransport) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// countingInjector implements contracts.KeyInjector for tests.
type countingInjector struct {
	mu     sync.Mutex
	downs  int
	ups    int
	closed bool
}

func (c *countingInjector) KeyDown(code contracts.KeyCode, shift bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.downs++
	return nil
}

func (c *countingInjector) KeyUp(code contracts.KeyCode, shift bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ups++
	return nil
}

func (c *countingInjector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *countingInjector) counts() (downs, ups int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downs, c.ups
}

func newTestBridge(t *testing.T) (*Bridge, *fakeTransport, *countingInjector) {
	t.Helper()
	transport := &fakeTransport{}
	inj := &countingInjector{}
	bridge, err := NewBridge(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithMIDIClient(transport),
		contracts.WithKeyInjector(inj),
		contracts.WithMappingPath(filepath.Join(t.TempDir(), "mapping.toml")),
	)
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}
	return bridge, transport, inj
}

func TestBridgeTranslatesTransportEvents(t *testing.T) {
	bridge, transport, inj := newTestBridge(t)
	if err := bridge.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer bridge.Stop()

	transport.send(contracts.MIDI{Command: 0x90, Note: 60, Velocity: 100})

	select {
	case delta := <-bridge.Deltas():
		if len(delta.Notes) != 1 || delta.Notes[0] != 60 {
			t.Errorf("delta notes = %v, want [60]", delta.Notes)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state delta")
	}

	if downs, _ := inj.counts(); downs != 1 {
		t.Errorf("injector saw %d key-downs, want 1", downs)
	}
}

func TestBridgeStopDrainsBeforeDisconnect(t *testing.T) {
	bridge, transport, inj := newTestBridge(t)
	if err := bridge.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	transport.send(contracts.MIDI{Command: 0x90, Note: 60, Velocity: 100})
	transport.send(contracts.MIDI{Command: 0x90, Note: 64, Velocity: 100})

	// Wait until both presses are through the engine.
	deadline := time.After(2 * time.Second)
	for len(bridge.ActiveNotes()) < 2 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for notes to be held")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := bridge.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	downs, ups := inj.counts()
	if downs != 2 || ups != 2 {
		t.Errorf("downs=%d ups=%d after stop, want 2 and 2", downs, ups)
	}
	if !transport.isStopped() {
		t.Error("transport not stopped")
	}
	if notes := bridge.ActiveNotes(); len(notes) != 0 {
		t.Errorf("held notes after stop = %v, want empty", notes)
	}

	// A second stop is a no-op.
	if err := bridge.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestBridgeRemapPersists(t *testing.T) {
	bridge, _, _ := newTestBridge(t)

	bridge.Remap(60, "Z")

	store := mapping.NewStore(bridge.store.Path(), logger.NewNopLogger())
	deadline := time.After(2 * time.Second)
	for {
		if table := store.Load(); table[60] == "Z" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("remapped table never reached disk")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBridgeListDevices(t *testing.T) {
	bridge, _, _ := newTestBridge(t)

	devices, err := bridge.ListDevices()
	if err != nil {
		t.Fatalf("ListDevices: %v", err)
	}
	if len(devices) != 1 || devices[0].Name != "fake device" {
		t.Errorf("devices = %v", devices)
	}
}
