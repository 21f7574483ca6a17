package contracts

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command nibble for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command nibble for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// ControlChange is the MIDI command nibble for a Control Change event (0xB0).
	ControlChange MIDICommand = 0xB0
)

// CommandOf extracts the command nibble from a raw status byte, discarding
// the channel nibble.
func CommandOf(status byte) MIDICommand {
	return MIDICommand(status & 0xF0)
}

// MIDIEventFilter allows users to specify which MIDI commands to capture.
// Matching is performed on the command nibble, so events on any channel pass.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to let through.
}

// Allows reports whether a raw status byte passes the filter. A nil filter
// allows everything.
func (f *MIDIEventFilter) Allows(status byte) bool {
	if f == nil {
		return true
	}
	cmd := CommandOf(status)
	for _, allowed := range f.Commands {
		if cmd == allowed {
			return true
		}
	}
	return false
}
