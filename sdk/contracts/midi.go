package contracts

// MIDI represents a raw MIDI event with a timestamp, command, note, and velocity.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status byte (command nibble plus channel).
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// ClientMIDI defines an interface for MIDI input transport operations.
type ClientMIDI interface {
	Stop() error                         // Stops the transport and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI input devices.
	SelectDevice(deviceID int) error     // Attaches to a MIDI input device by its ID.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events into the specified channel.
}
