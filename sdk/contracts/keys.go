package contracts

// KeyCode identifies a physical keyboard key. Values follow the Linux
// input-event-codes numbering; platform injectors that speak a different
// key-code space translate internally.
type KeyCode uint16

// KeyInjector delivers synthesized keyboard events to the operating system.
// When shift is true the implementation composes the modifier itself: a
// key-down presses shift before the base key, and a key-up releases the base
// key before shift.
type KeyInjector interface {
	KeyDown(code KeyCode, shift bool) error // Presses the key, composing shift if requested.
	KeyUp(code KeyCode, shift bool) error   // Releases the key, composing shift if requested.
	Close() error                           // Releases the underlying device.
}
