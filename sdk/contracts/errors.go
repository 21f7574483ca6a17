package contracts

import "errors"

// ErrDeviceAttach is wrapped by every transport when attaching to the
// selected MIDI input source fails. The wrapping error carries the identity
// of the attempted device so callers can report which source failed.
var ErrDeviceAttach = errors.New("cannot attach to MIDI device")
