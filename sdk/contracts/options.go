package contracts

// CoreMIDIConfig holds configuration for the CoreMIDI transport.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client as registered with CoreMIDI.
}

// BridgeOptions defines the configuration options for the note-to-key bridge.
type BridgeOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	MappingPath     string           // Path of the persisted note-to-key mapping document.
	WatchMapping    bool             // Reload the mapping document when it changes on disk.
	KeyInjector     KeyInjector      // Output injector; defaults to the platform injector.
	MIDIClient      ClientMIDI       // Input transport; defaults to the platform transport.
	DeltaBuffer     int              // Buffer size of the UI state-delta channel.
}

// Option is a function that modifies BridgeOptions.
type Option func(*BridgeOptions)

// WithLogger sets the logger for the bridge.
func WithLogger(l Logger) Option {
	return func(opts *BridgeOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the bridge.
func WithLogLevel(level LogLevel) Option {
	return func(opts *BridgeOptions) {
		opts.LogLevel = level
	}
}

// WithMIDIEventFilter sets the MIDI event filter applied at the transport.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *BridgeOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the darwin transport.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *BridgeOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithMappingPath sets the location of the persisted mapping document.
func WithMappingPath(path string) Option {
	return func(opts *BridgeOptions) {
		opts.MappingPath = path
	}
}

// WithMappingWatch enables hot-reloading of the mapping document on external
// edits.
func WithMappingWatch() Option {
	return func(opts *BridgeOptions) {
		opts.WatchMapping = true
	}
}

// WithKeyInjector sets the output injector, replacing the platform default.
func WithKeyInjector(inj KeyInjector) Option {
	return func(opts *BridgeOptions) {
		opts.KeyInjector = inj
	}
}

// WithMIDIClient sets the input transport, replacing the platform default.
func WithMIDIClient(client ClientMIDI) Option {
	return func(opts *BridgeOptions) {
		opts.MIDIClient = client
	}
}

// WithDeltaBuffer sets the buffer size of the UI state-delta channel.
func WithDeltaBuffer(n int) Option {
	return func(opts *BridgeOptions) {
		opts.DeltaBuffer = n
	}
}
