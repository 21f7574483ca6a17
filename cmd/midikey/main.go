package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/midikey/internal/logger"
	"github.com/leandrodaf/midikey/sdk/contracts"
	"github.com/leandrodaf/midikey/sdk/midikey"
)

func main() {
	var (
		list    = flag.Bool("list", false, "list MIDI input devices and exit")
		device  = flag.Int("device", 0, "MIDI input device ID")
		mapFile = flag.String("mapping", "", "path of the mapping document (default: user config dir)")
		watch   = flag.Bool("watch", false, "reload the mapping document on external edits")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := logger.NewZapLogger()

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	}
	if *debug {
		opts = append(opts, contracts.WithLogLevel(contracts.DebugLevel))
	}
	if *mapFile != "" {
		opts = append(opts, contracts.WithMappingPath(*mapFile))
	}
	if *watch {
		opts = append(opts, contracts.WithMappingWatch())
	}

	bridge, err := midikey.NewBridge(opts...)
	if err != nil {
		log.Error("failed to initialize bridge", log.Field().Error("error", err))
		os.Exit(1)
	}

	devices, err := bridge.ListDevices()
	if err != nil {
		log.Error("no MIDI devices found", log.Field().Error("error", err))
		os.Exit(1)
	}
	if *list {
		for i, d := range devices {
			fmt.Printf("%3d  %s (%s)\n", i, d.Name, d.Manufacturer)
		}
		return
	}

	if err := bridge.SelectDevice(*device); err != nil {
		log.Error("failed to select MIDI device",
			log.Field().Int("deviceID", *device),
			log.Field().Error("error", err))
		os.Exit(1)
	}

	if err := bridge.Start(); err != nil {
		log.Error("failed to start bridge", log.Field().Error("error", err))
		os.Exit(1)
	}

	// Drain the UI delta channel; without a UI attached the snapshots are
	// only useful at debug level.
	go func() {
		for delta := range bridge.Deltas() {
			log.Debug("active keys changed",
				log.Field().Int("held", len(delta.Notes)),
				log.Field().String("keys", fmt.Sprint(delta.Keys)))
		}
	}()

	fmt.Println("Translating MIDI notes to key events. Press Ctrl+C to exit.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := bridge.Stop(); err != nil {
		log.Warn("error during shutdown", log.Field().Error("error", err))
	}
}
