package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	harmonium "github.com/bascanada/harmonium-sub001"
	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
)

// optionalPathFlag implements the "--flag[=PATH]" shape the CLI surface
// wants for the four --record-* switches: present with no value means
// "record to the default path for this format", present with "=path"
// overrides it, absent means "don't record this format at all".
type optionalPathFlag struct {
	set  bool
	path string
}

func (f *optionalPathFlag) String() string { return f.path }

func (f *optionalPathFlag) Set(v string) error {
	f.set = true
	if v != "true" {
		f.path = v
	}
	return nil
}

func (f *optionalPathFlag) IsBoolFlag() bool { return true }

func main() {
	var (
		recordWav      optionalPathFlag
		recordMidi     optionalPathFlag
		recordMusicXML optionalPathFlag
		recordTruth    optionalPathFlag
	)
	flag.Var(&recordWav, "record-wav", "capture WAV audio, optionally to =PATH (default output.wav)")
	flag.Var(&recordMidi, "record-midi", "capture a single-track SMF, optionally to =PATH (default output.mid)")
	flag.Var(&recordMusicXML, "record-musicxml", "capture a MusicXML score, optionally to =PATH (default output.musicxml)")
	flag.Var(&recordTruth, "record-truth", "capture the truth-JSON event log, optionally to =PATH (default output.truth.json)")

	oscFlag := flag.Bool("osc", false, "listen for /harmonium/params on UDP 127.0.0.1:8080")
	exportFlag := flag.Bool("export", false, "render for --duration then shut down instead of running until interrupted")
	durationFlag := flag.Float64("duration", 0, "seconds to render before shutting down (required with --export)")
	harmonyModeFlag := flag.String("harmony-mode", "driver", "harmonic engine: basic|driver")
	polyStepsFlag := flag.Int("poly-steps", 16, "sequencer steps for Perfect Balance mode (multiple of 4, 16..384)")
	backendFlag := flag.String("backend", "fundsp", "synthesis backend: fundsp|odin2")
	drumKitFlag := flag.Bool("drum-kit", false, "accepted for CLI compatibility; the drum note mapping does not change")
	rhythmModeFlag := flag.String("rhythm-mode", "euclidean", "rhythm pattern algorithm: euclidean|balance|groove")
	seedFlag := flag.Int64("seed", 1, "deterministic RNG seed")
	sampleRateFlag := flag.Int("sample-rate", 48000, "output sample rate")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [soundfont_path]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	soundfontPath := ""
	if flag.NArg() > 0 {
		soundfontPath = flag.Arg(0)
	}

	harmonyMode, err := parseHarmonyMode(*harmonyModeFlag)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	rhythmMode, err := parseRhythmMode(*rhythmModeFlag)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	backend, err := parseBackend(*backendFlag)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}

	cfg := harmonium.DefaultConfig()
	cfg.SampleRate = *sampleRateFlag
	cfg.SoundfontPath = soundfontPath
	cfg.Seed = *seedFlag
	cfg.RhythmMode = rhythmMode
	cfg.HarmonyMode = harmonyMode
	cfg.PolySteps = *polyStepsFlag
	cfg.DrumKit = *drumKitFlag
	cfg.Backend = harmonium.Backend(backend)
	cfg.OSCEnabled = *oscFlag
	cfg.RecordPaths = recordPaths(recordWav, recordMidi, recordMusicXML, recordTruth)

	eng, err := harmonium.New(cfg)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}

	duration := time.Duration(*durationFlag * float64(time.Second))
	if *exportFlag && duration <= 0 {
		log.Println("--export requires --duration > 0")
		os.Exit(1)
	}

	if duration <= 0 {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigs
			eng.RequestStop()
		}()
	}

	eng.Run(duration)

	missing, err := eng.Shutdown()
	if err != nil {
		log.Printf("shutdown: %v (missing: %v)", err, missing)
		os.Exit(1)
	}
	os.Exit(0)
}

func recordPaths(wav, midi, musicxml, truth optionalPathFlag) map[event.RecordingFormat]string {
	paths := map[event.RecordingFormat]string{}
	if wav.set {
		paths[event.FormatWAV] = wav.path
	}
	if midi.set {
		paths[event.FormatMIDI] = midi.path
	}
	if musicxml.set {
		paths[event.FormatMusicXML] = musicxml.path
	}
	if truth.set {
		paths[event.FormatTruth] = truth.path
	}
	return paths
}

func parseHarmonyMode(s string) (harmony.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return harmony.ModeBasic, nil
	case "driver", "":
		return harmony.ModeDriver, nil
	default:
		return 0, fmt.Errorf("invalid --harmony-mode %q (expected basic|driver)", s)
	}
}

func parseRhythmMode(s string) (rhythm.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean", "":
		return rhythm.Euclidean, nil
	case "balance", "perfectbalance", "perfect-balance":
		return rhythm.PerfectBalance, nil
	case "groove", "classicgroove", "classic-groove":
		return rhythm.ClassicGroove, nil
	default:
		return 0, fmt.Errorf("invalid --rhythm-mode %q (expected euclidean|balance|groove)", s)
	}
}

func parseBackend(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fundsp", "":
		return "fundsp", nil
	case "odin2":
		return "odin2", nil
	default:
		return "", fmt.Errorf("invalid --backend %q (expected fundsp|odin2)", s)
	}
}
