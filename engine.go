// Package harmonium ties the music kernel, synth backend, and recorder
// stack together into one runnable engine, generalizing the teacher's
// player.go (functional-options construction, Watch()-style event
// channel, graceful Stop/Wait) from "play one parsed MML score" to
// "continuously generate music from an affective state stream".
package harmonium

import (
	"os"
	"time"

	intaudio "github.com/bascanada/harmonium-sub001/internal/audio"
	"github.com/bascanada/harmonium-sub001/internal/emotion"
	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/herrors"
	"github.com/bascanada/harmonium-sub001/internal/kernel"
	"github.com/bascanada/harmonium-sub001/internal/osc"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
	"github.com/bascanada/harmonium-sub001/internal/recorder"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
	"github.com/bascanada/harmonium-sub001/internal/rtlog"
	"github.com/bascanada/harmonium-sub001/internal/semantic"
	"github.com/bascanada/harmonium-sub001/internal/voice"
	"github.com/sirupsen/logrus"
)

// Backend names the synthesis backend requested on the CLI. Only
// BackendFunDSP has a concrete implementation in this port (internal/voice's
// fm/nesapu engines are pure-Go DSP in the fundsp tradition); requesting
// BackendOdin2 degrades to BackendFunDSP with a logged warning, since no
// VST-hosting backend exists anywhere in the retrieval pack.
type Backend string

const (
	BackendFunDSP Backend = "fundsp"
	BackendOdin2  Backend = "odin2"
)

const muteSettleDelay = 3 * time.Second
const recordingDrainTimeout = 5 * time.Second

// recordingTargets is the fixed set of formats the recorder knows about,
// in the order the CLI's default output paths are listed (spec §6).
var recordingTargets = []struct {
	format      event.RecordingFormat
	defaultPath string
}{
	{event.FormatWAV, "output.wav"},
	{event.FormatMIDI, "output.mid"},
	{event.FormatMusicXML, "output.musicxml"},
	{event.FormatTruth, "output.truth.json"},
}

// Config is everything New needs: the CLI surface (spec §6)
// translated into Go types, a soundfont path accepted for CLI
// bit-exactness but only existence-checked (no SF2 parser exists in the
// retrieval pack; synthesis always renders through internal/synthesis's
// preset bank, per the ResourceMissing "fall back to default preset"
// policy).
type Config struct {
	SampleRate    int
	SoundfontPath string
	Seed          int64
	InitialKey    pitch.PitchClass

	RhythmMode  rhythm.Mode
	HarmonyMode harmony.Mode
	PolySteps   int
	DrumKit     bool
	Backend     Backend

	OSCEnabled bool

	// RecordPaths maps a requested format to its output path; a format
	// absent from this map is not recorded at all. An empty string value
	// means "requested with no explicit path", resolved to the format's
	// default output path.
	RecordPaths map[event.RecordingFormat]string
}

// DefaultConfig returns a Config with the CLI's documented defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		Seed:        1,
		InitialKey:  pitch.PitchClass(0),
		RhythmMode:  rhythm.Euclidean,
		HarmonyMode: harmony.ModeDriver,
		PolySteps:   16,
		Backend:     BackendFunDSP,
		RecordPaths: map[event.RecordingFormat]string{},
	}
}

// Engine owns the full generation pipeline: Kernel drives the affect to
// AudioEvent pipeline, Backend renders it to audio, Recorder optionally
// tees the event/sample stream into up to four exporters, and an OSC
// listener (if enabled) feeds live affective updates.
type Engine struct {
	cfg Config

	kernel   *kernel.Kernel
	backend  *voice.Backend
	recorder *recorder.Recorder
	queue    *recorder.Queue
	audio    *intaudio.Player
	oscIn    *osc.Listener
	semantic *semantic.Engine
	log      *rtlog.Sink

	affect emotion.EngineParams
	stop   chan struct{}
}

// New validates cfg, wires the full pipeline, and starts audio playback.
// Returns herrors.ErrConfigInvalid for an out-of-range CLI combination.
// A soundfont path that doesn't resolve is not an error: New logs a
// warning and renders through the default preset bank.
func New(cfg Config) (*Engine, error) {
	if cfg.SampleRate <= 0 {
		return nil, herrors.Wrap(herrors.ErrConfigInvalid, "sample rate must be positive")
	}
	if cfg.PolySteps != 0 && (cfg.PolySteps%4 != 0 || cfg.PolySteps < 16 || cfg.PolySteps > 384) {
		return nil, herrors.Wrapf(herrors.ErrConfigInvalid, "poly-steps %d must be a multiple of 4 in [16,384]", cfg.PolySteps)
	}
	if cfg.Backend != "" && cfg.Backend != BackendFunDSP && cfg.Backend != BackendOdin2 {
		return nil, herrors.Wrapf(herrors.ErrConfigInvalid, "unknown backend %q", cfg.Backend)
	}

	logger := logrus.New()
	sink := rtlog.NewSink(logrus.NewEntry(logger), 256)

	if cfg.SoundfontPath != "" {
		if _, err := os.Stat(cfg.SoundfontPath); err != nil {
			sink.Post(rtlog.LevelWarn, "soundfont not found, using default preset bank", logrus.Fields{"path": cfg.SoundfontPath})
		}
	}
	if cfg.Backend == BackendOdin2 {
		sink.Post(rtlog.LevelWarn, "odin2 backend unavailable, degrading to fundsp", nil)
	}

	affect := emotion.EngineParams{
		Mode:        cfg.RhythmMode,
		PolySteps:   cfg.PolySteps,
		HarmonyMode: cfg.HarmonyMode,
	}

	k := kernel.New(cfg.SampleRate, cfg.InitialKey, cfg.Seed, affect)
	backend := voice.New(cfg.SampleRate, k.Events())
	queue := recorder.NewQueue()
	rec := recorder.New(backend, cfg.SampleRate, queue)
	backend.SetEventObserver(rec.HandleEvent)

	audioPlayer, err := intaudio.NewPlayer(cfg.SampleRate, rec)
	if err != nil {
		return nil, herrors.Wrap(err, "starting audio output")
	}

	e := &Engine{
		cfg:      cfg,
		kernel:   k,
		backend:  backend,
		recorder: rec,
		queue:    queue,
		audio:    audioPlayer,
		semantic: semantic.New(),
		log:      sink,
		affect:   affect,
		stop:     make(chan struct{}),
	}

	for _, target := range recordingTargets {
		if _, ok := cfg.RecordPaths[target.format]; ok {
			k.Events().Push(event.StartRecording{Format: target.format})
		}
	}

	if cfg.OSCEnabled {
		listener, err := osc.Listen(sink, e.applyOSCParams)
		if err != nil {
			return nil, herrors.Wrap(err, "starting OSC listener")
		}
		e.oscIn = listener
	}

	audioPlayer.Play()
	return e, nil
}

// SetAffect publishes a new affective snapshot, taking effect at the
// kernel's next step boundary.
func (e *Engine) SetAffect(valence, arousal, tension, density, smoothness float64) {
	e.affect.Valence = valence
	e.affect.Arousal = arousal
	e.affect.Tension = tension
	e.affect.Density = density
	e.affect.Smoothness = smoothness
	e.backend.SetAffect(valence, arousal, tension, density, smoothness)
	e.kernel.PushParams(e.affect)
}

// ApplyTags runs the semantic engine over tags and publishes the adjusted
// affective state, per spec §6's "semantic input is an ordered list of
// strings" contract.
func (e *Engine) ApplyTags(tags []string) {
	e.affect = e.semantic.Analyze(tags, e.affect)
	e.backend.SetAffect(e.affect.Valence, e.affect.Arousal, e.affect.Tension, e.affect.Density, e.affect.Smoothness)
	e.kernel.PushParams(e.affect)
}

func (e *Engine) applyOSCParams(p osc.Params) {
	e.SetAffect(p.Valence, p.Arousal, p.Tension, p.Density, e.affect.Smoothness)
}

// Advance drives the kernel clock forward by deltaSeconds of wall time,
// dispatching every sequencer step boundary crossed. Call this from a
// control-thread ticker; it is not real-time safe (allocates) and must
// never run on the audio callback.
func (e *Engine) Advance(deltaSeconds float64) {
	e.kernel.Advance(deltaSeconds)
}

// Run drives the kernel on a fixed ticker for duration (0 means run until
// RequestStop is called from another goroutine, e.g. a signal handler).
func (e *Engine) Run(duration time.Duration) {
	const tick = 10 * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var elapsed time.Duration
	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.Advance(tick.Seconds())
			if duration > 0 {
				elapsed += tick
				if elapsed >= duration {
					return
				}
			}
		}
	}
}

// RequestStop ends a Run call in progress, as if its duration had elapsed.
// Safe to call once from any goroutine.
func (e *Engine) RequestStop() {
	close(e.stop)
}

// Shutdown runs the cooperative graceful-shutdown protocol (spec §5):
// mute every channel, wait for in-flight audio to settle, stop whichever
// recordings were requested, and wait up to 5s for them to drain. Returns
// the formats that failed to finalize in time (empty on full success) and
// writes every recording that did finalize to its configured path.
func (e *Engine) Shutdown() ([]event.RecordingFormat, error) {
	e.kernel.Events().Push(event.SetMixerGains{Gains: map[string]float64{
		"bass": 0, "lead": 0, "snare": 0, "hat": 0, "poly": 0,
	}})
	time.Sleep(muteSettleDelay)

	active := e.recorder.Active()
	for _, f := range active {
		e.kernel.Events().Push(event.StopRecording{Format: f})
	}

	// Finalization happens inside the backend's event-drain step, which
	// only runs while the audio stream is still being read, so the
	// drain-wait must happen before the player (and its reader goroutine)
	// are stopped, not after.
	var finished []recorder.FinishedRecording
	var missing []event.RecordingFormat
	var waitErr error
	if len(active) > 0 {
		finished, missing, waitErr = e.queue.WaitFor(active, recordingDrainTimeout)
	}

	if e.oscIn != nil {
		e.oscIn.Close()
	}
	if e.audio != nil {
		_ = e.audio.Stop()
	}

	for _, fr := range finished {
		path := e.outputPath(fr.Format)
		if writeErr := os.WriteFile(path, fr.Data, 0o644); writeErr != nil {
			e.log.Post(rtlog.LevelError, "failed writing recording", logrus.Fields{"path": path, "error": writeErr.Error()})
		}
	}
	e.log.Close()
	if waitErr != nil {
		return missing, herrors.Wrap(herrors.ErrRecordingTimeout, "some recordings did not finalize in time")
	}
	return missing, nil
}

func (e *Engine) outputPath(f event.RecordingFormat) string {
	if p, ok := e.cfg.RecordPaths[f]; ok && p != "" {
		return p
	}
	for _, target := range recordingTargets {
		if target.format == f {
			return target.defaultPath
		}
	}
	return "output.bin"
}
