package harmonium

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bascanada/harmonium-sub001/internal/emotion"
	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/harmony"
	"github.com/bascanada/harmonium-sub001/internal/kernel"
	"github.com/bascanada/harmonium-sub001/internal/pitch"
	"github.com/bascanada/harmonium-sub001/internal/rhythm"
)

func TestNewRejectsNonPositiveSampleRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 0
	_, err := New(cfg)
	assert.Error(t, err, "expected error for zero sample rate")
}

func TestNewRejectsPolyStepsNotMultipleOfFour(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PolySteps = 18
	_, err := New(cfg)
	assert.Error(t, err, "expected error for poly-steps not a multiple of 4")
}

func TestNewRejectsPolyStepsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PolySteps = 400
	_, err := New(cfg)
	assert.Error(t, err, "expected error for poly-steps above 384")

	cfg.PolySteps = 8
	_, err = New(cfg)
	assert.Error(t, err, "expected error for poly-steps below 16")
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = Backend("vst3")
	_, err := New(cfg)
	assert.Error(t, err, "expected error for unknown backend")
}

func TestOutputPathFallsBackToDefault(t *testing.T) {
	e := &Engine{cfg: Config{RecordPaths: map[event.RecordingFormat]string{}}}
	assert.Equal(t, "output.wav", e.outputPath(event.FormatWAV))
	assert.Equal(t, "output.truth.json", e.outputPath(event.FormatTruth))
}

func TestOutputPathHonorsExplicitPath(t *testing.T) {
	e := &Engine{cfg: Config{RecordPaths: map[event.RecordingFormat]string{
		event.FormatMIDI: "custom.mid",
	}}}
	assert.Equal(t, "custom.mid", e.outputPath(event.FormatMIDI))
}

func TestRunReturnsWhenRequestStopCalled(t *testing.T) {
	e := &Engine{
		kernel: kernel.New(44100, pitch.PitchClass(0), 1, emotion.EngineParams{Mode: rhythm.Euclidean}),
		stop:   make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		e.Run(0)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	e.RequestStop()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Run did not return after RequestStop")
	}
}

func TestDefaultConfigUsesDriverHarmonyMode(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, harmony.ModeDriver, cfg.HarmonyMode, "default harmony mode")
}
