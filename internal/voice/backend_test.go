package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bascanada/harmonium-sub001/internal/event"
	"github.com/bascanada/harmonium-sub001/internal/rtbuf"
)

func TestBackendProcessFillsBuffer(t *testing.T) {
	ring := rtbuf.NewRingBuffer[event.AudioEvent](64)
	b := New(44100, ring)
	ring.Push(event.NoteOn{ID: 1, Note: 60, Velocity: 100, Channel: ChannelLead})

	dst := make([]float32, 256)
	b.Process(dst)

	nonZero := false
	for _, v := range dst {
		if v != 0 {
			nonZero = true
		}
		assert.LessOrEqualf(t, v, float32(1), "sample %v out of tanh-clipped range [-1,1]", v)
		assert.GreaterOrEqualf(t, v, float32(-1), "sample %v out of tanh-clipped range [-1,1]", v)
	}
	assert.True(t, nonZero, "expected some non-zero output after a NoteOn")
}

func TestBackendMuteSilencesChannel(t *testing.T) {
	ring := rtbuf.NewRingBuffer[event.AudioEvent](64)
	b := New(44100, ring)
	b.mutes[ChannelLead] = true
	ring.Push(event.NoteOn{ID: 1, Note: 60, Velocity: 100, Channel: ChannelLead})

	dst := make([]float32, 64)
	b.Process(dst)
	for _, v := range dst {
		assert.Zero(t, v, "muted channel produced non-zero output")
	}
}

func TestBackendNoteOffDropsVoiceMapping(t *testing.T) {
	ring := rtbuf.NewRingBuffer[event.AudioEvent](64)
	b := New(44100, ring)
	ring.Push(event.NoteOn{ID: 7, Note: 48, Velocity: 90, Channel: ChannelBass})
	ring.Push(event.NoteOff{ID: 7, Note: 48, Channel: ChannelBass})

	dst := make([]float32, 8)
	b.Process(dst)

	c := b.channels[ChannelBass]
	_, ok := c.voiceOf[7]
	assert.False(t, ok, "voice mapping for id 7 should be removed after NoteOff")
}

func TestBackendUpdateMusicalParamsRebuildsEngines(t *testing.T) {
	ring := rtbuf.NewRingBuffer[event.AudioEvent](64)
	b := New(44100, ring)
	before := b.channels[ChannelLead].engine
	ring.Push(event.UpdateMusicalParams{})

	dst := make([]float32, 8)
	b.Process(dst)

	after := b.channels[ChannelLead].engine
	assert.NotSame(t, before, after, "expected engine to be rebuilt on UpdateMusicalParams")
}

func TestBackendSetAffectRebuildsMasterBusOnNextReload(t *testing.T) {
	ring := rtbuf.NewRingBuffer[event.AudioEvent](64)
	b := New(44100, ring)
	beforeReverb := b.masterReverb
	beforeDelay := b.masterDelay

	b.SetAffect(0, 0, 0.9, 0, 0.8)
	ring.Push(event.UpdateMusicalParams{})
	dst := make([]float32, 8)
	b.Process(dst)

	assert.NotSame(t, beforeReverb, b.masterReverb, "expected master reverb to be rebuilt after SetAffect+UpdateMusicalParams")
	assert.NotSame(t, beforeDelay, b.masterDelay, "expected master delay to be rebuilt after SetAffect+UpdateMusicalParams")
}

func TestBackendFinishedAlwaysFalse(t *testing.T) {
	ring := rtbuf.NewRingBuffer[event.AudioEvent](8)
	b := New(44100, ring)
	assert.False(t, b.Finished(), "generative backend should never report Finished")
}
