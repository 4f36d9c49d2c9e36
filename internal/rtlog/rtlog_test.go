package rtlog

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSinkDrainsPostedRecords(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	sink := NewSink(logrus.NewEntry(logger), 16)
	sink.Post(LevelInfo, "step advanced", logrus.Fields{"step": 3})
	sink.Close()
	assert.Zero(t, sink.Drops())
}

func TestSinkPostNeverBlocksWhenFull(t *testing.T) {
	logger := logrus.New()
	sink := NewSink(logrus.NewEntry(logger), 1)
	// With a capacity-1 channel, rapid posts can outrun the drain
	// goroutine; Post must return immediately regardless.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			sink.Post(LevelWarn, "overflow", nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked under channel pressure")
	}
	sink.Close()
}

func TestSinkCloseFlushesBeforeReturning(t *testing.T) {
	logger := logrus.New()
	sink := NewSink(logrus.NewEntry(logger), 8)
	for i := 0; i < 5; i++ {
		sink.Post(LevelDebug, "tick", nil)
	}
	sink.Close()
	select {
	case <-sink.done:
	default:
		t.Error("done channel should be closed after Close returns")
	}
}
