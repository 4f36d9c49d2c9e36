// Package rtlog is the non-real-time logging sink: audio-thread code never
// calls logrus directly, it posts a pre-built record onto a bounded,
// non-blocking channel that a single background goroutine drains into
// logrus. A full channel drops the record rather than blocking the render
// goroutine.
package rtlog

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultCapacity = 256

// Level mirrors the logrus levels the render goroutine is allowed to emit.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// record is a fully-formed log line; building it is the caller's
// responsibility so the sink never does string formatting work on behalf
// of the audio thread.
type record struct {
	level  Level
	msg    string
	fields logrus.Fields
}

// Sink drains posted records into a logrus logger from a single background
// goroutine, so the producer side never touches logrus and never blocks.
type Sink struct {
	ch     chan record
	logger *logrus.Entry
	dropMu sync.Mutex
	drops  uint64
	done   chan struct{}
}

// NewSink starts the drain goroutine and returns a ready Sink. Call Close
// to stop it once nothing else will post.
func NewSink(logger *logrus.Entry, capacity int) *Sink {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if logger == nil {
		logger = logrus.WithField("component", "rtlog")
	}
	s := &Sink{
		ch:     make(chan record, capacity),
		logger: logger,
		done:   make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *Sink) drain() {
	defer close(s.done)
	for rec := range s.ch {
		entry := s.logger
		if len(rec.fields) > 0 {
			entry = entry.WithFields(rec.fields)
		}
		switch rec.level {
		case LevelDebug:
			entry.Debug(rec.msg)
		case LevelWarn:
			entry.Warn(rec.msg)
		case LevelError:
			entry.Error(rec.msg)
		default:
			entry.Info(rec.msg)
		}
	}
}

// Post is real-time safe: it is a single non-blocking channel send with no
// further allocation beyond the record value itself, which the caller
// should construct from already-live data (no fmt.Sprintf on the hot
// path). A full channel increments the drop counter instead of blocking.
func (s *Sink) Post(level Level, msg string, fields logrus.Fields) {
	select {
	case s.ch <- record{level: level, msg: msg, fields: fields}:
	default:
		s.dropMu.Lock()
		s.drops++
		s.dropMu.Unlock()
	}
}

// Drops returns the number of records discarded because the channel was
// full when Post was called.
func (s *Sink) Drops() uint64 {
	s.dropMu.Lock()
	defer s.dropMu.Unlock()
	return s.drops
}

// Close stops accepting new records and blocks until the drain goroutine
// has flushed everything already queued.
func (s *Sink) Close() {
	close(s.ch)
	<-s.done
}
