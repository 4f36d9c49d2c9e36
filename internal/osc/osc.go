// Package osc is a minimal Open Sound Control listener: one UDP socket
// on 127.0.0.1:8080 accepting `/harmonium/params` messages, each carrying
// four float32 arguments (arousal, valence, density, tension). Every
// other address is parsed (to stay protocol-correct) and then ignored.
//
// No OSC library appears anywhere in the retrieval pack, so the wire
// format (address pattern, type-tag string, float32 args, each
// null-padded to a 4-byte boundary per the OSC 1.0 spec) is decoded by
// hand on top of net.UDPConn + encoding/binary.
package osc

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"net"

	"github.com/bascanada/harmonium-sub001/internal/herrors"
	"github.com/bascanada/harmonium-sub001/internal/rtlog"
)

const paramsAddress = "/harmonium/params"

// Params is the decoded payload of a /harmonium/params message.
type Params struct {
	Arousal float64
	Valence float64
	Density float64
	Tension float64
}

// Listener owns the UDP socket and dispatches decoded Params to a
// caller-supplied handler from its own goroutine.
type Listener struct {
	conn    *net.UDPConn
	sink    *rtlog.Sink
	onParam func(Params)
}

// Listen opens a UDP socket on 127.0.0.1:8080 and starts a background
// goroutine calling onParam for every well-formed /harmonium/params
// message received. Call Close to stop it.
func Listen(sink *rtlog.Sink, onParam func(Params)) (*Listener, error) {
	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, herrors.Wrap(err, "osc: listen")
	}
	l := &Listener{conn: conn, sink: sink, onParam: onParam}
	go l.serve()
	return l, nil
}

func (l *Listener) serve() {
	buf := make([]byte, 1024)
	for {
		n, _, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.sink.Post(rtlog.LevelWarn, "osc: read failed", map[string]interface{}{"error": err.Error()})
			continue
		}
		addr, args, err := decodeMessage(buf[:n])
		if err != nil {
			l.sink.Post(rtlog.LevelWarn, "osc: malformed message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if addr != paramsAddress {
			continue
		}
		p, err := paramsFromArgs(args)
		if err != nil {
			l.sink.Post(rtlog.LevelWarn, "osc: bad /harmonium/params payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		l.onParam(p)
	}
}

// Close stops the listener. Safe to call once.
func (l *Listener) Close() error {
	return l.conn.Close()
}

func paramsFromArgs(args []float32) (Params, error) {
	if len(args) != 4 {
		return Params{}, errors.New("osc: /harmonium/params wants 4 float args")
	}
	return Params{
		Arousal: float64(args[0]),
		Valence: float64(args[1]),
		Density: float64(args[2]),
		Tension: float64(args[3]),
	}, nil
}

// decodeMessage parses an OSC 1.0 message: a null-padded address string,
// a null-padded type-tag string starting with ',', and one argument per
// tag char (only 'f' is understood; any other tag aborts decoding since
// this listener has nothing else to read it into).
func decodeMessage(data []byte) (string, []float32, error) {
	addr, rest, err := readPaddedString(data)
	if err != nil {
		return "", nil, err
	}
	tags, rest, err := readPaddedString(rest)
	if err != nil {
		return "", nil, err
	}
	if len(tags) == 0 || tags[0] != ',' {
		return "", nil, errors.New("osc: missing type-tag string")
	}
	var args []float32
	for _, tag := range tags[1:] {
		if tag != 'f' {
			return "", nil, errors.New("osc: unsupported type tag " + string(tag))
		}
		if len(rest) < 4 {
			return "", nil, errors.New("osc: truncated float argument")
		}
		bits := binary.BigEndian.Uint32(rest[:4])
		args = append(args, math.Float32frombits(bits))
		rest = rest[4:]
	}
	return addr, args, nil
}

// readPaddedString reads a null-terminated string padded to a 4-byte
// boundary and returns it along with the remainder of data.
func readPaddedString(data []byte) (string, []byte, error) {
	i := 0
	for i < len(data) && data[i] != 0 {
		i++
	}
	if i == len(data) {
		return "", nil, errors.New("osc: unterminated string")
	}
	s := string(data[:i])
	padded := (i + 1 + 3) &^ 3
	if padded > len(data) {
		return "", nil, errors.New("osc: string padding overruns message")
	}
	return s, data[padded:], nil
}

// Context is accepted by callers that want to tie the listener's
// lifetime to a cancellation signal rather than calling Close directly.
func (l *Listener) RunUntil(ctx context.Context) {
	<-ctx.Done()
	l.Close()
}
