package recorder

import (
	"bytes"
	"encoding/binary"
)

// wavEncoder accumulates interleaved stereo float32 samples and finalizes
// a standard 32-bit-float RIFF/WAVE file, the Go equivalent of the
// teacher's hound::WavWriter usage in recorder.rs. No float-WAV library
// appears in the pack, and the format is a fixed, well-known binary
// layout, so this is hand-rolled with encoding/binary rather than
// imported.
type wavEncoder struct {
	sampleRate int
	channels   int
	samples    []float32
}

func newWAVEncoder(sampleRate, channels int) *wavEncoder {
	return &wavEncoder{sampleRate: sampleRate, channels: channels}
}

func (w *wavEncoder) write(interleaved []float32) {
	w.samples = append(w.samples, interleaved...)
}

func (w *wavEncoder) finish() []byte {
	dataSize := len(w.samples) * 4
	const (
		fmtChunkSize  = 16
		factChunkSize = 4
	)
	byteRate := w.sampleRate * w.channels * 4
	blockAlign := w.channels * 4

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	// RIFF size: everything after this field. 4 (WAVE) + (8+fmtChunkSize)
	// + (8+factChunkSize) + (8+dataSize)
	riffSize := 4 + (8 + fmtChunkSize) + (8 + factChunkSize) + (8 + dataSize)
	binary.Write(buf, binary.LittleEndian, uint32(riffSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(3)) // WAVE_FORMAT_IEEE_FLOAT
	binary.Write(buf, binary.LittleEndian, uint16(w.channels))
	binary.Write(buf, binary.LittleEndian, uint32(w.sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(32)) // bits per sample

	// IEEE-float WAV requires a fact chunk carrying the sample count.
	buf.WriteString("fact")
	binary.Write(buf, binary.LittleEndian, uint32(factChunkSize))
	binary.Write(buf, binary.LittleEndian, uint32(len(w.samples)/w.channels))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range w.samples {
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}
