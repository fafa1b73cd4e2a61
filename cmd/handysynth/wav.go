package main

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth       = 16
	wavFormatPCM   = 1
	pcm16FullScale = math.MaxInt16
)

// wavWriter streams rendered blocks into a 16-bit PCM WAV file.
type wavWriter struct {
	enc *wav.Encoder
	buf *audio.IntBuffer
}

func newWavWriter(w io.WriteSeeker, sampleRate, channels int) *wavWriter {
	return &wavWriter{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

// Write interleaves one block of planar channels.
func (w *wavWriter) Write(block [][]float32) error {
	if len(block) == 0 {
		return nil
	}
	frames := len(block[0])
	w.buf.Data = w.buf.Data[:0]
	for i := 0; i < frames; i++ {
		for ch := range block {
			w.buf.Data = append(w.buf.Data, toPCM16(block[ch][i]))
		}
	}
	return w.enc.Write(w.buf)
}

// Close finalizes the WAV header. It does not close the underlying file.
func (w *wavWriter) Close() error {
	return w.enc.Close()
}

// toPCM16 clamps a float sample to [-1, 1] and scales it.
func toPCM16(sample float32) int {
	s := math.Max(-1, math.Min(1, float64(sample)))
	if math.IsNaN(s) {
		return 0
	}
	return int(math.Round(s * pcm16FullScale))
}
