package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/handysynth/pkg/plugin"
)

// defaultBPM applies until the first tempo event.
const defaultBPM = 120.0

var errTimeFormat = errors.New("unsupported MIDI time format")

// song is a MIDI file flattened onto the sample timeline.
type song struct {
	messages []plugin.TimedMessage
	// frames is the position of the last event, end-of-track included.
	frames int64
	notes  int
}

// note is one note start, for verbose output.
type note struct {
	frame   int64
	channel uint8
	key     uint8
}

type tickEvent struct {
	tick int64
	msg  smf.Message
}

// readSong reads an SMF and converts every tick position to a frame at
// sampleRate, following tempo changes. Meta and SysEx events are consumed
// here and never reach the instrument.
func readSong(r io.Reader, sampleRate float64) (song, []note, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return song{}, nil, fmt.Errorf("read MIDI file: %w", err)
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return song{}, nil, fmt.Errorf("%w: %v", errTimeFormat, s.TimeFormat)
	}
	sg, notes := flatten(s.Tracks, float64(ticks.Resolution()), sampleRate)
	return sg, notes, nil
}

func flatten(tracks []smf.Track, ticksPerQuarter, sampleRate float64) (song, []note) {
	var events []tickEvent
	for _, track := range tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			events = append(events, tickEvent{tick: tick, msg: ev.Message})
		}
	}
	// Same-tick events keep track order, then file order.
	slices.SortStableFunc(events, func(a, b tickEvent) int {
		return cmp.Compare(a.tick, b.tick)
	})

	var (
		out      song
		notes    []note
		elapsed  float64
		lastTick int64
	)
	bpm := defaultBPM
	for _, ev := range events {
		elapsed += float64(ev.tick-lastTick) / ticksPerQuarter * 60 / bpm
		lastTick = ev.tick
		frame := int64(math.Round(elapsed * sampleRate))
		out.frames = max(out.frames, frame)

		var tempo float64
		if ev.msg.GetMetaTempo(&tempo) {
			if tempo > 0 {
				bpm = tempo
			}
			continue
		}
		raw := []byte(ev.msg)
		if len(raw) == 0 || raw[0] >= 0xF0 {
			continue
		}

		var ch, key, vel uint8
		if midi.Message(raw).GetNoteStart(&ch, &key, &vel) {
			out.notes++
			notes = append(notes, note{frame: frame, channel: ch, key: key})
		}
		out.messages = append(out.messages, plugin.TimedMessage{Frame: frame, Data: slices.Clone(raw)})
	}
	return out, notes
}

// seconds converts a frame count at sampleRate.
func seconds(frames int64, sampleRate float64) float64 {
	return float64(frames) / sampleRate
}
