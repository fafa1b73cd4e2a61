package melty

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// SF2 record layouts, little endian and unpadded.
type presetHeader struct {
	Name       [20]byte
	Program    uint16
	Bank       uint16
	Bag        uint16
	Library    uint32
	Genre      uint32
	Morphology uint32
}

type bag struct {
	Generator uint16
	Modulator uint16
}

type generator struct {
	Operator uint16
	Amount   int16
}

type instrumentHeader struct {
	Name [20]byte
	Bag  uint16
}

type sampleHeader struct {
	Name       [20]byte
	Start      uint32
	End        uint32
	LoopStart  uint32
	LoopEnd    uint32
	SampleRate uint32
	Pitch      uint8
	Correction int8
	Link       uint16
	Type       uint16
}

const (
	genInstrument  = 41
	genSampleID    = 53
	genSampleModes = 54

	testWaveLength = 1000
	testWavePeriod = 100
)

// writeTestFont writes a minimal SF2 with one looped sine sample, one
// instrument and two presets: "<name> Lead" at 0:0 and "<name> Pad" at 1:5.
func writeTestFont(t *testing.T, name string) string {
	t.Helper()

	wave := make([]int16, testWaveLength+46)
	for i := range testWaveLength {
		wave[i] = int16(16000 * math.Sin(2*math.Pi*float64(i)/testWavePeriod))
	}

	info := riffList("INFO",
		riffChunk("ifil", encode(t, []uint16{2, 1})),
		riffChunk("INAM", fixed(name)),
	)
	sdta := riffList("sdta", riffChunk("smpl", encode(t, wave)))
	pdta := riffList("pdta",
		riffChunk("phdr", encode(t, []presetHeader{
			{Name: name20(name + " Lead"), Program: 0, Bank: 0, Bag: 0},
			{Name: name20(name + " Pad"), Program: 5, Bank: 1, Bag: 1},
			{Name: name20("EOP"), Bag: 2},
		})),
		riffChunk("pbag", encode(t, []bag{{0, 0}, {1, 0}, {2, 0}})),
		riffChunk("pmod", make([]byte, 10)),
		riffChunk("pgen", encode(t, []generator{{genInstrument, 0}, {genInstrument, 0}, {}})),
		riffChunk("inst", encode(t, []instrumentHeader{
			{Name: name20("Sine"), Bag: 0},
			{Name: name20("EOI"), Bag: 1},
		})),
		riffChunk("ibag", encode(t, []bag{{0, 0}, {2, 0}})),
		riffChunk("imod", make([]byte, 10)),
		riffChunk("igen", encode(t, []generator{{genSampleModes, 1}, {genSampleID, 0}, {}})),
		riffChunk("shdr", encode(t, []sampleHeader{
			{
				Name:       name20("Sine"),
				End:        testWaveLength,
				LoopStart:  testWavePeriod,
				LoopEnd:    testWaveLength - testWavePeriod,
				SampleRate: 44100,
				Pitch:      60,
				Type:       1,
			},
			{Name: name20("EOS")},
		})),
	)

	body := []byte("sfbk")
	body = append(body, info...)
	body = append(body, sdta...)
	body = append(body, pdta...)

	path := filepath.Join(t.TempDir(), name+".sf2")
	if err := os.WriteFile(path, riffChunk("RIFF", body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func riffChunk(id string, body []byte) []byte {
	b := make([]byte, 0, 8+len(body))
	b = append(b, id...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(body)))
	return append(b, body...)
}

func riffList(kind string, chunks ...[]byte) []byte {
	body := []byte(kind)
	for _, c := range chunks {
		body = append(body, c...)
	}
	return riffChunk("LIST", body)
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func name20(s string) (n [20]byte) {
	copy(n[:], s)
	return n
}

func fixed(s string) []byte {
	n := name20(s)
	return n[:]
}
