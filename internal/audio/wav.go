package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	wavFormatIEEEFloat = 3
	bitsPerSample      = 32
	bytesPerSample     = bitsPerSample / 8
)

// ReadWAV reads a 32-bit IEEE-float or 16-bit PCM WAV file into a Buffer.
// Mono files are duplicated into both channels; other channel counts and
// sample formats are rejected.
func ReadWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("audio: read RIFF header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, fmt.Errorf("audio: %s is not a RIFF/WAVE file", path)
	}

	var (
		sampleRate int
		channels   int
		formatCode int
		bitDepth   int
		pcm        []byte
	)

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(f, chunkHeader); err != nil {
			break
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		body := make([]byte, chunkSize)
		if _, err := io.ReadFull(f, body); err != nil {
			return nil, fmt.Errorf("audio: read %s chunk: %w", chunkID, err)
		}

		switch chunkID {
		case "fmt ":
			formatCode = int(binary.LittleEndian.Uint16(body[0:2]))
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
		case "data":
			pcm = body
		}

		if chunkSize%2 == 1 {
			f.Seek(1, 1) // chunks are word-aligned
		}
	}

	if pcm == nil {
		return nil, fmt.Errorf("audio: %s has no data chunk", path)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("audio: %s has %d channels, only mono/stereo supported", path, channels)
	}

	samples, err := decodeSamples(pcm, formatCode, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	if channels == 1 {
		return FromMono(samples, sampleRate)
	}

	n := len(samples) / 2
	left := make([]float32, n)
	right := make([]float32, n)
	for i := 0; i < n; i++ {
		left[i] = samples[2*i]
		right[i] = samples[2*i+1]
	}
	return New(left, right, sampleRate)
}

func decodeSamples(pcm []byte, formatCode, bitDepth int) ([]float32, error) {
	switch {
	case formatCode == wavFormatIEEEFloat && bitDepth == 32:
		n := len(pcm) / 4
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(pcm[i*4 : i*4+4])
			out[i] = math.Float32frombits(bits)
		}
		return out, nil
	case formatCode == 1 && bitDepth == 16:
		n := len(pcm) / 2
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
			out[i] = float32(v) / 32768
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported WAV format code %d / bit depth %d", formatCode, bitDepth)
	}
}

// WriteWAV writes buf as an IEEE-float, 2-channel WAV file. Samples outside
// [-1, 1] are written unclamped, per the export contract — the limiter stage
// is responsible for compliance in normal flow.
func WriteWAV(path string, buf *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}
	defer f.Close()

	n := buf.Len()
	dataSize := n * 2 * bytesPerSample
	fmtChunkSize := 16
	riffSize := 4 + (8 + fmtChunkSize) + (8 + dataSize)

	w := newLittleEndianWriter(f)
	w.writeString("RIFF")
	w.writeUint32(uint32(riffSize))
	w.writeString("WAVE")

	w.writeString("fmt ")
	w.writeUint32(uint32(fmtChunkSize))
	w.writeUint16(wavFormatIEEEFloat)
	w.writeUint16(2) // channels
	w.writeUint32(uint32(buf.SampleRate))
	byteRate := buf.SampleRate * 2 * bytesPerSample
	w.writeUint32(uint32(byteRate))
	blockAlign := 2 * bytesPerSample
	w.writeUint16(uint16(blockAlign))
	w.writeUint16(bitsPerSample)

	w.writeString("data")
	w.writeUint32(uint32(dataSize))
	for i := 0; i < n; i++ {
		w.writeFloat32(buf.Left[i])
		w.writeFloat32(buf.Right[i])
	}

	return w.err
}

type littleEndianWriter struct {
	f   *os.File
	err error
}

func newLittleEndianWriter(f *os.File) *littleEndianWriter {
	return &littleEndianWriter{f: f}
}

func (w *littleEndianWriter) write(buf []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.f.Write(buf)
}

func (w *littleEndianWriter) writeString(s string) { w.write([]byte(s)) }

func (w *littleEndianWriter) writeUint16(v uint16) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	w.write(buf)
}

func (w *littleEndianWriter) writeUint32(v uint32) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	w.write(buf)
}

func (w *littleEndianWriter) writeFloat32(v float32) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	w.write(buf)
}
