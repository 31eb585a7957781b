package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestWAV writes a minimal PCM-16 mono WAV file with the given number
// of sample frames and returns its path.
func writeTestWAV(t *testing.T, frames int, sampleRate uint32) string {
	t.Helper()

	buf := &bytes.Buffer{}
	dataSize := uint32(frames * 2)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, fmtChunk{
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
	})

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))

	path := filepath.Join(t.TempDir(), "test.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	return path
}

func TestReadInfoDuration(t *testing.T) {
	// 120000 frames at 16kHz = 7.5 seconds
	path := writeTestWAV(t, 120000, 16000)

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}
	if info.SampleRate != 16000 {
		t.Errorf("Expected sample rate 16000, got %d", info.SampleRate)
	}
	if info.Frames() != 120000 {
		t.Errorf("Expected 120000 frames, got %d", info.Frames())
	}
	if got := info.DurationSec(); math.Abs(got-7.5) > 1e-9 {
		t.Errorf("Expected duration 7.5s, got %v", got)
	}
}

func TestReadInfoSkipsUnknownChunks(t *testing.T) {
	buf := &bytes.Buffer{}
	dataSize := uint32(32000) // 1 second at 16kHz mono PCM-16

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, fmtChunk{
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    16000,
		ByteRate:      32000,
		BlockAlign:    2,
		BitsPerSample: 16,
	})

	// LIST chunk between fmt and data, as many encoders emit
	buf.WriteString("LIST")
	binary.Write(buf, binary.LittleEndian, uint32(6))
	buf.Write([]byte("INFOab"))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))

	path := filepath.Join(t.TempDir(), "list.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}
	if got := info.DurationSec(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected duration 1.0s, got %v", got)
	}
}

func TestReadInfoRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("definitely not a wav file"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ReadInfo(path); err == nil {
		t.Fatal("Expected error for non-WAV data")
	}
}

func TestReadInfoTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ReadInfo(path); err == nil {
		t.Fatal("Expected error for truncated header")
	}
}

func TestReadInfoMissingFile(t *testing.T) {
	if _, err := ReadInfo(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
