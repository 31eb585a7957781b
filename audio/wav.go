package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Info describes the PCM layout of a WAV file, as read from its header.
type Info struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
	BlockAlign    uint16
	DataBytes     uint32
}

// Frames returns the number of sample frames in the data chunk.
func (i Info) Frames() uint32 {
	if i.BlockAlign == 0 {
		return 0
	}
	return i.DataBytes / uint32(i.BlockAlign)
}

// DurationSec returns the playback duration in seconds (frames / sample rate).
func (i Info) DurationSec() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames()) / float64(i.SampleRate)
}

type riffHeader struct {
	ChunkID   [4]byte // "RIFF"
	ChunkSize uint32
	Format    [4]byte // "WAVE"
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ReadInfo opens a WAV file and parses its RIFF header without reading
// the audio payload. Non-fmt/data chunks (LIST, fact, ...) are skipped.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open wav file: %w", err)
	}
	defer f.Close()

	var riff riffHeader
	if err := binary.Read(f, binary.LittleEndian, &riff); err != nil {
		return Info{}, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff.ChunkID[:]) != "RIFF" {
		return Info{}, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(riff.Format[:]) != "WAVE" {
		return Info{}, fmt.Errorf("invalid WAV file: missing WAVE format")
	}

	var info Info
	haveFmt := false

	for {
		var ch chunkHeader
		if err := binary.Read(f, binary.LittleEndian, &ch); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return Info{}, fmt.Errorf("read chunk header: %w", err)
		}

		switch string(ch.ID[:]) {
		case "fmt ":
			var fc fmtChunk
			if err := binary.Read(f, binary.LittleEndian, &fc); err != nil {
				return Info{}, fmt.Errorf("read fmt chunk: %w", err)
			}
			info.AudioFormat = fc.AudioFormat
			info.NumChannels = fc.NumChannels
			info.SampleRate = fc.SampleRate
			info.BitsPerSample = fc.BitsPerSample
			info.BlockAlign = fc.BlockAlign
			haveFmt = true
			// fmt chunks can carry extension bytes beyond the 16 we parse
			if ch.Size > 16 {
				if _, err := f.Seek(int64(ch.Size-16), io.SeekCurrent); err != nil {
					return Info{}, fmt.Errorf("skip fmt extension: %w", err)
				}
			}
		case "data":
			info.DataBytes = ch.Size
			if !haveFmt {
				return Info{}, fmt.Errorf("invalid WAV file: data chunk before fmt chunk")
			}
			if info.SampleRate == 0 || info.BlockAlign == 0 {
				return Info{}, fmt.Errorf("invalid WAV file: zero sample rate or block align")
			}
			return info, nil
		default:
			skip := int64(ch.Size)
			if ch.Size%2 == 1 {
				skip++ // RIFF chunks are word-aligned
			}
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return Info{}, fmt.Errorf("skip chunk %q: %w", string(ch.ID[:]), err)
			}
		}
	}

	return Info{}, fmt.Errorf("invalid WAV file: missing data chunk")
}
