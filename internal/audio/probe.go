package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"music-vault/internal/logging"
	"music-vault/internal/metrics"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// ErrNoAudioStream indicates the file exposes no decodable audio stream.
var ErrNoAudioStream = errors.New("no decodable audio stream")

// ProbeDuration opens the audio file at path, auto-detects its container,
// and returns the duration formatted as zero-padded mm:ss. When the frame
// count or sample rate cannot be determined the duration is reported as
// "00:00" without error; only an unreadable or unrecognized file fails.
func ProbeDuration(path string) (string, error) {
	container, err := detectContainer(path)
	if err != nil {
		metrics.ObserveProbe("unknown", err)
		return "", err
	}

	d, err := probe(path, container)
	metrics.ObserveProbe(container, err)
	if err != nil {
		return "", err
	}
	return FormatDuration(d), nil
}

func probe(path, container string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	switch container {
	case "mp3":
		streamer, format, err = mp3.Decode(f)
	case "wav":
		streamer, format, err = wav.Decode(f)
	case "ogg":
		streamer, format, err = vorbis.Decode(f)
	case "flac":
		streamer, format, err = flac.Decode(f)
	default:
		return 0, ErrNoAudioStream
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoAudioStream, err)
	}

	frames := streamer.Len()
	rate := int(format.SampleRate)
	if frames <= 0 || rate <= 0 {
		// Frame count or sample rate unknown; report zero duration
		// rather than failing the enclosing ingestion.
		logging.Debug("audio: %s has unknown length (frames=%d rate=%d)", filepath.Base(path), frames, rate)
		return 0, nil
	}

	return float64(frames) / float64(rate), nil
}

// detectContainer sniffs the container format from the file header,
// falling back to the file extension for formats whose first frame does
// not start at byte zero.
func detectContainer(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := f.Read(header)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoAudioStream, err)
	}
	header = header[:n]

	switch {
	case len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WAVE":
		return "wav", nil

	case len(header) >= 4 && string(header[0:4]) == "OggS":
		return "ogg", nil

	case len(header) >= 4 && string(header[0:4]) == "fLaC":
		return "flac", nil

	case len(header) >= 3 && string(header[0:3]) == "ID3":
		return "mp3", nil

	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// Bare MPEG audio frame sync
		return "mp3", nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "mp3", nil
	case ".wav":
		return "wav", nil
	case ".ogg", ".oga":
		return "ogg", nil
	case ".flac":
		return "flac", nil
	}

	return "", ErrNoAudioStream
}

// FormatDuration renders a duration in seconds as zero-padded mm:ss.
// Minutes are floored from the total and seconds rounded independently,
// so an input like 59.6 renders as "00:60".
func FormatDuration(seconds float64) string {
	minutes := int(math.Floor(seconds / 60.0))
	secs := int(math.Round(math.Mod(seconds, 60.0)))
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
