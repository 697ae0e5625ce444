// Package stream opens audio files as seekable frame sources for the engine.
//
// It is the narrow face of the disk-streaming layer: open, seek, wait until
// ready, query metadata. Decoding is delegated to beep and the mp3 decoder.
package stream

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extWAV  = ".wav"
	extFLAC = ".flac"
	extMP3  = ".mp3"
)

var (
	ErrOpen        = errors.New("open stream")
	ErrUnsupported = errors.New("unsupported format")
	ErrSeek        = errors.New("seek stream")
	ErrNotSeekable = errors.New("stream not seekable")
	ErrNotReady    = errors.New("stream not ready")
)

// SeekFlags modify Seek.
type SeekFlags uint8

const (
	// SeekClamp clamps out-of-range frames instead of failing.
	SeekClamp SeekFlags = 1 << iota
)

// Info describes an opened stream.
type Info struct {
	Path       string
	NumFrames  int
	SampleRate beep.SampleRate
	Channels   int
	Format     string
	Title      string
	Artist     string
	Album      string
}

// Duration returns the stream length, or 0 for an unknown sample rate.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return i.SampleRate.D(i.NumFrames)
}

// Source is an opened stream. It is a beep.StreamSeekCloser so the engine
// can take ownership of it directly.
type Source interface {
	beep.StreamSeekCloser
	SeekTo(frame int, flags SeekFlags) error
	BlockUntilReady(ctx context.Context) error
	Info() Info
}

// Opener creates sources.
type Opener interface {
	Open(path string, trackIndex, channels int, seekable bool) (Source, error)
}

// FileOpener opens sources from the local filesystem.
type FileOpener struct{}

var _ Opener = FileOpener{}

// IsAudioFile reports whether path has a supported extension.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extWAV, extFLAC, extMP3:
		return true
	}
	return false
}

// Open decodes path. trackIndex selects a track in multi-track containers;
// the supported formats carry one, so only 0 is valid. channels is 1
// (downmixed) or 2.
func (FileOpener) Open(path string, trackIndex, channels int, seekable bool) (Source, error) {
	if trackIndex != 0 {
		return nil, fmt.Errorf("%w %s: no track %d", ErrOpen, path, trackIndex)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w %s: %d channels", ErrOpen, path, channels)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !IsAudioFile(path) {
		return nil, fmt.Errorf("%w %s: %w: %s", ErrOpen, path, ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	var dec beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extWAV:
		dec, format, err = wav.Decode(f)
	case extFLAC:
		if err = skipID3v2(f); err == nil {
			dec, format, err = flac.Decode(f)
		}
	case extMP3:
		dec, format, err = decodeMP3(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	info := readTags(path)
	info.Path = path
	info.NumFrames = dec.Len()
	info.SampleRate = format.SampleRate
	info.Channels = channels
	info.Format = strings.ToUpper(strings.TrimPrefix(ext, "."))

	return newHandle(dec, info, seekable), nil
}
