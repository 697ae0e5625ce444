//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter serves a Controller as org.mpris.MediaPlayer2.loopdeck.
type Adapter struct {
	server *server.Server
}

// New creates and starts an adapter.
func New(ctl Controller) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("loopdeck", &rootAdapter{}, &playerAdapter{ctl: ctl}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error  { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "loopdeck", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/wav", "audio/flac", "audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and
// OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
type playerAdapter struct {
	ctl Controller
}

// One stream, nothing to skip to.
func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.ctl.SetPlaying(false)
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.ctl.TogglePlayback()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.ctl.SetPlaying(false)
	p.ctl.SeekTo(0)
	return nil
}

func (p *playerAdapter) Play() error {
	p.ctl.SetPlaying(true)
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.ctl.SeekBy(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	if trackID != formatTrackID(p.ctl.Snapshot().Path) {
		return nil
	}
	p.ctl.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.ctl.Snapshot().Playing {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error)    { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error   { return nil }
func (p *playerAdapter) Volume() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.ctl.Snapshot()
	if s.Path == "" {
		return types.Metadata{}, nil
	}
	return metadataFor(s), nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctl.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) CanGoNext() (bool, error)      { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error)  { return false, nil }
func (p *playerAdapter) CanPlay() (bool, error)        { return true, nil }
func (p *playerAdapter) CanPause() (bool, error)       { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)        { return true, nil }
func (p *playerAdapter) CanControl() (bool, error)     { return true, nil }

// LoopStatus maps an active loop region to Track.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.ctl.Snapshot().Looping {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus turns looping off for None and on otherwise.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.ctl.SetLooping(status != types.LoopStatusNone)
	return nil
}

func metadataFor(s Snapshot) types.Metadata {
	title := s.Title
	if title == "" {
		title = filepath.Base(s.Path)
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Path)),
		Length:  types.Microseconds(s.Length.Microseconds()),
		Title:   title,
		Album:   s.Album,
	}
	if s.Artist != "" {
		meta.Artist = []string{s.Artist}
	}
	if artPath := FindAlbumArt(s.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}
	return meta
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
