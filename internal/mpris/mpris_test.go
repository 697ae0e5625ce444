//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	snap    Snapshot
	playing []bool
	toggles int
	seekBy  []time.Duration
	seekTo  []time.Duration
	looping []bool
}

func (f *fakeController) SetPlaying(p bool)      { f.playing = append(f.playing, p) }
func (f *fakeController) TogglePlayback()        { f.toggles++ }
func (f *fakeController) SeekBy(d time.Duration) { f.seekBy = append(f.seekBy, d) }
func (f *fakeController) SeekTo(d time.Duration) { f.seekTo = append(f.seekTo, d) }
func (f *fakeController) SetLooping(l bool)      { f.looping = append(f.looping, l) }
func (f *fakeController) Snapshot() Snapshot     { return f.snap }

func TestPlayerAdapter_Transport(t *testing.T) {
	ctl := &fakeController{}
	p := &playerAdapter{ctl: ctl}

	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())
	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Seek(types.Microseconds(2_000_000)))
	require.NoError(t, p.Stop())

	assert.Equal(t, []bool{true, false, false}, ctl.playing)
	assert.Equal(t, 1, ctl.toggles)
	assert.Equal(t, []time.Duration{2 * time.Second}, ctl.seekBy)
	assert.Equal(t, []time.Duration{0}, ctl.seekTo)
}

func TestPlayerAdapter_SetPositionChecksTrack(t *testing.T) {
	ctl := &fakeController{snap: Snapshot{Path: "/music/take1.wav"}}
	p := &playerAdapter{ctl: ctl}

	require.NoError(t, p.SetPosition("/org/mpris/MediaPlayer2/Track/other", types.Microseconds(1_000_000)))
	assert.Empty(t, ctl.seekTo)

	require.NoError(t, p.SetPosition(formatTrackID("/music/take1.wav"), types.Microseconds(1_500_000)))
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, ctl.seekTo)
}

func TestPlayerAdapter_Status(t *testing.T) {
	ctl := &fakeController{snap: Snapshot{
		Path:     "/music/take1.wav",
		Artist:   "Someone",
		Playing:  true,
		Looping:  true,
		Position: 3 * time.Second,
		Length:   time.Minute,
	}}
	p := &playerAdapter{ctl: ctl}

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(3_000_000), pos)

	loop, err := p.LoopStatus()
	require.NoError(t, err)
	assert.Equal(t, types.LoopStatusTrack, loop)

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "take1.wav", meta.Title)
	assert.Equal(t, []string{"Someone"}, meta.Artist)
	assert.Equal(t, types.Microseconds(60_000_000), meta.Length)

	ctl.snap.Playing = false
	ctl.snap.Looping = false
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)
	loop, _ = p.LoopStatus()
	assert.Equal(t, types.LoopStatusNone, loop)
}

func TestPlayerAdapter_SetLoopStatus(t *testing.T) {
	ctl := &fakeController{}
	p := &playerAdapter{ctl: ctl}

	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	require.NoError(t, p.SetLoopStatus(types.LoopStatusNone))
	require.NoError(t, p.SetLoopStatus(types.LoopStatusPlaylist))

	assert.Equal(t, []bool{true, false, true}, ctl.looping)
}

func TestMetadata_EmptyWithoutStream(t *testing.T) {
	p := &playerAdapter{ctl: &fakeController{}}

	meta, err := p.Metadata()

	require.NoError(t, err)
	assert.Equal(t, types.Metadata{}, meta)
}
