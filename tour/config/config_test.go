package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-tour/tour/choreographer"
	"github.com/Carmen-Shannon/oxy-tour/tour/scroll"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "tour.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, choreographer.StarCount, cfg.Scene.StarCount)
	assert.Equal(t, scroll.DefaultDuration, cfg.Scroll.Duration.Std())
}

func TestLoadTOMLMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
title = "Planets"
width = 1920

[scroll]
duration = "800ms"
wheel_multiplier = 1.5

[engine]
profiling = true
frame_limit = 60
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Planets", cfg.Window.Title)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 800*time.Millisecond, cfg.Scroll.Duration.Std())
	assert.Equal(t, scroll.DefaultScrollToDuration, cfg.Scroll.ScrollToDuration.Std())
	assert.Equal(t, 1.5, cfg.Scroll.WheelMultiplier)
	assert.True(t, cfg.Engine.Profiling)
	assert.Equal(t, 60.0, cfg.Engine.FrameLimit)
	assert.Equal(t, "assets", cfg.Assets.Root)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
assets:
  root: /srv/textures
scene:
  star_count: 2500
scroll:
  scroll_to_duration: 3s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/textures", cfg.Assets.Root)
	assert.Equal(t, 2500, cfg.Scene.StarCount)
	assert.Equal(t, 3*time.Second, cfg.Scroll.ScrollToDuration.Std())
	assert.Equal(t, scroll.DefaultDuration, cfg.Scroll.Duration.Std())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   error
	}{
		{name: "bad duration", data: "[scroll]\nduration = \"soon\"\n", format: FormatTOML},
		{name: "zero width", data: "[window]\nwidth = 0\n", format: FormatTOML, want: ErrInvalid},
		{name: "negative multiplier", data: "scroll:\n  wheel_multiplier: -2\n", format: FormatYAML, want: ErrInvalid},
		{name: "negative stars", data: "scene:\n  star_count: -1\n", format: FormatYAML, want: ErrInvalid},
		{name: "unknown format", data: "", format: Format("ini"), want: ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a/b/tour.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)
	f, err = FormatOf("tour.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = FormatOf("tour.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = Load("tour.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeRoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Scroll.Duration = Duration(1500 * time.Millisecond)
	cfg.Window.Title = "Round"

	for _, format := range []Format{FormatTOML, FormatYAML} {
		data, err := Encode(cfg, format)
		require.NoError(t, err)
		got, err := Parse(data, format)
		require.NoError(t, err)
		assert.Equal(t, cfg, got, string(format))
	}
}

func TestApplyScrollTunesAdapter(t *testing.T) {
	st := scheduler.NewScheduler()
	now := time.Unix(0, 0)
	st.Step(now)
	ad := scroll.NewAdapter(st, scroll.WithLimit(1000))
	ad.Init(nil)
	t.Cleanup(ad.Destroy)

	ApplyScroll(ad, Scroll{Duration: Duration(100 * time.Millisecond), WheelMultiplier: 2})
	ad.OnWheel(50)
	for i := 0; i < 10; i++ {
		now = now.Add(20 * time.Millisecond)
		st.Step(now)
	}
	assert.Equal(t, 100.0, ad.Scroll())
}

// writeAtomic replaces path through a rename so watchers never see a truncated file.
func writeAtomic(t *testing.T, path, data string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(data), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scroll]\nwheel_multiplier = 1.0\n"), 0o644))

	var (
		mu   sync.Mutex
		last Config
		n    int
	)
	w, err := Watch(path, func(cfg Config) {
		mu.Lock()
		defer mu.Unlock()
		last = cfg
		n++
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })

	writeAtomic(t, path, "[scroll]\nwheel_multiplier = 3.0\n")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return n > 0 && last.Scroll.WheelMultiplier == 3
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatchIgnoresSiblingsAndBadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	var (
		mu    sync.Mutex
		calls int
	)
	w, err := Watch(path, func(Config) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644))
	writeAtomic(t, path, "[window]\nwidth = -1\n")
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestWatchRejectsUnsupportedFormat(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "tour.ini"), func(Config) {})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
