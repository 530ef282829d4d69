package loader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "surface.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{400, 200, 100, 100, 50},
		{200, 400, 100, 50, 100},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestLoadTextureDecodesAndCaches(t *testing.T) {
	path := writePNG(t, 4, 2)
	l := NewLoader(BackendTypeImage)
	defer l.Close()

	data, err := l.LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.True(t, data.Valid())
	assert.Equal(t, []byte{200, 100, 50, 255}, data.Pixels[:4])

	_, ok := l.Get(path)
	assert.True(t, ok)
}

func TestLoadTextureDownscales(t *testing.T) {
	path := writePNG(t, 64, 32)
	l := NewLoader(BackendTypeImage, WithMaxTextureSize(16))
	defer l.Close()

	data, err := l.LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), data.Width)
	assert.Equal(t, uint32(8), data.Height)
	assert.True(t, data.Valid())
}

func TestLoadTextureErrors(t *testing.T) {
	l := NewLoader(BackendTypeImage)
	defer l.Close()

	_, err := l.LoadTexture("surface.tga")
	assert.ErrorContains(t, err, "unsupported")

	_, err = l.LoadTexture(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	_, err = l.LoadTexture(bad)
	assert.Error(t, err)
}

func TestLoadTextureAsyncDirect(t *testing.T) {
	path := writePNG(t, 2, 2)
	l := NewLoader(BackendTypeImage, WithWorkers(2))
	defer l.Close()

	results := make(chan TextureResult, 1)
	l.LoadTextureAsync(path, func(res TextureResult) { results <- res })

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, path, res.Path)
		assert.Equal(t, uint32(2), res.Data.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("texture load did not complete")
	}
}

func TestLoadTextureAsyncThroughScheduler(t *testing.T) {
	path := writePNG(t, 2, 2)
	s := scheduler.NewScheduler()
	l := NewLoader(BackendTypeImage, WithScheduler(s))
	defer l.Close()

	var got *TextureResult
	l.LoadTextureAsync(path, func(res TextureResult) { got = &res })

	deadline := time.Now().Add(5 * time.Second)
	for got == nil && time.Now().Before(deadline) {
		s.Step(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	require.NotNil(t, got)
	assert.NoError(t, got.Err)
	assert.Equal(t, 0, l.Pending())
}

func TestCloseDropsPendingResults(t *testing.T) {
	path := writePNG(t, 2, 2)
	s := scheduler.NewScheduler()
	baseline := runtime.NumGoroutine()
	l := NewLoader(BackendTypeImage, WithScheduler(s), WithWorkers(3))

	called := false
	l.LoadTextureAsync(path, func(TextureResult) { called = true })
	l.Close()

	deadline := time.Now().Add(2 * time.Second)
	for l.Pending() > 0 && time.Now().Before(deadline) {
		s.Step(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	assert.False(t, called)
	assert.Zero(t, l.Pending())

	_, err := l.LoadTexture(path)
	assert.ErrorIs(t, err, ErrClosed)

	require.Eventually(t, func() bool { return runtime.NumGoroutine() <= baseline },
		2*time.Second, 10*time.Millisecond, "decode workers still running after Close")
}

func TestCloseStopsWorkersAfterLoads(t *testing.T) {
	path := writePNG(t, 2, 2)
	baseline := runtime.NumGoroutine()
	l := NewLoader(BackendTypeImage, WithWorkers(4))

	results := make(chan TextureResult, 8)
	for range 8 {
		l.LoadTextureAsync(path, func(res TextureResult) { results <- res })
	}
	for range 8 {
		select {
		case res := <-results:
			require.NoError(t, res.Err)
		case <-time.After(5 * time.Second):
			t.Fatal("texture load did not complete")
		}
	}
	l.Close()
	l.Close()

	require.Eventually(t, func() bool { return runtime.NumGoroutine() <= baseline },
		2*time.Second, 10*time.Millisecond, "decode workers still running after Close")
}
