package loader

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
)

// LoaderBackendType identifies the file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeImage selects the raster image backend (PNG, JPEG, WebP).
	BackendTypeImage LoaderBackendType = iota
)

// DefaultMaxTextureSize caps decoded textures on their longest axis.
const DefaultMaxTextureSize = 2048

// ErrClosed is returned for loads requested after Close.
var ErrClosed = errors.New("loader: closed")

// TextureResult is delivered once per asynchronous load.
type TextureResult struct {
	Path string
	Data common.TextureStagingData
	Err  error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	backend loaderBackend
	pools   []worker.DynamicWorkerPool
	sched   scheduler.Scheduler

	workers int
	maxSize int

	textureCache map[string]common.TextureStagingData

	nextTask atomic.Int64
	pending  atomic.Int64
	closed   atomic.Bool
}

// Loader decodes texture files off the render goroutine and caches the decoded pixels by path.
type Loader interface {
	// LoadTexture decodes the file at path synchronously. Cached results are returned without
	// touching the file system.
	//
	// Parameters:
	//   - path: the image file path
	//
	// Returns:
	//   - common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if the format is unsupported or decoding fails
	LoadTexture(path string) (common.TextureStagingData, error)

	// LoadTextureAsync decodes the file at path on the worker pool. done receives exactly one
	// result unless the loader is closed first. When a scheduler is attached, done runs inside
	// its next Step; otherwise it runs on the worker goroutine.
	//
	// Parameters:
	//   - path: the image file path
	//   - done: the completion callback
	LoadTextureAsync(path string, done func(TextureResult))

	// Get retrieves cached pixels by path.
	//
	// Parameters:
	//   - path: the cache key to look up
	//
	// Returns:
	//   - common.TextureStagingData: the cached pixels
	//   - bool: true if the path was cached
	Get(path string) (common.TextureStagingData, bool)

	// Pending returns the number of asynchronous loads that have not delivered yet. Always 0
	// after Close.
	//
	// Returns:
	//   - int: the in-flight load count
	Pending() int

	// Close drops results that have not been delivered, rejects new loads and stops the decode
	// workers. A decode already running finishes first.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeImage)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		workers:      max(1, runtime.NumCPU()/2),
		maxSize:      DefaultMaxTextureSize,
		textureCache: make(map[string]common.TextureStagingData),
	}

	switch backendType {
	case BackendTypeImage:
		fallthrough
	default:
		l.backend = newImageLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}

	// One single-worker pool per slot: a pool's Stop addresses its workers by ID over a shared
	// channel, which only reaches the right worker when there is exactly one.
	l.pools = make([]worker.DynamicWorkerPool, l.workers)
	for i := range l.pools {
		l.pools[i] = worker.NewDynamicWorkerPool(1, 64, 1*time.Second)
	}
	return l
}

func (l *loader) LoadTexture(path string) (common.TextureStagingData, error) {
	if l.closed.Load() {
		return common.TextureStagingData{}, ErrClosed
	}
	if cached, ok := l.Get(path); ok {
		return cached, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !l.backend.Supports(ext) {
		return common.TextureStagingData{}, fmt.Errorf("unsupported texture format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	defer f.Close()

	data, err := l.backend.Decode(f, l.maxSize)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	l.mu.Lock()
	l.textureCache[path] = data
	l.mu.Unlock()
	return data, nil
}

func (l *loader) LoadTextureAsync(path string, done func(TextureResult)) {
	if done == nil {
		panic("loader: nil completion callback")
	}
	if l.closed.Load() {
		return
	}

	l.pending.Add(1)
	id := int(l.nextTask.Add(1))
	l.pools[id%len(l.pools)].SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			data, err := l.LoadTexture(path)
			if err != nil {
				log.Printf("[loader] texture %s: %v", path, err)
			}
			l.deliver(func(res TextureResult) {
				l.pending.Add(-1)
				if l.closed.Load() {
					return
				}
				done(res)
			}, TextureResult{Path: path, Data: data, Err: err})
			return nil, err
		},
	})
}

// deliver hands res to fn on the scheduler goroutine when one is attached.
func (l *loader) deliver(fn func(TextureResult), res TextureResult) {
	if l.sched != nil {
		l.sched.Post(func() { fn(res) })
		return
	}
	fn(res)
}

func (l *loader) Get(path string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.textureCache[path]
	return data, ok
}

func (l *loader) Pending() int {
	if l.closed.Load() {
		return 0
	}
	return int(l.pending.Load())
}

func (l *loader) Close() {
	if l.closed.Swap(true) {
		return
	}
	for _, p := range l.pools {
		p.ClearTaskQueue()
		p.Stop()
	}
	l.mu.Lock()
	l.textureCache = make(map[string]common.TextureStagingData)
	l.mu.Unlock()
}
