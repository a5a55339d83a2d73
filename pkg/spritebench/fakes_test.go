package spritebench

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// frameScheduler charges a fixed cost per yield, like a vsync wait.
type frameScheduler struct {
	clock *fakeClock
	cost  time.Duration
}

func (s frameScheduler) Yield(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.clock.Advance(s.cost)
	return nil
}

// costBackends builds backends whose frames cost one millisecond per object.
type costBackends struct {
	clock *fakeClock

	mu       sync.Mutex
	loads    int
	unloads  int
	loadErr  error
	maxCount int
}

func (f *costBackends) factory(_ *Sprite, frames Frames) Backend {
	return &costBackend{parent: f, objects: frames.ObjectCount()}
}

func (f *costBackends) balanced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads == f.unloads
}

type costBackend struct {
	parent  *costBackends
	objects int
}

func (b *costBackend) Load(ctx context.Context) error {
	b.parent.mu.Lock()
	defer b.parent.mu.Unlock()
	b.parent.loads++
	b.parent.maxCount = max(b.parent.maxCount, b.objects)
	return b.parent.loadErr
}

func (b *costBackend) RenderFrame(int) {
	b.parent.clock.Advance(time.Duration(b.objects) * time.Millisecond)
}

func (b *costBackend) Unload() {
	b.parent.mu.Lock()
	b.parent.unloads++
	b.parent.mu.Unlock()
}

func staticSource(ctx context.Context) (*Sprite, error) {
	return &Sprite{Name: "static", Image: image.NewRGBA(image.Rect(0, 0, 4, 4))}, nil
}

var errNoSprite = errors.New("no sprite")

func brokenSource(ctx context.Context) (*Sprite, error) {
	return nil, errNoSprite
}

func origin(int, int) Transform {
	return Transform{Matrix: [6]float64{1, 0, 0, 0, 1, 0}}
}

// recorder collects events.
type recorder struct {
	BaseEventHandler

	mu        sync.Mutex
	probes    []ProbeEvent
	completes []CompleteEvent
}

func (r *recorder) OnProbe(e ProbeEvent) {
	r.mu.Lock()
	r.probes = append(r.probes, e)
	r.mu.Unlock()
}

func (r *recorder) OnComplete(e CompleteEvent) {
	r.mu.Lock()
	r.completes = append(r.completes, e)
	r.mu.Unlock()
}

type fakePlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(ctx context.Context, cfg PluginConfig) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *fakePlugin) Shutdown(ctx context.Context) error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}
