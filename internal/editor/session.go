// Package editor owns one editing session: the identifier generator, the registry and its
// selection, local storage and the queue of work that background goroutines hand back to the
// main loop. Every method except Wait must be called from the main loop.
package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/download"
	"scene-editor/internal/entity"
	"scene-editor/internal/export"
	"scene-editor/internal/geom"
	"scene-editor/internal/ident"
	"scene-editor/internal/logger"
	"scene-editor/internal/primitives"
	"scene-editor/internal/procgen"
	"scene-editor/internal/scene"
	"scene-editor/internal/sceneio"
	"scene-editor/internal/storage"
)

var (
	// ErrNoSelection is returned by operations that act on the selection when nothing is selected.
	ErrNoSelection = errors.New("editor: nothing selected")
	// ErrClosed is delivered to pending asynchronous results when the session closes first.
	ErrClosed = errors.New("editor: session closed")
)

// Grid shows or hides the ground grid.
type Grid interface {
	SetGridVisible(visible bool)
}

// Options wires a session to its collaborators. Nil view collaborators are replaced by no-ops;
// a nil Store is replaced by an in-memory store and a nil Log by a memory-only logger.
type Options struct {
	Graph   scene.DisplayGraph
	List    scene.ListView
	Handle  scene.Handle
	Panel   scene.Panel
	Grid    Grid
	Store   *storage.Store
	Log     *logger.Logger
	Fetcher *download.Client
	Mode    scene.HandleMode
}

// Session is one editing session.
type Session struct {
	ids     *ident.Generator
	reg     *scene.Registry
	handle  scene.Handle
	grid    Grid
	store   *storage.Store
	log     *logger.Logger
	fetcher *download.Client
	mode    scene.HandleMode

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	tasks  []task
	closed bool
}

// task is work handed back to the main loop. drop, when set, runs instead of run if the session
// closes before the task is drained.
type task struct {
	run  func()
	drop func()
}

// New starts a session with an empty scene.
func New(opts Options) (*Session, error) {
	if opts.Store == nil {
		st, err := storage.Memory()
		if err != nil {
			return nil, err
		}
		opts.Store = st
	}
	if opts.Log == nil {
		opts.Log = logger.New("")
	}
	if opts.Fetcher == nil {
		opts.Fetcher = &download.Client{}
	}
	if opts.Mode == "" {
		opts.Mode = scene.Translate
	}
	ids := ident.New()
	s := &Session{
		ids: ids,
		reg: scene.New(scene.Options{
			IDs:    ids,
			Graph:  opts.Graph,
			List:   opts.List,
			Handle: opts.Handle,
			Panel:  opts.Panel,
		}),
		handle:  opts.Handle,
		grid:    opts.Grid,
		store:   opts.Store,
		log:     opts.Log,
		fetcher: opts.Fetcher,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	if err := s.SetMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	return s, nil
}

// Registry returns the session's registry.
func (s *Session) Registry() *scene.Registry { return s.reg }

// Selected returns the selected entity or nil.
func (s *Session) Selected() entity.Entity { return s.reg.Selection().Selected() }

// Mode returns the current handle mode.
func (s *Session) Mode() scene.HandleMode { return s.mode }

// Log returns the session logger.
func (s *Session) Log() *logger.Logger { return s.log }

// post queues run for the next Drain. If the session closes first, drop is called instead. It
// reports false once the session is closed, in which case neither runs.
func (s *Session) post(run, drop func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.tasks = append(s.tasks, task{run: run, drop: drop})
	return true
}

// Drain runs the work queued by background goroutines, in the order it was queued. The main
// loop calls it once per frame.
func (s *Session) Drain() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, t := range tasks {
		t.run()
	}
	return len(tasks)
}

// Wait blocks until every background goroutine has finished. Their results still need a Drain.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) goAsync(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Close cancels background work, drops queued results and clears the scene. Pending
// asynchronous results receive ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	dropped := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	for _, t := range dropped {
		if t.drop != nil {
			t.drop()
		}
	}
	s.reg.Clear()
}

func (s *Session) add(e entity.Entity) entity.Entity {
	s.reg.Register(e)
	s.log.Logf("added %s (%s)", entity.Label(e), e.ID())
	return e
}

// AddBox adds a white unit cube.
func (s *Session) AddBox() entity.Entity { return s.add(primitives.Box()) }

// AddSphere adds a white sphere.
func (s *Session) AddSphere() entity.Entity { return s.add(primitives.Sphere()) }

// AddPlane adds a white double-sided plane.
func (s *Session) AddPlane() entity.Entity { return s.add(primitives.Plane()) }

// Seed adds the sample cube and sphere a fresh window opens with. The sphere ends up selected.
func (s *Session) Seed() {
	s.AddBox()
	s.AddSphere()
}

// GenerateFromText adds the entity described by text. Empty text adds nothing and returns false.
func (s *Session) GenerateFromText(text string) (entity.Entity, bool) {
	e, ok := procgen.FromText(text)
	if !ok {
		return nil, false
	}
	return s.add(e), true
}

// GenerateFromImage decodes r in the background and registers the resulting entity on a later
// Drain. The returned channel receives exactly one value: nil once the entity is registered, or
// the decode error. Failures are also logged.
func (s *Session) GenerateFromImage(ctx context.Context, r io.Reader) <-chan error {
	return s.generateImage(ctx, func(context.Context) (io.Reader, error) { return r, nil })
}

// FetchImage downloads url in the background and continues as GenerateFromImage.
func (s *Session) FetchImage(ctx context.Context, url string) <-chan error {
	return s.generateImage(ctx, func(ctx context.Context) (io.Reader, error) {
		res, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		s.log.Logf("fetched %s (%s, %d bytes)", res.Name, res.MIME, len(res.Data))
		return bytes.NewReader(res.Data), nil
	})
}

func (s *Session) generateImage(ctx context.Context, open func(context.Context) (io.Reader, error)) <-chan error {
	done := make(chan error, 1)
	fail := func(err error) {
		s.log.Logf("image generation failed: %v", err)
		done <- err
	}
	s.goAsync(func(sessionCtx context.Context) {
		ctx, cancel := mergeContexts(ctx, sessionCtx)
		defer cancel()
		r, err := open(ctx)
		if err != nil {
			fail(err)
			return
		}
		e, err := procgen.FromImage(r)
		if err != nil {
			fail(err)
			return
		}
		if err := ctx.Err(); err != nil {
			fail(err)
			return
		}
		closed := func() { done <- ErrClosed }
		if !s.post(func() {
			s.add(e)
			done <- nil
		}, closed) {
			closed()
		}
	})
	return done
}

// SetColor parses a #rrggbb color and applies it to the selection.
func (s *Session) SetColor(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("editor: color %q: %w", hex, err)
	}
	return s.ApplyColor(c)
}

// ApplyColor sets the surface color of the selection.
func (s *Session) ApplyColor(c colorful.Color) error {
	sel := s.Selected()
	if sel == nil {
		return ErrNoSelection
	}
	if !s.reg.Selection().ApplyColor(c) {
		return fmt.Errorf("editor: %s has no surface material", entity.Label(sel))
	}
	return nil
}

// SetMode switches the handle between translate, rotate and scale.
func (s *Session) SetMode(mode string) error {
	m, ok := scene.ParseHandleMode(mode)
	if !ok {
		return fmt.Errorf("editor: unknown mode %q (want translate, rotate or scale)", mode)
	}
	s.mode = m
	if mh, ok := s.handle.(scene.ModeHandle); ok {
		mh.SetMode(m)
	}
	return nil
}

// SetGridVisible shows or hides the ground grid.
func (s *Session) SetGridVisible(visible bool) {
	if s.grid != nil {
		s.grid.SetGridVisible(visible)
	}
}

// SelectID selects the registered entity with the given identifier.
func (s *Session) SelectID(id string) error {
	e, ok := s.reg.Lookup(id)
	if !ok {
		return fmt.Errorf("editor: no object %q", id)
	}
	s.reg.Selection().Select(e)
	return nil
}

// Select selects e, or clears the selection for nil.
func (s *Session) Select(e entity.Entity) {
	s.reg.Selection().Select(e)
}

// DeleteSelected removes the selected entity.
func (s *Session) DeleteSelected() error {
	sel := s.Selected()
	if sel == nil {
		return ErrNoSelection
	}
	s.reg.Remove(sel)
	s.log.Logf("deleted %s (%s)", entity.Label(sel), sel.ID())
	return nil
}

// PickPointer selects whatever is under the pointer, or nothing.
func (s *Session) PickPointer(cam geom.Camera, px, py, w, h float32) entity.Entity {
	return s.reg.Selection().PickPointer(cam, px, py, w, h)
}

// Export writes the scene in the named format.
func (s *Session) Export(format string, w io.Writer) error {
	exp, err := export.Lookup(format)
	if err != nil {
		return err
	}
	return exp.Export(w, s.reg.All())
}

// Document returns the saved-scene JSON for the current scene.
func (s *Session) Document() ([]byte, error) {
	return sceneio.Serialize(s.reg.All())
}

// SaveLocal writes the scene to local storage.
func (s *Session) SaveLocal() error {
	data, err := s.Document()
	if err != nil {
		return err
	}
	if err := s.store.Set(storage.SceneKey, data); err != nil {
		return err
	}
	s.log.Logf("scene saved to local storage (%d objects)", s.reg.Len())
	return nil
}

// LoadLocal replaces the scene with the one in local storage. When there is none the scene is
// left alone and the error wraps storage.ErrNotFound.
func (s *Session) LoadLocal() error {
	data, err := s.store.Get(storage.SceneKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Log("no scene in local storage")
		}
		return err
	}
	return s.ImportJSON(data)
}

// ImportJSON replaces the scene with the one in data. A document that does not parse leaves the
// scene untouched and returns an error wrapping sceneio.ErrMalformed. Records that cannot be
// rebuilt are logged and skipped. Textures are decoded in the background and attached on a
// later Drain.
func (s *Session) ImportJSON(data []byte) error {
	res, err := sceneio.Deserialize(data)
	if err != nil {
		s.log.Logf("failed to import scene: %v", err)
		return err
	}
	for _, rerr := range res.Errors {
		s.log.Logf("skipped: %v", rerr)
	}
	s.reg.ReplaceAll(res.Entities)
	for _, job := range res.Textures {
		s.loadTexture(job)
	}
	s.log.Logf("scene imported (%d objects, %d skipped)", len(res.Entities), len(res.Errors))
	return nil
}

func (s *Session) loadTexture(job sceneio.TextureJob) {
	s.goAsync(func(ctx context.Context) {
		tex, err := job.Decode()
		if err != nil {
			s.log.Logf("texture skipped: %v", err)
			return
		}
		if ctx.Err() != nil {
			return
		}
		s.post(func() { job.Apply(tex) }, nil)
	})
}

// mergeContexts returns a context cancelled when either parent is.
func mergeContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
