package synth

import (
	"fmt"
	"sync"

	"github.com/justyntemme/handysynth/pkg/engine"
	"github.com/justyntemme/handysynth/pkg/framework/debug"
)

// Binding keeps at most one soundfont loaded in the engine and remembers
// the path it was asked to load.
type Binding struct {
	engine engine.Engine
	log    *debug.Logger

	mu   sync.Mutex
	id   engine.SoundfontID
	path string
}

// NewBinding creates a binding with nothing loaded.
func NewBinding(e engine.Engine, log *debug.Logger) *Binding {
	if log == nil {
		log = debug.Default()
	}
	return &Binding{
		engine: e,
		log:    log,
		id:     engine.NoSoundfont,
	}
}

// SetSoundfont replaces the loaded soundfont with the one at path. An empty
// path leaves everything as it is.
//
// The previous soundfont is unloaded before the new one is loaded. If the
// load fails nothing stays loaded; the error is logged and returned and
// the previous soundfont is not restored.
func (b *Binding) SetSoundfont(path string) error {
	if path == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.id.Valid() {
		if err := b.engine.UnloadSoundfont(b.id); err != nil {
			b.log.Warn("unload soundfont %d: %v", b.id, err)
		}
		b.id = engine.NoSoundfont
	}

	b.path = path
	id, err := b.engine.LoadSoundfont(path)
	if err != nil {
		b.log.Error("load soundfont %s: %v", path, err)
		return fmt.Errorf("synth: load soundfont %s: %w", path, err)
	}
	b.id = id
	b.log.Info("loaded soundfont %s (id %d)", path, id)
	return nil
}

// Reload loads the current path again. It does nothing when no path was set.
func (b *Binding) Reload() error {
	return b.SetSoundfont(b.Path())
}

// ID returns the loaded soundfont id, NoSoundfont when none is loaded.
func (b *Binding) ID() engine.SoundfontID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// Path returns the last path passed to SetSoundfont, loaded or not.
func (b *Binding) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// Loaded reports whether a soundfont is currently loaded.
func (b *Binding) Loaded() bool {
	return b.ID().Valid()
}

// EnumeratePresets builds the preset tree of the loaded soundfont. With
// nothing loaded the tree is empty.
func (b *Binding) EnumeratePresets() Tree {
	id := b.ID()
	if !id.Valid() {
		return Tree{}
	}
	return BuildTree(b.engine.Presets(id))
}

// Close unloads the soundfont, if any.
func (b *Binding) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.id.Valid() {
		return nil
	}
	err := b.engine.UnloadSoundfont(b.id)
	b.id = engine.NoSoundfont
	return err
}
