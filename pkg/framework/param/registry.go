package param

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownParameter is returned by registry setters for ids or keys that
// were never added.
var ErrUnknownParameter = errors.New("param: unknown parameter")

// Listener is told about a parameter after its value changed.
type Listener func(p *Parameter)

// Registry manages plugin parameters and the listeners observing them.
type Registry struct {
	mu        sync.RWMutex
	params    map[uint32]*Parameter
	byKey     map[string]*Parameter
	order     []uint32 // Maintain order for indexed access
	listeners map[int]Listener
	nextSub   int
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params:    make(map[uint32]*Parameter),
		byKey:     make(map[string]*Parameter),
		listeners: make(map[int]Listener),
	}
}

// Add registers parameters in order. A duplicate id or key is an error and
// stops registration at that parameter.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("param: duplicate id %d", p.ID)
		}
		if _, exists := r.byKey[p.Key]; exists {
			return fmt.Errorf("param: duplicate key %q", p.Key)
		}
		r.params[p.ID] = p
		r.byKey[p.Key] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.params[id]
}

// GetByKey retrieves a parameter by its state key.
func (r *Registry) GetByKey(key string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byKey[key]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}
	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}

// Subscribe registers fn for change notifications. The returned function
// removes it again.
func (r *Registry) Subscribe(fn Listener) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.listeners, id)
		})
	}
}

// SetNormalized sets a parameter from host automation and notifies
// listeners.
func (r *Registry) SetNormalized(id uint32, normalized float64) error {
	p := r.Get(id)
	if p == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownParameter, id)
	}
	p.SetValue(normalized)
	r.notify(p)
	return nil
}

// SetPlain sets a parameter in its plain range and notifies listeners.
func (r *Registry) SetPlain(id uint32, plain float64) error {
	p := r.Get(id)
	if p == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownParameter, id)
	}
	p.SetPlainValue(plain)
	r.notify(p)
	return nil
}

// SetPlainByKey is SetPlain addressed by state key.
func (r *Registry) SetPlainByKey(key string, plain float64) error {
	p := r.GetByKey(key)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	p.SetPlainValue(plain)
	r.notify(p)
	return nil
}

// notify calls listeners outside the lock so they may use the registry.
func (r *Registry) notify(p *Parameter) {
	r.mu.RLock()
	ids := make([]int, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids) // subscription order
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.listeners[id])
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn(p)
	}
}
