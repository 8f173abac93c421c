package touch

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateGesture is returned when a gesture name is registered twice.
	ErrDuplicateGesture = errors.New("touch: gesture already registered")
	// ErrRegistryFrozen is returned when a frozen registry is modified.
	ErrRegistryFrozen = errors.New("touch: registry is frozen")
	// ErrUnknownGesture is returned when a name has no registered factory.
	ErrUnknownGesture = errors.New("touch: unknown gesture")
)

// Factory builds a fresh recognizer configured from a node's options.
type Factory func(opts Options) Recognizer

// Registry maps gesture names to recognizer factories. Build it once at
// startup, freeze it, and hand it to every Scene; managers only read it.
type Registry struct {
	names     []string
	factories map[string]Factory
	frozen    bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a frozen registry holding the built-in recognizers
// in the order pinch, pan, tap, press, touchHold. Managers deliver events to
// recognizers in registry order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Names are distinct and r is not frozen, so Register cannot fail here.
	_ = r.Register(GesturePinch, NewPinchRecognizer)
	_ = r.Register(GesturePan, NewPanRecognizer)
	_ = r.Register(GestureTap, NewTapRecognizer)
	_ = r.Register(GesturePress, NewPressRecognizer)
	_ = r.Register(GestureTouchHold, NewTouchHoldRecognizer)
	r.Freeze()
	return r
}

// Register adds a factory under a globally unique name.
func (r *Registry) Register(name string, f Factory) error {
	if r.frozen {
		return fmt.Errorf("register %q: %w", name, ErrRegistryFrozen)
	}
	if f == nil {
		return fmt.Errorf("register %q: nil factory", name)
	}
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateGesture)
	}
	r.factories[name] = f
	r.names = append(r.names, name)
	return nil
}

// Unregister removes a factory. Unknown names are ignored.
func (r *Registry) Unregister(name string) error {
	if r.frozen {
		return fmt.Errorf("unregister %q: %w", name, ErrRegistryFrozen)
	}
	if _, ok := r.factories[name]; !ok {
		return nil
	}
	delete(r.factories, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// New builds a recognizer for name configured with opts.
func (r *Registry) New(name string, opts Options) (Recognizer, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("new %q: %w", name, ErrUnknownGesture)
	}
	return f(opts), nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}
