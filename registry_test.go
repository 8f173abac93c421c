package touch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	want := []string{GesturePinch, GesturePan, GestureTap, GesturePress, GestureTouchHold}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if !r.Frozen() {
		t.Error("default registry should be frozen")
	}
	if err := r.Register("swipe", NewTapRecognizer); !errors.Is(err, ErrRegistryFrozen) {
		t.Errorf("Register on frozen = %v, want ErrRegistryFrozen", err)
	}
	if err := r.Unregister(GestureTap); !errors.Is(err, ErrRegistryFrozen) {
		t.Errorf("Unregister on frozen = %v, want ErrRegistryFrozen", err)
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", NewTapRecognizer); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("a", NewPanRecognizer); !errors.Is(err, ErrDuplicateGesture) {
		t.Errorf("duplicate = %v, want ErrDuplicateGesture", err)
	}
	if err := r.Register("nil", nil); err == nil {
		t.Error("expected error for nil factory")
	}
	if err := r.Register("b", NewPanRecognizer); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	// Names returns a copy.
	r.Names()[0] = "x"
	if r.Names()[0] != "a" {
		t.Error("Names should return a copy")
	}

	if err := r.Unregister("a"); err != nil {
		t.Fatal(err)
	}
	if err := r.Unregister("missing"); err != nil {
		t.Errorf("Unregister unknown = %v, want nil", err)
	}
	if _, ok := r.Lookup("a"); ok {
		t.Error("a should be gone")
	}
	if diff := cmp.Diff([]string{"b"}, r.Names()); diff != "" {
		t.Errorf("Names after Unregister (-want +got):\n%s", diff)
	}
}

func TestRegistryNew(t *testing.T) {
	r := DefaultRegistry()
	rec, err := r.New(GestureTap, Options{OptNumberOfTaps: 3})
	if err != nil {
		t.Fatal(err)
	}
	if tap, ok := rec.(*tapRecognizer); !ok || tap.numberOfTaps != 3 {
		t.Errorf("New(tap) = %#v", rec)
	}
	if _, err := r.New("swipe", nil); !errors.Is(err, ErrUnknownGesture) {
		t.Errorf("New(unknown) = %v, want ErrUnknownGesture", err)
	}
}

func TestBuiltinRecognizerDefaults(t *testing.T) {
	tests := []struct {
		name     string
		touches  int
		discrete bool
	}{
		{GesturePinch, 2, false},
		{GesturePan, 1, false},
		{GestureTap, 1, true},
		{GesturePress, 1, true},
		{GestureTouchHold, 1, true},
	}
	r := DefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := r.New(tt.name, nil)
			if err != nil {
				t.Fatal(err)
			}
			if rec.RequiredTouches() != tt.touches || rec.Discrete() != tt.discrete {
				t.Errorf("touches=%d discrete=%v, want %d %v", rec.RequiredTouches(), rec.Discrete(), tt.touches, tt.discrete)
			}
		})
	}
}

// Custom recognizers plug in through a scene's registry.
type swipeRecognizer struct {
	BaseRecognizer
	ended int
}

func (s *swipeRecognizer) ShouldEnd(g *Gesture) bool {
	return g.Centroid().X > 50
}

func (s *swipeRecognizer) DidEnd(*Gesture) { s.ended++ }

func TestCustomRecognizer(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("swipe", func(Options) Recognizer {
		return &swipeRecognizer{BaseRecognizer: BaseRecognizer{IsDiscrete: true}}
	}); err != nil {
		t.Fatal(err)
	}
	reg.Freeze()

	h := newHarness(t, WithRegistry(reg))
	n := h.box("n", nil, 0, 0)
	n.Width = 300
	var rec recorder
	n.HandleGesture("swipe", rec.handlers("n", "swipe", true))
	n.HandleGesture(GestureTap, rec.handlers("n", GestureTap, true)) // not in this registry

	h.start(n, pt(1, 10, 10))
	h.move(pt(1, 80, 10))
	h.end(pt(1, 80, 10))

	if diff := cmp.Diff([]string{"n.swipeEnd"}, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if len(n.Manager().Gestures()) != 1 {
		t.Errorf("gestures = %d, want 1", len(n.Manager().Gestures()))
	}
	if impl := h.gesture(n, "swipe").Recognizer().(*swipeRecognizer); impl.ended != 1 {
		t.Errorf("ended = %d, want 1", impl.ended)
	}
}
