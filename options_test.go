package touch

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestOptionsAccessors(t *testing.T) {
	o := Options{
		"int":      3,
		"float":    2.5,
		"int64":    int64(7),
		"str":      "nope",
		"negative": -4,
		"dur":      250 * time.Millisecond,
		"flag":     true,
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"huge":     1e300,
		"negFloat": -2.5,
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Float int", o.Float("int", 0), 3.0},
		{"Float float", o.Float("float", 0), 2.5},
		{"Float missing", o.Float("missing", 9), 9.0},
		{"Float string", o.Float("str", 9), 9.0},
		{"Int int64", o.Int("int64", 1, 1), 7},
		{"Int truncates", o.Int("float", 1, 1), 2},
		{"Int below min", o.Int("negative", 1, 1), 1},
		{"Duration ms", o.Duration("int", time.Second), 3 * time.Millisecond},
		{"Duration value", o.Duration("dur", time.Second), 250 * time.Millisecond},
		{"Duration negative", o.Duration("negative", time.Second), time.Second},
		{"Duration string", o.Duration("str", time.Second), time.Second},
		{"Duration missing", o.Duration("missing", time.Second), time.Second},
		{"Float NaN", o.Float("nan", 9), 9.0},
		{"Float Inf", o.Float("inf", 9), 9.0},
		{"Float negative", o.Float("negFloat", 9), 9.0},
		{"Int NaN", o.Int("nan", 1, 1), 1},
		{"Int huge", o.Int("huge", 1, 1), 1},
		{"Duration Inf", o.Duration("inf", time.Second), time.Second},
		{"Duration huge", o.Duration("huge", time.Second), time.Second},
		{"Bool", o.Bool("flag", false), true},
		{"Bool non-bool", o.Bool("int", false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestOptionsInvalidKeys(t *testing.T) {
	o := Options{
		OptHoldPeriod:             "long",
		OptNumberOfTaps:           2,
		OptMoveThreshold:          nil,
		OptPressPeriodThreshold:   time.Second,
		OptTranslationThreshold:   math.NaN(),
		OptDeltaThreshold:         math.Inf(-1),
		OptMultiTapDelay:          -300,
		OptPreventDefaultOnChange: "yes", // not numeric: not checked
		"custom":                  "whatever",
	}
	want := []string{OptDeltaThreshold, OptHoldPeriod, OptMoveThreshold, OptMultiTapDelay, OptTranslationThreshold}
	if diff := cmp.Diff(want, o.invalidKeys()); diff != "" {
		t.Errorf("invalidKeys mismatch (-want +got):\n%s", diff)
	}
}

const optionsTOML = `
[pan]
numberOfRequiredTouches = 2
translationThreshold = 12.5

[touchHold]
holdPeriod = 800

[swipe]
direction = "left"
`

func TestParseOptions(t *testing.T) {
	set, err := ParseOptions(optionsTOML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pan := NewPanRecognizer(set[GesturePan]).(*panRecognizer)
	if pan.RequiredTouches() != 2 || pan.threshold != 12.5 {
		t.Errorf("pan = %d touches, %v threshold", pan.RequiredTouches(), pan.threshold)
	}
	hold := NewTouchHoldRecognizer(set[GestureTouchHold]).(*touchHoldRecognizer)
	if hold.holdPeriod != 800*time.Millisecond {
		t.Errorf("holdPeriod = %v, want 800ms", hold.holdPeriod)
	}

	reg := DefaultRegistry()
	if diff := cmp.Diff([]string{"swipe"}, set.Unknown(reg)); diff != "" {
		t.Errorf("Unknown mismatch (-want +got):\n%s", diff)
	}
	if err := set.Validate(reg); !errors.Is(err, ErrUnknownGesture) {
		t.Errorf("Validate = %v, want ErrUnknownGesture", err)
	}
	delete(set, "swipe")
	if err := set.Validate(reg); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestParseOptionsInvalid(t *testing.T) {
	if _, err := ParseOptions("[pan\nx = 1"); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestures.toml")
	if err := os.WriteFile(path, []byte(optionsTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := set[GesturePan].Int(OptNumberOfRequiredTouches, 1, 1); got != 2 {
		t.Errorf("pan touches = %d, want 2", got)
	}

	if _, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOptionSetOnNode(t *testing.T) {
	set, err := ParseOptions(optionsTOML)
	if err != nil {
		t.Fatal(err)
	}
	h := newHarness(t)
	n := h.box("n", nil, 0, 0)
	n.GestureOptions = set
	var rec recorder
	n.HandleGesture(GesturePan, rec.handlers("n", GesturePan, true))

	// One contact is not enough for a two-finger pan.
	h.start(n, pt(1, 10, 10))
	h.move(pt(1, 60, 10))
	if len(rec.calls) != 0 {
		t.Errorf("expected no callbacks, got %v", rec.calls)
	}
	if g := h.gesture(n, GesturePan); g.NumberOfRequiredTouches() != 2 {
		t.Errorf("required touches = %d, want 2", g.NumberOfRequiredTouches())
	}
}
