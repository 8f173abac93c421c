package touch

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Option keys recognized by the built-in recognizers. Unknown keys are ignored.
const (
	OptNumberOfRequiredTouches = "numberOfRequiredTouches"
	OptNumberOfTaps            = "numberOfTaps"
	OptPressPeriodThreshold    = "pressPeriodThreshold" // milliseconds
	OptHoldPeriod              = "holdPeriod"           // milliseconds
	OptMoveThreshold           = "moveThreshold"        // pixels
	OptTranslationThreshold    = "translationThreshold" // pixels
	OptDeltaThreshold          = "deltaThreshold"       // pixels
	OptMultiTapDelay           = "multiTapDelay"        // milliseconds
	OptPreventDefaultOnChange  = "preventDefaultOnChange"
)

// numericOptions lists the keys whose values must be finite, non-negative
// numbers. Any other value for one of them falls back to the recognizer
// default.
var numericOptions = map[string]bool{
	OptNumberOfRequiredTouches: true,
	OptNumberOfTaps:            true,
	OptPressPeriodThreshold:    true,
	OptHoldPeriod:              true,
	OptMoveThreshold:           true,
	OptTranslationThreshold:    true,
	OptDeltaThreshold:          true,
	OptMultiTapDelay:           true,
}

// Options configures one recognizer on one node. It is the Go form of a
// node's "<gesture>Options" object: values are usually numbers (any Go
// integer or float type, as produced by literals or decoders) and time
// values may also be given as time.Duration.
type Options map[string]any

// Float returns the numeric value stored under key, or def when the key is
// missing or not a finite, non-negative number.
func (o Options) Float(key string, def float64) float64 {
	if v, ok := optionNumber(o[key]); ok {
		return v
	}
	return def
}

// Int returns the value under key truncated to an int, or def. Values below
// min or above maxOptionInt also yield def.
func (o Options) Int(key string, def, min int) int {
	v, ok := optionNumber(o[key])
	if !ok || v > maxOptionInt || int(v) < min {
		return def
	}
	return int(v)
}

// Duration returns the value under key as a duration. Plain numbers are
// milliseconds. Negative, non-finite or non-numeric values yield def.
func (o Options) Duration(key string, def time.Duration) time.Duration {
	raw, present := o[key]
	if !present {
		return def
	}
	if d, ok := raw.(time.Duration); ok {
		if d < 0 {
			return def
		}
		return d
	}
	ms, ok := optionNumber(raw)
	if !ok || ms*float64(time.Millisecond) > math.MaxInt64 {
		return def
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Bool returns the boolean under key, or def.
func (o Options) Bool(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

// invalidKeys returns the known numeric keys whose values are not usable
// numbers: not numeric, NaN, infinite or negative.
func (o Options) invalidKeys() []string {
	var bad []string
	for k, v := range o {
		if !numericOptions[k] {
			continue
		}
		if _, ok := optionNumber(v); !ok {
			bad = append(bad, k)
		}
	}
	slices.Sort(bad)
	return bad
}

// maxOptionInt bounds integer options so the conversion from float64 is
// well defined on every platform.
const maxOptionInt = math.MaxInt32

// optionNumber converts an option value to a finite, non-negative float64.
func optionNumber(v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case time.Duration:
		return float64(n) / float64(time.Millisecond), true
	default:
		return 0, false
	}
}

// --- Option files ---

// OptionSet maps gesture names to their options, as read from an options
// file. Assign it to Node.GestureOptions or look individual entries up.
type OptionSet map[string]Options

// ParseOptions decodes TOML with one table per gesture:
//
//	[pan]
//	numberOfRequiredTouches = 2
//
//	[touchHold]
//	holdPeriod = 800
//	moveThreshold = 20
func ParseOptions(data string) (OptionSet, error) {
	var raw map[string]map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parse gesture options: %w", err)
	}
	return toOptionSet(raw), nil
}

// LoadOptionsFile reads and decodes a TOML options file. See ParseOptions.
func LoadOptionsFile(path string) (OptionSet, error) {
	var raw map[string]map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load gesture options %s: %w", path, err)
	}
	return toOptionSet(raw), nil
}

// Unknown returns the gesture names in the set that reg does not know,
// sorted.
func (s OptionSet) Unknown(reg *Registry) []string {
	var unknown []string
	for name := range s {
		if _, ok := reg.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Validate returns an error wrapping ErrUnknownGesture if the set configures
// a gesture reg does not know.
func (s OptionSet) Validate(reg *Registry) error {
	if unknown := s.Unknown(reg); len(unknown) > 0 {
		return fmt.Errorf("gesture options for %s: %w", strings.Join(unknown, ", "), ErrUnknownGesture)
	}
	return nil
}

func toOptionSet(raw map[string]map[string]any) OptionSet {
	set := make(OptionSet, len(raw))
	for name, table := range raw {
		set[name] = Options(table)
	}
	return set
}
