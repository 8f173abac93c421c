package touch

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	ID     int     `yaml:"id,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	From   float64 `yaml:"from,omitempty"`
	To     float64 `yaml:"to,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected touch frames across scene updates for
// scripted gesture testing. Attach to a Scene via SetTestRunner.
//
// Scripts are YAML (JSON works too) with a list of steps:
//
//	steps:
//	  - {action: start, id: 1, x: 10, y: 10}
//	  - {action: move, id: 1, x: 40, y: 10}
//	  - {action: end, id: 1}
//	  - {action: wait, frames: 3}
//	  - {action: tap, x: 50, y: 50}
//	  - {action: drag, fromX: 0, fromY: 0, toX: 100, toY: 0, frames: 5}
//	  - {action: pinch, x: 100, y: 100, from: 100, to: 60, frames: 4}
//	  - {action: cancel, id: 1}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var knownActions = map[string]bool{
	"start": true, "move": true, "end": true, "cancel": true,
	"tap": true, "drag": true, "pinch": true, "wait": true,
}

// LoadTestScript parses a test script and returns a TestRunner ready to be
// attached to a Scene via SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	id := ContactID(st.ID)
	switch st.Action {
	case "start":
		s.InjectStart(id, st.X, st.Y)
	case "move":
		s.InjectMove(id, st.X, st.Y)
	case "end":
		s.InjectEnd(id)
	case "cancel":
		s.InjectCancel(id)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		s.InjectPinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
