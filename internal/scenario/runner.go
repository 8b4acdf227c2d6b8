package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/phoneinput/internal/machine"
	"github.com/ppiankov/phoneinput/internal/policy"
	"github.com/ppiankov/phoneinput/internal/session"
)

// Run dispatches every step of the scenario to a fresh session and checks
// the state after each one. A failing step does not stop the run.
func Run(s *Scenario) *RunResult {
	p := policy.Resolve(s.Widget.Input())
	sess := session.New(p,
		machine.Ptr(s.Initial.Model),
		machine.Ptr(s.Initial.Country),
		session.WithCountryDetection(s.DetectCountry),
	)

	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Steps),
	}

	for i, step := range s.Steps {
		var state machine.State
		if step.Event == string(machine.EventSyncConfig) {
			sources := s.Widget
			if step.Widget != nil {
				sources = *step.Widget
			}
			state = sess.ApplyPolicy(policy.Resolve(sources.Input()))
		} else {
			state = sess.Dispatch(machine.ParseEvent(step.Event, machine.Fields{
				RawInput: step.RawInput,
				Value:    machine.Ptr(step.Value),
				Visible:  step.Visible,
			}))
		}

		sr := StepResult{
			Index:      i + 1,
			Event:      step.Event,
			Mismatches: check(step.Expect, state),
			State:      state,
		}
		if len(sr.Mismatches) == 0 {
			sr.Passed = true
			result.Passed++
		} else {
			result.Failed++
		}
		result.Steps = append(result.Steps, sr)
	}

	return result
}

// LoadAndRun loads a scenario YAML file, resolves its widget sources, and runs it.
func LoadAndRun(path string) (*RunResult, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}

	result := Run(s)
	result.File = path
	return result, nil
}

// Load reads a scenario file. A widget_file reference is loaded relative to
// the scenario's directory and replaces the inline widget.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.WidgetFile != "" {
		wf := s.WidgetFile
		if !filepath.IsAbs(wf) {
			wf = filepath.Join(filepath.Dir(path), wf)
		}
		if _, err := os.Stat(wf); err != nil {
			return nil, fmt.Errorf("widget file %s: %w", wf, err)
		}
		src, err := policy.LoadSources(wf)
		if err != nil {
			return nil, fmt.Errorf("load widget: %w", err)
		}
		s.Widget = src
	}
	return &s, nil
}

func check(e Expect, st machine.State) []Mismatch {
	var out []Mismatch
	str := func(field string, want *string, got string) {
		if want != nil && *want != got {
			out = append(out, Mismatch{Field: field, Expected: strconv.Quote(*want), Actual: strconv.Quote(got)})
		}
	}
	null := func(field string, want yaml.Node, got machine.NullString) {
		w, ok := nullable(want)
		if ok && w != got {
			out = append(out, Mismatch{Field: field, Expected: show(w), Actual: show(got)})
		}
	}

	str("raw_input", e.RawInput, st.RawInput)
	str("digits", e.Digits, st.Digits)
	str("normalized_input", e.NormalizedInput, st.NormalizedInput)
	null("model_value", e.ModelValue, st.ModelValue)
	null("country", e.Country, st.Country)
	if e.PopoverShown != nil && *e.PopoverShown != st.UI.IsPopoverShown {
		out = append(out, Mismatch{
			Field:    "popover_shown",
			Expected: strconv.FormatBool(*e.PopoverShown),
			Actual:   strconv.FormatBool(st.UI.IsPopoverShown),
		})
	}
	return out
}

// nullable reads an expectation that may be null. ok is false when the key was omitted.
func nullable(n yaml.Node) (machine.NullString, bool) {
	if n.Kind == 0 {
		return machine.NullString{}, false
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return machine.NullString{}, true
	}
	return machine.Some(n.Value), true
}

func show(n machine.NullString) string {
	if !n.Valid {
		return "null"
	}
	return strconv.Quote(n.String)
}
