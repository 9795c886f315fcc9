package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/session"
)

// Scenario is a scripted calculator session with expectations.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// SessionID fixes the session identifier. Defaults to
	// testutil.DefaultSessionID so traces are reproducible.
	SessionID string `yaml:"session_id,omitempty"`

	// Steps are pressed in order.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the full trace after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step presses a script of actions and optionally checks the state after
// the last one.
type Step struct {
	// Press is a script as accepted by session.ParseScript,
	// e.g. "clear 53 enter 7".
	Press string `yaml:"press"`

	// Expect is checked after the step. If nil, any refusal in the step
	// is a failure and nothing else is checked.
	Expect *Expect `yaml:"expect,omitempty"`

	actions []session.Action
}

// Expect checks the calculator state. Unset fields are not checked.
type Expect struct {
	Top    *string       `yaml:"top,omitempty"`
	Bottom *string       `yaml:"bottom,omitempty"`
	Mode   string        `yaml:"mode,omitempty"`
	Flags  *engine.Flags `yaml:"flags,omitempty"`

	// Error is the code the step's last press must be refused with.
	// Refusals of earlier presses are always failures.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the trace or final state.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count, final_state.
	Type string `yaml:"type"`

	// Action is an action token (trace_contains, trace_count).
	Action string `yaml:"action,omitempty"`

	// Error filters on a refusal code (trace_contains, trace_count).
	Error string `yaml:"error,omitempty"`

	// Count is the expected number of matches (trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected order of first occurrences (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Expect is the expected final state (final_state).
	Expect *Expect `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and validates a scenario YAML file.
// Unknown fields are rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadDir loads every .yaml and .yml file directly under dir, sorted by
// file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]*Scenario, 0, len(names))
	for _, name := range names {
		s, err := LoadScenario(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks required fields, parses step scripts and
// rewrites action tokens in assertions to their canonical names.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		step := &s.Steps[i]
		if step.Press == "" {
			return fmt.Errorf("steps[%d]: press is required", i)
		}
		actions, err := session.ParseScript(step.Press)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if len(actions) == 0 {
			return fmt.Errorf("steps[%d]: press has no actions", i)
		}
		step.actions = actions
		if err := validateExpect(step.Expect); err != nil {
			return fmt.Errorf("steps[%d].expect: %w", i, err)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(e *Expect) error {
	if e == nil {
		return nil
	}
	if e.Mode != "" {
		var m session.Mode
		if err := m.UnmarshalText([]byte(e.Mode)); err != nil {
			return err
		}
	}
	return validateErrorCode(e.Error)
}

func validateErrorCode(code string) error {
	switch engine.ErrorCode(code) {
	case "", engine.ErrCodeIllegalOperation, engine.ErrCodeRangeConversion, engine.ErrCodeInvalidDigit:
		return nil
	default:
		return fmt.Errorf("unknown error code %q", code)
	}
}

// canonicalAction rewrites an action token to its canonical name.
func canonicalAction(token string) (string, error) {
	a, err := session.ParseAction(token)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if err := validateErrorCode(a.Error); err != nil {
		return fmt.Errorf("assertions[%d]: %w", index, err)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
		for j, tok := range a.Actions {
			name, err := canonicalAction(tok)
			if err != nil {
				return fmt.Errorf("assertions[%d].actions[%d]: %w", index, j, err)
			}
			a.Actions[j] = name
		}
	case AssertTraceCount:
		if a.Action == "" && a.Error == "" {
			return fmt.Errorf("assertions[%d]: action or error is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
		if a.Expect.Error != "" {
			return fmt.Errorf("assertions[%d]: final_state does not check errors", index)
		}
		if err := validateExpect(a.Expect); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Action != "" {
		name, err := canonicalAction(a.Action)
		if err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		a.Action = name
	}
	return nil
}
