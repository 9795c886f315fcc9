package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %-8s top=%s bottom=%s", event.Seq, event.Action, event.Top, event.Bottom)
		if event.Error != "" {
			fmt.Fprintf(&buf, " refused=%s", event.Error)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func (a Assertion) matches(event TraceEvent) bool {
	if a.Action != "" && event.Action != a.Action {
		return false
	}
	if a.Error != "" && event.Error != a.Error {
		return false
	}
	return true
}

func (a Assertion) describe() string {
	switch {
	case a.Action != "" && a.Error != "":
		return fmt.Sprintf("%s refused with %s", a.Action, a.Error)
	case a.Error != "":
		return fmt.Sprintf("any press refused with %s", a.Error)
	default:
		return a.Action
	}
}

// assertTraceContains checks that some press matches the action and, if
// given, the refusal code.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if assertion.matches(event) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: assertion.describe(),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the first occurrences of the actions appear
// in the given order. Other presses may come in between.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Action]; !seen {
			positions[event.Action] = i + 1
		}
	}

	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Actions); i++ {
		prev, curr := assertion.Actions[i-1], assertion.Actions[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks the exact number of matching presses.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if assertion.matches(event) {
			count++
		}
	}
	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.describe()),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState checks the state after the last step.
func assertFinalState(result *Result, assertion Assertion) error {
	msgs := compareState(assertion.Expect, result.Final)
	if len(msgs) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: "final state to match",
		Actual:   strings.Join(msgs, "; "),
		Trace:    result.Trace,
	}
}

// EvaluateAssertions evaluates all assertions against the result and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}
		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
