// Package harness runs scripted calculator scenarios.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: enter_starts_fresh_number
//	description: digits after enter start a new bottom
//	steps:
//	  - press: "clear 5 3 enter 7"
//	    expect: { top: "53", bottom: "7", mode: JustDigited }
//	  - press: "-"
//	    expect: { error: ILLEGAL_OPERATION }
//	assertions:
//	  - type: trace_count
//	    error: ILLEGAL_OPERATION
//	    count: 1
//
// Each step presses a script (see session.ParseScript). Its expect clause
// checks the registers, flags and input mode afterwards; unset fields are
// skipped. A refused press fails the scenario unless it is the step's
// last press and expect.error names its code.
//
// # Assertion Types
//
//   - trace_contains: some press matches action and/or error
//   - trace_order: first occurrences of actions appear in order
//   - trace_count: exactly count presses match action and/or error
//   - final_state: state after the last step
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory journal and a fixed session ID
// (scenario.session_id or testutil.DefaultSessionID). The trace is read
// back from the journal, so RunWithGolden compares exactly what a real
// session would have recorded.
package harness
