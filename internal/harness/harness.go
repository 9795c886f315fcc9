package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/journal"
	"github.com/roach88/nncalc/internal/session"
	"github.com/roach88/nncalc/internal/testutil"
)

// Harness executes scenarios against a real session.
type Harness struct {
	journal *journal.Journal
	session *session.Session
	logger  *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger executes a scenario and returns its result.
//
// Each run gets a fresh in-memory journal and a session with a fixed ID,
// so the same scenario always produces the same trace. The trace is read
// back from the journal after the last step.
//
// An error is returned only when the scenario cannot be executed; failed
// expectations are reported in Result.Errors.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("create in-memory journal: %w", err)
	}
	defer j.Close()

	id := scenario.SessionID
	if id == "" {
		id = testutil.DefaultSessionID
	}

	ctx := context.Background()
	if err := j.BeginSession(ctx, id, scenario.Name); err != nil {
		return nil, err
	}

	h := &Harness{
		journal: j,
		session: session.New(nil,
			session.WithIDGenerator(testutil.NewFixedIDGenerator(id)),
			session.WithJournal(j),
		),
		logger: logger,
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	if err := h.collectTrace(ctx, id, result); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// refusalCode splits a press error into the engine's refusal code and an
// error that must abort the run. A journal failure aborts even when it
// accompanies a refusal.
func refusalCode(err error) (engine.ErrorCode, error) {
	if err == nil {
		return "", nil
	}
	code := engine.CodeOf(err)
	if code == "" || session.IsJournalError(err) {
		return code, err
	}
	return code, nil
}

// executeStep presses a step's actions and checks its expect clause.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	var lastCode engine.ErrorCode
	for k, a := range step.actions {
		pressErr := h.session.Press(ctx, a)
		code, err := refusalCode(pressErr)
		if err != nil {
			return err
		}

		last := k == len(step.actions)-1
		if last {
			lastCode = code
		}
		if code != "" && !(last && step.Expect != nil && step.Expect.Error != "") {
			result.AddError(fmt.Sprintf("step %d: press %d (%s) refused: %v", index, k+1, a, pressErr))
		}
	}

	snap := h.session.Snapshot()
	h.logger.Info("step completed",
		"step", index,
		"press", step.Press,
		"top", snap.Top,
		"bottom", snap.Bottom,
		"mode", h.session.Mode(),
	)

	if step.Expect == nil {
		return nil
	}
	if want := engine.ErrorCode(step.Expect.Error); want != "" && lastCode != want {
		got := string(lastCode)
		if got == "" {
			got = "none"
		}
		result.AddError(fmt.Sprintf("step %d: expected error %s, got %s", index, want, got))
	}
	for _, msg := range compareState(step.Expect, h.finalState()) {
		result.AddError(fmt.Sprintf("step %d: %s", index, msg))
	}
	return nil
}

func (h *Harness) finalState() FinalState {
	snap := h.session.Snapshot()
	return FinalState{
		Top:    snap.Top,
		Bottom: snap.Bottom,
		Flags:  snap.Flags,
		Mode:   h.session.Mode().String(),
	}
}

// collectTrace reads the journaled presses into the result.
func (h *Harness) collectTrace(ctx context.Context, id string, result *Result) error {
	entries, err := h.journal.Presses(ctx, id)
	if err != nil {
		return fmt.Errorf("read trace: %w", err)
	}
	for _, e := range entries {
		result.Trace = append(result.Trace, EventFromEntry(e))
	}
	result.Final = h.finalState()
	return nil
}

// compareState returns one message per expected field that differs.
func compareState(want *Expect, got FinalState) []string {
	var msgs []string
	if want.Top != nil && *want.Top != got.Top {
		msgs = append(msgs, fmt.Sprintf("top: expected %s, got %s", *want.Top, got.Top))
	}
	if want.Bottom != nil && *want.Bottom != got.Bottom {
		msgs = append(msgs, fmt.Sprintf("bottom: expected %s, got %s", *want.Bottom, got.Bottom))
	}
	if want.Mode != "" && want.Mode != got.Mode {
		msgs = append(msgs, fmt.Sprintf("mode: expected %s, got %s", want.Mode, got.Mode))
	}
	if want.Flags != nil && *want.Flags != got.Flags {
		msgs = append(msgs, fmt.Sprintf("flags: expected %+v, got %+v", *want.Flags, got.Flags))
	}
	return msgs
}
