package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nncalc/internal/display"
	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/session"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("PARSE_ERROR", "unknown action", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, "PARSE_ERROR", resp.Error.Code)
	assert.Equal(t, "unknown action", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]string{"top": "9", "bottom": "0"}
	err := formatter.Error("ILLEGAL_OPERATION", "bottom is zero", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("All scenarios passed")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "All scenarios passed")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("PARSE_ERROR", "unknown action", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [PARSE_ERROR]")
	assert.Contains(t, buf.String(), "unknown action")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"top": "9"}
	err := formatter.Error("PARSE_ERROR", "unknown action", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [PARSE_ERROR]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("replaying %s", "session-1")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "replaying session-1")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("replaying %s", "session-1")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "replaying session-1")
}

func TestOutputFormatter_TextWriterPayload(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	res := displayResult{
		State: display.State{Top: "4", Bottom: "2", Flags: engine.Flags{Divide: true, Power: true, Root: true}},
		Mode:  "JustDigited",
	}
	require.NoError(t, formatter.Success(res))
	assert.Equal(t, "top:    4\nbottom: 2\nops:    · / ^ √\nmode:   JustDigited\n", buf.String())
}

func TestOutputFormatter_SuccessForSessionID(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.SuccessFor("abc", "ok"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "abc", resp.SessionID)
}

func TestErrorCode(t *testing.T) {
	_, parseErr := session.ParseAction("swpa")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"engine", &engine.Error{Code: engine.ErrCodeRangeConversion, Op: engine.OpPower}, "RANGE_CONVERSION"},
		{"wrapped engine", fmt.Errorf("action 2 (root): %w", &engine.Error{Code: engine.ErrCodeIllegalOperation}), "ILLEGAL_OPERATION"},
		{"parse", parseErr, CodeParse},
		{"other", errors.New("disk full"), CodeJournal},
		{"refused and not recorded", errors.Join(
			&engine.Error{Code: engine.ErrCodeIllegalOperation, Op: engine.OpDivide},
			&session.JournalError{Seq: 4, Err: errors.New("disk full")},
		), CodeJournal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err, CodeJournal))
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "diverged", errors.New("x")))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Equal(t, "outer: diverged: x", wrapped.Error())
}
