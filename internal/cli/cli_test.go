package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/nncalc/internal/journal"
)

func openTestJournal(t *testing.T, path string) *journal.Journal {
	t.Helper()
	j, err := journal.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

// journaledEval runs eval against db and returns the new session's ID.
func journaledEval(t *testing.T, db, script string) string {
	t.Helper()
	out, err := execute(t, "", "eval", script, "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "journal.db")
}
