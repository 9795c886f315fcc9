// Package journal provides SQLite-backed transcripts of calculator sessions.
//
// A journal is append-only. Each session gets one row in sessions and one
// row in presses per key press, refused presses included:
//   - sessions: id, free-form label, creation order (created_seq)
//   - presses: action token, resulting registers and flags, input mode,
//     error code of a refusal
//
// # Ordering
//
// All ordering uses seq columns, never timestamps. Sessions list in
// created_seq order and presses in seq order, so reads are identical
// across runs.
//
// # Replay
//
// Replay re-executes a recorded session in a fresh in-memory session and
// compares every press. It checks determinism only: a journal is a
// transcript, and nothing in this package restores a session for further
// input.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package journal
