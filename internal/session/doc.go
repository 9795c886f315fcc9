// Package session is the boundary between user input and the engine.
//
// It owns the digit-entry state machine (Tracker), parses user tokens into
// actions, and ties an engine, a tracker and an optional journal together
// as one Session.
//
// Input mode is interaction history, not arithmetic state, so it lives
// here rather than in the engine. Each Session has its own Tracker; there
// is no global mode.
//
// # Tokens
//
// ParseScript accepts whitespace-separated tokens:
//
//	clear c    swap s    enter =
//	add +      subtract sub -    multiply mul * x ×
//	divide div / ÷       power pow ^      root r √
//	0-9 and runs of digits ("53" is two digit presses)
//
// Tokens are NFKC-normalised and case-folded, so "ＡＤＤ" and "５" work.
package session
