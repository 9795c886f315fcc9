package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/nncalc/internal/engine"
)

// Action is one user press: an operation or a single digit.
type Action struct {
	Op    engine.Op
	Digit int // meaningful only when Op == engine.OpDigit
}

// Digit returns the action for pressing d.
func Digit(d int) Action {
	return Action{Op: engine.OpDigit, Digit: d}
}

// Press returns the action for pressing op.
func Press(op engine.Op) Action {
	return Action{Op: op}
}

// String returns the canonical token: the operation name or the digit.
func (a Action) String() string {
	if a.Op == engine.OpDigit {
		return strconv.Itoa(a.Digit)
	}
	return a.Op.String()
}

// MarshalText encodes a by its canonical token.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a single-action token.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// aliases maps every accepted token, after normalisation, to its operation.
var aliases = map[string]engine.Op{
	"clear": engine.OpClear, "c": engine.OpClear,
	"swap": engine.OpSwap, "s": engine.OpSwap,
	"enter": engine.OpEnter, "=": engine.OpEnter,
	"add": engine.OpAdd, "+": engine.OpAdd,
	"subtract": engine.OpSubtract, "sub": engine.OpSubtract, "-": engine.OpSubtract,
	"multiply": engine.OpMultiply, "mul": engine.OpMultiply, "*": engine.OpMultiply,
	"x": engine.OpMultiply, "×": engine.OpMultiply,
	"divide": engine.OpDivide, "div": engine.OpDivide, "/": engine.OpDivide, "÷": engine.OpDivide,
	"power": engine.OpPower, "pow": engine.OpPower, "^": engine.OpPower,
	"root": engine.OpRoot, "r": engine.OpRoot, "√": engine.OpRoot,
}

// suggestible lists the tokens offered in "did you mean" hints, sorted so
// ties resolve deterministically.
var suggestible = func() []string {
	var names []string
	for name := range aliases {
		if utf8.RuneCountInString(name) > 2 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}()

// maxSuggestDistance bounds the edit distance for suggestions.
const maxSuggestDistance = 2

// ParseError reports a token that names no action.
type ParseError struct {
	Token      string
	Suggestion string
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown action %q (did you mean %q?)", e.Token, e.Suggestion)
	}
	return fmt.Sprintf("unknown action %q", e.Token)
}

// normalize applies compatibility normalisation and case folding so that
// full-width digits and mixed-case names parse like their plain forms.
// A Caser is stateful, so each call gets its own.
func normalize(token string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(token)))
}

// ParseAction parses a token naming exactly one action.
func ParseAction(token string) (Action, error) {
	actions, err := parseToken(token)
	if err != nil {
		return Action{}, err
	}
	if len(actions) != 1 {
		return Action{}, fmt.Errorf("token %q names %d actions, want 1", token, len(actions))
	}
	return actions[0], nil
}

// ParseScript parses whitespace-separated tokens. A run of digits such as
// "53" expands to one digit action per character.
func ParseScript(src string) ([]Action, error) {
	var out []Action
	for _, tok := range strings.Fields(norm.NFKC.String(src)) {
		actions, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, actions...)
	}
	return out, nil
}

func parseToken(token string) ([]Action, error) {
	t := normalize(token)
	if t == "" {
		return nil, &ParseError{Token: token}
	}
	if op, ok := aliases[t]; ok {
		return []Action{Press(op)}, nil
	}
	if isDigits(t) {
		out := make([]Action, len(t))
		for i := 0; i < len(t); i++ {
			out[i] = Digit(int(t[i] - '0'))
		}
		return out, nil
	}
	return nil, &ParseError{Token: token, Suggestion: suggest(t)}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func suggest(t string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, name := range suggestible {
		if d := levenshtein.ComputeDistance(t, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// FormatScript renders actions as a script ParseScript reads back.
// Consecutive digits are joined into one number token.
func FormatScript(actions []Action) string {
	var b strings.Builder
	prevDigit := false
	for i, a := range actions {
		isDigit := a.Op == engine.OpDigit
		if i > 0 && !(isDigit && prevDigit) {
			b.WriteByte(' ')
		}
		b.WriteString(a.String())
		prevDigit = isDigit
	}
	return b.String()
}
