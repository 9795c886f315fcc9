package session

import "fmt"

// Mode classifies the most recent user action. The tracker uses it to
// decide whether a digit starts a new number or extends the current one.
type Mode int

const (
	// JustCleared is the initial mode and follows clear.
	JustCleared Mode = iota
	// JustEntered follows enter.
	JustEntered
	// JustOperated follows swap and the arithmetic operations.
	JustOperated
	// JustDigited follows digit entry.
	JustDigited
)

var modeNames = [...]string{
	JustCleared:  "JustCleared",
	JustEntered:  "JustEntered",
	JustOperated: "JustOperated",
	JustDigited:  "JustDigited",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText encodes m by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown input mode %q", text)
}
