package testutil

// FixedIDGenerator returns the same session ID every time.
//
// The same scenario run with the same FixedIDGenerator produces a
// byte-identical journal and trace, which golden comparison relies on.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// DefaultSessionID is used when NewFixedIDGenerator is given "".
const DefaultSessionID = "test-session-default"

// NewFixedIDGenerator creates a generator that always returns id.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed session ID.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
