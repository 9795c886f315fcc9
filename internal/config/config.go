// Package config loads nncalc settings from an optional CUE file.
//
// The file is unified with an embedded #Config definition that supplies
// defaults and rejects unknown fields. Command-line flags are applied on
// top by the caller.
//
// Example file:
//
//	format: "json"
//	journal: "~/.local/share/nncalc/journal.db"
//	tui: width: 60
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// Config holds every configurable setting.
type Config struct {
	Format  string `json:"format"`
	Verbose bool   `json:"verbose"`
	Journal string `json:"journal"`
	TUI     TUI    `json:"tui"`
}

// TUI holds terminal UI settings.
type TUI struct {
	Accent string `json:"accent"`
	Width  int    `json:"width"`
}

// Error is a configuration problem, with the CUE position when known.
type Error struct {
	Pos     token.Pos
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the schema defaults.
func Default() *Config {
	cfg, err := decode(cuecontext.New(), nil, "")
	if err != nil {
		// The embedded schema is fixed; failing here is a build defect.
		panic(err)
	}
	return cfg
}

// Load reads the CUE file at path and returns the resulting settings.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse is Load for in-memory content. filename is used in error positions.
func Parse(data []byte, filename string) (*Config, error) {
	return decode(cuecontext.New(), data, filename)
}

func decode(ctx *cue.Context, data []byte, filename string) (*Config, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	v := schema.LookupPath(cue.ParsePath("#Config"))

	if data != nil {
		user := ctx.CompileBytes(data, cue.Filename(filename))
		if err := user.Err(); err != nil {
			return nil, convertError(err)
		}
		v = v.Unify(user)
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, convertError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, convertError(err)
	}
	cfg.Journal = expandHome(cfg.Journal)
	return &cfg, nil
}

// convertError flattens a CUE error list into one Error positioned at the
// first problem.
func convertError(err error) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return &Error{Message: err.Error()}
	}

	msgs := make([]string, 0, len(list))
	for _, e := range list {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := e.Path(); len(path) > 0 {
			msg = strings.Join(path, ".") + ": " + msg
		}
		msgs = append(msgs, msg)
	}

	ce := &Error{Message: strings.Join(msgs, "; ")}
	var pe cueerrors.Error
	if errors.As(err, &pe) {
		ce.Pos = pe.Position()
	}
	return ce
}

// ValidFormat reports whether format is supported. Used for flag values,
// which bypass the schema.
func ValidFormat(format string) bool {
	return format == "text" || format == "json"
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
