package expr

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"bigfrac/internal/fraction"
)

// Mode selects the number model used by an Env.
type Mode uint8

const (
	// ModeFraction evaluates with exact reduced fractions.
	ModeFraction Mode = iota
	// ModeInt evaluates with integers; / truncates toward zero.
	ModeInt
)

func (m Mode) String() string {
	switch m {
	case ModeFraction:
		return "fraction"
	case ModeInt:
		return "int"
	default:
		return "unknown"
	}
}

// ParseMode converts "fraction" or "int" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "fraction", "frac", "":
		return ModeFraction, nil
	case "int", "integer":
		return ModeInt, nil
	default:
		return ModeFraction, fmt.Errorf("unknown mode %q (expected fraction|int)", s)
	}
}

// Env holds the variables of one evaluation session. An Env is not safe for
// concurrent use; batch runs give every script its own.
type Env struct {
	mode    Mode
	vars    map[string]fraction.Fraction
	last    fraction.Fraction
	hasLast bool
}

// NewEnv returns an empty environment.
func NewEnv(mode Mode) *Env {
	return &Env{mode: mode, vars: make(map[string]fraction.Fraction)}
}

// Mode returns the number model.
func (e *Env) Mode() Mode { return e.mode }

// Get returns a variable. "_" names the last printed value.
func (e *Env) Get(name string) (fraction.Fraction, bool) {
	if name == "_" {
		return e.last, e.hasLast
	}
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v.
func (e *Env) Set(name string, v fraction.Fraction) {
	e.vars[name] = v
}

// Names returns the bound variable names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Result is the value of one printing statement.
type Result struct {
	Source string
	Value  fraction.Fraction
	Mode   Mode
}

// Text renders the value: "num/den" in fraction mode, a plain integer in
// int mode.
func (r Result) Text() string {
	if r.Mode == ModeInt {
		return r.Value.Num().String()
	}
	return r.Value.String()
}
