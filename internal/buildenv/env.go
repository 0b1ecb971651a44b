package buildenv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"
)

// Construction variables understood by the build engine.
const (
	CPPDEFINES   = "CPPDEFINES"
	CPPPATH      = "CPPPATH"
	CCFLAGS      = "CCFLAGS"
	LIBPATH      = "LIBPATH"
	LIBS         = "LIBS"
	LINKFLAGS    = "LINKFLAGS"
	LDSCRIPTPATH = "LDSCRIPT_PATH"
)

// Mode says where an Op places its values relative to existing ones.
type Mode string

const (
	Append  Mode = "append"
	Prepend Mode = "prepend"
)

// Op is one change to a construction variable. A build configuration is
// expressed as an ordered list of Ops; later appends take precedence.
type Op struct {
	Var    string   `yaml:"var"`
	Mode   Mode     `yaml:"mode"`
	Values []string `yaml:"values"`
}

// AppendOp returns an Op appending values to v.
func AppendOp(v string, values ...string) Op {
	return Op{Var: v, Mode: Append, Values: values}
}

// PrependOp returns an Op prepending values to v.
func PrependOp(v string, values ...string) Op {
	return Op{Var: v, Mode: Prepend, Values: values}
}

// Env accumulates construction variables.
type Env struct {
	vars map[string][]string
}

// New returns an empty Env.
func New() *Env {
	return &Env{vars: make(map[string][]string)}
}

// Append adds values after the existing values of v.
func (e *Env) Append(v string, values ...string) {
	e.vars[v] = append(e.vars[v], values...)
}

// Prepend adds values before the existing values of v, keeping their order.
func (e *Env) Prepend(v string, values ...string) {
	out := make([]string, 0, len(values)+len(e.vars[v]))
	out = append(out, values...)
	e.vars[v] = append(out, e.vars[v]...)
}

// Apply runs ops in order.
func (e *Env) Apply(ops []Op) error {
	for _, op := range ops {
		switch op.Mode {
		case Append:
			e.Append(op.Var, op.Values...)
		case Prepend:
			e.Prepend(op.Var, op.Values...)
		default:
			return fmt.Errorf("unknown op mode '%s' for %s", op.Mode, op.Var)
		}
	}
	return nil
}

// Get returns a copy of the values of v.
func (e *Env) Get(v string) []string {
	vals := e.vars[v]
	if vals == nil {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Last returns the last value of v, which is the effective one for
// single-valued variables such as LDSCRIPT_PATH.
func (e *Env) Last(v string) string {
	vals := e.vars[v]
	if len(vals) == 0 {
		return ""
	}
	return vals[len(vals)-1]
}

// Vars returns the names of all set variables, sorted.
func (e *Env) Vars() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of all variables.
func (e *Env) Map() map[string][]string {
	out := make(map[string][]string, len(e.vars))
	for _, name := range e.Vars() {
		out[name] = e.Get(name)
	}
	return out
}

// ParseFlags splits a raw compiler/linker flag string using shell quoting
// rules and sorts each flag into the construction variable it belongs to.
// Ops are returned in first-seen variable order, one Append per variable.
func ParseFlags(raw string) ([]Op, error) {
	tokens, err := shlex.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("splitting flags %q: %w", raw, err)
	}

	var order []string
	byVar := make(map[string][]string)
	add := func(v, value string) {
		if _, ok := byVar[v]; !ok {
			order = append(order, v)
		}
		byVar[v] = append(byVar[v], value)
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if v, ok := pairedFlags[tok]; ok {
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("flag %s requires a value", tok)
			}
			i++
			add(v, tok)
			add(v, tokens[i])
			continue
		}
		v, prefix := classify(tok)
		if prefix == "" {
			add(v, tok)
			continue
		}
		value := strings.TrimPrefix(tok, prefix)
		if value == "" {
			// "-D NAME" and friends take the value from the next token.
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("flag %s requires a value", tok)
			}
			i++
			value = tokens[i]
		}
		add(v, value)
	}

	ops := make([]Op, 0, len(order))
	for _, v := range order {
		ops = append(ops, AppendOp(v, byVar[v]...))
	}
	return ops, nil
}

// pairedFlags take the next token as their argument. Both tokens are kept,
// adjacent, in the flag's variable.
var pairedFlags = map[string]string{
	"-isystem": CCFLAGS,
	"-include": CCFLAGS,
	"-imacros": CCFLAGS,
	"-Xlinker": LINKFLAGS,
}

// classify returns the variable a flag belongs to and, for flags whose
// value is stored without the flag itself, the prefix to strip.
func classify(tok string) (v string, prefix string) {
	switch {
	case strings.HasPrefix(tok, "-D"):
		return CPPDEFINES, "-D"
	case strings.HasPrefix(tok, "-I"):
		return CPPPATH, "-I"
	case strings.HasPrefix(tok, "-L"):
		return LIBPATH, "-L"
	case strings.HasPrefix(tok, "-l"):
		return LIBS, "-l"
	case strings.HasPrefix(tok, "-T"):
		return LDSCRIPTPATH, "-T"
	case strings.HasPrefix(tok, "-Wl,"), tok == "-static", tok == "-nostartfiles", tok == "-nostdlib":
		return LINKFLAGS, ""
	default:
		return CCFLAGS, ""
	}
}

// Defines returns the set of preprocessor names defined by ops. Values of
// the form NAME=VALUE contribute NAME.
func Defines(ops []Op) map[string]bool {
	out := make(map[string]bool)
	for _, op := range ops {
		if op.Var != CPPDEFINES {
			continue
		}
		for _, d := range op.Values {
			name, _, _ := strings.Cut(d, "=")
			out[name] = true
		}
	}
	return out
}
