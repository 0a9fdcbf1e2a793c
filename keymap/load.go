package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/keycalc"
)

// file is the document format of a keymap file:
//
//	keys:
//	  x: operator *
//	  "/": operator /
//	  c: none
type file struct {
	Keys map[string]string `yaml:"keys"`
}

// Load reads a YAML keymap document from r and layers its bindings over the
// defaults. Each entry of the keys mapping binds a key to an action, one of
// "token d", "operator o", "function f", "compute", "delete", "clear", or
// "none" to unbind the key. An empty document gives the defaults.
func Load(r io.Reader) (Keymap, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("keymap: couldn't decode: %w", err)
	}
	m := Default()
	for key, action := range f.Keys {
		if key == "" {
			return nil, errors.New("keymap: empty key name")
		}
		b, err := ParseBinding(action)
		if err != nil {
			return nil, fmt.Errorf("keymap: binding for %q: %w", key, err)
		}
		m[key] = b
	}
	return m, nil
}

// ParseBinding parses an action as written in a keymap file.
func ParseBinding(action string) (Binding, error) {
	f := strings.Fields(action)
	if len(f) == 0 {
		return Binding{}, errors.New("empty action")
	}
	k, ok := parseKind(f[0])
	if !ok {
		return Binding{}, fmt.Errorf("unknown action %q", f[0])
	}
	switch k {
	case Token, Operator, Function:
		if len(f) != 2 {
			return Binding{}, fmt.Errorf("%v needs exactly one argument", k)
		}
	default:
		if len(f) != 1 {
			return Binding{}, fmt.Errorf("%v takes no argument", k)
		}
		return Binding{Kind: k}, nil
	}
	arg := f[1]
	switch k {
	case Token:
		if len(arg) != 1 || !strings.Contains("0123456789.", arg) {
			return Binding{}, fmt.Errorf("token %q is not a digit or decimal point", arg)
		}
	case Operator:
		if len([]rune(arg)) != 1 || !strings.Contains(keycalc.EngineOperators, arg) {
			return Binding{}, fmt.Errorf("%q is not an operator", arg)
		}
	case Function:
		if _, ok := keycalc.ParseUnary(arg); !ok {
			return Binding{}, fmt.Errorf("unknown function %q", arg)
		}
	}
	return Binding{Kind: k, Arg: arg}, nil
}

func parseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), true
		}
	}
	return None, false
}

// LoadFile loads a keymap from the named file. If name is empty, the result
// is the default keymap.
func LoadFile(name string) (Keymap, error) {
	if name == "" {
		return Default(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	defer f.Close()
	return Load(f)
}
