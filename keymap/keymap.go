// Package keymap binds keys and on-screen buttons to calculator operations.
//
// A Keymap maps key names to Bindings. Keys are either single characters, as
// typed, or the names Enter, Backspace, and Escape. Letters match in either
// case when the keymap has no binding for the exact key.
package keymap

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/keycalc"
)

// Calculator is the set of operations a key can invoke.
type Calculator interface {
	Clear()
	DeleteLast()
	AppendToken(tok string)
	AppendOperator(op string)
	ApplyUnary(fn keycalc.Unary)
	Compute()
}

var _ Calculator = (*keycalc.Engine)(nil)

// Names of keys that don't type a character.
const (
	Enter     = "Enter"
	Backspace = "Backspace"
	Escape    = "Escape"
)

// Kind is the kind of operation a key invokes.
type Kind int8

const (
	// None unbinds a key.
	None Kind = iota
	// Token appends its argument, a digit or decimal point.
	Token
	// Operator appends its argument, one of keycalc.EngineOperators.
	Operator
	// Compute evaluates the expression.
	Compute
	// Delete removes the last character.
	Delete
	// Clear empties the expression.
	Clear
	// Function applies the keycalc.Unary named by its argument.
	Function
)

var kindNames = [...]string{
	None:     "none",
	Token:    "token",
	Operator: "operator",
	Compute:  "compute",
	Delete:   "delete",
	Clear:    "clear",
	Function: "function",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Binding is the operation bound to a key.
type Binding struct {
	Kind Kind
	Arg  string
}

// String formats b the way keymap files spell actions.
func (b Binding) String() string {
	if b.Arg == "" {
		return b.Kind.String()
	}
	return b.Kind.String() + " " + b.Arg
}

// Apply invokes the operation on c.
func (b Binding) Apply(c Calculator) {
	switch b.Kind {
	case Token:
		c.AppendToken(b.Arg)
	case Operator:
		c.AppendOperator(b.Arg)
	case Compute:
		c.Compute()
	case Delete:
		c.DeleteLast()
	case Clear:
		c.Clear()
	case Function:
		c.ApplyUnary(keycalc.Unary(b.Arg))
	}
}

// Keymap maps key names to bindings.
type Keymap map[string]Binding

// Default returns the standard bindings: digits and "." type themselves,
// "+ - *" and "÷" are operators with "/" typing "÷", Enter and "=" compute,
// Backspace deletes, c and Escape clear, and q s r p apply sqrt, square,
// reciprocal, and pi.
func Default() Keymap {
	m := Keymap{
		".":       {Token, "."},
		"+":       {Operator, "+"},
		"-":       {Operator, "-"},
		"*":       {Operator, "*"},
		"/":       {Operator, "÷"},
		"÷":       {Operator, "÷"},
		Enter:     {Kind: Compute},
		"=":       {Kind: Compute},
		Backspace: {Kind: Delete},
		"c":       {Kind: Clear},
		Escape:    {Kind: Clear},
		"q":       {Function, string(keycalc.Sqrt)},
		"s":       {Function, string(keycalc.Square)},
		"r":       {Function, string(keycalc.Reciprocal)},
		"p":       {Function, string(keycalc.Pi)},
	}
	for d := '0'; d <= '9'; d++ {
		m[string(d)] = Binding{Token, string(d)}
	}
	return m
}

// Lookup returns the binding for key. A single letter without its own binding
// matches the binding of its lower case form.
func (m Keymap) Lookup(key string) (Binding, bool) {
	if b, ok := m[key]; ok {
		return b, b.Kind != None
	}
	if r, sz := utf8.DecodeRuneInString(key); sz == len(key) && sz > 0 {
		if l := strings.ToLower(string(r)); l != key {
			b, ok := m[l]
			return b, ok && b.Kind != None
		}
	}
	return Binding{}, false
}

// Press applies the binding for key to c. The result is false if key is
// unbound.
func (m Keymap) Press(c Calculator, key string) bool {
	b, ok := m.Lookup(key)
	if !ok {
		return false
	}
	b.Apply(c)
	return true
}
