package keycalc

import (
	"math/big"
	"strings"
	"unicode/utf8"
)

// Messages shown in place of the expression when an operation fails.
const (
	ErrNegativeRoot = "Error: √ of negative"
	ErrDivideByZero = "Error: 1/0 undefined"
	ErrGeneric      = "Error"
)

// Unary names a function applied to the whole current expression.
type Unary string

const (
	Sqrt       Unary = "sqrt"
	Square     Unary = "square"
	Reciprocal Unary = "reciprocal"
	Pi         Unary = "pi"
)

// ParseUnary returns the Unary named by s.
func ParseUnary(s string) (Unary, bool) {
	u := Unary(s)
	_, ok := unaryfuncs[u]
	return u, ok
}

var unaryfuncs = map[Unary]Func{
	Sqrt: globalfuncs["sqrt"],
	Square: Monadic(func(out, in *big.Float) *big.Float {
		return out.Mul(in, in)
	}),
	Reciprocal: Monadic(func(out, in *big.Float) *big.Float {
		return out.Quo(new(big.Float).SetInt64(1), in)
	}),
	Pi: globalfuncs["pi"],
}

// Display is the two-line text an engine shows.
type Display struct {
	// Previous is the upper line. It is reserved by the layout and always
	// empty.
	Previous string
	// Current is the expression being typed, a result, or an error message.
	Current string
}

// Engine accumulates a calculator expression from key input and evaluates it
// on demand. It is in one of two modes: normal, where the display shows the
// expression, and error, where it shows an error message. Input that edits
// the expression leaves error mode by starting over from an empty expression.
//
// The expression never holds two adjacent operators or two decimal points in
// one operand, as long as it is only built through these methods.
//
// The zero Engine is not ready for use; create one with NewEngine. An Engine
// is not safe for concurrent use.
type Engine struct {
	expr string
	err  string
	ctx  *Context
}

// NewEngine creates an engine with an empty expression.
func NewEngine() *Engine {
	return &Engine{ctx: NewContext()}
}

// Expression returns the current expression text, even in error mode.
func (e *Engine) Expression() string {
	return e.expr
}

// Err returns the current error message, or the empty string if the engine is
// not in error mode.
func (e *Engine) Err() string {
	return e.err
}

// Clear empties the expression and leaves error mode.
func (e *Engine) Clear() {
	e.expr = ""
	e.err = ""
}

// dismiss leaves error mode, discarding the expression.
func (e *Engine) dismiss() {
	if e.err != "" {
		e.Clear()
	}
}

// DeleteLast removes the last character of the expression. In error mode, it
// dismisses the error and empties the expression instead.
func (e *Engine) DeleteLast() {
	if e.err != "" {
		e.Clear()
		return
	}
	_, sz := utf8.DecodeLastRuneInString(e.expr)
	e.expr = e.expr[:len(e.expr)-sz]
}

// AppendToken appends a digit or a decimal point to the expression. A decimal
// point is ignored if the operand being typed already has one. Any other
// token is ignored.
func (e *Engine) AppendToken(tok string) {
	if len(tok) != 1 || !isDigit(tok[0]) && tok[0] != '.' {
		return
	}
	e.dismiss()
	if tok == "." && strings.Contains(lastOperand(e.expr), ".") {
		return
	}
	e.expr += tok
}

// AppendOperator appends one of EngineOperators to the expression. An operator
// cannot start an expression. If the expression already ends with an
// operator, op replaces it. Any other op is ignored.
func (e *Engine) AppendOperator(op string) {
	if !isOperator(op) {
		return
	}
	e.dismiss()
	if e.expr == "" {
		return
	}
	if last, sz := utf8.DecodeLastRuneInString(e.expr); strings.ContainsRune(EngineOperators, last) {
		e.expr = e.expr[:len(e.expr)-sz]
	}
	e.expr += op
}

// ApplyUnary replaces the expression with fn applied to the number it starts
// with. Pi ignores that number, but like the others it does nothing when the
// expression is empty.
func (e *Engine) ApplyUnary(fn Unary) {
	e.dismiss()
	// TODO(zeph): decide whether Pi should work on an empty expression; it is
	// a constant, but the calculator has always required input first.
	if e.expr == "" {
		return
	}
	f := unaryfuncs[fn]
	if f == nil {
		return
	}
	var v float64
	if !f.CanCall(0) {
		var ok bool
		if v, ok = ParsePrefix(e.expr); !ok {
			e.err = ErrGeneric
			return
		}
	}
	switch {
	case fn == Sqrt && v < 0:
		e.err = ErrNegativeRoot
		return
	case fn == Reciprocal && v == 0:
		e.err = ErrDivideByZero
		return
	}
	r, err := e.call(f, v)
	if err != nil {
		e.err = ErrGeneric
		return
	}
	e.expr = FormatNumber(r)
}

// call evaluates a monadic or niladic Func at v.
func (e *Engine) call(f Func, v float64) (float64, error) {
	var invoc []*big.Float
	if !f.CanCall(0) {
		invoc = []*big.Float{new(big.Float).SetPrec(e.ctx.Prec()).SetFloat64(v)}
	}
	var r big.Float
	if err := f.Call(e.ctx, invoc, &r); err != nil {
		return 0, err
	}
	x, _ := r.Float64()
	return x, nil
}

// Compute evaluates the expression with the usual operator precedence and
// replaces it with the result rounded to 12 decimal places. If evaluation
// fails, the engine enters error mode. In error mode, Compute does nothing.
func (e *Engine) Compute() {
	if e.err != "" {
		return
	}
	a, err := Parse(strings.NewReader(e.expr))
	if err != nil {
		e.err = ErrGeneric
		return
	}
	r := e.ctx.Eval(a)
	if r == nil {
		e.err = ErrGeneric
		return
	}
	x, _ := r.Float64()
	e.expr = FormatNumber(Round(x))
}

// Render returns the text to display.
func (e *Engine) Render() Display {
	if e.err != "" {
		return Display{Current: e.err}
	}
	return Display{Current: e.expr}
}

// lastOperand returns the text after the last operator in expr.
func lastOperand(expr string) string {
	k := strings.LastIndexAny(expr, EngineOperators)
	if k < 0 {
		return expr
	}
	_, sz := utf8.DecodeRuneInString(expr[k:])
	return expr[k+sz:]
}

func isOperator(op string) bool {
	r, sz := utf8.DecodeRuneInString(op)
	return sz == len(op) && sz > 0 && strings.ContainsRune(EngineOperators, r)
}
