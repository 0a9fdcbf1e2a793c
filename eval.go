package keycalc

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the default precision of a Context, in bits. It matches the
// mantissa of a float64, so that the four arithmetic operators round exactly
// as float64 arithmetic does within float64's exponent range.
const DefaultPrec = 53

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	names map[string]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a missing variable definition or an argument to a function outside its
// domain, then the result is nil and ctx.Err returns the error. The result is
// owned by ctx until the next call to Eval.
func (ctx *Context) Eval(e *Expr) *big.Float {
	return e.Eval(ctx)
}

// Eval evaluates the expression in ctx. It is the same as ctx.Eval(e).
func (e *Expr) Eval(ctx *Context) (result *big.Float) {
	if len(ctx.stack) > 0 {
		// Don't clobber the previous result, which the caller may hold.
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	}
	defer func() {
		// Operations the checks below don't anticipate still fail as domain
		// errors rather than crashing the caller.
		if err := recoverDomain(recover(), new(big.Float), 0, ""); err != nil {
			ctx.err = err
			ctx.stack = ctx.stack[:0]
			result = nil
		}
	}()
	ctx.err = e.n.eval(ctx)
	if ctx.err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("keycalc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("keycalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error from the last evaluation with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		names: make(map[string]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
	}
	// Loop backward so that the last precision wins.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Cached literals are only reusable at the same precision.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	for name, val := range ctx.names {
		n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			// do nothing
		case varopt:
			n.names[opt.name] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		case precopt:
			// Already done.
		default:
			panic("keycalc: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	var r *big.Float
	switch s {
	case "inf", "Inf", "Infinity", "∞":
		r = new(big.Float).SetInf(false)
	default:
		var err error
		r, _, err = new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
		switch {
		case err == nil: // do nothing
		case err.Error() == "exponent overflow",
			strings.HasSuffix(err.Error(), ": value out of range"):
			// There isn't realistically any better way to detect this error.
			r = new(big.Float).SetInf(false)
		default:
			panic("keycalc: invalid number: " + s + " (" + err.Error() + ")")
		}
	}
	if ctx.nums == nil {
		ctx.nums = make(map[string]*big.Float)
	}
	ctx.nums[s] = r
	return r
}

// binary evaluates both operands of n and returns them. The left operand is
// the top of the stack and receives the result.
func (n *node) binary(ctx *Context) (l, r *big.Float, err error) {
	if err := n.left.eval(ctx); err != nil {
		return nil, nil, err
	}
	if err := n.right.eval(ctx); err != nil {
		return nil, nil, err
	}
	r = ctx.pop()
	l = ctx.top()
	return l, r, nil
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeName:
		v := ctx.names[n.name]
		if v == nil {
			return &NameError{Name: n.name}
		}
		ctx.push().Set(v)
	case nodeCall:
		r := ctx.push()
		k := len(ctx.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(ctx); err != nil {
				return err
			}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if err := n.fn.Call(ctx, invoc, r); err != nil {
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeArg:
		panic("keycalc: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	case nodeAdd:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		// inf + -inf
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: "+"}
		}
		l.Add(l, r)
	case nodeSub:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		// inf - inf
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: "-"}
		}
		l.Sub(l, r)
	case nodeMul:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		// 0 * inf
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: "*"}
		}
		l.Mul(l, r)
	case nodeDiv:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		// 0/0 and inf/inf
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: new(big.Float).Copy(r), Arg: 2, Func: "/"}
		}
		l.Quo(l, r)
	case nodePow:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		// TODO: allow negative base with integer exponent
		if l.Signbit() {
			return &DomainError{X: new(big.Float).Copy(l), Arg: 1, Func: "^"}
		}
		bigfloat.Pow(l, l, r)
	default:
		panic("keycalc: invalid AST node " + n.kind.String())
	}
	return nil
}

// Eval is a shortcut to parse an expression and return its result using the
// default functions.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	if r := ctx.Eval(a); r != nil {
		return r, nil
	}
	return nil, ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
