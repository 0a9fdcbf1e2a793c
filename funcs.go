package keycalc

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function. The arguments are passed in invoc, whose
	// length is one for which CanCall returned true. The function must set r
	// to its result at the precision of ctx and should not use the value of r
	// otherwise. Call may modify the elements of invoc.
	Call(ctx *Context, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// A function for which CanCall(0) holds may be written without brackets.
	CanCall(n int) bool
}

// guardBits is the extra precision used to compute constants so that they
// round correctly to the context's precision.
const guardBits = 32

var globalfuncs = map[string]Func{
	"sqrt": Monadic((*big.Float).Sqrt),
	"exp":  Monadic(bigfloat.Exp),
	"ln": Monadic(func(out, in *big.Float) *big.Float {
		if in.Sign() < 0 {
			panic(big.ErrNaN{})
		}
		return bigfloat.Log(out, in)
	}),
	"log": logfn{},

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	}),
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	in := invoc[0]
	defer func() {
		if e := recoverDomain(recover(), in, 1, ""); e != nil {
			err = e
		}
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result at the precision of out; its return value is ignored. If f is called
// on an argument outside its domain, it should panic with a big.ErrNaN, or an
// error that unwraps to one.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	var x big.Float
	x.SetPrec(ctx.Prec() + guardBits)
	n.f(&x)
	r.SetPrec(ctx.Prec()).Set(&x)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally one that computes a
// constant, into a Func. f must set out to its result at the precision of out;
// its return value is ignored. Unlike Monadic, the wrapped function is
// expected never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// logfn is the logarithm in base 10, or in the base given as a second
// argument.
type logfn struct{}

func (logfn) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	var base big.Float
	base.SetPrec(ctx.Prec() + guardBits)
	if len(invoc) == 2 {
		if invoc[1].Sign() <= 0 || invoc[1].Cmp(new(big.Float).SetInt64(1)) == 0 {
			return &DomainError{X: invoc[1], Arg: 2, Func: "log"}
		}
		base.Set(invoc[1])
	} else {
		base.SetInt64(10)
	}
	if invoc[0].Sign() <= 0 {
		return &DomainError{X: invoc[0], Arg: 1, Func: "log"}
	}
	defer func() {
		if e := recoverDomain(recover(), invoc[0], 1, "log"); e != nil {
			err = e
		}
	}()
	var x big.Float
	x.SetPrec(ctx.Prec() + guardBits)
	bigfloat.Log(&x, invoc[0])
	bigfloat.Log(&base, &base)
	r.SetPrec(ctx.Prec()).Quo(&x, &base)
	return nil
}

func (logfn) CanCall(n int) bool {
	return n == 1 || n == 2
}

// recoverDomain converts a recovered big.ErrNaN into a DomainError. Any other
// recovered value panics again.
func recoverDomain(r interface{}, x *big.Float, arg int, fn string) error {
	if r == nil {
		return nil
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	var nan big.ErrNaN
	if !errors.As(err, &nan) {
		panic(err)
	}
	return &DomainError{X: new(big.Float).Copy(x), Arg: arg, Func: fn, nan: nan}
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 if unknown.
	Arg int
	// Func is a name identifying the function or operator.
	Func string

	nan big.ErrNaN
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return err.nan
}
