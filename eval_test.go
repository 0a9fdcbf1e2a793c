package keycalc_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
	"testing"

	"github.com/zephyrtronium/keycalc"
)

func TestEval(t *testing.T) {
	type vv struct {
		n string
		v float64
	}
	type vc struct {
		vars []vv
		r    float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{nil, 1}}},
		{"ident", "x", []vc{
			{[]vv{{"x", 4}}, 4},
			{[]vv{{"x", 5}}, 5},
		}},
		{"plus", "+x", []vc{{[]vv{{"x", 4}}, 4}}},
		{"neg", "-x", []vc{{[]vv{{"x", 4}}, -4}}},
		{"add", "4+5+6", []vc{{nil, 4 + 5 + 6}}},
		{"sub", "4-5-6", []vc{{nil, 4 - 5 - 6}}},
		{"mul", "4*5*6", []vc{{nil, 4 * 5 * 6}}},
		{"div", "4/5/6", []vc{{nil, 4.0 / 5.0 / 6.0}}},
		{"altdiv", "9÷4", []vc{{nil, 2.25}}},
		{"prec", "2+3*4", []vc{{nil, 14}}},
		{"group", "(2+3)*4", []vc{{nil, 20}}},
		{"float", "0.1+0.2", []vc{{nil, 0.1 + 0.2}}},
		{"exponent", "1e-7*2", []vc{{nil, 2e-7}}},
		{"vars", "x*y-1", []vc{
			{[]vv{{"x", 3}, {"y", 4}}, 11},
			{[]vv{{"x", 0.5}, {"y", 0.5}}, -0.75},
		}},
		{"sqrt", "sqrt(16)", []vc{{nil, 4}}},
		{"sqrt-expr", "sqrt(9+16)", []vc{{nil, 5}}},
		{"inf1", "Infinity", []vc{{nil, math.Inf(1)}}},
		{"inf2", "inf", []vc{{nil, math.Inf(1)}}},
		{"inf3", "-∞", []vc{{nil, math.Inf(-1)}}},
		{"div-zero", "1/0", []vc{{nil, math.Inf(1)}}},
		{"div-neg-zero", "-1/0", []vc{{nil, math.Inf(-1)}}},
		{"inf-add", "Infinity+1", []vc{{nil, math.Inf(1)}}},
	}
	ctx := keycalc.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := keycalc.Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				ctx := ctx.Clone()
				for _, x := range v.vars {
					ctx.Set(x.n, new(big.Float).SetFloat64(x.v))
				}
				r := ctx.Eval(a)
				if ctx.Err() != nil {
					t.Error("evaluation error:", ctx.Err())
				}
				if r == nil {
					t.Fatal("nil result")
				}
				if q := ctx.Result(); r.Cmp(q) != 0 {
					t.Errorf("different results: Eval returned %g, Result returned %g", r, q)
				}
				if f, _ := r.Float64(); f != v.r {
					t.Errorf("wrong result: want %g, got %g", v.r, r)
				}
			}
		})
	}
}

func TestEvalApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"exp", "exp(1)", math.E},
		{"ln", "ln(e)", 1},
		{"log", "log(1000)", 3},
		{"log-base", "log(8, 2)", 3},
		{"pow", "4^0.5", 2},
		{"pow-right", "2^3^2", 512},
		{"circle", "pi*2^2", math.Pi * 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := keycalc.EvalString(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			f, _ := r.Float64()
			if math.Abs(f-c.r) > 1e-12*math.Max(1, math.Abs(c.r)) {
				t.Errorf("%q: want %g, got %g", c.src, c.r, f)
			}
		})
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"x", "x"},
		{"neg", "-x"},
		{"add-lhs", "x+1"},
		{"add-rhs", "1+x"},
		{"div-rhs", "1/x"},
		{"call", "sqrt(x)"},
	}
	ure := regexp.MustCompile(`(?i)\bundef`)
	ctx := keycalc.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := keycalc.Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if r := a.Eval(ctx); r != nil {
				t.Errorf("evaluating %q gave non-nil result %g", c.src, r)
			}
			err = ctx.Err()
			u, ok := err.(*keycalc.NameError)
			if !ok {
				t.Fatalf("error was %#v, not NameError", err)
			}
			if u.Name != "x" {
				t.Errorf("NameError on %q, not x", u.Name)
			}
			if msg := err.Error(); !ure.MatchString(msg) || !strings.Contains(msg, `"x"`) {
				t.Errorf("unhelpful message %q", msg)
			}
		})
	}
}

func TestEvalDomainError(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"div-zero", "0/0"},
		{"div-alt-zero", "0÷0"},
		{"div-inf", "Infinity/Infinity"},
		{"sub-inf", "Infinity-Infinity"},
		{"add-inf", "Infinity+-Infinity"},
		{"mul-inf", "0*Infinity"},
		{"pow-neg", "(-1)^0.5"},
		{"sqrt", "sqrt(-1)"},
		{"log", "log(-1)"},
		{"log-base", "log(2, 1)"},
	}
	ctx := keycalc.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := ctx.Clone()
			a, err := keycalc.Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if r := a.Eval(ctx); r != nil {
				t.Errorf("evaluating %q gave non-nil result %g", c.src, r)
			}
			err = ctx.Err()
			if err == nil {
				t.Fatalf("evaluating %q gave no error", c.src)
			}
			var de *keycalc.DomainError
			if !errors.As(err, &de) {
				t.Errorf("%#v is not *keycalc.DomainError", err)
			}
			if !errors.As(err, new(big.ErrNaN)) {
				t.Errorf("%v doesn't unwrap to big.ErrNaN", err)
			}
		})
	}
}

func TestContextReuse(t *testing.T) {
	ctx := keycalc.NewContext()
	bad, err := keycalc.ParseString("1+x")
	if err != nil {
		t.Fatal(err)
	}
	good, err := keycalc.ParseString("(1+2)*3")
	if err != nil {
		t.Fatal(err)
	}
	first := ctx.Eval(good)
	if ctx.Eval(bad) != nil {
		t.Fatal("undefined variable evaluated")
	}
	second := ctx.Eval(good)
	if second == nil {
		t.Fatalf("evaluation after error failed: %v", ctx.Err())
	}
	if first == second {
		t.Error("second evaluation reused the first result")
	}
	if first.Cmp(second) != 0 {
		t.Errorf("results differ: %g and %g", first, second)
	}
}

func TestContextVars(t *testing.T) {
	zero := new(big.Float)
	one := new(big.Float).SetFloat64(1)
	ctx := keycalc.NewContext(keycalc.SetVar("x", zero))
	if x := ctx.Lookup("x"); x == nil || x.Cmp(zero) != 0 {
		t.Errorf("x should be %v but is %v", zero, x)
	}
	if y := ctx.Lookup("y"); y != nil {
		t.Errorf("context has y: %v", y)
	}
	ctx.Set("y", one)
	if y := ctx.Lookup("y"); y == nil || y.Cmp(one) != 0 {
		t.Errorf("y should be %v but is %v", one, y)
	}
	clone := ctx.Clone(keycalc.SetVars(map[string]*big.Float{"x": one}), keycalc.Prec(100))
	if x := clone.Lookup("x"); x == nil || x.Cmp(one) != 0 {
		t.Errorf("clone x should be %v but is %v", one, x)
	}
	if x := ctx.Lookup("x"); x == nil || x.Cmp(zero) != 0 {
		t.Errorf("original x changed to %v", x)
	}
	if clone.Prec() != 100 || ctx.Prec() != keycalc.DefaultPrec {
		t.Errorf("wrong precisions: clone %d, original %d", clone.Prec(), ctx.Prec())
	}
}

func BenchmarkEval(b *testing.B) {
	b.ReportAllocs()
	ctx := keycalc.NewContext()
	a, err := keycalc.ParseString("12.5+3*4-0.25÷5")
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		ctx.Eval(a)
	}
}

func ExampleEvalString() {
	r, err := keycalc.EvalString("(1 + 2) * 3 - 4 / 8")
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	// Output: 8.5
}

func ExampleParseString() {
	_, err := keycalc.ParseString("5+")
	fmt.Println(err)
	a, _ := keycalc.ParseString("1+2*-3")
	fmt.Println(a)
	// Output:
	// 3: no expression at end
	// ((1) + ((2) * (-(3))))
}
