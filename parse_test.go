package keycalc

import (
	"math/big"
	"reflect"
	"strings"
	"testing"
)

type mockfn struct {
	can []int
}

func mockFunc(n ...int) Func {
	return mockfn{can: n}
}

func (f mockfn) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	return nil
}

func (f mockfn) CanCall(n int) bool {
	for _, v := range f.can {
		if v == n {
			return true
		}
	}
	return false
}

var testfns = map[string]Func{
	"zero":    mockFunc(0),
	"one":     mockFunc(1),
	"zeroone": mockFunc(0, 1),
	"two":     mockFunc(2),
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
	for _, r := range EngineOperators {
		if !strings.ContainsRune(Operators, r) {
			t.Errorf("engine operator %c is not an evaluator operator", r)
		}
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		src  string
		tree string
	}{
		{"num", "1", "(1)"},
		{"paren", "(x)", "(x)"},
		{"multi", "(((x)))", "(x)"},

		{"plus", "+x", "(+(x))"},
		{"neg", "-x", "(-(x))"},
		{"add", "x+y", "((x) + (y))"},
		{"sub", "x-y", "((x) - (y))"},
		{"mul", "x*y", "((x) * (y))"},
		{"div", "x/y", "((x) / (y))"},
		{"pow", "x^y", "((x) ^ (y))"},
		{"altmul", "x×y", "((x) * (y))"},
		{"altdiv", "x÷y", "((x) / (y))"},
		{"spaces", " x  +\ty ", "((x) + (y))"},

		{"add3", "x+y+z", "(((x) + (y)) + (z))"},
		{"sub3", "x-y-z", "(((x) - (y)) - (z))"},
		{"div3", "x/y/z", "(((x) / (y)) / (z))"},
		{"pow3", "x^y^z", "((x) ^ ((y) ^ (z)))"},
		{"desc", "w^x*y+z", "((((w) ^ (x)) * (y)) + (z))"},
		{"asc", "w+x*y^z", "((w) + ((x) * ((y) ^ (z))))"},
		{"group", "(w+x)*y", "(((w) + (x)) * (y))"},
		{"negpow", "-1^n", "(-((1) ^ (n)))"},
		{"negmul", "-x*y", "((-(x)) * (y))"},
		{"mulneg", "x*-y", "((x) * (-(y)))"},
		{"negneg", "--x", "(-(-(x)))"},
		{"powneg", "x^-y", "((x) ^ (-(y)))"},
		{"pownegpow", "x^-y^z", "((x) ^ (-((y) ^ (z))))"},
		{"exp", "1e-7+2", "((1e-7) + (2))"},

		{"call0", "zero", "(zero[])"},
		{"call0-empty", "zero()", "(zero[])"},
		{"call0-add", "zero+x", "((zero[]) + (x))"},
		{"call1", "one(x)", "(one[(x)])"},
		{"call1-expr", "one(x+y)*z", "((one[((x) + (y))]) * (z))"},
		{"call01-empty", "zeroone()", "(zeroone[])"},
		{"call01-arg", "zeroone(x)", "(zeroone[(x)])"},
		{"call2", "two(x, y)", "(two[(x), (y)])"},
		{"call-nested", "one(two(x, one(y)))", "(one[(two[(x), (one[(y)])])])"},
	}
	opt := ParseFuncs(testfns)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src), opt)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			if got := a.String(); got != c.tree {
				t.Errorf("wrong tree for %q:\n\twant %s\n\tgot  %s", c.src, c.tree, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"empty", "", &EmptyExpressionError{}},
		{"spaces", "   ", &EmptyExpressionError{}},
		{"trailing-op", "5+", &EmptyExpressionError{}},
		{"empty-paren", "()", &EmptyExpressionError{}},
		{"unclosed", "(1", &BracketError{}},
		{"unopened", "1)", &BracketError{}},
		{"unclosed-call", "one(2", &BracketError{}},
		{"sep", "1,2", &SeparatorError{}},
		{"juxtaposed", "2 3", &OperatorError{}},
		{"implicit-mul", "2(3)", &OperatorError{}},
		{"leading-op", "*3", &OperatorError{}},
		{"bare-call1", "one", &CallError{}},
		{"empty-call1", "one()", &CallError{}},
		{"call0-arg", "zero(1)", &CallError{}},
		{"call2-short", "two(1)", &CallError{}},
		{"call2-long", "two(1, 2, 3)", &CallError{}},
		{"lex", "1+$", &LexError{}},
		{"number", "1.2.3", &LexError{}},
	}
	opt := ParseFuncs(testfns)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src), opt)
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("%q gave %T (%v), want %T", c.src, err, err, c.err)
			}
			if ie, ok := err.(InputError); !ok || ie.Pos() < 1 {
				t.Errorf("%q gave error with bad position: %#v", c.src, err)
			}
		})
	}
}

func TestParseDisableFuncs(t *testing.T) {
	a, err := Parse(strings.NewReader("sqrt+pi"), DisableDefaultFuncs())
	if err != nil {
		t.Fatal(err)
	}
	if v := a.Vars(); !reflect.DeepEqual(v, []string{"pi", "sqrt"}) {
		t.Errorf("wrong vars %q", v)
	}
	a, err = Parse(strings.NewReader("pi+x"), ParseFunc("pi", nil))
	if err != nil {
		t.Fatal(err)
	}
	if v := a.Vars(); !reflect.DeepEqual(v, []string{"pi", "x"}) {
		t.Errorf("wrong vars %q", v)
	}
	// Defaults remain when only some names change.
	a, err = Parse(strings.NewReader("sqrt(4)+pi"), ParseFunc("pi", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := a.String(), "((sqrt[(4)]) + (pi))"; got != want {
		t.Errorf("wrong tree: want %s, got %s", want, got)
	}
}
