package keycalc_test

import (
	"math/big"
	"testing"

	"github.com/zephyrtronium/keycalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("0/0")
	f.Add("sqrt(-1)^0.5")
	f.Fuzz(func(t *testing.T, s string) {
		keycalc.EvalString(s, keycalc.SetVar("x", new(big.Float)))
	})
}
