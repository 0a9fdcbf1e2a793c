package keycalc_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/keycalc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("log(8, 2")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := keycalc.Parse(strings.NewReader(s))
		if err != nil {
			if _, ok := err.(keycalc.InputError); !ok {
				t.Errorf("%q gave error %#v which is not an InputError", s, err)
			}
		}
	})
}
