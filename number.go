package keycalc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// roundScale is the power of ten results are rounded to, hiding binary
// floating-point noise like 0.1+0.2 = 0.30000000000000004.
const roundScale = 1e12

// Round rounds x to 12 decimal places, with halves rounding toward positive
// infinity. Infinities and NaN are returned unchanged; magnitudes beyond about
// 1e296 overflow to infinity during scaling.
func Round(x float64) float64 {
	y := x * roundScale
	r := math.Floor(y)
	if y-r >= 0.5 {
		r++
	}
	return r / roundScale
}

// FormatNumber formats x the way the display shows numbers: the shortest
// decimal that reads back as x, in plain notation when 1e-6 <= |x| < 1e21 and
// in exponent notation otherwise. Negative zero formats as "0".
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	var b strings.Builder
	if x < 0 {
		b.WriteByte('-')
		x = -x
	}
	// d.dddde±xx
	s := strconv.FormatFloat(x, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	digits := strings.Replace(mant, ".", "", 1)
	k := len(digits)
	e, err := strconv.Atoi(exp)
	if err != nil {
		panic("keycalc: strconv produced bad exponent in " + s)
	}
	// n is the position of the decimal point relative to the first digit.
	n := e + 1
	switch {
	case k <= n && n <= 21:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= 21:
		b.WriteString(digits[:n])
		b.WriteByte('.')
		b.WriteString(digits[n:])
	case -6 < n && n <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -n))
		b.WriteString(digits)
	default:
		b.WriteString(digits[:1])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if e >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(e))
	}
	return b.String()
}

// ParsePrefix parses the longest prefix of s, after leading whitespace, that
// is a decimal number: an optional sign, then either "Infinity" or digits with
// at most one decimal point and an optional exponent. Trailing text, such as
// the rest of an unevaluated expression, is ignored. The second result is
// false if s has no numeric prefix.
func ParsePrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		// An exponent marker without digits is trailing text.
		if k > j {
			i = k
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// Out of range values are already ±Inf or ±0.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
