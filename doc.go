// Package keycalc implements the core of a key-driven calculator.
//
// An Engine accumulates an expression one key at a time: digits and decimal
// points, the operators + - * / ÷, and the functions sqrt, square, reciprocal,
// and pi, which replace the whole expression with their result. Compute
// evaluates the expression with the usual precedence and rounds the result to
// 12 decimal places, so that "0.1+0.2" computes to "0.3". Failures never
// escape an Engine; they put it in an error mode that shows a message until
// the next edit.
//
// Expressions are evaluated by a small parser rather than by any general
// purpose interpreter. It is usable on its own through Parse, Context, and
// EvalString, and understands somewhat more than an Engine ever types:
// parentheses, "^" for exponentiation, variables, and the functions
// sqrt, exp, ln, log, pi, and e.
//
package keycalc
