package keycalc

import (
	"io"
	"strings"
)

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname | funcname '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// parser holds the state of a single parse.
type parser struct {
	scan *lexer
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
	// funcs is the set of function names that are parsed as calls.
	funcs map[string]Func
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var cfg parsecfg
	for _, opt := range opts {
		cfg = opt.parseOption(cfg)
	}
	p := parser{
		scan:  lex(src),
		names: make(map[string]bool),
		funcs: cfg.resolve(),
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if tok := p.scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression held in a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a short string slice in place.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses operands joined by operators that bind more tightly than
// until. If there is no error, parseterm pushes the token that ended the term.
func (p *parser) parseterm(until operator) (*node, error) {
	n, err := p.parselhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				p.scan.push(tok)
				return n, nil
			}
			rhs, err := p.parseterm(prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// Adjacent terms need an explicit operator between them.
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Missing: true}
		case tokenClose, tokenSep, tokenEOF:
			p.scan.push(tok)
			return n, nil
		default:
			panic("keycalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first operand of a term, including any unary operators
// applied to it.
func (p *parser) parselhs(until operator) (*node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, name: tok.text}, nil
	case tokenIdent:
		fn := p.funcs[tok.text]
		if fn == nil {
			p.names[tok.text] = true
			return &node{kind: nodeName, name: tok.text}, nil
		}
		args, err := p.parsecall(tok, fn)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: tok.text, fn: fn, right: args}, nil
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, left: rhs}, nil
	case tokenOpen:
		rhs, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		if end := p.scan.must(); end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		return rhs, nil
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("keycalc: unknown token: " + tok.String())
	}
}

// parsecall parses the argument list following the name of a function. The
// result is the head of the nodeArg list, or nil for a niladic call.
func (p *parser) parsecall(name lexToken, fn Func) (*node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOpen {
		// A bare function name is a call only if it takes no arguments.
		p.scan.push(tok)
		if !fn.CanCall(0) {
			return nil, &CallError{Col: name.pos, Func: name.text, Len: 0}
		}
		return nil, nil
	}
	// Check for an empty list.
	end, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if end.kind == tokenClose {
		if !fn.CanCall(0) {
			return nil, &CallError{Col: name.pos, Func: name.text, Len: 0}
		}
		return nil, nil
	}
	p.scan.push(end)
	var head node
	l := &head
	k := 0
	for {
		arg, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		l.right = &node{kind: nodeArg, left: arg}
		l = l.right
		k++
		end := p.scan.must()
		switch end.kind {
		case tokenSep:
			continue
		case tokenClose:
			if !fn.CanCall(k) {
				return nil, &CallError{Col: name.pos, Func: name.text, Len: k}
			}
			return head.right, nil
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			panic("keycalc: argument ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open tells whether the subexpression
// began with an open bracket.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("keycalc: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized representation of the parsed
// expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
