package keycalc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsecfg) parsecfg
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
)

// parsecfg collects parse options before a parse begins.
type parsecfg struct {
	// funcs is the set of function overrides. A nil Func disables the name.
	funcs map[string]Func
}

// resolve produces the function table for a parse. Overrides apply on top of
// the defaults, and names overridden with nil are removed.
func (c parsecfg) resolve() map[string]Func {
	if c.funcs == nil {
		return globalfuncs
	}
	m := make(map[string]Func, len(globalfuncs)+len(c.funcs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	for k, v := range c.funcs {
		if v == nil {
			delete(m, k)
			continue
		}
		m[k] = v
	}
	return m
}

// ParseFunc sets a function for parsing. To disable parsing a function, pass
// nil for fn; its name is then parsed as a variable.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(c parsecfg) parsecfg {
	c.funcs = cloneFuncs(c.funcs, 1)
	c.funcs[o.name] = o.fn
	return c
}

// ParseFuncs sets a group of functions for parsing. To disable parsing any
// function, set it to nil.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(c parsecfg) parsecfg {
	c.funcs = cloneFuncs(c.funcs, len(o))
	for k, v := range o {
		c.funcs[k] = v
	}
	return c
}

// DisableDefaultFuncs disables all default functions during parsing. Their
// names will be parsed as variables instead.
func DisableDefaultFuncs() ParseOption {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

// cloneFuncs copies m with room for extra more entries. Options never modify
// a map they did not create.
func cloneFuncs(m map[string]Func, extra int) map[string]Func {
	r := make(map[string]Func, len(m)+extra)
	for k, v := range m {
		r[k] = v
	}
	return r
}
