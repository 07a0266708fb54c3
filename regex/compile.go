package regex

import "github.com/geange/complgen"

type compileOption struct {
	minimize bool
}

type CompileOption func(*compileOption)

// WithoutMinimize keeps the automaton as constructed. Subword automata are
// minimized regardless.
func WithoutMinimize() CompileOption {
	return func(o *compileOption) {
		o.minimize = false
	}
}

// Compile turns e into an automaton: Augment, construction from position
// sets, then minimization unless WithoutMinimize is given.
func Compile(e *Expr, specs Specializations, options ...CompileOption) (*complgen.DFA, error) {
	opts := &compileOption{minimize: true}
	for _, fn := range options {
		fn(opts)
	}

	r, err := Augment(e, specs)
	if err != nil {
		return nil, err
	}
	d := complgen.FromRegex(r)
	if opts.minimize {
		d = complgen.Minimize(d)
	}
	return d, nil
}
