package complgen

// Symbol is the dense index of an input inside its Alphabet.
type Symbol int

// Alphabet is the ordered set of inputs an automaton is defined over. Equal
// inputs intern to one symbol. An alphabet is shared by pointer between an
// automaton and everything derived from it and must not grow once an
// automaton has been built over it.
type Alphabet struct {
	inputs []Input
	index  *HashMap[Symbol]
}

func NewAlphabet(inputs ...Input) *Alphabet {
	a := &Alphabet{index: NewHashMap[Symbol](WithCapacity(len(inputs)))}
	for _, in := range inputs {
		a.Add(in)
	}
	return a
}

// Add interns in and returns its symbol.
func (a *Alphabet) Add(in Input) Symbol {
	sym, _ := a.index.GetOrSet(in, func() Symbol {
		a.inputs = append(a.inputs, in)
		return Symbol(len(a.inputs) - 1)
	})
	return sym
}

func (a *Alphabet) Lookup(in Input) (Symbol, bool) {
	return a.index.Get(in)
}

func (a *Alphabet) Input(sym Symbol) Input {
	return a.inputs[sym]
}

func (a *Alphabet) Len() int {
	return len(a.inputs)
}

// Symbols returns every symbol in insertion order.
func (a *Alphabet) Symbols() []Symbol {
	syms := make([]Symbol, len(a.inputs))
	for i := range syms {
		syms[i] = Symbol(i)
	}
	return syms
}
