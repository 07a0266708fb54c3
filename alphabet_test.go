package complgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphabet_Add(t *testing.T) {
	alpha := NewAlphabet(Literal{Word: "foo"}, Nonterminal{Name: "FILE"})
	assert.Equal(t, 2, alpha.Len())

	assert.Equal(t, Symbol(0), alpha.Add(Literal{Word: "foo"}))
	assert.Equal(t, Symbol(2), alpha.Add(Literal{Word: "foo", Description: "the foo"}))
	assert.Equal(t, Symbol(3), alpha.Add(Command{Command: "ls"}))
	assert.Equal(t, Symbol(1), alpha.Add(Nonterminal{Name: "FILE"}))
	assert.Equal(t, 4, alpha.Len())

	sym, ok := alpha.Lookup(Command{Command: "ls"})
	assert.True(t, ok)
	assert.Equal(t, Symbol(3), sym)
	_, ok = alpha.Lookup(Command{Command: "ls -a"})
	assert.False(t, ok)

	assert.Equal(t, []Symbol{0, 1, 2, 3}, alpha.Symbols())
	assert.Equal(t, Literal{Word: "foo", Description: "the foo"}, alpha.Input(2))
}

func TestAlphabet_SubwordsInternByContent(t *testing.T) {
	build := func() *DFA {
		b := NewBuilder(nil)
		s1 := b.CreateState()
		s2 := b.CreateState()
		assert.NoError(t, b.AddTransition(s1, Literal{Word: "--color="}, s2))
		b.SetAccept(s2, true)
		return b.Finish()
	}
	first, second := build(), build()
	assert.NotSame(t, first, second)

	alpha := NewAlphabet()
	a := alpha.Add(Subword{DFA: first})
	b := alpha.Add(Subword{DFA: second})
	assert.Equal(t, a, b)
	assert.Equal(t, 1, alpha.Len())
}

func TestInput_String(t *testing.T) {
	tests := []struct {
		in   Input
		want string
	}{
		{Literal{Word: "build"}, "build"},
		{Literal{Word: "--release", Description: "optimized"}, "--release (optimized)"},
		{Nonterminal{Name: "PATH"}, "<PATH>"},
		{Command{Command: "git branch"}, "{{{ git branch }}}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestInput_MatchesAnything(t *testing.T) {
	assert.False(t, Literal{Word: "x"}.MatchesAnything())
	assert.True(t, Nonterminal{Name: "X"}.MatchesAnything())
	assert.True(t, Command{Command: "x"}.MatchesAnything())
	assert.False(t, Subword{DFA: NewBuilder(nil).Finish()}.MatchesAnything())
}

func TestInput_Equals(t *testing.T) {
	spec := &Specialization{Fish: "__fish_complete_path"}
	sameSpec := &Specialization{Fish: "__fish_complete_path"}

	assert.True(t, Nonterminal{Name: "P", Specialization: spec}.Equals(Nonterminal{Name: "P", Specialization: sameSpec}))
	assert.False(t, Nonterminal{Name: "P", Specialization: spec}.Equals(Nonterminal{Name: "P"}))
	assert.False(t, Literal{Word: "ls"}.Equals(Command{Command: "ls"}))
	assert.NotEqual(t, Literal{Word: "ls"}.Hash(), Command{Command: "ls"}.Hash())
}
