package complgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize_SingleTransition(t *testing.T) {
	d := literalDFA(t, 1, []StateID{2}, StateID(1), "foo", StateID(2))

	m := Minimize(d)
	assert.Equal(t, StateID(0), m.StartingState())
	assert.Equal(t, []StateID{1}, m.AcceptingStates())
	assert.Equal(t, map[StateID]map[Symbol]StateID{0: {0: 1}}, m.Transitions())

	assert.True(t, mustAccept(t, m, "foo"))
	assert.False(t, mustAccept(t, m))
	assert.False(t, mustAccept(t, m, "bar"))
}

func TestMinimize_MergesEquivalentStates(t *testing.T) {
	d := literalDFA(t, 1, []StateID{4, 6},
		StateID(1), "f", StateID(2),
		StateID(2), "e", StateID(3),
		StateID(2), "i", StateID(5),
		StateID(3), "e", StateID(4),
		StateID(5), "e", StateID(6),
	)
	f, e, i := Symbol(0), Symbol(1), Symbol(2)

	m := Minimize(d)
	assert.Equal(t, 4, m.NumStates())
	assert.Equal(t, StateID(0), m.StartingState())
	assert.Equal(t, []StateID{3}, m.AcceptingStates())
	assert.Equal(t, map[StateID]map[Symbol]StateID{
		0: {f: 1},
		1: {e: 2, i: 2},
		2: {e: 3},
	}, m.Transitions())

	for _, words := range [][]string{{"f", "e", "e"}, {"f", "i", "e"}} {
		assert.True(t, mustAccept(t, d, words...))
		assert.True(t, mustAccept(t, m, words...))
	}
	for _, words := range [][]string{{"f", "e"}, {"f", "i", "i"}, {"e"}} {
		assert.False(t, mustAccept(t, d, words...))
		assert.False(t, mustAccept(t, m, words...))
	}
}

func TestMinimize_Idempotent(t *testing.T) {
	d := literalDFA(t, 1, []StateID{4, 6},
		StateID(1), "f", StateID(2),
		StateID(2), "e", StateID(3),
		StateID(2), "i", StateID(5),
		StateID(3), "e", StateID(4),
		StateID(5), "e", StateID(6),
	)
	once := Minimize(d)
	twice := Minimize(once)
	assert.True(t, once.Equals(twice))
	assert.Equal(t, once.NumStates(), twice.NumStates())
}

func TestMinimize_OnlyAcceptingStatesIsCanonicalized(t *testing.T) {
	// every state accepts; 3 is unreachable
	d := literalDFA(t, 1, []StateID{1, 2, 3},
		StateID(1), "a", StateID(2),
		StateID(2), "a", StateID(2),
		StateID(3), "a", StateID(1),
	)
	m := Minimize(d)
	assert.NotSame(t, d, m)
	assert.Equal(t, StateID(0), m.StartingState())
	assert.Equal(t, []StateID{0, 1}, m.States())
	assert.Equal(t, []StateID{0, 1}, m.AcceptingStates())
	assert.Equal(t, map[StateID]map[Symbol]StateID{0: {0: 1}, 1: {0: 1}}, m.Transitions())
	assert.True(t, m.Equals(Minimize(m)))

	// a starting state without transitions still becomes 0
	single := Minimize(literalDFA(t, 1, []StateID{1}))
	assert.Equal(t, StateID(0), single.StartingState())
	assert.Equal(t, []StateID{0}, single.States())
	assert.True(t, mustAccept(t, single))
}

func TestMinimize_DropsUselessStates(t *testing.T) {
	// 3 can never reach an accepting state, 5 is unreachable.
	d := literalDFA(t, 1, []StateID{2},
		StateID(1), "ok", StateID(2),
		StateID(1), "trap", StateID(3),
		StateID(3), "loop", StateID(3),
		StateID(5), "ok", StateID(2),
	)
	m := Minimize(d)
	assert.Equal(t, []StateID{0, 1}, m.States())
	assert.Len(t, m.TransitionsFrom(0), 1)
	assert.False(t, mustAccept(t, m, "trap"))
	assert.True(t, mustAccept(t, m, "ok"))
}

func TestMinimize_LoopsPreserved(t *testing.T) {
	// a (b a)*: 1 and 3 are equivalent, so are 2 and 4
	d := literalDFA(t, 1, []StateID{2, 4},
		StateID(1), "a", StateID(2),
		StateID(2), "b", StateID(3),
		StateID(3), "a", StateID(4),
		StateID(4), "b", StateID(3),
	)
	m := Minimize(d)
	assert.Equal(t, 2, m.NumStates())
	assert.True(t, mustAccept(t, m, "a"))
	assert.True(t, mustAccept(t, m, "a", "b", "a", "b", "a"))
	assert.False(t, mustAccept(t, m, "a", "b"))
}

func TestMinimize_KeepsNestedAutomata(t *testing.T) {
	inner := literalDFA(t, 1, []StateID{2}, StateID(1), "--color=", StateID(2))

	b := NewBuilder(nil)
	s1, s2, s3 := b.CreateState(), b.CreateState(), b.CreateState()
	require.NoError(t, b.AddTransition(s1, Subword{DFA: inner}, s2))
	require.NoError(t, b.AddTransition(s1, Literal{Word: "-c"}, s3))
	b.SetAccept(s2, true)
	b.SetAccept(s3, true)
	d := b.Finish()

	m := Minimize(d)
	assert.Equal(t, 2, m.NumStates())
	subs := m.SubwordTransitionsFrom(0)
	require.Len(t, subs, 1)
	assert.Same(t, inner, subs[0].DFA)
	assert.True(t, mustAccept(t, m, "--color="))
	assert.True(t, mustAccept(t, m, "-c"))
}
