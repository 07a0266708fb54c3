package regex

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/complgen"
)

func TestCompile_NestedRepetition(t *testing.T) {
	file := Nonterminal("FILE")
	e := Alternative(
		Many1(Alternative(
			Terminal("--quux", ""),
			Sequence(
				Optional(Sequence(
					Many1(Many1(Alternative(Terminal("--baz", ""), file))),
					file,
				)),
				Sequence(file, Terminal("foo", "")),
			),
		)),
		file,
	)
	input := []string{"--quux", "--baz", "anything", "anything", "foo"}

	d, err := Compile(e, nil, WithoutMinimize())
	require.NoError(t, err)
	ok, err := d.Accepts(input)
	require.NoError(t, err)
	assert.True(t, ok)

	m, err := Compile(e, nil)
	require.NoError(t, err)
	ok, err = m.Accepts(input)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.LessOrEqual(t, m.NumStates(), d.NumStates())
}

func TestCompile_Subword(t *testing.T) {
	e := Sequence(
		Terminal("grep", ""),
		Optional(Subword(Sequence(Terminal("--color=", ""), Alternative(Terminal("always", ""), Terminal("never", ""), Nonterminal("WHEN"))))),
		Nonterminal("PATTERN"),
	)
	d, err := Compile(e, nil)
	require.NoError(t, err)

	assert.Equal(t, complgen.Matched, d.Run([]string{"grep", "--color=always", "x"}))
	assert.Equal(t, complgen.Matched, d.Run([]string{"grep", "--color=auto", "x"}))
	assert.Equal(t, complgen.Matched, d.Run([]string{"grep", "x"}))
	assert.Equal(t, complgen.NotMatched, d.Run([]string{"grep"}))

	assert.Equal(t, 1, d.Subwords(0).Len())
}

func TestCompile_Ambiguous(t *testing.T) {
	e := Sequence(Terminal("cp", ""), Alternative(Nonterminal("FILE"), Command("ls")))
	d, err := Compile(e, nil)
	require.NoError(t, err)
	assert.Equal(t, complgen.Ambiguous, d.Run([]string{"cp", "x"}))
	assert.Equal(t, complgen.NotMatched, d.Run([]string{"mv"}))
}

func TestCompile_NilExpr(t *testing.T) {
	_, err := Compile(nil, nil)
	assert.ErrorIs(t, err, ErrNilExpr)
}

var (
	terminals    = []string{"foo", "bar", "--baz", "--quux"}
	nonterminals = []string{"FILE", "DIR"}
)

// arbExprMatch generates an expression together with a word sequence it
// matches. Nonterminal positions get words that are never terminals.
func arbExprMatch(rng *rand.Rand, depth int) (*Expr, []string) {
	if depth == 0 || rng.Intn(4) == 0 {
		if rng.Intn(3) == 0 {
			return Nonterminal(nonterminals[rng.Intn(len(nonterminals))]), []string{"anything"}
		}
		w := terminals[rng.Intn(len(terminals))]
		return Terminal(w, ""), []string{w}
	}
	switch rng.Intn(4) {
	case 0:
		left, lin := arbExprMatch(rng, depth-1)
		right, rin := arbExprMatch(rng, depth-1)
		return Sequence(left, right), append(lin, rin...)
	case 1:
		left, lin := arbExprMatch(rng, depth-1)
		right, rin := arbExprMatch(rng, depth-1)
		if rng.Intn(2) == 0 {
			return Alternative(left, right), lin
		}
		return Alternative(left, right), rin
	case 2:
		inner, in := arbExprMatch(rng, depth-1)
		if rng.Intn(2) == 0 {
			return Optional(inner), nil
		}
		return Optional(inner), in
	default:
		inner, in := arbExprMatch(rng, depth-1)
		out := append([]string{}, in...)
		for n := rng.Intn(3); n > 0; n-- {
			out = append(out, in...)
		}
		return Many1(inner), out
	}
}

func randomWords(rng *rand.Rand) []string {
	words := make([]string, rng.Intn(5))
	for i := range words {
		if rng.Intn(4) == 0 {
			words[i] = "anything"
		} else {
			words[i] = terminals[rng.Intn(len(terminals))]
		}
	}
	return words
}

func TestCompile_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(20240901))
	for i := 0; i < 300; i++ {
		e, input := arbExprMatch(rng, 4)

		d, err := Compile(e, nil, WithoutMinimize())
		require.NoError(t, err)
		m := complgen.Minimize(d)

		ok, err := d.Accepts(input)
		if errors.Is(err, complgen.ErrAmbiguous) {
			continue
		}
		require.NoError(t, err, "%s %q", e, input)
		assert.True(t, ok, "%s %q", e, input)

		ok, err = m.Accepts(input)
		require.NoError(t, err, "%s %q", e, input)
		assert.True(t, ok, "minimized %s %q", e, input)

		// minimization never adds states and is idempotent
		assert.LessOrEqual(t, m.NumStates(), d.NumStates(), "%s", e)
		assert.True(t, complgen.Minimize(m).Equals(m), "%s", e)

		// states are numbered densely from 0, and a non-accepting state
		// survives only if it leads somewhere
		for want, s := range m.States() {
			assert.Equal(t, complgen.StateID(want), s, "%s", e)
			if !m.IsAccepting(s) {
				assert.NotEmpty(t, m.TransitionsFrom(s), "%s: state %d is a dead end", e, s)
			}
		}

		for j := 0; j < 5; j++ {
			words := randomWords(rng)
			want, derr := d.Accepts(words)
			got, merr := m.Accepts(words)
			if derr != nil || merr != nil {
				continue
			}
			assert.Equal(t, want, got, "%s %q", e, words)
		}
	}
}

func TestCompile_ConstructionKeepsDeadStateImplicit(t *testing.T) {
	rng := rand.New(rand.NewSource(20241015))
	for i := 0; i < 300; i++ {
		e, _ := arbExprMatch(rng, 4)
		d, err := Compile(e, nil, WithoutMinimize())
		require.NoError(t, err)

		assert.Equal(t, complgen.FirstStateID, d.StartingState(), "%s", e)
		assert.False(t, d.IsAccepting(complgen.DeadStateID), "%s", e)
		assert.Empty(t, d.TransitionsFrom(complgen.DeadStateID), "%s", e)
		for from, tos := range d.Transitions() {
			assert.NotEqual(t, complgen.DeadStateID, from, "%s", e)
			for _, to := range tos {
				assert.NotEqual(t, complgen.DeadStateID, to, "%s", e)
			}
		}

		// every reachable state has a row, and a symbol missing from it
		// goes to the dead state
		for _, s := range d.States() {
			_, ok := d.Transitions()[s]
			assert.True(t, ok, "%s: state %d has no row", e, s)
			for _, sym := range d.Alphabet().Symbols() {
				to, ok := d.Step(s, sym)
				if !ok {
					assert.Equal(t, complgen.DeadStateID, to)
				}
			}
		}
		for _, sym := range d.Alphabet().Symbols() {
			to, ok := d.Step(complgen.DeadStateID, sym)
			assert.False(t, ok)
			assert.Equal(t, complgen.DeadStateID, to)
		}
	}
}
