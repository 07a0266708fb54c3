package complgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguous is matched (errors.Is) by every *AmbiguityError.
var ErrAmbiguous = errors.New("ambiguous match")

// AmbiguityError reports a state with more than one "matches anything"
// transition for the word being matched. It points at a defect in the
// grammar rather than at invalid input.
type AmbiguityError struct {
	State      StateID
	Index      int // index of the offending word, -1 when unknown
	Word       string
	Candidates []Input
	Nested     bool // State belongs to a subword automaton
}

func (e *AmbiguityError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	where := "state"
	if e.Nested {
		where = "subword state"
	}
	return fmt.Sprintf("ambiguous match of %q (word %d) at %s %d: %s", e.Word, e.Index, where, e.State, strings.Join(names, ", "))
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

// MatchResult is the outcome of Run.
type MatchResult int

const (
	NotMatched MatchResult = iota
	Matched
	Ambiguous
)

func (r MatchResult) String() string {
	switch r {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not matched"
	}
}

// Run matches words and folds the outcome into a MatchResult.
func (d *DFA) Run(words []string) MatchResult {
	ok, err := d.Accepts(words)
	switch {
	case errors.Is(err, ErrAmbiguous):
		return Ambiguous
	case ok:
		return Matched
	default:
		return NotMatched
	}
}

// Accepts simulates the automaton over whole command-line words. For every
// word it takes, in order of preference, a literal transition equal to the
// word, a subword transition whose automaton accepts the word, or the only
// "matches anything" transition. Several such wildcard transitions yield an
// *AmbiguityError. Matching stops as soon as a word has no transition.
func (d *DFA) Accepts(words []string) (bool, error) {
	state := d.start
	for i, word := range words {
		next, ok, err := d.stepWord(state, word)
		if err != nil {
			var ambiguity *AmbiguityError
			if errors.As(err, &ambiguity) && ambiguity.Index < 0 {
				ambiguity.Index = i
			}
			return false, err
		}
		if !ok {
			return false, nil
		}
		state = next
	}
	return d.IsAccepting(state), nil
}

func (d *DFA) stepWord(state StateID, word string) (StateID, bool, error) {
	tos := d.transitions[state]
	if len(tos) == 0 {
		return 0, false, nil
	}
	symbols := d.sortedSymbols(state)

	for _, sym := range symbols {
		if lit, ok := d.alphabet.Input(sym).(Literal); ok && lit.Word == word {
			return tos[sym], true, nil
		}
	}

	for _, sym := range symbols {
		sub, ok := d.alphabet.Input(sym).(Subword)
		if !ok {
			continue
		}
		accepted, err := sub.DFA.AcceptsWord(word)
		if err != nil {
			return 0, false, err
		}
		if accepted {
			return tos[sym], true, nil
		}
	}

	return d.matchAnything(state, symbols, word, false)
}

// AcceptsWord matches the characters of a single word against a subword
// automaton. At each step the longest literal prefix wins; otherwise a nested
// subword or a wildcard has to consume the whole remainder. Input left over
// when no transition applies rejects the word.
func (d *DFA) AcceptsWord(word string) (bool, error) {
	state := d.start
	rest := word
	for rest != "" {
		symbols := d.sortedSymbols(state)
		tos := d.transitions[state]

		best, bestLen := Symbol(-1), 0
		for _, sym := range symbols {
			lit, ok := d.alphabet.Input(sym).(Literal)
			if !ok || len(lit.Word) <= bestLen {
				continue
			}
			if strings.HasPrefix(rest, lit.Word) {
				best, bestLen = sym, len(lit.Word)
			}
		}
		if best >= 0 {
			state = tos[best]
			rest = rest[bestLen:]
			continue
		}

		consumed := false
		for _, sym := range symbols {
			sub, ok := d.alphabet.Input(sym).(Subword)
			if !ok {
				continue
			}
			accepted, err := sub.DFA.AcceptsWord(rest)
			if err != nil {
				return false, err
			}
			if accepted {
				state, consumed = tos[sym], true
				break
			}
		}
		if consumed {
			break
		}

		to, ok, err := d.matchAnything(state, symbols, word, true)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		state = to
		break
	}
	return d.IsAccepting(state), nil
}

func (d *DFA) matchAnything(state StateID, symbols []Symbol, word string, nested bool) (StateID, bool, error) {
	var anys []Symbol
	for _, sym := range symbols {
		if d.alphabet.Input(sym).MatchesAnything() {
			anys = append(anys, sym)
		}
	}
	switch len(anys) {
	case 0:
		return 0, false, nil
	case 1:
		return d.transitions[state][anys[0]], true, nil
	}
	candidates := make([]Input, len(anys))
	for i, sym := range anys {
		candidates[i] = d.alphabet.Input(sym)
	}
	return 0, false, &AmbiguityError{
		State:      state,
		Index:      -1,
		Word:       word,
		Candidates: candidates,
		Nested:     nested,
	}
}
