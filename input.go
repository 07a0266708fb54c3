package complgen

import "fmt"

// Input is one alphabet element: a transition label. The concrete types are
// Literal, Nonterminal, Command and Subword.
type Input interface {
	Hashable
	fmt.Stringer

	// MatchesAnything reports whether the input stands for an externally
	// computed set of words (a wildcard as far as matching is concerned).
	MatchesAnything() bool

	isInput()
}

const (
	literalTag byte = iota + 1
	nonterminalTag
	commandTag
	subwordTag
)

// Literal matches exactly Word. Description is an optional completion hint.
type Literal struct {
	Word        string
	Description string
}

func (l Literal) Hash() uint64 {
	return hashStrings(literalTag, l.Word, l.Description)
}

func (l Literal) Equals(other Hashable) bool {
	o, ok := other.(Literal)
	return ok && o == l
}

func (l Literal) MatchesAnything() bool { return false }

func (l Literal) String() string {
	if l.Description == "" {
		return l.Word
	}
	return fmt.Sprintf("%s (%s)", l.Word, l.Description)
}

func (Literal) isInput() {}

// Specialization holds per-shell commands that replace the generic handling
// of a nonterminal. Empty fields mean no override for that shell.
type Specialization struct {
	Bash string
	Fish string
	Zsh  string
}

// Nonterminal is a named placeholder, e.g. <FILE>.
type Nonterminal struct {
	Name           string
	Specialization *Specialization
}

func (n Nonterminal) Hash() uint64 {
	if n.Specialization == nil {
		return hashStrings(nonterminalTag, n.Name)
	}
	s := n.Specialization
	return hashStrings(nonterminalTag, n.Name, s.Bash, s.Fish, s.Zsh)
}

func (n Nonterminal) Equals(other Hashable) bool {
	o, ok := other.(Nonterminal)
	if !ok || o.Name != n.Name {
		return false
	}
	if n.Specialization == nil || o.Specialization == nil {
		return n.Specialization == o.Specialization
	}
	return *n.Specialization == *o.Specialization
}

func (n Nonterminal) MatchesAnything() bool { return true }

func (n Nonterminal) String() string {
	return "<" + n.Name + ">"
}

func (Nonterminal) isInput() {}

// Command is a shell command whose output lists the candidate words.
type Command struct {
	Command string
}

func (c Command) Hash() uint64 {
	return hashStrings(commandTag, c.Command)
}

func (c Command) Equals(other Hashable) bool {
	o, ok := other.(Command)
	return ok && o == c
}

func (c Command) MatchesAnything() bool { return true }

func (c Command) String() string {
	return "{{{ " + c.Command + " }}}"
}

func (Command) isInput() {}

// Subword embeds a whole automaton describing the inside of a single word.
// The automaton is shared, never copied; equality is by content.
type Subword struct {
	DFA *DFA
}

func (s Subword) Hash() uint64 {
	return combine(uint64(subwordTag), s.DFA.Hash())
}

func (s Subword) Equals(other Hashable) bool {
	o, ok := other.(Subword)
	return ok && s.DFA.Equals(o.DFA)
}

func (s Subword) MatchesAnything() bool { return false }

func (s Subword) String() string {
	return "subword"
}

func (Subword) isInput() {}
