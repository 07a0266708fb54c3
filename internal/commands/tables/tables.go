package tables

import (
	"github.com/geange/complgen"
)

// Document is the YAML form of the generator-facing tables of one grammar.
type Document struct {
	Command string `yaml:"command"`
	Shell   string `yaml:"shell"`

	Automaton `yaml:",inline"`

	Literals []Literal `yaml:"literals,omitempty"`
	Subwords []Subword `yaml:"subwords,omitempty"`
}

// Automaton holds the tables of a single automaton. State numbers are
// 1-based positions in ascending state order.
type Automaton struct {
	States          int                `yaml:"states"`
	Start           int                `yaml:"start"`
	Accepting       []int              `yaml:"accepting,flow"`
	Transitions     []StateTransitions `yaml:"transitions,omitempty"`
	MatchAnything   []Edge             `yaml:"match_anything,omitempty"`
	Commands        []CommandRow       `yaml:"commands,omitempty"`
	Specializations []CommandRow       `yaml:"specializations,omitempty"`
}

type Subword struct {
	ID int `yaml:"id"`

	Automaton `yaml:",inline"`
}

type Literal struct {
	Word        string `yaml:"word"`
	Description string `yaml:"description,omitempty"`
}

type StateTransitions struct {
	State    int           `yaml:"state"`
	Literals []LiteralEdge `yaml:"literals,omitempty"`
	Subwords []SubwordEdge `yaml:"subwords,omitempty"`
}

type LiteralEdge struct {
	Word        string `yaml:"word"`
	Description string `yaml:"description,omitempty"`
	To          int    `yaml:"to"`
}

type SubwordEdge struct {
	Subword int `yaml:"subword"`
	To      int `yaml:"to"`
}

type Edge struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type CommandRow struct {
	State   int    `yaml:"state"`
	Command string `yaml:"command"`
}

// Build collects the tables of d and of every nested automaton. classify
// selects the shell specializations to list.
func Build(command, shell string, d *complgen.DFA, classify complgen.Classifier) *Document {
	subwords := d.Subwords(1)
	commands, nestedCommands := d.CommandTransitions(complgen.ClassifyCommand)
	specs, nestedSpecs := d.CommandTransitions(classify)

	doc := &Document{
		Command:   command,
		Shell:     shell,
		Automaton: buildAutomaton(d, subwords, commands, specs),
	}
	for _, lit := range d.Literals() {
		doc.Literals = append(doc.Literals, Literal{Word: lit.Word, Description: lit.Description})
	}
	for i, sub := range subwords.DFAs() {
		id, _ := subwords.ID(sub)
		doc.Subwords = append(doc.Subwords, Subword{
			ID:        id,
			Automaton: buildAutomaton(sub, subwords, nestedCommands[i].Transitions, nestedSpecs[i].Transitions),
		})
	}
	return doc
}

func buildAutomaton(d *complgen.DFA, subwords *complgen.SubwordTable, commands, specs []complgen.CommandTransition) Automaton {
	states := d.States()
	number := make(map[complgen.StateID]int, len(states))
	for i, s := range states {
		number[s] = i + 1
	}

	a := Automaton{
		States:    len(states),
		Start:     number[d.StartingState()],
		Accepting: []int{},
	}
	for _, s := range states {
		if d.IsAccepting(s) {
			a.Accepting = append(a.Accepting, number[s])
		}

		row := StateTransitions{State: number[s]}
		for _, t := range d.LiteralTransitionsFrom(s) {
			row.Literals = append(row.Literals, LiteralEdge{Word: t.Word, Description: t.Description, To: number[t.To]})
		}
		for _, t := range d.SubwordTransitionsFrom(s) {
			id, _ := subwords.ID(t.DFA)
			row.Subwords = append(row.Subwords, SubwordEdge{Subword: id, To: number[t.To]})
		}
		if len(row.Literals) > 0 || len(row.Subwords) > 0 {
			a.Transitions = append(a.Transitions, row)
		}
	}
	for _, p := range d.MatchAnythingTransitions() {
		if from, ok := number[p.From]; ok {
			a.MatchAnything = append(a.MatchAnything, Edge{From: from, To: number[p.To]})
		}
	}
	a.Commands = commandRows(number, commands)
	a.Specializations = commandRows(number, specs)
	return a
}

func commandRows(number map[complgen.StateID]int, transitions []complgen.CommandTransition) []CommandRow {
	var rows []CommandRow
	for _, t := range transitions {
		if state, ok := number[t.From]; ok {
			rows = append(rows, CommandRow{State: state, Command: t.Command})
		}
	}
	return rows
}
