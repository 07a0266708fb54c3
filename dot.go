package complgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// dotWriter remembers the first write error so the emitting code can stay
// linear.
type dotWriter struct {
	w   io.Writer
	err error
}

func (dw *dotWriter) printf(format string, args ...any) {
	if dw.err != nil {
		return
	}
	_, dw.err = fmt.Fprintf(dw.w, format, args...)
}

// WriteDot renders the automaton in GraphViz format. Every distinct nested
// automaton is drawn once as a grey cluster; dashed edges lead from a state
// into the nested start and back from every nested accepting state.
func (d *DFA) WriteDot(w io.Writer) error {
	dw := &dotWriter{w: w}
	table := d.Subwords(0)

	dw.printf("digraph nfa {\n")
	dw.printf("\trankdir=LR;\n")
	d.writeDotStates(dw, "", "\t")
	for i, sub := range table.DFAs() {
		dw.printf("\tsubgraph cluster_%d {\n", i)
		dw.printf("\t\tlabel=\"subword %d\";\n", i)
		dw.printf("\t\tcolor=grey91;\n")
		dw.printf("\t\tstyle=filled;\n")
		sub.writeDotStates(dw, fmt.Sprintf("%d_", i), "\t\t")
		dw.printf("\t}\n")
	}

	d.writeDotEdges(dw, "", table)
	for i, sub := range table.DFAs() {
		sub.writeDotEdges(dw, fmt.Sprintf("%d_", i), table)
	}
	dw.printf("}\n")
	return dw.err
}

func (d *DFA) writeDotStates(dw *dotWriter, prefix, indent string) {
	if d.IsAccepting(d.start) {
		dw.printf("%snode [shape = doubleoctagon];\n", indent)
	} else {
		dw.printf("%snode [shape = octagon];\n", indent)
	}
	dw.printf("%s_%s%d[label=\"%s%d\"];\n", indent, prefix, d.start, prefix, d.start)

	regular := d.AllStates().Difference(d.accepting)
	if !d.usesDeadStateAsReal() {
		regular.Clear(uint(DeadStateID))
	}
	regular.Clear(uint(d.start))
	dw.printf("%snode [shape = circle];\n", indent)
	writeDotNodes(dw, regular, prefix, indent)
	dw.printf("\n")

	dw.printf("%snode [shape = doublecircle];\n", indent)
	writeDotNodes(dw, d.accepting, prefix, indent)
	dw.printf("\n")
}

func writeDotNodes(dw *dotWriter, states *bitset.BitSet, prefix, indent string) {
	for i, ok := states.NextSet(0); ok; i, ok = states.NextSet(i + 1) {
		dw.printf("%s_%s%d[label=\"%s%d\"];\n", indent, prefix, i, prefix, i)
	}
}

var dotLabelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (d *DFA) writeDotEdges(dw *dotWriter, prefix string, table *SubwordTable) {
	d.eachTransition(func(from StateID, sym Symbol, to StateID) {
		switch in := d.alphabet.Input(sym).(type) {
		case Subword:
			id, _ := table.ID(in.DFA)
			inner := fmt.Sprintf("%d_", id)
			dw.printf("\t_%s%d -> _%s%d [style=\"dashed\"];\n", prefix, from, inner, in.DFA.start)
			for _, s := range in.DFA.AcceptingStates() {
				dw.printf("\t_%s%d -> _%s%d [style=\"dashed\"];\n", inner, s, prefix, to)
			}
		default:
			label := dotLabelEscaper.Replace(in.String())
			dw.printf("\t_%s%d -> _%s%d [label=\"%s\"];\n", prefix, from, prefix, to, label)
		}
	})
}
