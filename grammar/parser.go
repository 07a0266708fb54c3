package grammar

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/geange/complgen/regex"
)

const (
	ellipsis     = "..."
	commandOpen  = "{{{"
	commandClose = "}}}"
	defineOp     = "::="

	// runes that end a literal
	literalStop = "[]()|;<>\"#"
)

// statement is either a call variant or a nonterminal definition.
type statement struct {
	pos int

	// call variant; expr is nil when the command takes no arguments
	command string

	// definition
	nonterminal string
	shell       string

	expr *regex.Expr
}

func (s statement) isDefinition() bool {
	return s.nonterminal != ""
}

type parser struct {
	originalString []rune
	pos            int
}

func newParser(s string) *parser {
	return &parser{originalString: []rune(s)}
}

func (r *parser) more() bool {
	return r.pos < len(r.originalString)
}

func (r *parser) peek(s string) bool {
	return r.more() && strings.ContainsRune(s, r.originalString[r.pos])
}

func (r *parser) peekString(s string) bool {
	return strings.HasPrefix(string(r.originalString[r.pos:]), s)
}

func (r *parser) match(c rune) bool {
	if r.more() && r.originalString[r.pos] == c {
		r.pos++
		return true
	}
	return false
}

func (r *parser) matchString(s string) bool {
	if r.peekString(s) {
		r.pos += len([]rune(s))
		return true
	}
	return false
}

func (r *parser) errorf(pos int, format string, args ...any) error {
	line, col := 1, 1
	for _, c := range r.originalString[:min(pos, len(r.originalString))] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Pos: pos, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace skips whitespace and comments.
func (r *parser) skipSpace() {
	for r.more() {
		c := r.originalString[r.pos]
		switch {
		case unicode.IsSpace(c):
			r.pos++
		case c == '#':
			for r.more() && r.originalString[r.pos] != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *parser) parseGrammar() ([]statement, error) {
	var statements []statement
	for {
		r.skipSpace()
		if !r.more() {
			return statements, nil
		}
		s, err := r.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}
}

func (r *parser) parseStatement() (statement, error) {
	s := statement{pos: r.pos}
	var err error
	if r.peek("<") {
		s.nonterminal, s.shell, err = r.parseDefinitionHead()
		if err != nil {
			return s, err
		}
		r.skipSpace()
		if !r.matchString(defineOp) {
			return s, r.errorf(r.pos, "expected '%s'", defineOp)
		}
		if s.expr, err = r.parseExpr(); err != nil {
			return s, err
		}
		if s.expr == nil {
			return s, r.errorf(r.pos, "expected expression")
		}
	} else {
		s.command = r.parseLiteralText()
		if s.command == "" {
			return s, r.errorf(r.pos, "expected command name")
		}
		if s.expr, err = r.parseExpr(); err != nil {
			return s, err
		}
	}
	r.skipSpace()
	if !r.match(';') {
		return s, r.errorf(r.pos, "expected ';'")
	}
	return s, nil
}

func (r *parser) parseDefinitionHead() (name, shell string, err error) {
	start := r.pos
	r.match('<')
	nameStart := r.pos
	for r.more() && !r.peek(">@") && !unicode.IsSpace(r.originalString[r.pos]) {
		r.pos++
	}
	name = string(r.originalString[nameStart:r.pos])
	if name == "" {
		return "", "", r.errorf(nameStart, "expected nonterminal name")
	}
	if r.match('@') {
		shellStart := r.pos
		for r.more() && !r.peek(">") && !unicode.IsSpace(r.originalString[r.pos]) {
			r.pos++
		}
		shell = string(r.originalString[shellStart:r.pos])
		switch shell {
		case "bash", "fish", "zsh":
		default:
			return "", "", r.errorf(shellStart, "unknown shell %q", shell)
		}
	}
	if !r.match('>') {
		return "", "", r.errorf(start, "unterminated nonterminal")
	}
	return name, shell, nil
}

// parseExpr parses alternatives. It returns nil when no expression follows.
func (r *parser) parseExpr() (*regex.Expr, error) {
	e, err := r.parseSeq()
	if err != nil {
		return nil, err
	}
	for {
		r.skipSpace()
		pos := r.pos
		if !r.match('|') {
			return e, nil
		}
		e2, err := r.parseSeq()
		if err != nil {
			return nil, err
		}
		if e == nil || e2 == nil {
			return nil, r.errorf(pos, "empty alternative")
		}
		e = regex.Alternative(e, e2)
	}
}

func (r *parser) parseSeq() (*regex.Expr, error) {
	var e *regex.Expr
	for {
		r.skipSpace()
		if !r.more() || r.peek("|;)]") {
			return e, nil
		}
		e2, err := r.parseRepeat()
		if err != nil {
			return nil, err
		}
		if e == nil {
			e = e2
		} else {
			e = regex.Sequence(e, e2)
		}
	}
}

func (r *parser) parseRepeat() (*regex.Expr, error) {
	e, err := r.parseWord()
	if err != nil {
		return nil, err
	}
	save := r.pos
	r.skipSpace()
	if r.matchString(ellipsis) {
		return regex.Many1(e), nil
	}
	r.pos = save
	return e, nil
}

// parseWord parses the parts of one command-line word. Parts written without
// whitespace between them form a subword.
func (r *parser) parseWord() (*regex.Expr, error) {
	var parts []*regex.Expr
	for r.more() && !unicode.IsSpace(r.originalString[r.pos]) && !r.peek("|;)]#\"") && !r.peekString(ellipsis) {
		part, err := r.parsePart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	switch len(parts) {
	case 0:
		return nil, r.errorf(r.pos, "expected expression")
	case 1:
		if parts[0].Kind() != regex.EXPR_TERMINAL {
			return parts[0], nil
		}
		save := r.pos
		r.skipSpace()
		if r.peek("\"") {
			description, err := r.parseQuoted()
			if err != nil {
				return nil, err
			}
			return regex.Terminal(parts[0].Word(), description), nil
		}
		r.pos = save
		return parts[0], nil
	}
	return regex.Subword(regex.Sequence(parts[0], parts[1:]...)), nil
}

func (r *parser) parsePart() (*regex.Expr, error) {
	start := r.pos
	switch {
	case r.matchString(commandOpen):
		cmdStart := r.pos
		for r.more() && !r.peekString(commandClose) {
			r.pos++
		}
		if !r.more() {
			return nil, r.errorf(start, "unterminated command")
		}
		cmd := strings.TrimSpace(string(r.originalString[cmdStart:r.pos]))
		r.matchString(commandClose)
		if cmd == "" {
			return nil, r.errorf(start, "empty command")
		}
		return regex.Command(cmd), nil
	case r.match('<'):
		nameStart := r.pos
		for r.more() && !r.peek(">") && !unicode.IsSpace(r.originalString[r.pos]) {
			r.pos++
		}
		name := string(r.originalString[nameStart:r.pos])
		if !r.match('>') {
			return nil, r.errorf(start, "unterminated nonterminal")
		}
		if name == "" {
			return nil, r.errorf(start, "expected nonterminal name")
		}
		return regex.Nonterminal(name), nil
	case r.match('['):
		e, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, r.errorf(start, "empty optional")
		}
		r.skipSpace()
		if !r.match(']') {
			return nil, r.errorf(r.pos, "expected ']'")
		}
		return regex.Optional(e), nil
	case r.match('('):
		e, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, r.errorf(start, "empty group")
		}
		r.skipSpace()
		if !r.match(')') {
			return nil, r.errorf(r.pos, "expected ')'")
		}
		return e, nil
	}

	word := r.parseLiteralText()
	if word == "" {
		return nil, r.errorf(start, "unexpected %q", r.originalString[r.pos])
	}
	return regex.Terminal(word, ""), nil
}

func (r *parser) parseLiteralText() string {
	start := r.pos
	for r.more() && !unicode.IsSpace(r.originalString[r.pos]) && !r.peek(literalStop) &&
		!r.peekString(ellipsis) && !r.peekString(commandOpen) {
		r.pos++
	}
	return string(r.originalString[start:r.pos])
}

func (r *parser) parseQuoted() (string, error) {
	start := r.pos
	r.match('"')
	b := new(strings.Builder)
	for r.more() {
		c := r.originalString[r.pos]
		r.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if r.more() {
				b.WriteRune(r.originalString[r.pos])
				r.pos++
			}
		default:
			b.WriteRune(c)
		}
	}
	return "", r.errorf(start, "unterminated description")
}
