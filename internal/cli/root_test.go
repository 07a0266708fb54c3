package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/geange/complgen"
	"github.com/geange/complgen/internal/commands/shared"
	"github.com/geange/complgen/internal/commands/tables"
)

const grepGrammar = `
grep [--color=<WHEN>] <PATTERN> [<FILE>]...;
<WHEN> ::= always | never | auto;
<FILE@bash> ::= {{{ compgen -f }}};
<FILE@fish> ::= {{{ __fish_complete_path }}};
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"COMPLGEN_LOG_LEVEL", "LOG_LEVEL", "LOG_FORMAT", "LOG_SOURCE"} {
		t.Setenv(key, "")
	}
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "complgen-dfa", cmd.Use)
	for _, name := range []string{"config", "log-level", "log-format", "no-minimize"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"dot", "match", "tables", "check"})
}

func TestDot(t *testing.T) {
	path := writeFile(t, t.TempDir(), "grep.usage", grepGrammar)
	out, _, err := execute(t, "dot", path)
	require.NoError(t, err)
	assert.Contains(t, out, "digraph nfa {\n\trankdir=LR;\n")
	assert.Contains(t, out, "subgraph cluster_0 {")

	_, _, err = execute(t, "dot")
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	grep := writeFile(t, dir, "grep.usage", grepGrammar)
	ambiguous := writeFile(t, dir, "amb.usage", "cmd <A> | <B>;")

	out, _, err := execute(t, "match", grep, "--color=auto", "needle", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted: --color=auto needle a.txt")

	out, _, err = execute(t, "match", "--line", `--color=never 'two words'`, grep)
	require.NoError(t, err)
	assert.Contains(t, out, "accepted: --color=never two words")

	out, _, err = execute(t, "match", grep)
	require.NoError(t, err)
	assert.Contains(t, out, "rejected")

	out, _, err = execute(t, "match", ambiguous, "x")
	assert.ErrorIs(t, err, complgen.ErrAmbiguous)
	assert.Equal(t, shared.ExitAmbiguous, shared.ExitCode(err))
	assert.Contains(t, out, "ambiguous: x")

	_, _, err = execute(t, "match", "--line", `"unclosed`, grep)
	assert.ErrorContains(t, err, "--line")
}

func TestTables(t *testing.T) {
	dir := t.TempDir()
	grep := writeFile(t, dir, "grep.usage", grepGrammar)

	out, _, err := execute(t, "tables", grep)
	require.NoError(t, err)
	var doc tables.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "grep", doc.Command)
	assert.Equal(t, "bash", doc.Shell)
	assert.Equal(t, []tables.CommandRow{{State: 3, Command: "compgen -f"}}, doc.Specializations)
	assert.Len(t, doc.Subwords, 1)

	out, _, err = execute(t, "tables", "--shell", "fish", grep)
	require.NoError(t, err)
	doc = tables.Document{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "fish", doc.Shell)
	assert.Equal(t, []tables.CommandRow{{State: 3, Command: "__fish_complete_path"}}, doc.Specializations)

	config := writeFile(t, dir, "config.yaml", "shell: zsh\n")
	out, _, err = execute(t, "--config", config, "tables", grep)
	require.NoError(t, err)
	doc = tables.Document{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "zsh", doc.Shell)
	assert.Empty(t, doc.Specializations)

	_, _, err = execute(t, "tables", "--shell", "tcsh", grep)
	assert.Error(t, err)
}

func TestTables_NoMinimize(t *testing.T) {
	grep := writeFile(t, t.TempDir(), "grep.usage", grepGrammar)

	out, _, err := execute(t, "--no-minimize", "tables", grep)
	require.NoError(t, err)
	var doc tables.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Start)
	assert.GreaterOrEqual(t, doc.States, 3)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grep.usage", grepGrammar)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "ls.usage", "ls [-a | -l] <FILE>...;")

	out, stderr, err := execute(t, "--log-level", "info", "--log-format", "json", "check", filepath.Join(dir, "**", "*.usage"))
	require.NoError(t, err)
	assert.Contains(t, out, "grep.usage")
	assert.Contains(t, out, "ls.usage")
	assert.Contains(t, stderr, `"msg":"grammar compiled"`)
	assert.Contains(t, stderr, `"states":3`)

	writeFile(t, dir, "bad.usage", "ls (-a;")
	out, _, err = execute(t, "check", filepath.Join(dir, "*.usage"))
	assert.ErrorContains(t, err, "1 of 2 grammars failed")
	assert.Contains(t, out, shared.SymbolError)

	_, _, err = execute(t, "check", filepath.Join(dir, "*.none"))
	assert.ErrorContains(t, err, "no grammars found")
}
