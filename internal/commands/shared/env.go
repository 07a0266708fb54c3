package shared

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/geange/complgen"
	"github.com/geange/complgen/grammar"
	"github.com/geange/complgen/internal/config"
	"github.com/geange/complgen/internal/log"
	"github.com/geange/complgen/regex"
)

// Env is what a command needs to run: the effective configuration and a
// logger writing to the command's error stream.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

// Setup loads the config file named by --config and applies the persistent
// flags on top of it. Log settings come from the environment first, then the
// file, then the flags.
func Setup(cmd *cobra.Command) (*Env, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if noMinimizeFlag {
		minimize := false
		cfg.Minimize = &minimize
	}

	logCfg := log.FromEnv()
	logCfg.Output = cmd.ErrOrStderr()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = log.Format(cfg.Log.Format)
	}
	if logLevelFlag != "" {
		logCfg.Level = logLevelFlag
	}
	if logFormatFlag != "" {
		logCfg.Format = log.Format(logFormatFlag)
	}

	return &Env{Config: cfg, Logger: log.New(logCfg)}, nil
}

// CompileFile parses the grammar at path and builds its automaton, minimized
// unless the configuration says otherwise.
func (e *Env) CompileFile(path string) (*grammar.Grammar, *complgen.DFA, error) {
	logger := log.WithGrammar(e.Logger, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read grammar: %w", err)
	}
	g, err := grammar.Parse(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	start := time.Now()
	d, err := g.Compile(regex.WithoutMinimize())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("constructed automaton",
		slog.String("command", g.Command),
		slog.Int(log.StatesKey, d.NumStates()),
		slog.Int(log.SubwordsKey, d.Subwords(0).Len()),
		slog.Int64(log.DurationKey, time.Since(start).Milliseconds()))

	if e.Config.ShouldMinimize() {
		start = time.Now()
		d = complgen.Minimize(d)
		logger.Debug("minimized automaton",
			slog.Int(log.MinimizedStatesKey, d.NumStates()),
			slog.Int64(log.DurationKey, time.Since(start).Milliseconds()))
	}
	return g, d, nil
}
