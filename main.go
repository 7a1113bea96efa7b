package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/steelseries/golisp"

	"elarith/elisp"
)

type evalResult struct {
	form  string
	value string
	err   error
}

type runtimeState struct {
	cfg      Config
	log      zerolog.Logger
	arena    *elisp.Arena
	env      *golisp.SymbolTableFrame
	results  []evalResult
	failures int
	warned   map[string]bool
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.el>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	filePath := os.Args[1]
	if filepath.Ext(filePath) != ".el" {
		fmt.Fprintf(os.Stderr, "expected a .el file, got %s\n", filePath)
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	rt, err := newRuntime(cfg, newLogger(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}

	if err := rt.loadElispFile(filePath); err != nil {
		rt.log.Error().Err(err).Str("file", filePath).Msg("load failed")
		os.Exit(1)
	}
	rt.log.Info().
		Str("file", filePath).
		Int("forms", len(rt.results)).
		Int("errors", rt.failures).
		Int("allocs", rt.arena.Allocs()).
		Msg("evaluated")

	if err := rt.show(); err != nil {
		rt.log.Error().Err(err).Msg("display failed")
		os.Exit(1)
	}
	if rt.failures > 0 {
		os.Exit(1)
	}
}

func newRuntime(cfg Config, log zerolog.Logger) (*runtimeState, error) {
	mode, err := cfg.mode()
	if err != nil {
		return nil, err
	}
	arena := elisp.NewArena(mode)
	elisp.Install(arena)
	return &runtimeState{
		cfg:    cfg,
		log:    log,
		arena:  arena,
		env:    golisp.NewSymbolTableFrameBelow(golisp.Global, cfg.EnvName),
		warned: make(map[string]bool),
	}, nil
}

func (rt *runtimeState) loadElispFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return rt.evalSource(string(source))
}

// evalSource evaluates each top-level form on its own. A failing form is
// recorded and evaluation moves on to the next one. Syntax errors are
// reported before anything is evaluated.
func (rt *runtimeState) evalSource(source string) error {
	forms, err := splitForms(source)
	if err != nil {
		return err
	}
	readable := make([]string, len(forms))
	for i, form := range forms {
		if readable[i], err = preprocessElisp(form); err != nil {
			return fmt.Errorf("form %d: %w", i+1, err)
		}
	}
	for i, form := range forms {
		rt.results = append(rt.results, rt.evalForm(form, readable[i]))
	}
	return nil
}

// evalForm evaluates the preprocessed text of form and records the
// result against the form as written.
func (rt *runtimeState) evalForm(form, readable string) evalResult {
	v, err := golisp.ParseAndEvalInEnvironment(readable, rt.env)
	if err != nil {
		rt.failures++
		var sig elisp.Signal
		if errors.As(err, &sig) {
			rt.warnOnce("signal-"+sig.Condition, "form signalled %s", sig.Condition)
		}
		rt.log.Debug().Err(err).Str("form", form).Msg("form failed")
		return evalResult{form: form, err: err}
	}
	value := elisp.Format(rt.arena, v)
	rt.log.Debug().Str("form", form).Str("value", value).Msg("form evaluated")
	return evalResult{form: form, value: value}
}

func (rt *runtimeState) warnf(format string, args ...any) {
	rt.log.Warn().Msgf(format, args...)
}

func (rt *runtimeState) warnOnce(key, format string, args ...any) {
	if rt.warned[key] {
		return
	}
	rt.warned[key] = true
	rt.warnf(format, args...)
}
