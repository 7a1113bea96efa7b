package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elarith/object"
)

func TestPreprocessElisp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(+ ?a 1)", "(+ 97 1)"},
		{"(list ?\\n ?\\t ?\\s ?\\e)", "(list 10 9 32 27)"},
		{"?\\x41", "65"},
		{"?\\101", "65"},
		{"?é", "233"},
		{"(logand #xff #o17 #b101)", "(logand 255 15 5)"},
		{"#x-10", "-16"},
		{"(funcall #'+ 1)", "(funcall '+ 1)"},
		{"(1+ x) (1- x)", "(el-1+ x) (el-1- x)"},
		{"(+ 1 2)", "(+ 1 2)"},
		{"(- 10 1)", "(- 10 1)"},
		{"foo?bar", "foo?bar"},
		{`"?a #xff 1+" ; ?b #x10`, `"?a #xff 1+" ; ?b #x10`},
		{`"esc \" ?a"`, `"esc \" ?a"`},
		{"(+ 1.5 x)", `(+ (el-float "1.5") x)`},
		{"(- -2.1e3 .5)", `(- (el-float "-2.1e3") (el-float ".5"))`},
		{"(max 1e3 1.0e+INF)", `(max (el-float "1e3") (el-float "1.0e+INF"))`},
		{"(+ 1. 2)", "(+ 1. 2)"},
		{"(a . b)", "(a . b)"},
		{"(x1.5 v2.0)", "(x1.5 v2.0)"},
		{`"1.5" ; 2.5`, `"1.5" ; 2.5`},
	}
	for _, tt := range tests {
		got, err := preprocessElisp(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPreprocessElispErrors(t *testing.T) {
	_, err := preprocessElisp("(aref [1 2] 0)")
	assert.ErrorContains(t, err, "vector")

	_, err = preprocessElisp(`(string "abc`)
	assert.ErrorContains(t, err, "unterminated")
}

func TestSplitForms(t *testing.T) {
	src := `; header
(+ 1 2)
  most-positive-fixnum "a (string)"
'foo (max 1
 2) ; trailing
42`
	forms, err := splitForms(src)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"(+ 1 2)",
		"most-positive-fixnum",
		`"a (string)"`,
		"'foo",
		"(max 1\n 2)",
		"42",
	}, forms)

	forms, err = splitForms(`(string ?( ?\)) ?" 5`)
	require.NoError(t, err)
	assert.Equal(t, []string{`(string ?( ?\))`, `?"`, "5"}, forms)

	forms, err = splitForms("")
	require.NoError(t, err)
	assert.Empty(t, forms)

	_, err = splitForms("(+ 1 2")
	assert.ErrorContains(t, err, "unmatched (")

	_, err = splitForms("1)")
	assert.ErrorContains(t, err, "unmatched )")

	_, err = splitForms(`"open`)
	assert.ErrorContains(t, err, "unterminated")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ELARITH_LOG_LEVEL", "debug")
	t.Setenv("ELARITH_HEADLESS", "true")
	t.Setenv("ELARITH_ARENA_MODE", "exclusive")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "elarith", cfg.EnvName)

	mode, err := cfg.mode()
	require.NoError(t, err)
	assert.Equal(t, object.Exclusive, mode)
	assert.Equal(t, zerolog.DebugLevel, newLogger(cfg).GetLevel())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("ELARITH_ARENA_MODE", "pooled")
	_, err := loadConfig()
	assert.ErrorContains(t, err, "ELARITH_ARENA_MODE")

	t.Setenv("ELARITH_ARENA_MODE", "shared")
	t.Setenv("ELARITH_LOG_LEVEL", "loud")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "ELARITH_LOG_LEVEL")

	t.Setenv("ELARITH_LOG_LEVEL", "info")
	t.Setenv("ELARITH_HEADLESS", "maybe")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "parse env")
}

func newTestRuntime(t *testing.T) *runtimeState {
	t.Helper()
	cfg := Config{LogLevel: "info", Headless: true, ArenaMode: "shared", EnvName: "test"}
	rt, err := newRuntime(cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	return rt
}

func TestEvalSource(t *testing.T) {
	rt := newTestRuntime(t)

	err := rt.evalSource(`
; arithmetic
(+ 1 2)
(1+ most-positive-fixnum)
(/ 1 0)
(string ?H ?i)
(mod #x-10 3)
`)
	require.NoError(t, err)
	require.Len(t, rt.results, 5)
	assert.Equal(t, 1, rt.failures)

	assert.Equal(t, "3", rt.results[0].value)
	assert.Equal(t, "36028797018963968", rt.results[1].value)
	assert.ErrorContains(t, rt.results[2].err, "arith-error")
	assert.Equal(t, `"Hi"`, rt.results[3].value)
	assert.Equal(t, "2", rt.results[4].value)

	var out bytes.Buffer
	require.NoError(t, rt.printResults(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "(+ 1 2) => 3", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "(/ 1 0) !! "))
}

func TestEvalSourceFloatsAndMultibyte(t *testing.T) {
	rt := newTestRuntime(t)

	err := rt.evalSource(`
(max 1.0 2.1 1.1 1.0)
(+ 0.1 0.2)
(= 2.1 (/ 21 10.0))
(- 1.5)
(max-char t)
(make-string 2 #x1F600 t)
(string ?( ?\))
`)
	require.NoError(t, err)
	require.Len(t, rt.results, 7)
	assert.Zero(t, rt.failures)

	assert.Equal(t, "(max 1.0 2.1 1.1 1.0)", rt.results[0].form)
	assert.Equal(t, "2.1", rt.results[0].value)
	assert.Equal(t, "0.30000000000000004", rt.results[1].value)
	assert.NotEqual(t, "#f", rt.results[2].value)
	assert.Equal(t, "-1.5", rt.results[3].value)
	assert.Equal(t, "1114111", rt.results[4].value)
	assert.Equal(t, "(make-string 2 #x1F600 t)", rt.results[5].form)
	assert.Equal(t, `"😀😀"`, rt.results[5].value)
	assert.Equal(t, `"()"`, rt.results[6].value)
}

func TestEvalSourceRejectsBadSyntax(t *testing.T) {
	rt := newTestRuntime(t)
	assert.Error(t, rt.evalSource("(+ 1 [2])"))
	assert.Error(t, rt.evalSource("(+ 1"))
	assert.Empty(t, rt.results)
}

func TestLoadElispFile(t *testing.T) {
	rt := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "sum.el")
	require.NoError(t, os.WriteFile(path, []byte("(* 6 7)\n"), 0o644))

	require.NoError(t, rt.loadElispFile(path))
	require.Len(t, rt.results, 1)
	assert.Equal(t, "42", rt.results[0].value)

	assert.Error(t, rt.loadElispFile(filepath.Join(t.TempDir(), "missing.el")))
}
