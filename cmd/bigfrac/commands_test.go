package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigfrac/internal/bignum"
	"bigfrac/internal/render"
)

type cmdRun struct {
	stdout string
	stderr string
	err    error
}

// execute runs the CLI in-process the way main does.
func execute(t *testing.T, stdin string, args ...string) cmdRun {
	t.Helper()
	s := &session{}
	root := newRootCmd(s)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.Execute()
	s.finish(&errOut, err != nil)
	return cmdRun{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestEvalArgument(t *testing.T) {
	r := execute(t, "", "eval", "1/2+1/3")
	require.NoError(t, r.err)
	assert.Equal(t, "5/6\n", r.stdout)
}

func TestEvalIntMode(t *testing.T) {
	r := execute(t, "", "eval", "--mode", "int", "7/2")
	require.NoError(t, r.err)
	assert.Equal(t, "3\n", r.stdout)
}

func TestEvalSeveralArgumentsShareVariables(t *testing.T) {
	r := execute(t, "", "eval", "x = 4/9", "x * 3/2")
	require.NoError(t, r.err)
	assert.Equal(t, "x * 3/2 = 2/3\n", r.stdout)
}

func TestEvalStdinAndFile(t *testing.T) {
	r := execute(t, "num1 = -2/7\nnum2 = 4/9\nnum1 + num2\n", "eval")
	require.NoError(t, r.err)
	assert.Equal(t, "num1 + num2 = 10/63\n", r.stdout)

	path := filepath.Join(t.TempDir(), "s.calc")
	require.NoError(t, os.WriteFile(path, []byte("2^100\n"), 0o600))
	r = execute(t, "", "eval", "--mode", "int", "-f", path)
	require.NoError(t, r.err)
	assert.Equal(t, "2^100 = 1267650600228229401496703205376\n", r.stdout)

	r = execute(t, "", "eval", "-f", path, "1+1")
	require.Error(t, r.err)
}

func TestEvalErrorPretty(t *testing.T) {
	r := execute(t, "", "eval", "7 / 0")
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, bignum.ErrDivisionByZero)
	assert.Empty(t, r.stdout)
}

func TestEvalJSON(t *testing.T) {
	r := execute(t, "", "eval", "--format", "json", "1/2+1/3", "1/0")
	require.ErrorIs(t, r.err, errReported)

	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	var rec render.Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "5/6", rec.Value)
	assert.Equal(t, "fraction", rec.Mode)
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Contains(t, rec.Error, "division by zero")
}

func TestEvalConfigFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[eval]\nmode = \"int\"\n")
	r := execute(t, "", "--config", path, "eval", "7/2")
	require.NoError(t, r.err)
	assert.Equal(t, "3\n", r.stdout)

	r = execute(t, "", "--config", path, "eval", "--mode", "fraction", "7/2")
	require.NoError(t, r.err)
	assert.Equal(t, "7/2\n", r.stdout)
}

func TestRepl(t *testing.T) {
	input := strings.Join([]string{
		"x = 2",
		"x ^ 10",
		"z = x ^ 10",
		"y = 1 + \\",
		"1/2",
		":vars",
		"1/0",
		"y * 2",
		":quit",
		"999",
	}, "\n")
	r := execute(t, input, "--quiet", "repl")
	require.NoError(t, r.err)
	assert.Equal(t, strings.Join([]string{
		"1024/1",
		"x = 2/1",
		"y = 3/2",
		"z = 1024/1",
		"error: <repl>:1:2: 1/1 / 0/1: division by zero",
		"3/1",
		"",
	}, "\n"), r.stdout)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.calc"), []byte("1/2 + 2/3\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.calc"), []byte("nope + 1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("1\n"), 0o600))

	r := execute(t, "", "batch", "--ui", "off", "--jobs", "2", dir)
	require.ErrorIs(t, r.err, errReported)
	assert.Contains(t, r.stdout, "a.calc")
	assert.Contains(t, r.stdout, "1/2 + 2/3 = 7/6")
	assert.Contains(t, r.stdout, "b.calc")
	assert.Contains(t, r.stdout, "error:")
	assert.NotContains(t, r.stdout, "skip.txt")
	assert.Contains(t, r.stderr, "2 files, 1 failed")
}

func TestBatchNoScripts(t *testing.T) {
	r := execute(t, "", "batch", "--ui", "off", t.TempDir())
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "no .calc files")
}

func TestVersion(t *testing.T) {
	r := execute(t, "", "version", "--format", "json", "--full")
	require.NoError(t, r.err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &payload))
	assert.Equal(t, "bigfrac", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.NotEmpty(t, payload.GitCommit)

	r = execute(t, "", "version")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "bigfrac "))

	r = execute(t, "", "version", "--format", "xml")
	require.Error(t, r.err)
}

func TestTimingsAndTrace(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.log")
	r := execute(t, "", "--timings", "--trace", tracePath, "eval", "2*3")
	require.NoError(t, r.err)
	assert.Equal(t, "6/1\n", r.stdout)
	assert.Contains(t, r.stderr, "eval <args>")

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<args>")
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	r := execute(t, "", "--cpu-profile", cpu, "--mem-profile", mem, "eval", "--mode", "int", "3^200")
	require.NoError(t, r.err)
	for _, path := range []string{cpu, mem} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
