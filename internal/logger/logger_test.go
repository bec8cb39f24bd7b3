package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel(level))
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		_ = SetLevel("info")
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]LogLevel{
		"debug":     DEBUG,
		"":          INFO,
		" INFO ":    INFO,
		"warning":   WARN,
		"Error":     ERROR,
		"highlight": HIGHLIGHT,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Error(t, SetLevel("loud"))
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn")

	Info("season loaded")
	Debug("row parsed")
	assert.Empty(t, buf.String())

	Warn("skipping season", "season-2425.csv")
	Error("no league data")
	out := buf.String()
	assert.Contains(t, out, "skipping season season-2425.csv")
	assert.Contains(t, out, "no league data")
}

func TestInformTagged(t *testing.T) {
	buf := captureLogs(t, "debug")

	Inform("fetched", 3, "seasons")
	out := buf.String()
	assert.Contains(t, out, "fetched 3 seasons")
	assert.Contains(t, out, "inform")
}

func TestProcessArgs(t *testing.T) {
	primitives, objects := processArgs(nil, 1.234, "x", errors.New("boom"), struct{ A int }{1})
	assert.Equal(t, []string{"nil", "1.23", "x", "boom", "[struct { A int }]"}, primitives)
	assert.Len(t, objects, 1)

	primitives, objects = processArgs()
	assert.Nil(t, primitives)
	assert.Nil(t, objects)
}

func TestSetLogOutput(t *testing.T) {
	path := t.TempDir() + "/footstats.log"
	SetLogFile(path)
	require.NoError(t, SetLogOutput('f'))
	t.Cleanup(func() { _ = SetLogOutput('c') })

	Info("written to file")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	assert.Error(t, SetLogOutput('x'))
}
