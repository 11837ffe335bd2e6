package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// programCase is one fixture in testdata/programs/*.yaml: a whole
// program plus its expected observable behavior. Generalizes the
// teacher's checkExpression/checkStatements harness (exec_test.go) to
// full programs and to the negative (error) path, per SPEC_FULL.md
// §10.5.
type programCase struct {
	Name         string `yaml:"name"`
	Source       string `yaml:"source"`
	Stdout       string `yaml:"stdout"`
	ResolveError bool   `yaml:"resolveError"`
	RuntimeError bool   `yaml:"runtimeError"`
}

func loadProgramCases(t *testing.T, path string) []programCase {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cases []programCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	return cases
}

func TestProgramFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/programs/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files, "expected at least one fixture file")

	for _, file := range files {
		for _, tc := range loadProgramCases(t, file) {
			tc := tc
			t.Run(tc.Name, func(t *testing.T) {
				tp := &testPrinter{}
				result := RunSource(tc.Source, RunOptions{Printer: tp})

				if tc.ResolveError {
					assert.True(t, result.HadError, "expected a static/resolve error")
					return
				}
				if tc.RuntimeError {
					assert.True(t, result.HadRuntimeError, "expected a runtime error")
					return
				}

				assert.False(t, result.HadError, "unexpected static error")
				assert.False(t, result.HadRuntimeError, "unexpected runtime error")
				assert.Equal(t, strings.TrimRight(tc.Stdout, "\n"), tp.joined())
			})
		}
	}
}
