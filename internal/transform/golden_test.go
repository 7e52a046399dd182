package transform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rotate/internal/lines"
)

// runFixture transforms testdata/<name>.input, terminating every emitted line
// with "\n" the way a file writer would.
func runFixture(t *testing.T, name string) []byte {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", name+".input"))
	require.NoError(t, err)
	defer f.Close()

	r := lines.NewReader(f)
	var out strings.Builder
	for line := range New().Process(r.All()) {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	require.NoError(t, r.Err())
	return []byte(out.String())
}

// To regenerate golden files, run:
//
//	go test ./internal/transform -update
func TestProcess_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, name := range []string{"sample", "edge", "header_only"} {
		t.Run(name, func(t *testing.T) {
			g.Assert(t, name, runFixture(t, name))
		})
	}
}
