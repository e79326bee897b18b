package suggest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rapidmidiex/chordpad/key"
	"github.com/rapidmidiex/chordpad/pitch"
	"github.com/rapidmidiex/chordpad/suggest"
	"github.com/stretchr/testify/require"
)

const minorYAML = `
minor:
  - i iv v i
  - i-bVI-bIII-bVII
`

func TestReadLibrary(t *testing.T) {
	t.Run("reads progressions by key type", func(t *testing.T) {
		lib, err := suggest.ReadLibrary(strings.NewReader(minorYAML))
		require.NoError(t, err)
		require.Len(t, lib.For(key.Minor), 2)
		require.Empty(t, lib.For(key.Major))

		got := names(lib.For(key.Minor)[1].Realize(key.NewMinor(9)), pitch.Flat)
		require.Equal(t, []string{"Am", "F", "C", "G"}, got)
	})

	t.Run("rejects unknown key types", func(t *testing.T) {
		_, err := suggest.ReadLibrary(strings.NewReader("dorian:\n  - i IV\n"))
		require.Error(t, err)
	})

	t.Run("rejects bad numerals", func(t *testing.T) {
		_, err := suggest.ReadLibrary(strings.NewReader("major:\n  - I IIII\n"))
		require.Error(t, err)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := suggest.ReadLibrary(strings.NewReader("major: [I, IV"))
		require.Error(t, err)
	})
}

func TestLoadLibrary(t *testing.T) {
	t.Run("an empty path gives the built in progressions", func(t *testing.T) {
		lib, err := suggest.LoadLibrary("")
		require.NoError(t, err)
		require.Equal(t, suggest.For(key.Major), lib.For(key.Major))
	})

	t.Run("adds progressions from a file after the built in ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progressions.yml")
		require.NoError(t, os.WriteFile(path, []byte(minorYAML+"major:\n  - ii V I\n"), 0o644))

		lib, err := suggest.LoadLibrary(path)
		require.NoError(t, err)
		require.Len(t, lib.For(key.Major), 6)
		require.Equal(t, "ii V I", lib.For(key.Major)[5].Name)
		require.Len(t, lib.For(key.Minor), 2)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := suggest.LoadLibrary(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})
}
