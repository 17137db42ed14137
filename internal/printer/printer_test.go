package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	SetColor(false)

	t.Run("returns error with title", func(t *testing.T) {
		var buf bytes.Buffer
		err := Error(&buf, "Bad keymap", "layer 1 is ragged", nil)
		require.EqualError(t, err, "Bad keymap")
		require.Equal(t, "Bad keymap\n\nlayer 1 is ragged\n", buf.String())
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		var buf bytes.Buffer
		err := Error(&buf, "Bad keymap", "", []string{"fix it", "use the default"})
		require.EqualError(t, err, "Bad keymap")
		require.Contains(t, buf.String(), "Either:\n  1. fix it\n  2. use the default\n")
	})
}

func TestSuccessPrefix(t *testing.T) {
	SetColor(false)
	var buf bytes.Buffer
	Success(&buf, "ok\n")
	Success(&buf, "✓ done\n")
	require.Equal(t, "✓ ok\n✓ done\n", buf.String())
}

func TestNoColor(t *testing.T) {
	SetColor(false)
	require.Equal(t, "L1", Accent("L1"))
	require.Equal(t, "_", Faint("_"))
}
