package clipboard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestCopy_SystemClipboard(t *testing.T) {
	var got string
	var term bytes.Buffer
	c := &Copier{
		system:   func(s string) error { got = s; return nil },
		terminal: &term,
		env:      fakeEnv(nil),
	}

	out := c.Copy("hunter2")

	assert.Equal(t, Copied, out)
	assert.Equal(t, "hunter2", got)
	assert.Zero(t, term.Len(), "fallback must not run")
	assert.Equal(t, "Copied to clipboard", out.Message())
}

func TestCopy_FallsBackToOSC52(t *testing.T) {
	var term bytes.Buffer
	c := &Copier{
		system:   func(string) error { return errors.New("no xclip") },
		terminal: &term,
		env:      fakeEnv(nil),
	}

	out := c.Copy("hi")

	assert.Equal(t, CopiedFallback, out)
	assert.True(t, out.OK())
	assert.Equal(t, "Copied to clipboard", out.Message())
	assert.Contains(t, term.String(), "\x1b]52;")
	assert.Contains(t, term.String(), "aGk=")
}

func TestCopy_FallbackInsideTmux(t *testing.T) {
	var term bytes.Buffer
	c := &Copier{
		system:   func(string) error { return errors.New("no xclip") },
		terminal: &term,
		env:      fakeEnv(map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}),
	}

	assert.Equal(t, CopiedFallback, c.Copy("hi"))
	assert.Contains(t, term.String(), "tmux;")
}

func TestCopy_BothFail(t *testing.T) {
	c := &Copier{
		system:   func(string) error { return errors.New("no xclip") },
		terminal: failingWriter{},
		env:      fakeEnv(nil),
	}

	out := c.Copy("hi")

	assert.Equal(t, Failed, out)
	assert.False(t, out.OK())
	assert.Equal(t, "Copy failed", out.Message())
}

func TestCopy_NoTerminal(t *testing.T) {
	c := &Copier{system: func(string) error { return errors.New("denied") }, env: fakeEnv(nil)}

	assert.Equal(t, Failed, c.Copy("hi"))
}

func TestCopy_RedirectedFileIsNotAFallback(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	c := &Copier{
		system:   func(string) error { return errors.New("no xclip") },
		terminal: f,
		env:      fakeEnv(nil),
	}

	assert.Equal(t, Failed, c.Copy("hi"))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "no escape sequence written to the file")
}
