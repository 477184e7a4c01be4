package editor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/editor"
)

// fakeEditor writes a script that replaces its argument's content.
func fakeEditor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	script := "#!/bin/sh\nprintf '%s' '" + body + "' > \"$1\"\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

type exitResult struct {
	id, text string
	err      error
}

func TestSession_CommitsOnExit(t *testing.T) {
	dir := t.TempDir()
	exits := make(chan exitResult, 1)
	s := editor.New(editor.Options{
		Editor: fakeEditor(t, "edited text"),
		Dir:    dir,
		OnExit: func(id, text string, err error) { exits <- exitResult{id, text, err} },
	}, nil, nil)

	require.NoError(t, s.Open("card-1", "original"))

	select {
	case r := <-exits:
		require.NoError(t, r.err)
		assert.Equal(t, "card-1", r.id)
		assert.Equal(t, "edited text", r.text)
	case <-time.After(5 * time.Second):
		t.Fatal("editor did not exit")
	}

	require.Eventually(t, func() bool {
		_, running := s.Active()
		return !running
	}, time.Second, 10*time.Millisecond)
	assert.FileExists(t, filepath.Join(dir, "card-1.md"))
}

func TestSession_WriteWithoutSession(t *testing.T) {
	s := editor.New(editor.Options{Editor: "vi", Dir: t.TempDir()}, nil, nil)

	require.ErrorIs(t, s.Write("i"), editor.ErrNoSession)
	require.NoError(t, s.Resize(120, 40))
	_, running := s.Active()
	assert.False(t, running)
}

func TestSession_CardPath(t *testing.T) {
	s := editor.New(editor.Options{Dir: "/tmp/edit"}, nil, nil)
	assert.Equal(t, filepath.Join("/tmp/edit", "abc.md"), s.CardPath("abc"))
}
