package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd export --format glb")
	require.True(t, ok)
	assert.Equal(t, []string{"export", "--format", "glb"}, args)

	args, ok = Parse(`cmd image "my photos/cat.png"`)
	require.True(t, ok)
	assert.Equal(t, []string{"image", "my photos/cat.png"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Empty(t, args)

	_, ok = Parse("a small house")
	assert.False(t, ok)
	_, ok = Parse("CMD box")
	assert.False(t, ok)
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("grid")
	show := fs.Bool("show", false, "show the grid")
	var got []string
	r.Register("grid", "grid --show|--hide", fs, func() error {
		got = append(got, fs.Args()...)
		if *show {
			got = append(got, "shown")
		}
		return nil
	})
	r.Register("fail", "always fails", NewFlagSet("fail"), func() error { return errors.New("boom") })

	require.NoError(t, r.Execute([]string{"grid", "--show", "extra"}))
	assert.Equal(t, []string{"extra", "shown"}, got)

	assert.EqualError(t, r.Execute([]string{"fail"}), "boom")
	assert.ErrorContains(t, r.Execute([]string{"nope"}), "unknown command")
	assert.ErrorContains(t, r.Execute(nil), "missing subcommand")
	assert.ErrorContains(t, r.Execute([]string{"grid", "--bogus"}), "grid:")
	assert.ErrorContains(t, r.Execute([]string{"grid", "-h"}), "grid --show|--hide")
	assert.Equal(t, []string{"fail", "grid"}, r.Names())
}
