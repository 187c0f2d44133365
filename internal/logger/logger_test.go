package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(l *Logger) {
	l.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
}

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "editor.txt")
	l := New(path)
	fixedClock(l)
	l.Log("hello")
	l.Logf("count=%d", 3)

	assert.Equal(t, []string{"[2026-03-04 05:06:07] hello", "[2026-03-04 05:06:07] count=3"}, l.Lines())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(l.Lines(), "\n")+"\n", string(data))
}

func TestMemoryOnlyAndLast(t *testing.T) {
	l := New("")
	for _, s := range []string{"a", "b", "c"} {
		l.Log(s)
	}
	last := l.Last(2)
	require.Len(t, last, 2)
	assert.True(t, strings.HasSuffix(last[0], "] b"))
	assert.Len(t, l.Last(10), 3)
}
