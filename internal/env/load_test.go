package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	vars, err := Parse(strings.NewReader(`
# comment
SCENE_EDITOR_STORAGE = "data/store"
export SCENE_EDITOR_LOG='logs/x.txt'
=novalue
NOEQUALS
EMPTY=
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SCENE_EDITOR_STORAGE": "data/store",
		"SCENE_EDITOR_LOG":     "logs/x.txt",
		"EMPTY":                "",
	}, vars)
}

func TestLoadKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENV_TEST_A=file\nENV_TEST_B=file\n"), 0644))
	t.Setenv("ENV_TEST_A", "process")
	t.Setenv("ENV_TEST_B", "")
	os.Unsetenv("ENV_TEST_B")

	require.NoError(t, Load(path))
	assert.Equal(t, "process", os.Getenv("ENV_TEST_A"))
	assert.Equal(t, "file", os.Getenv("ENV_TEST_B"))

	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing")))
}
