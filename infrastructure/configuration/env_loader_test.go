package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFromFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "config.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"# comment line\n"+
			"\n"+
			"ENV_LOADER_TEST_PLAIN=plain\n"+
			"ENV_LOADER_TEST_QUOTED=\"quoted value\"\n"+
			"ENV_LOADER_TEST_EXISTING=from-file\n"+
			"not a pair\n",
	), 0o600))

	t.Setenv("ENV_LOADER_TEST_EXISTING", "from-os")
	t.Setenv("ENV_LOADER_TEST_PLAIN", "")
	os.Unsetenv("ENV_LOADER_TEST_PLAIN")
	os.Unsetenv("ENV_LOADER_TEST_QUOTED")

	LoadEnvFromFile(envFile, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "plain", os.Getenv("ENV_LOADER_TEST_PLAIN"))
	assert.Equal(t, "quoted value", os.Getenv("ENV_LOADER_TEST_QUOTED"))
	assert.Equal(t, "from-os", os.Getenv("ENV_LOADER_TEST_EXISTING"), "OS environment wins over the file")

	os.Unsetenv("ENV_LOADER_TEST_PLAIN")
	os.Unsetenv("ENV_LOADER_TEST_QUOTED")
}
