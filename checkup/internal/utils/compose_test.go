package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeContainerNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	content := `services:
  awg:
    container_name: amnezia-awg
    image: amneziavpn/amnezia-wg:latest
  bot:
    image: awgbot:latest
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := ComposeContainerNames(path)
	require.NoError(t, err)
	// container_name wins over the service key; output is sorted
	assert.Equal(t, []string{"amnezia-awg", "bot"}, names)
}

func TestComposeContainerNames_Errors(t *testing.T) {
	_, err := ComposeContainerNames(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: '3'\n"), 0644))
	_, err = ComposeContainerNames(path)
	assert.ErrorContains(t, err, "declares no services")

	require.NoError(t, os.WriteFile(path, []byte(":\nnot yaml ["), 0644))
	_, err = ComposeContainerNames(path)
	assert.Error(t, err)
}
