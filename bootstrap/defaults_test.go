package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "default_connections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultConnections(t *testing.T) {
	path := writeSeedFile(t, `
connections:
  - connection_id: mysql_default
    conn_type: mysql
    host: localhost
    login: root
    schema: mysql
    port: 3306
  - connection_id: fs_default
    conn_type: fs
    extra: '{"path": "/"}'
`)

	conns, err := LoadDefaultConnections(path)
	require.NoError(t, err)
	require.Len(t, conns, 2)

	assert.Equal(t, "mysql_default", conns[0].ConnID)
	assert.Equal(t, "mysql", conns[0].ConnType)
	require.NotNil(t, conns[0].Port)
	assert.Equal(t, 3306, *conns[0].Port)
	// Unset optional attributes stay null.
	assert.Nil(t, conns[0].Extra)

	assert.Equal(t, "fs_default", conns[1].ConnID)
	assert.Nil(t, conns[1].Port)
	require.NotNil(t, conns[1].Extra)
	assert.Equal(t, `{"path": "/"}`, *conns[1].Extra)
}

func TestLoadDefaultConnections_MissingFileMeansNoDefaults(t *testing.T) {
	conns, err := LoadDefaultConnections(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestLoadDefaultConnections_RejectsIncompleteEntry(t *testing.T) {
	path := writeSeedFile(t, `
connections:
  - connection_id: no_type
`)

	_, err := LoadDefaultConnections(path)
	assert.ErrorContains(t, err, "require connection_id and conn_type")
}

func TestLoadDefaultConnections_RejectsMalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "connections: [notamap")

	_, err := LoadDefaultConnections(path)
	assert.ErrorContains(t, err, "cannot parse")
}
