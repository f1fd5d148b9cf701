package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Sorted(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	assert.Equal(t, "0001_uipath_configuration.sql", files[0])
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i])
	}
}

func TestMigrationFiles_CreateSyncTables(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)

	var all string
	for _, f := range files {
		b, readErr := migrationsFS.ReadFile("migrations/" + f)
		require.NoError(t, readErr)
		all += string(b)
	}
	for _, table := range []string{"uipath_configuration", "queue_items", "jobs"} {
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
