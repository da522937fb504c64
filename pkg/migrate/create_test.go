package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSlug(t *testing.T) {
	assert.Equal(t, "add_venue_notes", migrationSlug("  Add Venue-Notes!! "))
	assert.Empty(t, migrationSlug("!!!"))
}

func TestCreateSQLMigrationRefusesCollision(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	path, err := createSQLMigration(dir, "add notes", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260301090000_add_notes.sql"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), upMarker))

	_, err = createSQLMigration(dir, "add notes", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestValidateFSAggregatesProblems(t *testing.T) {
	fsys := fstest.MapFS{
		"m/bad-name.sql":                 {Data: []byte(upMarker + "\n" + downMarker)},
		"m/20260101000000_flipped.sql":   {Data: []byte(downMarker + "\n" + upMarker)},
		"m/20260101000000_duplicate.sql": {Data: []byte(upMarker + "\n" + downMarker)},
		"m/20260102000000_ok.sql":        {Data: []byte(upMarker + "\n" + downMarker)},
		"m/README.md":                    {Data: []byte("ignored")},
	}
	err := ValidateFS(fsys, "m")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "bad-name.sql")
	assert.Contains(t, msg, "already used")
	assert.NotContains(t, msg, "20260102000000_ok.sql")
}

func TestEmbeddedMigrationsValidate(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}
