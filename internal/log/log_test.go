package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTest opens the global logger on a fresh store root and returns a
// second handle for reading back what was written.
func openTest(t *testing.T) (root string, db *sql.DB) {
	t.Helper()
	Close()
	root = t.TempDir()
	require.NoError(t, Open(root))
	t.Cleanup(Close)

	db, err := sql.Open("sqlite", DBPath(root))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return root, db
}

func TestOpen(t *testing.T) {
	root, _ := openTest(t)
	assert.FileExists(t, DBPath(root))
	assert.Equal(t, filepath.Join(root, "log", "dtags-log.db"), DBPath(root))

	// Second call is a no-op.
	require.NoError(t, Open(t.TempDir()))
}

func TestBuilder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		root, db := openTest(t)

		Event("tag:tag", "tag").
			Path("/home/me/proj").
			Changes(2).
			Write(nil)

		var store, source, action, path string
		var changes, success int
		err := db.QueryRow("SELECT store, source, action, path, changes, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&store, &source, &action, &path, &changes, &success)
		require.NoError(t, err)
		assert.Equal(t, hash(root), store)
		assert.Equal(t, "tag:tag", source)
		assert.Equal(t, "tag", action)
		assert.Equal(t, "/home/me/proj", path)
		assert.Equal(t, 2, changes)
		assert.Equal(t, 1, success)
	})

	t.Run("error", func(t *testing.T) {
		_, db := openTest(t)

		Event("nav:d", "cd").Path("nowhere").Write(errors.New("Invalid destination: nowhere"))

		var success int
		var errMsg string
		err := db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "Invalid destination: nowhere", errMsg)
	})

	t.Run("detail", func(t *testing.T) {
		_, db := openTest(t)

		Event("run:run", "run").
			Detail("command", []string{"git", "status"}).
			Detail("failed", 3).
			Write(nil)

		var detail string
		err := db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "git")
		assert.Contains(t, detail, `"failed":3`)
	})
}

func TestLog_WithoutLogger(t *testing.T) {
	Close()
	// Should not panic
	Event("tag:tag", "tag").Write(nil)
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/.dtags")
	h2 := hash("/home/user/.dtags")
	h3 := hash("/tmp/other")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}
