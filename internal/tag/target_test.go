package tag_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/jpl-au/dtags/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree creates named directories under a temp root and returns their
// canonical paths.
func tree(t *testing.T, names ...string) map[string]string {
	t.Helper()
	root := t.TempDir()
	out := make(map[string]string, len(names))
	for _, n := range names {
		d := filepath.Join(root, n)
		require.NoError(t, os.Mkdir(d, 0755))
		c, ok := path.Dir(d)
		require.True(t, ok)
		out[n] = c
	}
	return out
}

func TestResolve(t *testing.T) {
	d := tree(t, "api", "web", "work")
	r := store.Relation{
		d["api"]: store.NewSet("api", "work"),
		d["web"]: store.NewSet("web", "work"),
	}

	got, err := tag.Resolve(r, "work", false)
	require.NoError(t, err)
	assert.Equal(t, []string{d["api"], d["web"]}, got)

	got, err = tag.Resolve(r, "@api", false)
	require.NoError(t, err)
	assert.Equal(t, []string{d["api"]}, got)

	// An untagged directory is still a valid destination.
	got, err = tag.Resolve(r, d["work"], false)
	require.NoError(t, err)
	assert.Equal(t, []string{d["work"]}, got)

	_, err = tag.Resolve(r, "nope", false)
	assert.ErrorIs(t, err, tag.ErrNoTarget)
	assert.EqualError(t, err, "invalid destination: nope")

	_, err = tag.Resolve(r, "!!!", false)
	assert.ErrorIs(t, err, tag.ErrNoTarget)
}

func TestResolve_TagOnly(t *testing.T) {
	d := tree(t, "work")
	r := store.Relation{d["work"]: store.NewSet("other")}

	_, err := tag.Resolve(r, d["work"], true)
	assert.ErrorIs(t, err, tag.ErrNoTarget)

	got, err := tag.Resolve(r, "other", true)
	require.NoError(t, err)
	assert.Equal(t, []string{d["work"]}, got)
}

func TestResolveAll(t *testing.T) {
	d := tree(t, "a", "b", "c")
	r := store.Relation{
		d["a"]: store.NewSet("x"),
		d["b"]: store.NewSet("x", "y"),
	}

	got, err := tag.ResolveAll(r, []string{"y", "x", d["c"]}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{d["b"], d["a"], d["c"]}, got)

	_, err = tag.ResolveAll(r, []string{"x", "missing"}, false)
	assert.ErrorIs(t, err, tag.ErrNoTarget)
}

func TestKnown(t *testing.T) {
	d := tree(t, "a", "gone")
	r := store.Relation{
		d["a"]:    store.NewSet("x"),
		d["gone"]: store.NewSet("y"),
	}
	require.NoError(t, os.Remove(d["gone"]))

	got, err := tag.Known(r, []string{d["gone"], d["a"]})
	require.NoError(t, err)
	assert.Equal(t, []string{d["a"], d["gone"]}, got)

	_, err = tag.Known(r, []string{filepath.Join(filepath.Dir(d["a"]), "never")})
	assert.ErrorIs(t, err, validate.ErrInvalidPath)
}
