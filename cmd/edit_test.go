package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useEditor installs a fake editor that overwrites the file with content.
func useEditor(t *testing.T, env *testEnv, content string) {
	t.Helper()
	bin := t.TempDir()
	script, err := writeScript(bin, "editor", "cat > \"$1\" <<'JSON'\n"+content+"\nJSON\n")
	require.NoError(t, err)
	env.setenv("EDITOR=" + script)
}

func TestEdit(t *testing.T) {
	t.Run("apply edited mapping", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		web := env.mkdir("src/web")
		env.run("tag", api, "-y")
		useEditor(t, env, `{"`+api+`": ["api", "work"], "`+web+`": ["web"]}`)

		out := env.run("edit", "-y")
		env.contains(out, "Tags saved successfully")
		assert.Equal(t, map[string][]string{api: {"api", "work"}, web: {"web"}}, env.mapping())
	})

	t.Run("unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		env.run("tag", api, "-y")
		useEditor(t, env, `{"`+api+`":["api"]}`)

		out := env.run("edit", "-y")
		env.equals(out, "Nothing to do")
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		env.run("tag", api, "-y")
		useEditor(t, env, `{"`+api+`": ["Not Canonical"]}`)

		out, err := env.runErr("edit", "-y")
		require.Error(t, err)
		env.contains(out, "bad tag name")
		assert.Equal(t, map[string][]string{api: {"api"}}, env.mapping())
	})

	t.Run("declined", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		env.run("tag", api, "-y")
		useEditor(t, env, `{}`)

		out := env.runStdin("n\n", "edit")
		env.contains(out, "Apply changes? [y/n]")
		assert.Equal(t, map[string][]string{api: {"api"}}, env.mapping())
	})

	t.Run("repairs a corrupt mapping", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		require.NoError(t, os.MkdirAll(env.root, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(env.root, "mapping.json"), []byte("{not json"), 0o644))

		_, err := env.runErr("tags")
		require.Error(t, err)

		useEditor(t, env, `{"`+api+`": ["api"]}`)
		env.run("edit", "-y")
		assert.Equal(t, map[string][]string{api: {"api"}}, env.mapping())
	})

	t.Run("repairs a corrupt mapping by clearing it", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, os.MkdirAll(env.root, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(env.root, "mapping.json"), []byte("{not json"), 0o644))
		useEditor(t, env, `{}`)

		out := env.run("edit", "-y")
		env.contains(out, "Tags saved successfully")
		assert.Empty(t, env.mapping())

		out = env.run("tags")
		env.equals(out, "Nothing to list")
	})

	t.Run("editor from config", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		script, err := writeScript(t.TempDir(), "ed", "echo '{\""+api+"\": [\"cfg\"]}' > \"$1\"\n")
		require.NoError(t, err)
		env.setenv("EDITOR=false")
		env.run("config", "editor", script)

		env.run("edit", "-y")
		assert.Equal(t, map[string][]string{api: {"cfg"}}, env.mapping())
	})
}
