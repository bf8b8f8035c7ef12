package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestD(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")

		env.run("d", api)
		env.equals(env.file("destination"), api)
	})

	t.Run("no argument goes home", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("d")
		env.equals(env.file("destination"), env.home)
	})

	t.Run("single tag", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		env.run("tag", api, "-y")

		env.run("d", "@api")
		env.equals(env.file("destination"), api)
	})

	t.Run("directory wins over tag", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		local := env.mkdir("api")
		env.run("tag", api, "-y")

		// The child runs in home, so "api" is also ./api.
		env.run("d", "api")
		env.equals(env.file("destination"), local)

		env.run("d", "api", "-t")
		env.equals(env.file("destination"), api)
	})

	t.Run("choose between tagged directories", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		web := env.mkdir("src/web")
		env.run("tag", api, web, "-t", "work", "-y")

		out := env.runStdin("2\n", "d", "work")
		env.contains(out, "1: "+api)
		env.contains(out, "2: "+web)
		env.contains(out, "Select directory (1 - 2): ")
		env.equals(env.file("destination"), web)
	})

	t.Run("choice out of range", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")
		web := env.mkdir("src/web")
		env.run("tag", api, web, "-t", "work", "-y")

		out, err := env.runStdinErr("9\n", "d", "work")
		require.Error(t, err)
		env.contains(out, "index out of range: 9")
	})

	t.Run("unknown destination", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("d", "nowhere")
		require.Error(t, err)
		assert.Equal(t, 1, exitCode(t, err))
		env.contains(out, "invalid destination: nowhere")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		api := env.mkdir("src/api")

		var got struct {
			Dir string `json:"dir"`
		}
		env.runJSON(&got, "d", api)
		assert.Equal(t, api, got.Dir)
	})
}
