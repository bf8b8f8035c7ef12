package shell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	p := Paths{
		Bin:         "/usr/local/bin/dtags",
		Destination: "/home/me/.dtags/destination",
		Completion:  "/home/me/.dtags/completion",
	}

	for _, sh := range Supported {
		t.Run(sh, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, sh, p))
			out := buf.String()

			assert.Contains(t, out, "'/usr/local/bin/dtags' d")
			assert.Contains(t, out, "'/home/me/.dtags/destination'")
			assert.Contains(t, out, "'/home/me/.dtags/completion'")
			assert.NotContains(t, out, "{{")
		})
	}
}

func TestRender_Unsupported(t *testing.T) {
	err := Render(&bytes.Buffer{}, "tcsh", Paths{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'/it'\''s here'`, posixQuote("/it's here"))
	assert.Equal(t, `'/it\'s \\here'`, fishQuote(`/it's \here`))
}
