package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"YES", "YES\n", true},
		{"true", "true\n", true},
		{"no", "n\n", false},
		{"off", "off\n", false},
		{"no newline", "y", true},
		{"eof", "", false},
		{"retry then yes", "maybe\n\ny\n", true},
		{"garbage then eof", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out, false)

			got, err := p.Confirm("Apply changes?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Apply changes? [y/n] ")
		})
	}
}

func TestConfirm_RetryMessage(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("what\nn\n"), &out, false)

	got, err := p.Confirm("Apply changes?")
	require.NoError(t, err)
	assert.False(t, got)
	assert.Contains(t, out.String(), `Please respond with "y" or "n"`)
}

func TestChoose(t *testing.T) {
	options := []string{"/a", "/b", "/c"}

	var out bytes.Buffer
	p := New(strings.NewReader("2\n"), &out, false)
	got, err := p.Choose("Select directory", options)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, "1: /a\n2: /b\n3: /c\n\nSelect directory (1 - 3): ", out.String())
}

func TestChoose_Errors(t *testing.T) {
	options := []string{"/a", "/b"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not a number", "x\n", "invalid input: x"},
		{"too high", "3\n", "index out of range: 3"},
		{"zero", "0\n", "index out of range: 0"},
		{"eof", "", "aborted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(strings.NewReader(tt.input), &bytes.Buffer{}, false)
			_, err := p.Choose("Select directory", options)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := New(strings.NewReader(""), &bytes.Buffer{}, false).Choose("x", nil)
	assert.Error(t, err)
}
