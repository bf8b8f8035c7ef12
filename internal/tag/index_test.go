package tag_test

import (
	"testing"

	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/stretchr/testify/assert"
)

func TestReverse(t *testing.T) {
	r := store.Relation{"/a": store.NewSet("x"), "/b": store.NewSet("x", "y")}

	ix := tag.Reverse(r)
	assert.Equal(t, []string{"x", "y"}, ix.Tags())
	assert.Equal(t, []string{"/a", "/b"}, ix.Dirs("x"))
	assert.Equal(t, []string{"/b"}, ix.Dirs("y"))
	assert.Nil(t, ix.Dirs("z"))
}

func TestReverse_Involution(t *testing.T) {
	tests := []struct {
		name string
		r    store.Relation
	}{
		{"empty", store.Empty()},
		{"single", store.Relation{"/a": store.NewSet("x")}},
		{"shared tags", store.Relation{
			"/a": store.NewSet("x", "y"),
			"/b": store.NewSet("y", "z"),
			"/c": store.NewSet("z"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := tag.Unreverse(tag.Reverse(tt.r))
			assert.True(t, back.Equal(tt.r), "got %v", back)
			assert.Equal(t, tag.Reverse(tt.r), tag.Reverse(back))
		})
	}
}

func TestFilter(t *testing.T) {
	r := store.Relation{"/a": store.NewSet("x"), "/b": store.NewSet("x", "y")}

	got := tag.Filter(r, []string{"y"})
	assert.True(t, got.Equal(store.Relation{"/b": store.NewSet("x", "y")}))

	assert.True(t, tag.Filter(r, nil).Equal(r))
	assert.Empty(t, tag.Filter(r, []string{"nope"}))
}

func TestSelect(t *testing.T) {
	r := store.Relation{
		"/a": store.NewSet("x"),
		"/b": store.NewSet("y"),
		"/c": store.NewSet("z"),
	}

	got := tag.Select(r, []string{"/a"}, []string{"z"})
	assert.Equal(t, []string{"/a", "/c"}, got.Dirs())

	got = tag.Select(r, []string{"/b", "/untracked"}, nil)
	assert.Equal(t, []string{"/b"}, got.Dirs())

	assert.True(t, tag.Select(r, nil, nil).Equal(r))
}

func TestLookup(t *testing.T) {
	r := store.Relation{"/b": store.NewSet("x"), "/a": store.NewSet("x", "y")}

	assert.Equal(t, []string{"/a", "/b"}, tag.Lookup(r, "x"))
	assert.Equal(t, []string{"/a"}, tag.Lookup(r, "y"))
	assert.Empty(t, tag.Lookup(r, "z"))
}
