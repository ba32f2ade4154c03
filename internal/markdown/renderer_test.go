package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	html, meta, err := r.Render([]byte("# Title\n\nA [link](https://example.com) and `code`."))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, `<a href="https://example.com">link</a>`)
	assert.Contains(t, out, "<code>code</code>")
	assert.Empty(t, meta)
}

func TestRender_GFMTable(t *testing.T) {
	r := NewRenderer()

	html, _, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
}

func TestRender_Frontmatter(t *testing.T) {
	r := NewRenderer()

	source := []byte("---\ntitle: Hello\ndraft: true\n---\n\n# Body")
	html, meta, err := r.Render(source)
	require.NoError(t, err)

	out := string(html)
	assert.NotContains(t, out, "draft")
	assert.Contains(t, out, "Body")

	assert.Equal(t, "Hello", meta["title"])
	assert.Equal(t, true, meta["draft"])
}
