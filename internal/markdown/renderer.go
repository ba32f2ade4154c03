package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Renderer converts markdown file bodies to HTML. A frontmatter block is
// decoded into metadata instead of leaking into the rendered output.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Renderer{
		md: md,
	}
}

// Render returns the HTML for source plus the decoded frontmatter block.
// Sources without frontmatter get an empty metadata map.
func (r *Renderer) Render(source []byte) ([]byte, map[string]any, error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err := r.md.Convert(source, &buf, parser.WithContext(context))
	if err != nil {
		return nil, nil, err
	}

	meta := map[string]any{}
	if data := frontmatter.Get(context); data != nil {
		if err := data.Decode(&meta); err != nil {
			return nil, nil, err
		}
	}

	return buf.Bytes(), meta, nil
}
