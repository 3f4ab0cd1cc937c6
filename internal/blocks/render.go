package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markup serializes the block the way the block editor stores it in post
// content: comment delimiters around the saved element.
func (b *Block) Markup() (string, error) {
	root, attrs, err := b.element()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	name := delimiterName(b.Kind)

	buf.WriteString("<!-- wp:" + name)
	if len(attrs) > 0 {
		enc, err := json.Marshal(attrs)
		if err != nil {
			return "", err
		}
		buf.WriteString(" ")
		buf.Write(enc)
	}
	buf.WriteString(" -->\n")

	if err := html.Render(&buf, root); err != nil {
		return "", err
	}

	buf.WriteString("\n<!-- /wp:" + name + " -->")
	return buf.String(), nil
}

func (b *Block) element() (*html.Node, map[string]any, error) {
	switch b.Kind {
	case KindImage:
		fig := elem(atom.Figure, "class", "wp-block-image")
		setID(fig, b.Bynder)
		fig.AppendChild(elem(atom.Img, "src", b.URL, "alt", b.Alt))
		if b.Caption != "" {
			fig.AppendChild(withText(elem(atom.Figcaption), b.Caption))
		}
		return fig, nil, nil

	case KindVideo:
		fig := elem(atom.Figure, "class", "wp-block-video")
		setID(fig, b.Bynder)
		fig.AppendChild(elem(atom.Video, "controls", "", "src", b.URL))
		return fig, nil, nil

	case KindFile:
		div := elem(atom.Div, "class", "wp-block-file")
		setID(div, b.Bynder)
		div.AppendChild(withText(elem(atom.A, "href", b.URL), b.FileName))
		div.AppendChild(withText(elem(atom.A, "href", b.URL, "class", "wp-block-file__button", "download", ""), "Download"))
		return div, nil, nil

	case KindGallery:
		columns := min(len(b.Images), 3)
		fig := elem(atom.Figure, "class", fmt.Sprintf("wp-block-gallery columns-%d is-cropped", columns))
		ul := elem(atom.Ul, "class", "blocks-gallery-grid")
		for _, img := range b.Images {
			li := elem(atom.Li, "class", "blocks-gallery-item")
			item := elem(atom.Figure)
			setID(item, img.Bynder)
			item.AppendChild(elem(atom.Img, "src", img.URL, "alt", img.Alt))
			li.AppendChild(item)
			ul.AppendChild(li)
		}
		fig.AppendChild(ul)

		var attrs map[string]any
		if b.BynderGallery {
			attrs = map[string]any{"bynderGallery": true}
		}
		return fig, attrs, nil
	}

	return nil, nil, fmt.Errorf("unsupported block kind %q", b.Kind)
}

// delimiterName drops the implicit "core/" namespace, as the editor does.
func delimiterName(k Kind) string {
	return strings.TrimPrefix(string(k), "core/")
}

func elem(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func setID(n *html.Node, id string) {
	if id == "" {
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: IDAttribute, Val: id})
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
