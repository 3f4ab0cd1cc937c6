package blocks

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dmitrijs2005/bynderpress/internal/common"
)

// Parse reads a single serialized block back into its attributes. The asset
// id is taken from the same element and attribute it was saved on, so an
// id survives a save/load cycle unchanged.
func Parse(markup string) (*Block, error) {
	kind, attrs, err := readDelimiter(markup)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedMarkup, err)
	}

	b := &Block{Kind: kind}
	src, ok := AttributeSources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported block %q", common.ErrMalformedMarkup, kind)
	}

	switch kind {
	case KindImage:
		fig := doc.Find(src.Selector).First()
		b.Bynder = fig.AttrOr(src.Attribute, "")
		img := fig.Find("img").First()
		b.URL = img.AttrOr("src", "")
		b.Alt = img.AttrOr("alt", "")
		b.Caption = strings.TrimSpace(fig.Find("figcaption").First().Text())

	case KindVideo:
		fig := doc.Find(src.Selector).First()
		b.Bynder = fig.AttrOr(src.Attribute, "")
		b.URL = fig.Find("video").First().AttrOr("src", "")

	case KindFile:
		div := doc.Find("div.wp-block-file").First()
		if div.Length() == 0 {
			div = doc.Find(src.Selector).First()
		}
		b.Bynder = div.AttrOr(src.Attribute, "")
		link := div.Find("a").First()
		b.URL = link.AttrOr("href", "")
		b.FileName = strings.TrimSpace(link.Text())

	case KindGallery:
		if v, ok := attrs["bynderGallery"].(bool); ok {
			b.BynderGallery = v
		}
		doc.Find(src.Selector).Each(func(_ int, fig *goquery.Selection) {
			img := fig.Find("img").First()
			b.Images = append(b.Images, GalleryImage{
				URL:    img.AttrOr("src", ""),
				Alt:    img.AttrOr("alt", ""),
				Bynder: fig.AttrOr(src.Attribute, ""),
			})
		})
	}

	return b, nil
}

// readDelimiter finds the opening "<!-- wp:name {json} -->" comment.
func readDelimiter(markup string) (Kind, map[string]any, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return "", nil, fmt.Errorf("%w: no block delimiter", common.ErrMalformedMarkup)
			}
			return "", nil, fmt.Errorf("%w: %v", common.ErrMalformedMarkup, z.Err())
		case html.CommentToken:
			data := strings.TrimSpace(string(z.Text()))
			rest, ok := strings.CutPrefix(data, "wp:")
			if !ok {
				continue
			}
			return parseDelimiter(rest)
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) != "" {
				return "", nil, fmt.Errorf("%w: content before block delimiter", common.ErrMalformedMarkup)
			}
		default:
			return "", nil, fmt.Errorf("%w: element before block delimiter", common.ErrMalformedMarkup)
		}
	}
}

func parseDelimiter(s string) (Kind, map[string]any, error) {
	name, rawAttrs, _ := strings.Cut(s, " ")
	if name == "" {
		return "", nil, fmt.Errorf("%w: empty block name", common.ErrMalformedMarkup)
	}
	if !strings.Contains(name, "/") {
		name = "core/" + name
	}

	var attrs map[string]any
	if rawAttrs = strings.TrimSpace(rawAttrs); rawAttrs != "" {
		if err := json.Unmarshal([]byte(rawAttrs), &attrs); err != nil {
			return "", nil, fmt.Errorf("%w: block attributes: %v", common.ErrMalformedMarkup, err)
		}
	}
	return Kind(name), attrs, nil
}
