package blocks

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AssetIDs returns every non-empty data-bynder-id attribute value found in
// content, in document order, exactly as written. Repeated embeds of the same asset are
// returned once per occurrence. Text that merely looks like the attribute
// (inside code samples, escaped markup) is not an element attribute and is
// ignored.
func AssetIDs(content string) ([]string, error) {
	if !strings.Contains(content, IDAttribute) {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	var ids []string
	doc.Find("[" + IDAttribute + "]").Each(func(_ int, s *goquery.Selection) {
		if id := s.AttrOr(IDAttribute, ""); id != "" {
			ids = append(ids, id)
		}
	})
	return ids, nil
}
