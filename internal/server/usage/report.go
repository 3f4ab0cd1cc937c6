// Package usage reports which Bynder assets are embedded in which posts.
// A run scans every candidate post, builds the full usage snapshot and
// submits it to the portal in one request; the scheduler repeats that on a
// fixed interval.
package usage

import (
	"fmt"

	"github.com/dmitrijs2005/bynderpress/internal/blocks"
	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
)

// BuildReport scans posts in order. Every post GUID is listed in URIs once,
// with or without usages; every asset reference becomes its own usage.
func BuildReport(posts []*models.Post) (bynder.UsageReport, error) {
	report := bynder.UsageReport{
		IntegrationID: common.IntegrationID,
		URIs:          make([]string, 0, len(posts)),
		Usages:        []bynder.Usage{},
	}

	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.GUID]; !ok {
			seen[p.GUID] = struct{}{}
			report.URIs = append(report.URIs, p.GUID)
		}

		ids, err := blocks.AssetIDs(p.Content)
		if err != nil {
			return bynder.UsageReport{}, fmt.Errorf("post %d: %w", p.ID, err)
		}
		for _, id := range ids {
			report.Usages = append(report.Usages, bynder.Usage{
				AssetID:    id,
				URI:        p.GUID,
				Additional: p.Title,
			})
		}
	}

	return report, nil
}
