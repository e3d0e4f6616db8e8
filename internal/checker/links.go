package checker

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// LinkChecker resolves every internal hyperlink target across all pages.
// Absolute external URLs, same-page fragments, and mailto references are
// excluded; remaining targets are deduplicated by their literal href string
// and each must exist as a file under the site root.
//
// Exactly one result is produced per unique target, so a single broken link
// fails exactly one check regardless of how many pages reference it.
type LinkChecker struct{}

// NewLinkChecker creates a new LinkChecker.
func NewLinkChecker() *LinkChecker {
	return &LinkChecker{}
}

// Name returns the checker name.
func (c *LinkChecker) Name() string {
	return "links"
}

// Category returns the check category.
func (c *LinkChecker) Category() string {
	return model.CategoryLinks
}

// Check collects and resolves internal links from every loaded page.
func (c *LinkChecker) Check(ctx context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)
	seen := make(map[string]bool)

	for _, page := range target.Site.Pages {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if page.Missing {
			continue // absence already reported by the existence checker
		}

		page.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if !site.IsInternalLink(href) {
				return
			}
			if seen[href] {
				return
			}
			seen[href] = true

			name := "internal link resolves: " + href
			if target.Site.ResolveFile(href) {
				results = append(results, model.Pass(c.Category(), name, page.Name).WithValue(href))
			} else {
				results = append(results, model.Fail(c.Category(), name, page.Name,
					fmt.Sprintf("target %s does not exist under the site root", site.CleanTarget(href))).WithValue(href))
			}
		})
	}

	return results
}
