package checker

import (
	"context"
	"fmt"

	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// SemanticsChecker verifies semantic document structure on every page:
// exactly one top-level heading, a footer element, and at least one
// section element.
type SemanticsChecker struct{}

// NewSemanticsChecker creates a new SemanticsChecker.
func NewSemanticsChecker() *SemanticsChecker {
	return &SemanticsChecker{}
}

// Name returns the checker name.
func (c *SemanticsChecker) Name() string {
	return "semantics"
}

// Category returns the check category.
func (c *SemanticsChecker) Category() string {
	return model.CategorySemantics
}

// Check runs the semantic battery against every loaded page.
func (c *SemanticsChecker) Check(ctx context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)

	for _, page := range target.Site.Pages {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if page.Missing {
			results = append(results, skipPage(c.Category(), "semantic checks", page))
			continue
		}

		results = append(results, c.checkPage(page)...)
	}

	return results
}

// checkPage runs the semantic sub-checks for a single page.
func (c *SemanticsChecker) checkPage(page *site.Page) []model.CheckResult {
	results := make([]model.CheckResult, 0, 3)

	h1Count := page.Doc.Find("h1").Length()
	if h1Count == 1 {
		results = append(results, model.Pass(c.Category(), "exactly one h1", page.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "exactly one h1", page.Name,
			fmt.Sprintf("found %d <h1> elements, want exactly 1", h1Count)))
	}

	if page.Doc.Find("footer").Length() > 0 {
		results = append(results, model.Pass(c.Category(), "footer element present", page.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "footer element present", page.Name,
			"no <footer> element found"))
	}

	if page.Doc.Find("section").Length() > 0 {
		results = append(results, model.Pass(c.Category(), "section element present", page.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "section element present", page.Name,
			"no <section> element found"))
	}

	return results
}
