package checker

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// StructureChecker verifies document skeleton expectations on every page:
// a doctype declaration, a language attribute on the root element, head and
// body elements, a non-empty title, the required meta declarations, and a
// stylesheet reference. Each sub-check is independent; failure of one does
// not block the others.
type StructureChecker struct{}

// NewStructureChecker creates a new StructureChecker.
func NewStructureChecker() *StructureChecker {
	return &StructureChecker{}
}

// Name returns the checker name.
func (c *StructureChecker) Name() string {
	return "structure"
}

// Category returns the check category.
func (c *StructureChecker) Category() string {
	return model.CategoryStructure
}

// Check runs the structural battery against every loaded page.
func (c *StructureChecker) Check(ctx context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)

	for _, page := range target.Site.Pages {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if page.Missing {
			results = append(results, skipPage(c.Category(), "structure checks", page))
			continue
		}

		results = append(results, c.checkPage(page)...)
	}

	return results
}

// checkPage runs the structural sub-checks for a single page.
func (c *StructureChecker) checkPage(page *site.Page) []model.CheckResult {
	results := make([]model.CheckResult, 0, 8)

	assert := func(name string, ok bool, detail string) {
		if ok {
			results = append(results, model.Pass(c.Category(), name, page.Name))
		} else {
			results = append(results, model.Fail(c.Category(), name, page.Name, detail))
		}
	}

	assert("doctype declared", page.HasDoctype,
		"document does not start with a <!DOCTYPE> declaration")

	assert("html has lang attribute", strings.TrimSpace(page.Lang()) != "",
		"<html> element carries no lang attribute")

	assert("head element present", page.Doc.Find("head").Length() > 0,
		"no <head> element found")

	assert("body element present", page.Doc.Find("body").Length() > 0,
		"no <body> element found")

	assert("title is non-empty", page.Title() != "",
		"<title> is missing or empty")

	assert("meta charset declared", c.hasCharset(page),
		"no <meta charset> declaration found")

	viewport, _ := page.Doc.Find(`head meta[name="viewport"]`).First().Attr("content")
	assert("meta viewport declared", strings.TrimSpace(viewport) != "",
		"no <meta name=\"viewport\"> with content found")

	assert("stylesheet linked", c.hasStylesheetLink(page),
		"no <link rel=\"stylesheet\"> reference found")

	return results
}

// hasCharset reports whether the page declares a character encoding, either
// as <meta charset> or the legacy http-equiv form.
func (c *StructureChecker) hasCharset(page *site.Page) bool {
	if page.Doc.Find("meta[charset]").Length() > 0 {
		return true
	}
	equiv, _ := page.Doc.Find(`meta[http-equiv]`).First().Attr("http-equiv")
	return strings.EqualFold(equiv, "Content-Type")
}

// hasStylesheetLink reports whether the page references any stylesheet.
func (c *StructureChecker) hasStylesheetLink(page *site.Page) bool {
	found := false
	page.Doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && strings.TrimSpace(href) != "" {
			found = true
		}
	})
	return found
}
