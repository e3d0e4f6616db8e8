package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// NavigationChecker verifies that every page carries a navigation element
// linking to every known page, and that the current page's link carries the
// active marker class.
//
// Design decision: The original battery only checked that the current
// page's link is marked active, leaving exclusivity unverified. We assert
// exclusivity as its own check by default; rules can switch it off
// (nav.exclusive: false) for sites that mark multiple links.
type NavigationChecker struct{}

// NewNavigationChecker creates a new NavigationChecker.
func NewNavigationChecker() *NavigationChecker {
	return &NavigationChecker{}
}

// Name returns the checker name.
func (c *NavigationChecker) Name() string {
	return "navigation"
}

// Category returns the check category.
func (c *NavigationChecker) Category() string {
	return model.CategoryNavigation
}

// Check runs the navigation battery against every loaded page.
func (c *NavigationChecker) Check(ctx context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)

	for _, page := range target.Site.Pages {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if page.Missing {
			results = append(results, skipPage(c.Category(), "navigation checks", page))
			continue
		}

		results = append(results, c.checkPage(page, target)...)
	}

	return results
}

// checkPage runs the navigation sub-checks for a single page.
func (c *NavigationChecker) checkPage(page *site.Page, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)

	nav := page.Doc.Find("nav").First()
	if nav.Length() == 0 {
		results = append(results, model.Fail(c.Category(), "nav element present", page.Name,
			"no <nav> element found"))
		return results
	}
	results = append(results, model.Pass(c.Category(), "nav element present", page.Name))

	// Every known page must be reachable from the navigation.
	for _, known := range target.Rules.Pages {
		name := "nav links to " + known
		if c.navLink(nav, known).Length() > 0 {
			results = append(results, model.Pass(c.Category(), name, page.Name).WithValue(known))
		} else {
			results = append(results, model.Fail(c.Category(), name, page.Name,
				fmt.Sprintf("no nav link targeting %s", known)).WithValue(known))
		}
	}

	activeClass := target.Rules.Nav.ActiveClass

	// The current page's link must carry the active marker.
	current := c.navLink(nav, page.Name)
	switch {
	case current.Length() == 0:
		results = append(results, model.Skip(c.Category(), "current nav link is active", page.Name,
			"no nav link targets the current page"))
	case current.HasClass(activeClass):
		results = append(results, model.Pass(c.Category(), "current nav link is active", page.Name))
	default:
		results = append(results, model.Fail(c.Category(), "current nav link is active", page.Name,
			fmt.Sprintf("nav link to %s does not carry class %q", page.Name, activeClass)))
	}

	// Exclusivity: no other nav link may carry the active marker.
	if target.Rules.NavExclusive() {
		var marked []string
		nav.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			linkTarget := site.CleanTarget(href)
			if linkTarget != page.Name && a.HasClass(activeClass) {
				marked = append(marked, href)
			}
		})

		if len(marked) == 0 {
			results = append(results, model.Pass(c.Category(), "active class is exclusive", page.Name))
		} else {
			results = append(results, model.Fail(c.Category(), "active class is exclusive", page.Name,
				fmt.Sprintf("other nav links carry class %q: %s", activeClass, strings.Join(marked, ", "))))
		}
	}

	return results
}

// navLink returns the nav anchors whose cleaned href targets the given page.
func (c *NavigationChecker) navLink(nav *goquery.Selection, page string) *goquery.Selection {
	return nav.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		return ok && site.CleanTarget(href) == page
	})
}
