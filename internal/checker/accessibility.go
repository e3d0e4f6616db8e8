package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// AccessibilityChecker verifies that every image carries non-empty
// alternative text and, on the form page, that every visible form control
// is associated with a label or carries an explicit accessible name.
type AccessibilityChecker struct{}

// NewAccessibilityChecker creates a new AccessibilityChecker.
func NewAccessibilityChecker() *AccessibilityChecker {
	return &AccessibilityChecker{}
}

// Name returns the checker name.
func (c *AccessibilityChecker) Name() string {
	return "accessibility"
}

// Category returns the check category.
func (c *AccessibilityChecker) Category() string {
	return model.CategoryAccessibility
}

// Check runs the accessibility battery against every loaded page.
func (c *AccessibilityChecker) Check(ctx context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)

	for _, page := range target.Site.Pages {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if page.Missing {
			results = append(results, skipPage(c.Category(), "accessibility checks", page))
			continue
		}

		results = append(results, c.checkAltText(page))

		if page.Name == target.Rules.Form.Page {
			results = append(results, c.checkLabelAssociations(page))
		}
	}

	return results
}

// checkAltText asserts every image on the page has non-empty alt text.
// The diagnostic states the count of offending images.
func (c *AccessibilityChecker) checkAltText(page *site.Page) model.CheckResult {
	missing := 0
	page.Doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		alt, ok := img.Attr("alt")
		if !ok || strings.TrimSpace(alt) == "" {
			missing++
		}
	})

	if missing == 0 {
		return model.Pass(c.Category(), "images have alt text", page.Name)
	}
	return model.Fail(c.Category(), "images have alt text", page.Name,
		fmt.Sprintf("%d images missing alt", missing))
}

// checkLabelAssociations asserts every visible input and textarea inside
// the form is associated with a label via a matching id, or carries an
// explicit aria-label.
func (c *AccessibilityChecker) checkLabelAssociations(page *site.Page) model.CheckResult {
	form := page.Doc.Find("form").First()
	if form.Length() == 0 {
		return model.Skip(c.Category(), "form controls have labels", page.Name,
			"no <form> element found")
	}

	var unlabeled []string
	form.Find("input, textarea").Each(func(_ int, control *goquery.Selection) {
		typ, _ := control.Attr("type")
		switch strings.ToLower(typ) {
		case "hidden", "submit", "button", "reset":
			return
		}

		if aria, ok := control.Attr("aria-label"); ok && strings.TrimSpace(aria) != "" {
			return
		}
		if id, ok := control.Attr("id"); ok && id != "" {
			if page.Doc.Find(fmt.Sprintf(`label[for=%q]`, id)).Length() > 0 {
				return
			}
		}

		name, _ := control.Attr("name")
		if name == "" {
			name = "(unnamed)"
		}
		unlabeled = append(unlabeled, name)
	})

	if len(unlabeled) == 0 {
		return model.Pass(c.Category(), "form controls have labels", page.Name)
	}
	return model.Fail(c.Category(), "form controls have labels", page.Name,
		fmt.Sprintf("%d controls without label association: %s",
			len(unlabeled), strings.Join(unlabeled, ", ")))
}
