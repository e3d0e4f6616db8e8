package checker

import (
	"context"
	"regexp"
	"strings"

	"github.com/nao1215/sitecheck/internal/model"
)

// StylesheetChecker verifies the shared stylesheet defines the design
// system the pages depend on: a root-scoped custom-property block, at least
// one responsive breakpoint rule, and at least one animation definition.
//
// Design decision: We scan the raw CSS text with anchored patterns rather
// than pulling in a CSS parser. The checks are presence assertions over
// top-level at-rules and the :root block; tokenizing the full grammar adds
// nothing to them.
type StylesheetChecker struct {
	// rootTokens matches a :root block that declares custom properties.
	rootTokens *regexp.Regexp
}

// NewStylesheetChecker creates a new StylesheetChecker.
func NewStylesheetChecker() *StylesheetChecker {
	return &StylesheetChecker{
		rootTokens: regexp.MustCompile(`:root\s*\{[^}]*--[A-Za-z0-9-]+\s*:`),
	}
}

// Name returns the checker name.
func (c *StylesheetChecker) Name() string {
	return "stylesheet"
}

// Category returns the check category.
func (c *StylesheetChecker) Category() string {
	return model.CategoryStylesheet
}

// Check runs the stylesheet battery.
func (c *StylesheetChecker) Check(_ context.Context, target *Target) []model.CheckResult {
	css := target.Site.Stylesheet
	if css.Missing {
		// Absence is reported by the existence checker; skip the battery.
		return []model.CheckResult{
			model.Skip(c.Category(), "stylesheet checks", css.Name, "stylesheet is missing, checks skipped"),
		}
	}

	results := make([]model.CheckResult, 0, 3)

	if c.rootTokens.MatchString(css.Raw) {
		results = append(results, model.Pass(c.Category(), "design tokens defined", css.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "design tokens defined", css.Name,
			"no :root block declaring custom properties found"))
	}

	if strings.Contains(css.Raw, "@media") {
		results = append(results, model.Pass(c.Category(), "responsive breakpoint defined", css.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "responsive breakpoint defined", css.Name,
			"no @media rule found"))
	}

	if strings.Contains(css.Raw, "@keyframes") {
		results = append(results, model.Pass(c.Category(), "animation defined", css.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "animation defined", css.Name,
			"no @keyframes rule found"))
	}

	return results
}
