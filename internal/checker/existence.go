package checker

import (
	"context"
	"fmt"

	"github.com/nao1215/sitecheck/internal/model"
)

// ExistenceChecker verifies that every configured page and the shared
// stylesheet are present on disk. Absence is a recorded failure, never a
// hard error: the rest of the battery skips the missing file and the run
// completes normally.
type ExistenceChecker struct{}

// NewExistenceChecker creates a new ExistenceChecker.
func NewExistenceChecker() *ExistenceChecker {
	return &ExistenceChecker{}
}

// Name returns the checker name.
func (c *ExistenceChecker) Name() string {
	return "existence"
}

// Category returns the check category.
func (c *ExistenceChecker) Category() string {
	return model.CategoryExistence
}

// Check reports presence of every configured file.
func (c *ExistenceChecker) Check(_ context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0, len(target.Site.Pages)+1)

	for _, page := range target.Site.Pages {
		if page.Missing {
			results = append(results, model.Fail(c.Category(), "file exists", page.Name,
				fmt.Sprintf("%s not found at %s", page.Name, page.Path)))
			continue
		}
		results = append(results, model.Pass(c.Category(), "file exists", page.Name))
	}

	css := target.Site.Stylesheet
	if css.Missing {
		results = append(results, model.Fail(c.Category(), "file exists", css.Name,
			fmt.Sprintf("%s not found at %s", css.Name, css.Path)))
	} else {
		results = append(results, model.Pass(c.Category(), "file exists", css.Name))
	}

	return results
}
