package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/sitecheck/internal/model"
)

// FormChecker verifies the contact form contract on the configured form
// page: the form exists, carries the required named inputs and text area,
// the email field has the semantic email input type, a submit control
// exists, and enough labels are present.
type FormChecker struct{}

// NewFormChecker creates a new FormChecker.
func NewFormChecker() *FormChecker {
	return &FormChecker{}
}

// Name returns the checker name.
func (c *FormChecker) Name() string {
	return "form"
}

// Category returns the check category.
func (c *FormChecker) Category() string {
	return model.CategoryForm
}

// Check runs the form battery against the configured form page.
func (c *FormChecker) Check(_ context.Context, target *Target) []model.CheckResult {
	rules := target.Rules.Form
	if rules.Page == "" {
		return nil
	}

	page := target.Site.Page(rules.Page)
	if page == nil {
		return nil
	}
	if page.Missing {
		return []model.CheckResult{skipPage(c.Category(), "form checks", page)}
	}

	results := make([]model.CheckResult, 0)

	form := page.Doc.Find("form").First()
	if form.Length() == 0 {
		results = append(results, model.Fail(c.Category(), "form element present", page.Name,
			"no <form> element found"))
		return results
	}
	results = append(results, model.Pass(c.Category(), "form element present", page.Name))

	// Required named inputs.
	for _, field := range rules.Fields {
		name := "form has input: " + field
		sel := form.Find(fmt.Sprintf(`input[name=%q]`, field))
		if sel.Length() > 0 {
			results = append(results, model.Pass(c.Category(), name, page.Name).WithValue(field))
		} else {
			results = append(results, model.Fail(c.Category(), name, page.Name,
				fmt.Sprintf("no input named %q inside the form", field)).WithValue(field))
		}
	}

	// The email input carries the semantic email type.
	if rules.EmailField != "" {
		email := form.Find(fmt.Sprintf(`input[name=%q]`, rules.EmailField)).First()
		switch {
		case email.Length() == 0:
			results = append(results, model.Skip(c.Category(), "email field has correct type", page.Name,
				fmt.Sprintf("input %q not present", rules.EmailField)))
		default:
			typ, _ := email.Attr("type")
			if strings.EqualFold(typ, "email") {
				results = append(results, model.Pass(c.Category(), "email field has correct type", page.Name))
			} else {
				results = append(results, model.Fail(c.Category(), "email field has correct type", page.Name,
					fmt.Sprintf("input %q has type %q, want \"email\"", rules.EmailField, typ)))
			}
		}
	}

	// Required named text area.
	if rules.Textarea != "" {
		name := "form has textarea: " + rules.Textarea
		if form.Find(fmt.Sprintf(`textarea[name=%q]`, rules.Textarea)).Length() > 0 {
			results = append(results, model.Pass(c.Category(), name, page.Name).WithValue(rules.Textarea))
		} else {
			results = append(results, model.Fail(c.Category(), name, page.Name,
				fmt.Sprintf("no textarea named %q inside the form", rules.Textarea)).WithValue(rules.Textarea))
		}
	}

	// Submit control: input[type=submit], button[type=submit], or a button
	// without an explicit type (submit is the HTML default).
	submit := form.Find(`input[type="submit"], button[type="submit"], button:not([type])`)
	if submit.Length() > 0 {
		results = append(results, model.Pass(c.Category(), "submit control present", page.Name))
	} else {
		results = append(results, model.Fail(c.Category(), "submit control present", page.Name,
			"no submit input or button inside the form"))
	}

	// Label count.
	labelName := fmt.Sprintf("form has at least %d labels", rules.MinLabels)
	labels := form.Find("label").Length()
	if labels >= rules.MinLabels {
		results = append(results, model.Pass(c.Category(), labelName, page.Name))
	} else {
		results = append(results, model.Fail(c.Category(), labelName, page.Name,
			fmt.Sprintf("found %d labels, want at least %d", labels, rules.MinLabels)))
	}

	return results
}
