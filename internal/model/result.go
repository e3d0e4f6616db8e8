package model

// Check category constants. Categories group related checks for report
// sections and for selectively disabling checkers via configuration.
const (
	// CategoryExistence covers file-presence checks for pages and the stylesheet.
	CategoryExistence = "existence"
	// CategoryStructure covers doctype, head/body/title, and meta declarations.
	CategoryStructure = "structure"
	// CategoryNavigation covers nav element and nav link checks.
	CategoryNavigation = "navigation"
	// CategoryLinks covers internal link resolution.
	CategoryLinks = "links"
	// CategorySemantics covers heading, footer, and section checks.
	CategorySemantics = "semantics"
	// CategoryForm covers contact form completeness checks.
	CategoryForm = "form"
	// CategoryAccessibility covers alt text and label association checks.
	CategoryAccessibility = "accessibility"
	// CategoryStylesheet covers design token, breakpoint, and animation checks.
	CategoryStylesheet = "stylesheet"
	// CategoryAssets covers referenced asset existence and metadata hygiene.
	CategoryAssets = "assets"
)

// CheckResult is the outcome of a single boolean assertion about a page's
// markup or a resource's existence. Results are never mutated after creation.
type CheckResult struct {
	// Name identifies the check, e.g. "title is non-empty" or
	// "internal link resolves: services.html".
	Name string `json:"name"`

	// Category is the check group this result belongs to.
	Category string `json:"category"`

	// Status is the check outcome.
	Status Status `json:"status"`

	// StatusText is the human-readable status for serialized output.
	StatusText string `json:"status_text"`

	// Page is the file the check ran against. Empty for site-wide checks.
	Page string `json:"page,omitempty"`

	// Value is the specific value the check inspected (a link target,
	// an attribute value, a field name).
	Value string `json:"value,omitempty"`

	// Detail is the diagnostic message explaining a failure or warning.
	Detail string `json:"detail,omitempty"`
}

// Pass creates a passing result.
func Pass(category, name, page string) CheckResult {
	return CheckResult{
		Name:       name,
		Category:   category,
		Status:     StatusPass,
		StatusText: StatusPass.String(),
		Page:       page,
	}
}

// Fail creates a failing result with a diagnostic message.
func Fail(category, name, page, detail string) CheckResult {
	return CheckResult{
		Name:       name,
		Category:   category,
		Status:     StatusFail,
		StatusText: StatusFail.String(),
		Page:       page,
		Detail:     detail,
	}
}

// Skip creates a skipped result. The detail names the unmet precondition.
func Skip(category, name, page, detail string) CheckResult {
	return CheckResult{
		Name:       name,
		Category:   category,
		Status:     StatusSkip,
		StatusText: StatusSkip.String(),
		Page:       page,
		Detail:     detail,
	}
}

// Warn creates an advisory result with a diagnostic message.
func Warn(category, name, page, detail string) CheckResult {
	return CheckResult{
		Name:       name,
		Category:   category,
		Status:     StatusWarn,
		StatusText: StatusWarn.String(),
		Page:       page,
		Detail:     detail,
	}
}

// WithValue returns a copy of the result with the inspected value set.
func (r CheckResult) WithValue(value string) CheckResult {
	r.Value = value
	return r
}
