package config

import "slices"

// Built-in rule defaults. These match the conventional layout of the sites
// sitecheck was written for: three content pages and one shared stylesheet.
const (
	// DefaultStylesheet is the shared stylesheet path relative to the site root.
	DefaultStylesheet = "css/style.css"

	// DefaultFormPage is the page expected to carry the contact form.
	DefaultFormPage = "contact.html"

	// DefaultMinLabels is the minimum number of labels expected inside the
	// contact form: one per named field.
	DefaultMinLabels = 4

	// DefaultActiveClass is the class marking the current page's nav link.
	DefaultActiveClass = "active"
)

// DefaultPages is the conventional page set validated when no rules file
// overrides it.
func DefaultPages() []string {
	return []string{"index.html", "about.html", "contact.html"}
}

// Rules describes what the check battery asserts: the known page set, the
// shared stylesheet, navigation expectations, and the contact form contract.
// Rules are loaded from the .sitecheck file or fall back to defaults.
type Rules struct {
	// Pages is the ordered set of known pages. Every page must link to
	// every other page in its navigation.
	Pages []string `yaml:"pages,omitempty"`

	// Stylesheet is the shared stylesheet path relative to the site root.
	Stylesheet string `yaml:"stylesheet,omitempty"`

	// Nav configures navigation checks.
	Nav NavRules `yaml:"nav,omitempty"`

	// Form configures the contact form checks.
	Form FormRules `yaml:"form,omitempty"`

	// Disable lists check categories to skip entirely, e.g. "assets".
	Disable []string `yaml:"disable,omitempty"`
}

// NavRules configures the navigation checker.
type NavRules struct {
	// ActiveClass is the class name marking the current page's nav link.
	ActiveClass string `yaml:"activeClass,omitempty"`

	// Exclusive asserts that ONLY the current page's nav link carries the
	// active class. The original validation battery only checked presence;
	// exclusivity is asserted by default and can be switched off here.
	Exclusive *bool `yaml:"exclusive,omitempty"`
}

// FormRules configures the contact form checker.
type FormRules struct {
	// Page is the page expected to carry the form.
	Page string `yaml:"page,omitempty"`

	// Fields are the required named input fields.
	Fields []string `yaml:"fields,omitempty"`

	// EmailField is the input that must carry type="email".
	EmailField string `yaml:"emailField,omitempty"`

	// Textarea is the required named text area.
	Textarea string `yaml:"textarea,omitempty"`

	// MinLabels is the minimum number of labels inside the form.
	MinLabels int `yaml:"minLabels,omitempty"`
}

// DefaultRules returns the built-in validation rules.
func DefaultRules() *Rules {
	exclusive := true
	return &Rules{
		Pages:      DefaultPages(),
		Stylesheet: DefaultStylesheet,
		Nav: NavRules{
			ActiveClass: DefaultActiveClass,
			Exclusive:   &exclusive,
		},
		Form: FormRules{
			Page:       DefaultFormPage,
			Fields:     []string{"name", "email", "subject"},
			EmailField: "email",
			Textarea:   "message",
			MinLabels:  DefaultMinLabels,
		},
	}
}

// Normalize fills zero-valued fields with defaults so a partial rules file
// only overrides what it names.
func (r *Rules) Normalize() {
	defaults := DefaultRules()

	if len(r.Pages) == 0 {
		r.Pages = defaults.Pages
	}
	if r.Stylesheet == "" {
		r.Stylesheet = defaults.Stylesheet
	}
	if r.Nav.ActiveClass == "" {
		r.Nav.ActiveClass = defaults.Nav.ActiveClass
	}
	if r.Nav.Exclusive == nil {
		r.Nav.Exclusive = defaults.Nav.Exclusive
	}
	if r.Form.Page == "" {
		r.Form.Page = defaults.Form.Page
	}
	if len(r.Form.Fields) == 0 {
		r.Form.Fields = defaults.Form.Fields
	}
	if r.Form.EmailField == "" {
		r.Form.EmailField = defaults.Form.EmailField
	}
	if r.Form.Textarea == "" {
		r.Form.Textarea = defaults.Form.Textarea
	}
	if r.Form.MinLabels == 0 {
		r.Form.MinLabels = defaults.Form.MinLabels
	}
}

// Validate checks that the rules are internally consistent.
func (r *Rules) Validate() error {
	if len(r.Pages) == 0 {
		return ErrNoPages
	}
	if r.Stylesheet == "" {
		return ErrNoStylesheet
	}
	if r.Form.Page != "" && !slices.Contains(r.Pages, r.Form.Page) {
		return ErrFormPageUnknown
	}
	return nil
}

// NavExclusive reports whether nav active-class exclusivity is asserted.
func (r *Rules) NavExclusive() bool {
	return r.Nav.Exclusive == nil || *r.Nav.Exclusive
}

// Disabled reports whether a check category is disabled.
func (r *Rules) Disabled(category string) bool {
	return slices.Contains(r.Disable, category)
}
