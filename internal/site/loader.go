package site

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Stylesheet is the shared CSS file referenced by every page.
type Stylesheet struct {
	// Name is the stylesheet path relative to the site root, e.g. "css/style.css".
	Name string `json:"name"`

	// Path is the absolute path the file was read from.
	Path string `json:"path"`

	// Raw is the raw CSS text. Empty when the file is missing.
	Raw string `json:"-"`

	// Missing is true if the file was not present.
	Missing bool `json:"missing"`
}

// Site is a one-shot snapshot of a static site: the parsed page set plus
// the shared stylesheet. No entity in a Site persists beyond a single run
// and nothing is mutated after loading.
type Site struct {
	// Root is the absolute site root directory.
	Root string `json:"root"`

	// Pages holds the configured pages in configuration order.
	Pages []*Page `json:"pages"`

	// Stylesheet is the shared stylesheet.
	Stylesheet Stylesheet `json:"stylesheet"`
}

// Load reads and parses the named pages and stylesheet under root.
// Missing files are recorded on the returned Site rather than reported as
// errors; the only hard failure is a root directory that cannot be resolved.
func Load(root string, pageNames []string, stylesheet string) (*Site, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve site root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("site root not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site root is not a directory: %s", absRoot)
	}

	s := &Site{
		Root:  absRoot,
		Pages: make([]*Page, 0, len(pageNames)),
	}

	for _, name := range pageNames {
		path := filepath.Join(absRoot, filepath.FromSlash(name))
		raw, err := os.ReadFile(path) //nolint:gosec // Paths come from user configuration
		if err != nil {
			s.Pages = append(s.Pages, &Page{Name: name, Path: path, Missing: true})
			continue
		}
		s.Pages = append(s.Pages, parsePage(name, path, raw))
	}

	cssPath := filepath.Join(absRoot, filepath.FromSlash(stylesheet))
	raw, err := os.ReadFile(cssPath) //nolint:gosec // Paths come from user configuration
	if err != nil {
		s.Stylesheet = Stylesheet{Name: stylesheet, Path: cssPath, Missing: true}
	} else {
		s.Stylesheet = Stylesheet{Name: stylesheet, Path: cssPath, Raw: string(raw)}
	}

	return s, nil
}

// Page returns the loaded page with the given name, or nil.
func (s *Site) Page(name string) *Page {
	for _, p := range s.Pages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PageNames returns the configured page names in order.
func (s *Site) PageNames() []string {
	names := make([]string, len(s.Pages))
	for i, p := range s.Pages {
		names[i] = p.Name
	}
	return names
}

// ResolveFile reports whether an internal link target exists as a file
// under the site root. Fragment and query suffixes are stripped before
// resolution; targets escaping the root never resolve.
func (s *Site) ResolveFile(target string) bool {
	cleaned := CleanTarget(target)
	if cleaned == "" {
		return false
	}

	path := filepath.Join(s.Root, filepath.FromSlash(cleaned))

	// Reject traversal outside the root.
	rel, err := filepath.Rel(s.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CleanTarget strips the fragment and query portions from a link target
// and decodes percent escapes, leaving a root-relative file path.
func CleanTarget(target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	target = strings.TrimPrefix(target, "./")
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	return strings.TrimSpace(target)
}

// IsInternalLink reports whether an href is an internal link target:
// not an absolute external URL, not a same-page fragment, and not a
// mailto/tel/javascript/data reference.
func IsInternalLink(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	for _, scheme := range []string{"http://", "https://", "//", "mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return false
		}
	}
	return true
}
