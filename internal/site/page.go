package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page represents a single static HTML document loaded from disk.
// It holds both the raw text and the parsed document tree. Pages are
// immutable after loading and discarded after the run.
type Page struct {
	// Name is the page filename relative to the site root, e.g. "index.html".
	Name string `json:"name"`

	// Path is the absolute path the page was read from.
	Path string `json:"path"`

	// Raw is the raw file content. Empty when the page is missing.
	Raw []byte `json:"-"`

	// Root is the parsed document tree. Nil when the page is missing.
	Root *html.Node `json:"-"`

	// Doc wraps Root for CSS-selector queries. Nil when the page is missing.
	Doc *goquery.Document `json:"-"`

	// HasDoctype is true if the document starts with a doctype declaration.
	HasDoctype bool `json:"has_doctype"`

	// Missing is true if the file was not present at the expected location.
	// All per-page checks are skipped for missing pages.
	Missing bool `json:"missing"`
}

// parsePage parses raw HTML into a Page. html.Parse handles malformed
// markup best-effort and only fails on reader errors, so parsing a byte
// slice cannot fail.
func parsePage(name, path string, raw []byte) *Page {
	root, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		// Unreachable for in-memory input; treat like a missing page.
		return &Page{Name: name, Path: path, Missing: true}
	}

	page := &Page{
		Name: name,
		Path: path,
		Raw:  raw,
		Root: root,
		Doc:  goquery.NewDocumentFromNode(root),
	}

	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.DoctypeNode {
			page.HasDoctype = true
			break
		}
	}

	return page
}

// Title returns the trimmed text of the first <title> element.
func (p *Page) Title() string {
	if p.Doc == nil {
		return ""
	}
	return strings.TrimSpace(p.Doc.Find("head title").First().Text())
}

// Lang returns the lang attribute of the root <html> element.
func (p *Page) Lang() string {
	if p.Doc == nil {
		return ""
	}
	lang, _ := p.Doc.Find("html").First().Attr("lang")
	return lang
}
