// Package site loads a static site from disk and parses its pages.
//
// A Site is a one-shot, immutable snapshot: every configured page and the
// shared stylesheet are read exactly once per validation run. Missing files
// degrade gracefully (the page is marked missing rather than causing a
// crash) and malformed documents are parsed best-effort.
//
// Design decision: We parse with golang.org/x/net/html and wrap the parsed
// tree in a goquery document. The raw node tree is needed for doctype
// detection (goquery selections cannot address doctype nodes), while goquery
// gives the checkers concise CSS-selector assertions.
package site
