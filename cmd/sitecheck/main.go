// Package main provides the entry point for the sitecheck CLI.
//
// Sitecheck is a validator for small static marketing sites. It loads the
// site's HTML pages from a directory on disk, runs a battery of structural,
// navigation, link, semantic, form, accessibility, stylesheet, and asset
// checks against them, and reports which checks passed and which failed.
//
// Usage:
//
//	sitecheck check <site-root>
//	sitecheck check --json <site-root>
//
// See --help for all available options.
package main

// main is the entry point for sitecheck.
func main() {
	Execute()
}
