package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/sitecheck/internal/config"
	"github.com/nao1215/sitecheck/internal/model"
)

// writeTestSite writes a minimal site that passes the full battery.
func writeTestSite(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	page := func(name, title, body string) string {
		nav := ""
		for _, p := range []string{"index.html", "about.html", "contact.html"} {
			class := ""
			if p == name {
				class = ` class="active"`
			}
			nav += `<a href="` + p + `"` + class + `>` + p + `</a>`
		}
		return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>` + title + `</title>
<link rel="stylesheet" href="css/style.css">
</head>
<body>
<nav>` + nav + `</nav>
<h1>` + title + `</h1>
<section>` + body + `</section>
<footer><p>Acme Studio</p></footer>
</body>
</html>`
	}

	form := `<form action="#" method="post">
<label for="name">Name</label><input type="text" id="name" name="name">
<label for="email">Email</label><input type="email" id="email" name="email">
<label for="subject">Subject</label><input type="text" id="subject" name="subject">
<label for="message">Message</label><textarea id="message" name="message"></textarea>
<button type="submit">Send</button>
</form>`

	files := map[string]string{
		"index.html":    page("index.html", "Home", "<p>Welcome.</p>"),
		"about.html":    page("about.html", "About", "<p>Who we are.</p>"),
		"contact.html":  page("contact.html", "Contact", form),
		"css/style.css": ":root { --brand: #0a5; }\n@media (max-width: 600px) { body {} }\n@keyframes fade { from { opacity: 0; } }",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// runCheck executes the check command through the root command with the
// given arguments. Persistence is disabled so tests never touch the
// user's history database.
func runCheck(t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewRootCmd()
	cmd.SetArgs(append([]string{"check", "--no-save"}, args...))
	return cmd.Execute()
}

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "check [site-root...]" {
			t.Errorf("expected use 'check [site-root...]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{name: "config", shorthand: "c", defValue: ""},
			{name: "json", shorthand: "j", defValue: "false"},
			{name: "markdown", shorthand: "m", defValue: "false"},
			{name: "output", shorthand: "o", defValue: ""},
			{name: "batch", shorthand: "b", defValue: "4"},
			{name: "no-save", shorthand: "", defValue: "false"},
		}
		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("%s: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("%s: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}
		}
	})
}

// TestRunCheckCmd tests the check command execution against fixture sites.
func TestRunCheckCmd(t *testing.T) {
	t.Run("valid site exits cleanly", func(t *testing.T) {
		dir := writeTestSite(t)
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		if err := runCheck(t, "-o", reportPath, dir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "SITECHECK REPORT") {
			t.Error("expected console report header in output file")
		}
		if !strings.Contains(string(content), "Status:       PASS") {
			t.Errorf("expected passing status, got:\n%s", content)
		}
	})

	t.Run("failing site returns an error", func(t *testing.T) {
		dir := writeTestSite(t)
		if err := os.Remove(filepath.Join(dir, "css", "style.css")); err != nil {
			t.Fatalf("failed to remove stylesheet: %v", err)
		}
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		err := runCheck(t, "-o", reportPath, dir)
		if err == nil {
			t.Fatal("expected error for failing site")
		}
		if !errors.Is(err, errChecksFailed) {
			t.Errorf("expected errChecksFailed, got %v", err)
		}
	})

	t.Run("writes json report with version metadata", func(t *testing.T) {
		dir := writeTestSite(t)
		reportPath := filepath.Join(t.TempDir(), "report.json")

		if err := runCheck(t, "-j", "-o", reportPath, dir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var decoded struct {
			Version string        `json:"version"`
			Report  *model.Report `json:"report"`
		}
		if err := json.Unmarshal(content, &decoded); err != nil {
			t.Fatalf("failed to unmarshal report: %v", err)
		}
		if decoded.Version == "" {
			t.Error("expected non-empty version in JSON report")
		}
		if decoded.Report == nil {
			t.Fatal("expected report payload")
		}
		if decoded.Report.FailCount != 0 {
			t.Errorf("FailCount = %d, want 0", decoded.Report.FailCount)
		}
	})

	t.Run("writes markdown report", func(t *testing.T) {
		dir := writeTestSite(t)
		reportPath := filepath.Join(t.TempDir(), "report.md")

		if err := runCheck(t, "-m", "-o", reportPath, dir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "# Sitecheck Report") {
			t.Error("expected markdown report title")
		}
	})

	t.Run("conflicting report formats are rejected", func(t *testing.T) {
		dir := writeTestSite(t)

		err := runCheck(t, "-j", "-m", dir)
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("explicit missing rules file is an error", func(t *testing.T) {
		dir := writeTestSite(t)

		err := runCheck(t, "-c", filepath.Join(t.TempDir(), "no-such-rules.yaml"), dir)
		if err == nil {
			t.Fatal("expected error for missing rules file")
		}
		if !strings.Contains(err.Error(), "rules file not found") {
			t.Errorf("expected 'rules file not found' error, got %v", err)
		}
	})

	t.Run("rules file in site root is honored", func(t *testing.T) {
		dir := writeTestSite(t)
		rules := "pages:\n  - index.html\n  - about.html\n  - contact.html\n  - services.html\n"
		if err := os.WriteFile(filepath.Join(dir, ".sitecheck"), []byte(rules), 0600); err != nil {
			t.Fatalf("failed to write rules file: %v", err)
		}
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		// services.html does not exist, so the extra configured page
		// must turn the run into a failure.
		err := runCheck(t, "-o", reportPath, dir)
		if !errors.Is(err, errChecksFailed) {
			t.Errorf("expected errChecksFailed from extra configured page, got %v", err)
		}
	})

	t.Run("multiple roots produce one report each", func(t *testing.T) {
		dirA := writeTestSite(t)
		dirB := writeTestSite(t)
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		if err := runCheck(t, "-o", reportPath, dirA, dirB); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		posA := strings.Index(string(content), dirA)
		posB := strings.Index(string(content), dirB)
		if posA < 0 {
			t.Errorf("expected report for %s", dirA)
		}
		if posB < 0 {
			t.Errorf("expected report for %s", dirB)
		}
		// Reports must come out in input order regardless of which
		// root finished validating first.
		if posA >= 0 && posB >= 0 && posA > posB {
			t.Error("expected reports in input order")
		}
	})

	t.Run("invalid batch size is rejected", func(t *testing.T) {
		dir := writeTestSite(t)

		err := runCheck(t, "-b", "0", dir)
		if !errors.Is(err, config.ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})
}

// TestBuildConfig tests flag-to-config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults to current directory", func(t *testing.T) {
		t.Parallel()

		cmd := NewCheckCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Roots) != 1 {
			t.Fatalf("len(Roots) = %d, want 1", len(cfg.Roots))
		}
		if !filepath.IsAbs(cfg.Roots[0]) {
			t.Errorf("expected absolute root, got %q", cfg.Roots[0])
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to default to true")
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, config.DefaultBatchSize)
		}
	})

	t.Run("no-save disables persistence", func(t *testing.T) {
		t.Parallel()

		cmd := NewCheckCmd()
		if err := cmd.ParseFlags([]string{"--no-save"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{t.TempDir()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false")
		}
	})

	t.Run("roots are made absolute", func(t *testing.T) {
		t.Parallel()

		cmd := NewCheckCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"./relative/site"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !filepath.IsAbs(cfg.Roots[0]) {
			t.Errorf("expected absolute root, got %q", cfg.Roots[0])
		}
	})
}
