package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestConfigValidate tests run-level configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) { c.Roots = []string{"."} },
		},
		{
			name:    "no roots",
			mutate:  func(c *Config) {},
			wantErr: ErrNoRoot,
		},
		{
			name: "zero batch size",
			mutate: func(c *Config) {
				c.Roots = []string{"."}
				c.BatchSize = 0
			},
			wantErr: ErrInvalidBatchSize,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.Roots = []string{"."}
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestRulesValidate tests rules consistency checks.
func TestRulesValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		if err := DefaultRules().Validate(); err != nil {
			t.Errorf("DefaultRules().Validate() = %v, want nil", err)
		}
	})

	t.Run("form page must be a known page", func(t *testing.T) {
		t.Parallel()

		rules := DefaultRules()
		rules.Form.Page = "enquiries.html"

		if err := rules.Validate(); !errors.Is(err, ErrFormPageUnknown) {
			t.Errorf("Validate() = %v, want %v", err, ErrFormPageUnknown)
		}
	})

	t.Run("empty page set rejected", func(t *testing.T) {
		t.Parallel()

		rules := &Rules{Stylesheet: "css/style.css"}
		if err := rules.Validate(); !errors.Is(err, ErrNoPages) {
			t.Errorf("Validate() = %v, want %v", err, ErrNoPages)
		}
	})
}

// TestLoadRulesFile tests YAML rules loading and default merging.
func TestLoadRulesFile(t *testing.T) {
	t.Parallel()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultRulesFile)
		content := `
pages:
  - index.html
  - pricing.html
nav:
  exclusive: false
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write rules file: %v", err)
		}

		rules, err := LoadRulesFile(path)
		if err != nil {
			t.Fatalf("LoadRulesFile() error: %v", err)
		}

		if len(rules.Pages) != 2 || rules.Pages[1] != "pricing.html" {
			t.Errorf("unexpected pages: %v", rules.Pages)
		}
		if rules.Stylesheet != DefaultStylesheet {
			t.Errorf("Stylesheet = %q, want default %q", rules.Stylesheet, DefaultStylesheet)
		}
		if rules.NavExclusive() {
			t.Error("expected nav exclusivity to be disabled")
		}
		if rules.Form.MinLabels != DefaultMinLabels {
			t.Errorf("MinLabels = %d, want default %d", rules.Form.MinLabels, DefaultMinLabels)
		}
	})

	t.Run("missing file returns sentinel", func(t *testing.T) {
		t.Parallel()

		_, err := LoadRulesFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrRulesNotFound) {
			t.Errorf("LoadRulesFile() = %v, want %v", err, ErrRulesNotFound)
		}
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultRulesFile)
		if err := os.WriteFile(path, []byte("pages: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write rules file: %v", err)
		}

		if _, err := LoadRulesFile(path); err == nil {
			t.Error("expected parse error for invalid YAML")
		}
	})
}

// TestFindRulesFile tests rules file discovery order.
func TestFindRulesFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write rules file: %v", err)
		}

		if got := FindRulesFile(path, ""); got != path {
			t.Errorf("FindRulesFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit path missing returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindRulesFile(filepath.Join(t.TempDir(), "nope"), ""); got != "" {
			t.Errorf("FindRulesFile() = %q, want empty", got)
		}
	})

	t.Run("site root searched", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		path := filepath.Join(root, DefaultRulesFile)
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write rules file: %v", err)
		}

		if got := FindRulesFile("", root); got != path {
			t.Errorf("FindRulesFile() = %q, want %q", got, path)
		}
	})

	t.Run("disabled category lookup", func(t *testing.T) {
		t.Parallel()

		rules := DefaultRules()
		rules.Disable = []string{"assets"}

		if !rules.Disabled("assets") {
			t.Error("expected assets to be disabled")
		}
		if rules.Disabled("structure") {
			t.Error("structure should not be disabled")
		}
	})
}
