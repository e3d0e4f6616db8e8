package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the default rules file name.
const DefaultRulesFile = ".sitecheck"

// LoadRulesFile loads validation rules from a YAML file.
// Zero-valued fields in the file are filled with built-in defaults, so a
// partial file only overrides what it names.
func LoadRulesFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided rules path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesNotFound
		}
		return nil, err
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules.Normalize()
	return &rules, nil
}

// FindRulesFile searches for the rules file in the following order:
// 1. If rulesPath is specified, use it directly
// 2. Look for .sitecheck in the site root
// 3. Look for .sitecheck in the current directory
// 4. Look for .sitecheck in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindRulesFile(rulesPath, siteRoot string) string {
	if rulesPath != "" {
		if _, err := os.Stat(rulesPath); err == nil {
			return rulesPath
		}
		return ""
	}

	if siteRoot != "" {
		rootRules := filepath.Join(siteRoot, DefaultRulesFile)
		if _, err := os.Stat(rootRules); err == nil {
			return rootRules
		}
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdRules := filepath.Join(cwd, DefaultRulesFile)
		if _, err := os.Stat(cwdRules); err == nil {
			return cwdRules
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeRules := filepath.Join(home, DefaultRulesFile)
		if _, err := os.Stat(homeRules); err == nil {
			return homeRules
		}
	}

	return ""
}
