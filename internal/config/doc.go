// Package config holds run configuration for sitecheck.
//
// Configuration comes from two places: CLI flags populate Config, and an
// optional .sitecheck YAML file in the site root (or home directory)
// overrides the built-in validation rules. A zero-config run validates the
// conventional page set (index, about, contact plus one shared stylesheet).
package config
